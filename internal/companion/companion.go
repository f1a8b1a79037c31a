// Package companion ties one creature's state to its own attack scheduler,
// enchantment dispatch and cloud manager. Nothing is shared between
// companions.
package companion

import (
	"errors"
	"fmt"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/enchant"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/system"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
	"go-companion-combat/pkg/logger"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidSlot        = errors.New("invalid enchantment slot")
	ErrUnknownEnchantment = errors.New("unknown enchantment")
)

// Options — зависимости компаньона. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Library  *defs.Library
	Events   *event.Dispatcher
	RNG      *utils.PRNGService
	Strategy system.TargetStrategy
}

// Companion — одно существо-компаньон.
type Companion struct {
	entityID types.EntityID
	state    component.CreatureState
	lib      *defs.Library
	events   *event.Dispatcher

	scheduler *system.AttackScheduler
	dispatch  *system.EnchantmentDispatch
	clouds    *system.CloudManager
	ticks     int
}

// New binds state to the host entity entityID. The state is normalized.
func New(entityID types.EntityID, state component.CreatureState, opts Options) *Companion {
	if opts.Library == nil {
		opts.Library = defs.Default()
	}
	if opts.RNG == nil {
		opts.RNG = utils.NewPRNGService(int64(entityID))
	}

	c := &Companion{
		entityID:  entityID,
		state:     state,
		lib:       opts.Library,
		events:    opts.Events,
		scheduler: system.NewAttackScheduler(opts.Strategy),
	}
	system.NormalizeState(&c.state, c.lib)
	c.clouds = system.NewCloudManager(entityID, enchant.Deps{
		RNG:     opts.RNG,
		Library: opts.Library,
		Events:  opts.Events,
	})
	c.dispatch = system.NewEnchantmentDispatch(&c.state, c.lib, c.clouds, opts.Events)
	return c
}

func (c *Companion) EntityID() types.EntityID { return c.entityID }

func (c *Companion) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{"companion": c.entityID, "creature": c.state.ID.String()})
}

// Tick runs one simulation tick: targeting and firing, then impact and
// cloud processing, then satiation once per second. A companion whose
// entity is gone or dead does nothing.
func (c *Companion) Tick(w interfaces.World) {
	self, ok := w.Entity(c.entityID)
	if !ok || !self.Alive {
		return
	}
	c.ticks++

	stats := system.StatsFor(c.lib, &c.state, w.BiomeAt(self.Position))
	c.scheduler.Tick(w, self, stats, c.dispatch)
	c.clouds.Tick(w, &c.state)

	if c.ticks%config.TicksPerSecond == 0 {
		system.UpdateSatiation(&c.state, c.lib, 1.0)
	}
}

// AddExperience grants experience and reports a level-up.
func (c *Companion) AddExperience(amount int) bool {
	before := c.state.Level
	if !system.AddExperience(&c.state, c.lib, amount) {
		return false
	}
	c.log().WithFields(logrus.Fields{"from": before, "to": c.state.Level}).Info("companion: level up")
	c.events.Dispatch(event.Event{Type: event.LevelUp, Data: event.LevelUpData{
		CreatureID: c.entityID,
		Level:      c.state.Level,
	}})
	return true
}

// Feed restores satiation up to the level cap.
func (c *Companion) Feed(amount float64) {
	system.Feed(&c.state, c.lib, amount)
}

// SetEnchantment puts t at level into slot. EnchantNone clears the slot; the
// level is clamped into the enchantment's range.
func (c *Companion) SetEnchantment(slot int, t types.EnchantmentType, level int) error {
	if slot < 0 || slot >= component.EnchantmentSlotCount {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	if t == types.EnchantNone {
		c.state.Enchantments[slot] = component.EnchantmentSlot{}
		return nil
	}
	def, ok := c.lib.Enchantment(t)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEnchantment, t)
	}
	c.state.Enchantments[slot] = component.EnchantmentSlot{Type: t, Level: level}.Clamped(func(types.EnchantmentType) int {
		return def.MaxLevel
	})
	c.log().WithFields(logrus.Fields{
		"slot":        slot,
		"enchantment": t,
		"level":       c.state.Enchantments[slot].Level,
	}).Debug("companion: enchantment set")
	return nil
}

// ClearEnchantment empties slot.
func (c *Companion) ClearEnchantment(slot int) error {
	return c.SetEnchantment(slot, types.EnchantNone, 0)
}

// State returns a copy of the persistent state.
func (c *Companion) State() component.CreatureState { return c.state }

// Restore replaces the state with a loaded one, clamped into bounds.
// Combat state is reset.
func (c *Companion) Restore(state component.CreatureState) {
	system.NormalizeState(&state, c.lib)
	c.state = state
	c.scheduler.Reset()
}

// Stats returns the combat snapshot at the companion's current position.
func (c *Companion) Stats(w interfaces.World) component.CombatStats {
	biome := types.BiomePlains
	if self, ok := w.Entity(c.entityID); ok {
		biome = w.BiomeAt(self.Position)
	}
	return system.StatsFor(c.lib, &c.state, biome)
}

// SetLibrary switches to a new balance snapshot. Call it between ticks.
func (c *Companion) SetLibrary(lib *defs.Library) {
	if lib == nil {
		return
	}
	c.lib = lib
	c.dispatch.SetLibrary(lib)
	c.clouds.SetLibrary(lib)
}

// Discard drops the scheduler and cloud tracking state.
func (c *Companion) Discard() {
	c.scheduler.Reset()
	c.clouds.Discard()
}

func (c *Companion) Scheduler() *system.AttackScheduler { return c.scheduler }
func (c *Companion) Clouds() *system.CloudManager       { return c.clouds }
