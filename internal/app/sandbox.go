// internal/app/sandbox.go
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go-companion-combat/internal/codec"
	"go-companion-combat/internal/companion"
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/system"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
	"go-companion-combat/internal/world"
	"go-companion-combat/pkg/logger"
	vec "go-companion-combat/pkg/utils"

	"github.com/sirupsen/logrus"
)

// member — стартовый состав компаньонов песочницы
type member struct {
	element types.Element
	level   int
	slots   []component.EnchantmentSlot
	offset  vec.Vec3
}

var lineup = []member{
	{element: types.ElementFire, level: 4, offset: vec.Vec3{X: -2}, slots: []component.EnchantmentSlot{
		{Type: types.EnchantCharm, Level: 2},
	}},
	{element: types.ElementIce, level: 3, offset: vec.Vec3{X: 2}, slots: []component.EnchantmentSlot{
		{Type: types.EnchantFreezing, Level: 2},
	}},
	{element: types.ElementWind, level: 5, offset: vec.Vec3{Z: -2}, slots: []component.EnchantmentSlot{
		{Type: types.EnchantGravity, Level: 1},
		{Type: types.EnchantMultishot, Level: 1},
	}},
	{element: types.ElementSand, level: 6, offset: vec.Vec3{Z: 2}, slots: []component.EnchantmentSlot{
		{Type: types.EnchantPolymorph, Level: 1},
		{Type: types.EnchantDuration, Level: 2},
	}},
}

// Sandbox — игрок, четыре компаньона и волны мобов в эталонном мире.
type Sandbox struct {
	World      *world.World
	Events     *event.Dispatcher
	Companions *system.CompanionSystem
	Waves      *WaveSpawner
	Defs       *defs.Store
	Rng        *utils.PRNGService
	PlayerID   types.EntityID
	Collected  int

	settings    config.Settings
	members     []*companion.Companion
	accumulator float64
	isPaused    bool
	gameSpeed   float64
}

// NewSandbox builds the scene. A roster at settings.StatePath replaces the
// default lineup states when it exists.
func NewSandbox(settings config.Settings, store *defs.Store) (*Sandbox, error) {
	if store == nil {
		store = defs.NewStore(nil)
	}
	events := event.NewDispatcher()
	w := world.New(events)
	w.SetBiome(BiomeAt)

	s := &Sandbox{
		World:     w,
		Events:    events,
		Defs:      store,
		Rng:       utils.NewPRNGService(settings.Seed),
		settings:  settings,
		gameSpeed: 1,
	}
	s.PlayerID = w.AddEntity(component.Entity{Kind: types.KindPlayer, Species: "player", CustomName: "Steve"})
	s.Companions = system.NewCompanionSystem(w, events)
	s.Waves = NewWaveSpawner(w, events, s.Rng, s.PlayerID)

	var strategy system.TargetStrategy
	if settings.ProtectPlayers {
		strategy = system.NearestToPlayer{Radius: config.TargetSearchRadius}
	}
	lib := store.Current()
	for i, m := range lineup {
		id := w.AddEntity(component.Entity{
			Kind:       types.KindCompanion,
			Species:    "companion_" + string(m.element),
			Position:   m.offset,
			CustomName: fmt.Sprintf("%s #%d", m.element, i+1),
			OwnerID:    s.PlayerID,
		})
		st := component.NewCreatureState(m.element, 0)
		st.Level = m.level
		st.Satiation = system.MaxSatiation(lib, m.level)
		c := companion.New(id, *st, companion.Options{
			Library:  lib,
			Events:   events,
			RNG:      utils.NewPRNGService(settings.Seed + int64(i) + 1),
			Strategy: strategy,
		})
		for slot, e := range m.slots {
			if err := c.SetEnchantment(slot, e.Type, e.Level); err != nil {
				return nil, fmt.Errorf("lineup %s: %w", m.element, err)
			}
		}
		s.members = append(s.members, c)
		s.Companions.Add(c)
	}

	if settings.StatePath != "" {
		if err := s.Load(settings.StatePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	subscribeLogging(events)
	return s, nil
}

// BiomeAt раскладывает биомы по квадрантам вокруг начала координат.
func BiomeAt(pos vec.Vec3) types.Biome {
	if pos.X*pos.X+pos.Z*pos.Z < 16 {
		return types.BiomePlains
	}
	switch {
	case pos.X >= 0 && pos.Z >= 0:
		return "desert"
	case pos.X < 0 && pos.Z >= 0:
		return "snowy_plains"
	case pos.X < 0:
		return "meadow"
	default:
		return "savanna"
	}
}

// Members returns the companions in lineup order.
func (s *Sandbox) Members() []*companion.Companion { return s.members }

func (s *Sandbox) IsPaused() bool            { return s.isPaused }
func (s *Sandbox) SetPaused(p bool)          { s.isPaused = p }
func (s *Sandbox) Speed() float64            { return s.gameSpeed }
func (s *Sandbox) SetSpeed(k float64)        { s.gameSpeed = vec.Clamp(k, 0, 8) }
func (s *Sandbox) Tick() int64               { return s.World.CurrentTick() }
func (s *Sandbox) Settings() config.Settings { return s.settings }

// Update переводит реальное время в тики мира с учётом скорости.
func (s *Sandbox) Update(deltaTime float64) {
	if s.isPaused {
		return
	}
	s.accumulator += deltaTime * s.gameSpeed
	step := 1.0 / config.TicksPerSecond
	for n := 0; s.accumulator >= step && n < config.StepsPerFrameMax; n++ {
		s.Step()
		s.accumulator -= step
	}
	if s.accumulator > step {
		s.accumulator = step
	}
}

// Step — один тик: компаньоны, затем мир, затем волны и подбор.
func (s *Sandbox) Step() {
	s.Companions.Update()
	s.World.Update()
	s.Waves.Update()
	s.collectItems()
}

// Run выполняет ticks шагов без окна.
func (s *Sandbox) Run(ticks int) {
	for i := 0; i < ticks; i++ {
		s.Step()
	}
	logger.Log.WithFields(logrus.Fields{
		"ticks":     s.Tick(),
		"wave":      s.Waves.Number(),
		"killed":    s.Waves.Killed,
		"leaked":    s.Waves.Leaked,
		"collected": s.Collected,
	}).Info("sandbox: run finished")
}

// collectItems подбирает выпавшие предметы рядом с игроком и кормит ими компаньонов.
func (s *Sandbox) collectItems() {
	player, ok := s.World.Entity(s.PlayerID)
	if !ok {
		return
	}
	items := s.World.FindEntities(component.Sphere{Center: player.Position, Radius: config.PickupRadius}, func(e component.Entity) bool {
		return e.Kind == types.KindItem && e.Region == player.Region
	})
	for _, it := range items {
		s.World.RemoveEntity(it.ID, false)
		s.Collected++
		for _, c := range s.members {
			c.Feed(config.PickupSatiation)
		}
	}
}

// ReloadDefs перечитывает баланс и раздаёт новый снимок компаньонам.
func (s *Sandbox) ReloadDefs(path string) error {
	if err := s.Defs.Reload(path); err != nil {
		return err
	}
	lib := s.Defs.Current()
	for _, c := range s.members {
		c.SetLibrary(lib)
	}
	return nil
}

// Save пишет состояния компаньонов в path.
func (s *Sandbox) Save(path string) error {
	states := make([]component.CreatureState, 0, len(s.members))
	for _, c := range s.members {
		states = append(states, c.State())
	}
	data, err := codec.EncodeRoster(states)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	logger.Log.WithFields(logrus.Fields{"path": path, "creatures": len(states)}).Info("sandbox: roster saved")
	return nil
}

// Load восстанавливает состояния из path по порядку состава.
// Лишние записи игнорируются, недостающие оставляют состояние как есть.
func (s *Sandbox) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	states, err := codec.DecodeRoster(data, s.Defs.Current())
	if err != nil {
		return err
	}
	for i, st := range states {
		if i >= len(s.members) {
			break
		}
		s.members[i].Restore(st)
	}
	logger.Log.WithFields(logrus.Fields{"path": path, "creatures": len(states)}).Info("sandbox: roster loaded")
	return nil
}
