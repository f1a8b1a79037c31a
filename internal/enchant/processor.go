// Package enchant holds the per-cloud enchantment processors. Exactly one
// processor is bound to each cloud the lifecycle manager spawns.
package enchant

import (
	"fmt"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
)

// Processor — поведение, привязанное к одному облаку.
//
// ApplyToCloud вызывается один раз при создании облака и только настраивает
// его. Process вызывается менеджером каждый тик без условий, поэтому
// процессор сам ограничивает частоту своей работы.
type Processor interface {
	Type() types.EnchantmentType
	ApplyToCloud(cloud *component.AreaCloud, level int)
	Process(w interfaces.World, cloud *component.AreaCloud, level int)
}

// Deps — зависимости, которые получают фабрики процессоров.
type Deps struct {
	RNG     *utils.PRNGService
	Library *defs.Library
	Events  *event.Dispatcher
}

// Factory создаёт новый экземпляр процессора для одного облака.
type Factory func(d Deps) Processor

var registry = map[types.EnchantmentType]Factory{
	types.EnchantMultishot: func(Deps) Processor { return &Multishot{} },
	types.EnchantDuration:  func(Deps) Processor { return &Duration{} },
	types.EnchantFreezing:  func(Deps) Processor { return &Freezing{} },
	types.EnchantCharm:     NewCharm,
	types.EnchantGravity:   func(Deps) Processor { return &Gravity{} },
	types.EnchantPolymorph: NewPolymorph,
}

// New creates the processor registered for t.
func New(t types.EnchantmentType, d Deps) (Processor, error) {
	factory, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("no processor for enchantment %q", t)
	}
	return factory(d), nil
}

// SelectionOrder — приоритет выбора процессора облака, первый найденный побеждает.
var SelectionOrder = []types.EnchantmentType{
	types.EnchantPolymorph,
	types.EnchantGravity,
	types.EnchantCharm,
	types.EnchantFreezing,
}

// Select picks the processor for a new cloud. levelOf reports the active
// level of an enchantment (0 when absent). When none of the cloud
// enchantments is active the healing cloud is used with the creature level.
func Select(levelOf func(types.EnchantmentType) int, creatureLevel int, d Deps) (Processor, int) {
	for _, t := range SelectionOrder {
		lvl := levelOf(t)
		if lvl <= 0 {
			continue
		}
		if p, err := New(t, d); err == nil {
			return p, lvl
		}
	}
	return &Healing{}, creatureLevel
}

// pulse — счётчик для процессоров, которые работают раз в N тиков.
type pulse struct {
	every int
	ticks int
}

// ready increments the counter and reports whether this call is a pulse.
func (p *pulse) ready() bool {
	p.ticks++
	if p.every <= 1 {
		return true
	}
	return p.ticks%p.every == 0
}

// levelIndex maps an enchantment level 1..3 onto a table index.
func levelIndex(level, size int) int {
	if level < 1 {
		return 0
	}
	if level > size {
		return size - 1
	}
	return level - 1
}

func isHostile(e component.Entity) bool { return e.IsHostile() }
