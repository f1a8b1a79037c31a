package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
)

const (
	healingEffectTicks = 100
	regenMinLevel      = 4
)

// Healing — облако по умолчанию: скорость союзникам, а с 4 уровня
// существа ещё и регенерация (сила растёт до 6 уровня).
type Healing struct{}

func (h *Healing) Type() types.EnchantmentType { return types.EnchantNone }

// ApplyToCloud: level is the creature level here, not an enchantment level.
func (h *Healing) ApplyToCloud(cloud *component.AreaCloud, level int) {
	cloud.Particle = "happy_villager"
	cloud.AffectsHostiles = false
	cloud.Effects = []component.TimedEffect{
		{Tag: types.EffectSpeed, Duration: healingEffectTicks, Amplifier: 0},
	}
	if amp, ok := RegenAmplifier(level); ok {
		cloud.Effects = append(cloud.Effects, component.TimedEffect{
			Tag: types.EffectRegeneration, Duration: healingEffectTicks, Amplifier: amp,
		})
	}
}

func (h *Healing) Process(interfaces.World, *component.AreaCloud, int) {}

// RegenAmplifier returns the regeneration amplifier for a creature level:
// none at level 3 and below, 0..2 for levels 4..6.
func RegenAmplifier(creatureLevel int) (int, bool) {
	if creatureLevel < regenMinLevel {
		return 0, false
	}
	amp := creatureLevel - regenMinLevel
	if amp > 2 {
		amp = 2
	}
	return amp, true
}
