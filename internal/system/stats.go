// internal/system/stats.go
package system

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// ResolveCombatStats собирает боевой снимок из уровня, стихии и окружения.
// Чистая функция: одинаковые входы всегда дают одинаковый результат.
func ResolveCombatStats(lib *defs.Library, level int, element types.Element, biome types.Biome) component.CombatStats {
	level = utils.ClampInt(level, config.MinLevel, config.MaxLevel)
	if !element.Valid() {
		element = types.ElementFire
	}

	base := lib.Level(level)
	elementDef := lib.Element(element)
	mult := elementDef.Multipliers(level)

	damage := base.BaseDamage * mult.Damage
	cooldown := float64(base.CooldownTicks) * mult.Cooldown
	control := base.ControlStrength * mult.Control

	boosted := elementDef.IsHome(biome)
	minCooldown := config.MinCooldownTicks
	if boosted {
		bonus := math.Max(elementDef.HomeBonus, 0)
		damage *= 1 + bonus
		control *= 1 + bonus
		cooldown *= math.Max(1-bonus, 0)
		minCooldown = config.MinHomeCooldownTicks
	}

	stats := component.CombatStats{
		Element:          element,
		Level:            level,
		Damage:           math.Max(damage, config.MinDamage),
		CooldownTicks:    int(math.Round(cooldown)),
		ExplosionPower:   base.ExplosionPower,
		ControlStrength:  math.Max(control, 0),
		ProjectileSpeed:  base.ProjectileSpeed,
		HomeBiomeBoosted: boosted,
	}
	if !utils.Finite(stats.Damage) {
		stats.Damage = config.MinDamage
	}
	if stats.CooldownTicks < minCooldown {
		stats.CooldownTicks = minCooldown
	}
	if stats.ExplosionPower < config.MinExplosionPower {
		stats.ExplosionPower = config.MinExplosionPower
	}
	if stats.ProjectileSpeed <= 0 {
		stats.ProjectileSpeed = 1
	}
	return stats
}

// StatsFor — удобная обёртка для состояния существа в данной точке мира.
func StatsFor(lib *defs.Library, state *component.CreatureState, biome types.Biome) component.CombatStats {
	return ResolveCombatStats(lib, state.Level, state.Element, biome)
}
