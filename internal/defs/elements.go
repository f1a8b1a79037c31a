package defs

import "go-companion-combat/internal/types"

// ElementMultipliers — множители стихии для одного уровня
type ElementMultipliers struct {
	Damage   float64 `json:"damage"`
	Cooldown float64 `json:"cooldown"`
	Control  float64 `json:"control"`
}

// identityMultipliers используются для уровней, не описанных в таблице.
var identityMultipliers = ElementMultipliers{Damage: 1, Cooldown: 1, Control: 1}

// ElementDefinition describes how an element scales and where it feels at home.
type ElementDefinition struct {
	ID         types.Element        `json:"id"`
	Levels     []ElementMultipliers `json:"levels"` // индекс = уровень - 1
	HomeBiomes []types.Biome        `json:"home_biomes"`
	HomeBonus  float64              `json:"home_bonus"`
}

// Multipliers returns the multipliers for level. Missing or zero entries
// fall back to 1.0.
func (d ElementDefinition) Multipliers(level int) ElementMultipliers {
	if level < 1 || level > len(d.Levels) {
		return identityMultipliers
	}
	m := d.Levels[level-1]
	if m.Damage <= 0 {
		m.Damage = 1
	}
	if m.Cooldown <= 0 {
		m.Cooldown = 1
	}
	if m.Control <= 0 {
		m.Control = 1
	}
	return m
}

// IsHome reports whether biome is one of the element's home environments.
func (d ElementDefinition) IsHome(biome types.Biome) bool {
	for _, b := range d.HomeBiomes {
		if b == biome {
			return true
		}
	}
	return false
}
