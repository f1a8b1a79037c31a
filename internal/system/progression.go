// internal/system/progression.go
package system

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// MaxSatiation возвращает предел сытости для уровня.
func MaxSatiation(lib *defs.Library, level int) float64 {
	return lib.Level(level).MaxSatiation
}

// ExperienceToNext возвращает порог опыта для перехода с уровня level.
// На максимальном уровне порог равен 0.
func ExperienceToNext(lib *defs.Library, level int) int {
	if level >= config.MaxLevel {
		return 0
	}
	return lib.Level(level).ExperienceToNext
}

// levelDecayMultiplier уменьшается примерно на 10% за уровень.
func levelDecayMultiplier(level int) float64 {
	level = utils.ClampInt(level, config.MinLevel, config.MaxLevel)
	return math.Pow(config.SatiationLevelFalloff, float64(level-1))
}

// DecayRate — потеря сытости в секунду.
func DecayRate(lib *defs.Library, level int) float64 {
	return MaxSatiation(lib, level) / config.SatiationDecaySeconds * levelDecayMultiplier(level)
}

// AddExperience начисляет опыт и повышает уровень, пока опыта хватает.
// Возвращает true, если уровень вырос хотя бы раз.
func AddExperience(state *component.CreatureState, lib *defs.Library, amount int) bool {
	if state.Level >= config.MaxLevel || amount <= 0 {
		return false
	}

	state.Experience += amount
	leveledUp := false
	for state.Level < config.MaxLevel {
		threshold := ExperienceToNext(lib, state.Level)
		if threshold <= 0 || state.Experience < threshold {
			break
		}
		state.Experience -= threshold
		state.Level++
		// Повышение уровня всегда полностью восстанавливает сытость.
		state.Satiation = MaxSatiation(lib, state.Level)
		leveledUp = true
	}

	if state.Level >= config.MaxLevel {
		state.Level = config.MaxLevel
		state.Experience = 0
	}
	return leveledUp
}

// UpdateSatiation уменьшает сытость за прошедшее реальное время (в секундах).
func UpdateSatiation(state *component.CreatureState, lib *defs.Library, elapsedSeconds float64) {
	if elapsedSeconds <= 0 || !utils.Finite(elapsedSeconds) {
		return
	}
	state.Satiation -= DecayRate(lib, state.Level) * elapsedSeconds
	if state.Satiation < 0 {
		state.Satiation = 0
	}
}

// Feed восстанавливает сытость, не превышая предел уровня.
func Feed(state *component.CreatureState, lib *defs.Library, amount float64) {
	if amount <= 0 || !utils.Finite(amount) {
		return
	}
	state.Satiation = math.Min(state.Satiation+amount, MaxSatiation(lib, state.Level))
}

// NormalizeState приводит загруженное состояние к допустимым границам.
func NormalizeState(state *component.CreatureState, lib *defs.Library) {
	state.Level = utils.ClampInt(state.Level, config.MinLevel, config.MaxLevel)
	state.Normalize(MaxSatiation(lib, state.Level), func(t types.EnchantmentType) int {
		def, ok := lib.Enchantment(t)
		if !ok {
			return 1
		}
		return def.MaxLevel
	})
	if state.Level == config.MaxLevel {
		state.Experience = 0
	} else if next := ExperienceToNext(lib, state.Level); next > 0 && state.Experience >= next {
		state.Experience = next - 1
	}
}

// ActiveEnchantmentLevel возвращает уровень зачарования t с учётом требуемого
// уровня существа. Недоступное по уровню зачарование считается отсутствующим.
func ActiveEnchantmentLevel(state *component.CreatureState, lib *defs.Library, t types.EnchantmentType) int {
	if t == types.EnchantPiercingTracker {
		return 0
	}
	lvl := state.EnchantmentLevel(t)
	if lvl == 0 {
		return 0
	}
	def, ok := lib.Enchantment(t)
	if !ok {
		return 0
	}
	if state.Level < def.RequiredLevel {
		return 0
	}
	return utils.ClampInt(lvl, 1, def.MaxLevel)
}
