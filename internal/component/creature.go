// internal/component/creature.go
package component

import (
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"

	"github.com/oklog/ulid/v2"
)

// EnchantmentSlotCount — число ячеек зачарований у существа
const EnchantmentSlotCount = 3

// CreatureState хранит прогресс существа: уровень, опыт, сытость и зачарования.
// Это единственное состояние, которое читает и пишет слой сохранения.
type CreatureState struct {
	ID           ulid.ULID
	Level        int // 1..MaxLevel
	Experience   int // остаток опыта после последнего повышения
	Element      types.Element
	Satiation    float64 // [0, MaxSatiation(Level)]
	Enchantments [EnchantmentSlotCount]EnchantmentSlot
}

// NewCreatureState создаёт состояние нового существа первого уровня.
func NewCreatureState(element types.Element, satiation float64) *CreatureState {
	if !element.Valid() {
		element = types.ElementFire
	}
	return &CreatureState{
		ID:        ulid.Make(),
		Level:     config.MinLevel,
		Element:   element,
		Satiation: satiation,
	}
}

// Normalize clamps every field into its documented bounds. maxSatiation is
// the cap for the (already clamped) level.
func (s *CreatureState) Normalize(maxSatiation float64, maxLevelOf func(types.EnchantmentType) int) {
	s.Level = utils.ClampInt(s.Level, config.MinLevel, config.MaxLevel)
	if s.Experience < 0 {
		s.Experience = 0
	}
	if !s.Element.Valid() {
		s.Element = types.ElementFire
	}
	s.Satiation = utils.Clamp(s.Satiation, 0, maxSatiation)
	for i := range s.Enchantments {
		s.Enchantments[i] = s.Enchantments[i].Clamped(maxLevelOf)
	}
}

// EnchantmentLevel возвращает наибольший уровень зачарования t среди ячеек (0 если нет).
func (s *CreatureState) EnchantmentLevel(t types.EnchantmentType) int {
	if t == types.EnchantNone {
		return 0
	}
	best := 0
	for _, slot := range s.Enchantments {
		if slot.Type == t && slot.Level > best {
			best = slot.Level
		}
	}
	return best
}
