package component

import "go-companion-combat/internal/types"

// EnchantmentSlot — одна ячейка зачарования. Пустая ячейка: {EnchantNone, 0}.
type EnchantmentSlot struct {
	Type  types.EnchantmentType
	Level int
}

// Empty reports whether the slot carries no enchantment.
func (s EnchantmentSlot) Empty() bool {
	return s.Type == types.EnchantNone
}

// Clamped returns the slot with its level forced into [1, maxLevelOf(type)].
// Unknown types and empty slots collapse to the empty sentinel.
func (s EnchantmentSlot) Clamped(maxLevelOf func(types.EnchantmentType) int) EnchantmentSlot {
	t := types.ParseEnchantment(string(s.Type))
	if t == types.EnchantNone {
		return EnchantmentSlot{}
	}
	max := 1
	if maxLevelOf != nil {
		if m := maxLevelOf(t); m > 0 {
			max = m
		}
	}
	lvl := s.Level
	if lvl < 1 {
		lvl = 1
	}
	if lvl > max {
		lvl = max
	}
	return EnchantmentSlot{Type: t, Level: lvl}
}
