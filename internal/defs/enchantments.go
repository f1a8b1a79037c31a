package defs

import "go-companion-combat/internal/types"

// EnchantmentDefinition holds catalog data for one enchantment type.
type EnchantmentDefinition struct {
	ID            types.EnchantmentType `json:"id"`
	Name          string                `json:"name"`
	RequiredLevel int                   `json:"required_level"`
	MaxLevel      int                   `json:"max_level"`
}
