package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
)

// Multishot действует только при выстреле (см. MultishotCount); на облако не влияет.
type Multishot struct{}

func (m *Multishot) Type() types.EnchantmentType { return types.EnchantMultishot }

func (m *Multishot) ApplyToCloud(*component.AreaCloud, int) {}

func (m *Multishot) Process(interfaces.World, *component.AreaCloud, int) {}

// MultishotCount returns the number of projectiles fired at level (1 when absent).
func MultishotCount(level int) int {
	if level <= 0 {
		return 1
	}
	if level > 3 {
		level = 3
	}
	return 1 + 2*level
}
