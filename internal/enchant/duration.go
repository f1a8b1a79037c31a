package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
)

var durationMultipliers = []float64{1.5, 2.0, 3.0}

// Duration удлиняет облако при создании; покадровой логики нет.
type Duration struct{}

func (d *Duration) Type() types.EnchantmentType { return types.EnchantDuration }

func (d *Duration) ApplyToCloud(*component.AreaCloud, int) {}

func (d *Duration) Process(interfaces.World, *component.AreaCloud, int) {}

// DurationMultiplier returns the cloud duration factor for level (1.0 when absent).
func DurationMultiplier(level int) float64 {
	if level <= 0 {
		return 1.0
	}
	return durationMultipliers[levelIndex(level, len(durationMultipliers))]
}
