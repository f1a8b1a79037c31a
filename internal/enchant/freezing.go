package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
)

// freezeTuning — длительность и сила замедления по уровню зачарования
var freezeTuning = []struct{ duration, amplifier int }{
	{60, 4},
	{100, 6},
	{160, 9},
}

// Freezing вешает на облако замедление и усталость; весь эффект
// доставляет сам хост, покадровой логики нет.
type Freezing struct{}

func (f *Freezing) Type() types.EnchantmentType { return types.EnchantFreezing }

func (f *Freezing) ApplyToCloud(cloud *component.AreaCloud, level int) {
	t := freezeTuning[levelIndex(level, len(freezeTuning))]
	cloud.Particle = "snowflake"
	cloud.AffectsHostiles = true
	cloud.Effects = []component.TimedEffect{
		{Tag: types.EffectSlowness, Duration: t.duration, Amplifier: t.amplifier},
		{Tag: types.EffectMiningFatigue, Duration: t.duration, Amplifier: t.amplifier},
	}
}

func (f *Freezing) Process(interfaces.World, *component.AreaCloud, int) {}
