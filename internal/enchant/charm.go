package enchant

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
)

const (
	charmPulseTicks   = 10
	charmMaxProcessed = 10
)

var charmDamage = []float64{2.0, 4.0, 6.0}

// Charm стравливает враждебных мобов внутри облака друг с другом.
type Charm struct {
	rng   *utils.PRNGService
	pulse pulse
}

// NewCharm is the registry factory for Charm.
func NewCharm(d Deps) Processor {
	rng := d.RNG
	if rng == nil {
		rng = utils.NewPRNGService(0)
	}
	return &Charm{rng: rng, pulse: pulse{every: charmPulseTicks}}
}

func (c *Charm) Type() types.EnchantmentType { return types.EnchantCharm }

func (c *Charm) ApplyToCloud(cloud *component.AreaCloud, level int) {
	cloud.Particle = "heart"
}

func (c *Charm) Process(w interfaces.World, cloud *component.AreaCloud, level int) {
	if !c.pulse.ready() {
		return
	}
	hostiles := w.FindEntities(cloud.Sphere(), isHostile)
	n := len(hostiles)
	if n < 2 {
		return
	}

	amount := charmDamage[levelIndex(level, len(charmDamage))]
	for i := 0; i < n && i < charmMaxProcessed; i++ {
		attacker := hostiles[i]
		// Случайная другая цель: индекс из n-1 вариантов со сдвигом за attacker.
		j := c.rng.Intn(n - 1)
		if j >= i {
			j++
		}
		victim := hostiles[j]
		w.SetAttackTarget(attacker.ID, victim.ID)
		w.ApplyDamage(victim.ID, amount, component.DamageSource{
			Kind:     types.DamageMobAttack,
			Attacker: attacker.ID,
			Direct:   cloud.ID,
		})
	}
}
