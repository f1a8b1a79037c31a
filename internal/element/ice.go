package element

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

const (
	iceSlowTicksPerControl  = 60.0
	icePulseBaseRadius      = 2.5
	icePulseRadiusPerCtrl   = 0.5
	icePulseDamageFactor    = 0.4
	icePulseSlowTicksPerCtl = 40.0
)

// Ice — ледяной снаряд: урон, замедление и усталость цели плюс
// слабая ледяная волна вокруг.
type Ice struct {
	base
}

func (i *Ice) OnEntityHit(w interfaces.World, projectile, target component.Entity) {
	c := i.stats.ControlStrength
	w.ApplyDamage(target.ID, i.stats.Damage, i.source(types.DamageFrost, projectile.ID))

	duration := controlDuration(iceSlowTicksPerControl, c)
	amplifier := controlAmplifier(c)
	w.ApplyTimedEffect(target.ID, types.EffectSlowness, duration, amplifier)
	w.ApplyTimedEffect(target.ID, types.EffectMiningFatigue, duration, amplifier)

	i.pulse(w, projectile.ID, target.BodyCenter(), target.ID)
}

func (i *Ice) OnBlockHit(w interfaces.World, projectile component.Entity, hitPoint utils.Vec3) {
	i.pulse(w, projectile.ID, hitPoint, types.NoEntity)
}

// PulseRadius = 2.5 + 0.5·control
func (i *Ice) PulseRadius() float64 {
	return icePulseBaseRadius + icePulseRadiusPerCtrl*i.stats.ControlStrength
}

func (i *Ice) pulse(w interfaces.World, projectileID types.EntityID, center utils.Vec3, exclude types.EntityID) {
	damage := i.stats.Damage * icePulseDamageFactor
	duration := controlDuration(icePulseSlowTicksPerCtl, i.stats.ControlStrength)
	for _, e := range i.victims(w, center, i.PulseRadius(), exclude) {
		w.ApplyDamage(e.ID, damage, i.source(types.DamageFrost, projectileID))
		w.ApplyTimedEffect(e.ID, types.EffectSlowness, duration, 0)
	}
}
