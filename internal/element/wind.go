package element

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

const (
	windHitForcePerControl   = 1.5
	windBlastBaseRadius      = 3.0
	windBlastBaseForce       = 1.0
	windBlastForcePerControl = 0.6
)

// Wind — порыв ветра: урон и отбрасывание от стрелка, при попадании
// в блок — радиальная волна.
type Wind struct {
	base
}

func (wd *Wind) OnEntityHit(w interfaces.World, projectile, target component.Entity) {
	w.ApplyDamage(target.ID, wd.stats.Damage, wd.source(types.DamageGust, projectile.ID))

	// Направление: горизонтальный вектор от стрелка к цели. Если стрелка
	// уже нет, берём направление полёта снаряда.
	fallback := projectile.Velocity.Horizontal().Normalize(utils.DefaultHeading)
	dir := fallback
	if shooter, ok := w.Entity(wd.shooter); ok {
		dir = target.Position.Sub(shooter.Position).Horizontal().Normalize(fallback)
	}
	w.ApplyImpulse(target.ID, dir.Scale(wd.HitForce()))
}

func (wd *Wind) OnBlockHit(w interfaces.World, projectile component.Entity, hitPoint utils.Vec3) {
	force := wd.BlastForce()
	for _, e := range wd.victims(w, hitPoint, wd.BlastRadius(), types.NoEntity) {
		dir := e.Position.Sub(hitPoint).Horizontal().Normalize(utils.DefaultHeading)
		w.ApplyImpulse(e.ID, dir.Scale(force))
	}
}

// HitForce = 1.5·control
func (wd *Wind) HitForce() float64 {
	return windHitForcePerControl * wd.stats.ControlStrength
}

// BlastRadius = 3 + control
func (wd *Wind) BlastRadius() float64 {
	return windBlastBaseRadius + wd.stats.ControlStrength
}

// BlastForce = 1 + 0.6·control
func (wd *Wind) BlastForce() float64 {
	return windBlastBaseForce + windBlastForcePerControl*wd.stats.ControlStrength
}
