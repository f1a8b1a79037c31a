package element

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

const (
	sandCloudBaseRadius     = 3.0
	sandCloudRadiusPerCtrl  = 0.5
	sandCloudTicksPerCtrl   = 80.0
	sandInitialDamageFactor = 0.3
	sandEffectTicks         = 60
	sandApplyInterval       = 5
)

// Sand — песчаный снаряд: урон и оседающее облако, которое ослепляет
// и замедляет всех внутри.
type Sand struct {
	base
}

func (s *Sand) OnEntityHit(w interfaces.World, projectile, target component.Entity) {
	w.ApplyDamage(target.ID, s.stats.Damage, s.source(types.DamageSand, projectile.ID))
	s.storm(w, projectile.ID, target.Position, target.ID)
}

func (s *Sand) OnBlockHit(w interfaces.World, projectile component.Entity, hitPoint utils.Vec3) {
	s.storm(w, projectile.ID, hitPoint, types.NoEntity)
}

// CloudRadius = 3 + 0.5·control
func (s *Sand) CloudRadius() float64 {
	return sandCloudBaseRadius + sandCloudRadiusPerCtrl*s.stats.ControlStrength
}

// CloudDuration = 80·control тиков
func (s *Sand) CloudDuration() int {
	return int(sandCloudTicksPerCtrl * s.stats.ControlStrength)
}

func (s *Sand) storm(w interfaces.World, projectileID types.EntityID, center utils.Vec3, exclude types.EntityID) {
	radius := s.CloudRadius()

	if duration := s.CloudDuration(); duration > 0 {
		_, cloud := w.SpawnAreaCloud(center)
		if cloud != nil {
			cloud.OwnerID = s.shooter
			cloud.Radius = radius
			cloud.ShrinkOver(duration)
			cloud.Particle = "falling_dust"
			cloud.AffectsHostiles = true
			cloud.ApplyInterval = sandApplyInterval
			amp := controlAmplifier(s.stats.ControlStrength)
			cloud.Effects = []component.TimedEffect{
				{Tag: types.EffectBlindness, Duration: sandEffectTicks, Amplifier: 0},
				{Tag: types.EffectSlowness, Duration: sandEffectTicks, Amplifier: amp},
			}
		}
	}

	damage := s.stats.Damage * sandInitialDamageFactor
	for _, e := range s.victims(w, center, radius, exclude) {
		w.ApplyDamage(e.ID, damage, s.source(types.DamageSand, projectileID))
	}
}
