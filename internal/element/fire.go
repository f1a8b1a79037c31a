package element

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// Fire — огненный шар: стандартный урон и взрыв, разница урона сверх
// базовых 6.0 наносится отдельным прямым уроном.
type Fire struct {
	base
}

func (f *Fire) OnEntityHit(w interfaces.World, projectile, target component.Entity) {
	w.ApplyDamage(target.ID, config.VanillaFireballDamage, f.source(types.DamageFireball, projectile.ID))
	if bonus := f.BonusDamage(); bonus > 0 {
		w.ApplyDamage(target.ID, bonus, f.source(types.DamageMagic, projectile.ID))
	}
	w.ApplyTimedEffect(target.ID, types.EffectBurning, config.FireballBurnTicks, 0)
	w.Explode(projectile.Position, f.stats.ExplosionPower, f.source(types.DamageFireball, projectile.ID))
}

func (f *Fire) OnBlockHit(w interfaces.World, projectile component.Entity, hitPoint utils.Vec3) {
	w.Explode(hitPoint, f.stats.ExplosionPower, f.source(types.DamageFireball, projectile.ID))
}

// BonusDamage — урон сверх базового огненного шара.
func (f *Fire) BonusDamage() float64 {
	return f.stats.Damage - config.VanillaFireballDamage
}
