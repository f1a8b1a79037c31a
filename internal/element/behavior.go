// Package element implements the impact handling of the four elemental
// projectiles. Each behavior is created per shot and carries the combat
// snapshot of the moment it was fired.
package element

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// NewBehavior returns the impact handler for stats.Element. Unknown elements
// behave like fire.
func NewBehavior(stats component.CombatStats, shooter types.EntityID) interfaces.ProjectileBehavior {
	b := base{stats: stats, shooter: shooter}
	switch stats.Element {
	case types.ElementIce:
		return &Ice{base: b}
	case types.ElementWind:
		return &Wind{base: b}
	case types.ElementSand:
		return &Sand{base: b}
	default:
		return &Fire{base: b}
	}
}

// base — общие поля и действия для всех стихий
type base struct {
	stats   component.CombatStats
	shooter types.EntityID
}

// Stats returns the snapshot the projectile was fired with.
func (b *base) Stats() component.CombatStats { return b.stats }

// OnCollision: любое столкновение уничтожает снаряд.
func (b *base) OnCollision(w interfaces.World, projectile component.Entity) {
	w.RemoveEntity(projectile.ID, false)
}

func (b *base) source(kind types.DamageKind, direct types.EntityID) component.DamageSource {
	return component.DamageSource{Kind: kind, Attacker: b.shooter, Direct: direct}
}

// victims возвращает живых существ в сфере, кроме стрелка, игроков и компаньонов.
func (b *base) victims(w interfaces.World, center utils.Vec3, radius float64, exclude types.EntityID) []component.Entity {
	if radius <= 0 {
		return nil
	}
	return w.FindEntities(component.Sphere{Center: center, Radius: radius}, func(e component.Entity) bool {
		if !e.Alive || e.ID == b.shooter || e.ID == exclude {
			return false
		}
		return e.Kind == types.KindHostile || e.Kind == types.KindPassive
	})
}

// controlDuration — длительность эффекта, пропорциональная силе контроля
func controlDuration(perUnit, control float64) int {
	d := int(math.Round(perUnit * control))
	if d < 1 {
		d = 1
	}
	return d
}

// controlAmplifier = round(control) - 1, не меньше 0
func controlAmplifier(control float64) int {
	amp := int(math.Round(control)) - 1
	if amp < 0 {
		amp = 0
	}
	return amp
}
