package enchant

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

const (
	gravityPulseTicks   = 2
	gravityMaxHostiles  = 30
	gravityMaxItems     = 50
	gravityMaxSpeed     = 0.8
	gravityEventHorizon = 0.5
	gravityItemFactor   = 0.5
)

var (
	gravityRadius   = []float64{5, 8, 12}
	gravityStrength = []float64{0.6, 0.9, 1.2}
)

// Gravity притягивает мобов и предметы к центру облака.
type Gravity struct {
	pulse pulse
}

func (g *Gravity) Type() types.EnchantmentType { return types.EnchantGravity }

func (g *Gravity) ApplyToCloud(cloud *component.AreaCloud, level int) {
	cloud.Particle = "portal"
}

func (g *Gravity) Process(w interfaces.World, cloud *component.AreaCloud, level int) {
	if g.pulse.every == 0 {
		g.pulse.every = gravityPulseTicks
	}
	if !g.pulse.ready() {
		return
	}

	idx := levelIndex(level, len(gravityRadius))
	radius := gravityRadius[idx]
	strength := gravityStrength[idx]
	area := component.Sphere{Center: cloud.Position, Radius: radius}

	hostiles := w.FindEntities(area, isHostile)
	for i, e := range hostiles {
		if i >= gravityMaxHostiles {
			break
		}
		pull(w, e, cloud.Position, radius, strength)
	}

	items := w.FindEntities(area, func(e component.Entity) bool { return e.Kind == types.KindItem })
	for i, e := range items {
		if i >= gravityMaxItems {
			break
		}
		pull(w, e, cloud.Position, radius, strength*gravityItemFactor)
	}
}

// pull adds the gravity impulse while keeping the entity speed under the cap.
func pull(w interfaces.World, e component.Entity, center utils.Vec3, radius, strength float64) {
	delta := GravityPull(center.Sub(e.Position), radius, strength)
	if delta == (utils.Vec3{}) {
		return
	}
	next := e.Velocity.Add(delta).ClampLength(gravityMaxSpeed)
	w.ApplyImpulse(e.ID, next.Sub(e.Velocity))
}

// GravityPull returns the velocity change for an entity at offset from the
// centre (offset = centre - position): strength·(1 - d/R)² towards the
// centre, capped at the max speed. Zero at or beyond R and inside the event
// horizon.
func GravityPull(offset utils.Vec3, radius, strength float64) utils.Vec3 {
	dist := offset.Length()
	if !utils.Finite(dist) || dist < gravityEventHorizon || dist >= radius || radius <= 0 {
		return utils.Vec3{}
	}
	falloff := 1 - dist/radius
	mag := math.Min(strength*falloff*falloff, gravityMaxSpeed)
	return offset.Scale(mag / dist)
}
