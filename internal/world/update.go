package world

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/types"
	iutils "go-companion-combat/internal/utils"
	"go-companion-combat/pkg/utils"

	"github.com/yohamta/donburi"
)

const (
	projectileHitRadius = 0.75
	velocityDrag        = 0.8
	restingSpeedSq      = 1e-6
	burnDamage          = 1.0
	burnIntervalTicks   = config.TicksPerSecond
)

// Update advances the world by one tick: projectiles, clouds, then living
// entities and their effects.
func (w *World) Update() {
	w.tick++
	w.updateProjectiles()
	w.updateClouds()
	w.updateBodies()
}

func (w *World) updateProjectiles() {
	var ids []types.EntityID
	w.projQ.Each(w.ecs, func(entry *donburi.Entry) {
		ids = append(ids, EntityComponent.Get(entry).ID)
	})

	for _, id := range ids {
		entry, ok := w.entry(id)
		if !ok {
			continue
		}
		proj := EntityComponent.Get(entry)
		data := ProjectileComponent.Get(entry)
		data.Age++
		if data.Age > config.ProjectileTimeoutTicks {
			w.RemoveEntity(id, false)
			continue
		}

		from := proj.Position
		to := from.Add(proj.Velocity)
		snapshot := *proj
		behavior := data.Behavior

		if target, hit := w.firstHit(snapshot, from, to); hit {
			snapshot.Position = target.BodyCenter()
			if behavior != nil {
				behavior.OnEntityHit(w, snapshot, target)
				behavior.OnCollision(w, snapshot)
			}
			w.RemoveEntity(id, false)
			continue
		}

		if to.Y <= 0 {
			// Попадание в землю: точка пересечения с плоскостью y = 0.
			t := 1.0
			if dy := from.Y - to.Y; dy > 0 {
				t = from.Y / dy
			}
			hitPoint := utils.Vec3{X: iutils.Lerp(from.X, to.X, t), Y: 0, Z: iutils.Lerp(from.Z, to.Z, t)}
			snapshot.Position = hitPoint
			if behavior != nil {
				behavior.OnBlockHit(w, snapshot, hitPoint)
				behavior.OnCollision(w, snapshot)
			}
			w.RemoveEntity(id, false)
			continue
		}

		proj.Position = to
	}
}

// firstHit returns the closest mob whose body centre passes within
// projectileHitRadius of the segment from→to.
func (w *World) firstHit(proj component.Entity, from, to utils.Vec3) (component.Entity, bool) {
	seg := to.Sub(from)
	segLenSq := seg.LengthSq()
	reach := seg.Length() + projectileHitRadius + 2

	candidates := w.FindEntities(component.Sphere{Center: from, Radius: reach}, func(e component.Entity) bool {
		if !e.Alive || e.ID == proj.OwnerID {
			return false
		}
		return e.Kind == types.KindHostile || e.Kind == types.KindPassive
	})

	best := -1.0
	var hit component.Entity
	for _, e := range candidates {
		c := e.BodyCenter()
		t := 0.0
		if segLenSq > 0 {
			t = utils.Clamp(c.Sub(from).Dot(seg)/segLenSq, 0, 1)
		}
		closest := from.Add(seg.Scale(t))
		if closest.DistanceSq(c) > projectileHitRadius*projectileHitRadius {
			continue
		}
		if best < 0 || t < best {
			best = t
			hit = e
		}
	}
	return hit, best >= 0
}

func (w *World) updateClouds() {
	var clouds []*component.AreaCloud
	w.cloudQ.Each(w.ecs, func(entry *donburi.Entry) {
		clouds = append(clouds, CloudComponent.Get(entry).Cloud)
	})

	for _, cloud := range clouds {
		interval := cloud.ApplyInterval
		if interval <= 0 {
			interval = defaultApplyInterval
		}
		if len(cloud.Effects) > 0 && cloud.Age%interval == 0 {
			w.applyCloudEffects(cloud)
		}

		cloud.Age++
		cloud.Radius += cloud.RadiusPerTick
		if cloud.Expired() {
			w.RemoveEntity(cloud.ID, false)
		}
	}
}

func (w *World) applyCloudEffects(cloud *component.AreaCloud) {
	affected := w.FindEntities(cloud.Sphere(), func(e component.Entity) bool {
		if !e.Alive || e.ID == cloud.OwnerID {
			return false
		}
		if cloud.AffectsHostiles {
			return e.Kind == types.KindHostile
		}
		return e.Kind == types.KindPlayer || e.Kind == types.KindCompanion
	})
	for _, e := range affected {
		for _, eff := range cloud.Effects {
			w.ApplyTimedEffect(e.ID, eff.Tag, eff.Duration, eff.Amplifier)
		}
	}
}

func (w *World) updateBodies() {
	var ids []types.EntityID
	w.entityQ.Each(w.ecs, func(entry *donburi.Entry) {
		e := EntityComponent.Get(entry)
		if e.Kind == types.KindProjectile || e.Kind == types.KindCloud {
			return
		}
		ids = append(ids, e.ID)
	})

	for _, id := range ids {
		entry, ok := w.entry(id)
		if !ok {
			continue
		}
		e := EntityComponent.Get(entry)
		e.Position = e.Position.Add(e.Velocity)
		if e.Position.Y < 0 {
			e.Position.Y = 0
		}
		e.Velocity = e.Velocity.Scale(velocityDrag)
		if e.Velocity.LengthSq() < restingSpeedSq {
			e.Velocity = utils.Vec3{}
		}

		w.tickEffects(id)
	}
}
