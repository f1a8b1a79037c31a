// Package world is a small reference host for the companion combat core.
// It keeps entities in a donburi ECS world, flies projectiles, ages clouds
// and applies timed effects. The sandbox and the end-to-end tests run on it.
package world

import (
	"cmp"
	"math"
	"slices"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/logger"
	"go-companion-combat/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

const (
	DefaultRegion = "overworld"

	defaultCloudDuration = 600
	defaultCloudRadius   = 3.0
	defaultApplyInterval = 5
	maxExplosionLog      = 256
)

var _ interfaces.World = (*World)(nil)

// Explosion — запись о взрыве (для отрисовки и тестов)
type Explosion struct {
	Tick     int64
	Position utils.Vec3
	Power    int
	Source   component.DamageSource
}

// World implements interfaces.World on top of donburi.
type World struct {
	ecs        donburi.World
	entities   map[types.EntityID]donburi.Entity
	nextID     types.EntityID
	tick       int64
	biome      func(utils.Vec3) types.Biome
	events     *event.Dispatcher
	targets    map[types.EntityID]types.EntityID
	damage     map[types.EntityID]float64
	explosions []Explosion
	entityQ    *query.Query
	projQ      *query.Query
	cloudQ     *query.Query
}

// New creates an empty world. events may be nil.
func New(events *event.Dispatcher) *World {
	return &World{
		ecs:      donburi.NewWorld(),
		entities: make(map[types.EntityID]donburi.Entity),
		nextID:   1,
		events:   events,
		targets:  make(map[types.EntityID]types.EntityID),
		damage:   make(map[types.EntityID]float64),
		entityQ:  query.NewQuery(filter.Contains(EntityComponent)),
		projQ:    query.NewQuery(filter.Contains(EntityComponent, ProjectileComponent)),
		cloudQ:   query.NewQuery(filter.Contains(EntityComponent, CloudComponent)),
	}
}

// SetBiome installs the biome lookup. nil resets to plains everywhere.
func (w *World) SetBiome(fn func(utils.Vec3) types.Biome) {
	w.biome = fn
}

func (w *World) CurrentTick() int64 { return w.tick }

func (w *World) BiomeAt(pos utils.Vec3) types.Biome {
	if w.biome == nil {
		return types.BiomePlains
	}
	return w.biome(pos)
}

func (w *World) newID() types.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) entry(id types.EntityID) (*donburi.Entry, bool) {
	e, ok := w.entities[id]
	if !ok || !w.ecs.Valid(e) {
		return nil, false
	}
	return w.ecs.Entry(e), true
}

// AddEntity registers an entity and returns its id. Zero height/health/region
// get defaults for the kind; living entities start alive.
func (w *World) AddEntity(e component.Entity) types.EntityID {
	e.ID = w.newID()
	if e.Region == "" {
		e.Region = DefaultRegion
	}
	if e.Height <= 0 {
		e.Height = defaultHeight(e.Kind)
	}
	if e.MaxHealth <= 0 {
		e.MaxHealth = defaultHealth(e.Kind)
	}
	if e.Health <= 0 {
		e.Health = e.MaxHealth
	}
	e.Alive = true

	handle := w.ecs.Create(EntityComponent, EffectsComponent)
	entry := w.ecs.Entry(handle)
	EntityComponent.SetValue(entry, e)
	EffectsComponent.SetValue(entry, StatusEffects{Active: make(map[types.EffectTag]component.ActiveEffect)})
	w.entities[e.ID] = handle
	return e.ID
}

func (w *World) Entity(id types.EntityID) (component.Entity, bool) {
	entry, ok := w.entry(id)
	if !ok {
		return component.Entity{}, false
	}
	return *EntityComponent.Get(entry), true
}

// MoveEntity teleports an entity (sandbox and tests).
func (w *World) MoveEntity(id types.EntityID, pos utils.Vec3) {
	if entry, ok := w.entry(id); ok {
		EntityComponent.Get(entry).Position = pos
	}
}

// TurnEntity sets the entity's yaw in degrees.
func (w *World) TurnEntity(id types.EntityID, yaw float64) {
	if entry, ok := w.entry(id); ok {
		EntityComponent.Get(entry).Yaw = yaw
	}
}

// Entities returns every entity ordered by id.
func (w *World) Entities() []component.Entity {
	return w.FindEntities(component.Sphere{Radius: math.Inf(1)}, nil)
}

// FindEntities returns entities whose position lies inside area and that
// satisfy pred, ordered by id.
func (w *World) FindEntities(area component.Sphere, pred func(component.Entity) bool) []component.Entity {
	var out []component.Entity
	w.entityQ.Each(w.ecs, func(entry *donburi.Entry) {
		e := EntityComponent.Get(entry)
		if !math.IsInf(area.Radius, 1) && !area.Contains(e.Position) {
			return
		}
		if pred != nil && !pred(*e) {
			return
		}
		out = append(out, *e)
	})
	slices.SortFunc(out, func(a, b component.Entity) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (w *World) SpawnProjectile(spec interfaces.ProjectileSpec) types.EntityID {
	dir := spec.Direction.Normalize(utils.DefaultHeading)
	id := w.AddEntity(component.Entity{
		Kind:     types.KindProjectile,
		Species:  string(spec.Element),
		Position: spec.Origin,
		Velocity: dir.Scale(spec.Power),
		OwnerID:  spec.OwnerID,
	})
	entry, _ := w.entry(id)
	entry.AddComponent(ProjectileComponent)
	ProjectileComponent.SetValue(entry, ProjectileData{Behavior: spec.Behavior})
	return id
}

func (w *World) SpawnAreaCloud(pos utils.Vec3) (types.EntityID, *component.AreaCloud) {
	id := w.AddEntity(component.Entity{Kind: types.KindCloud, Position: pos})
	cloud := &component.AreaCloud{
		ID:            id,
		Position:      pos,
		Radius:        defaultCloudRadius,
		Duration:      defaultCloudDuration,
		ApplyInterval: defaultApplyInterval,
	}
	entry, _ := w.entry(id)
	entry.AddComponent(CloudComponent)
	CloudComponent.SetValue(entry, CloudData{Cloud: cloud})
	return id, cloud
}

func (w *World) Cloud(id types.EntityID) (*component.AreaCloud, bool) {
	entry, ok := w.entry(id)
	if !ok || !entry.HasComponent(CloudComponent) {
		return nil, false
	}
	return CloudComponent.Get(entry).Cloud, true
}

// Clouds returns every live cloud ordered by id.
func (w *World) Clouds() []*component.AreaCloud {
	var out []*component.AreaCloud
	w.cloudQ.Each(w.ecs, func(entry *donburi.Entry) {
		out = append(out, CloudComponent.Get(entry).Cloud)
	})
	slices.SortFunc(out, func(a, b *component.AreaCloud) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (w *World) SpawnCreature(spec interfaces.CreatureSpec) types.EntityID {
	return w.AddEntity(component.Entity{
		Kind:       spec.Kind,
		Species:    spec.Species,
		Region:     spec.Region,
		Position:   spec.Position,
		Yaw:        spec.Yaw,
		Pitch:      spec.Pitch,
		CustomName: spec.CustomName,
	})
}

// RemoveEntity deletes an entity. Living mobs removed with dropLoot leave an
// item behind.
func (w *World) RemoveEntity(id types.EntityID, dropLoot bool) {
	entry, ok := w.entry(id)
	if !ok {
		return
	}
	e := *EntityComponent.Get(entry)
	w.ecs.Remove(entry.Entity())
	delete(w.entities, id)
	delete(w.targets, id)

	if dropLoot && (e.Kind == types.KindHostile || e.Kind == types.KindPassive) {
		w.AddEntity(component.Entity{Kind: types.KindItem, Species: e.Species + "_drop", Region: e.Region, Position: e.Position})
	}
}

func (w *World) ApplyDamage(target types.EntityID, amount float64, source component.DamageSource) {
	if amount <= 0 || !utils.Finite(amount) {
		return
	}
	entry, ok := w.entry(target)
	if !ok {
		return
	}
	e := EntityComponent.Get(entry)
	if !e.Alive || !e.Kind.IsLiving() {
		return
	}
	e.Health -= amount
	w.damage[target] += amount
	if e.Health > 0 {
		return
	}

	e.Health = 0
	e.Alive = false
	victim := *e
	logger.Log.WithFields(logrus.Fields{
		"victim": victim.ID,
		"kind":   victim.Kind.String(),
		"killer": source.Attacker,
		"source": source.Kind,
	}).Debug("world: entity killed")
	w.events.Dispatch(event.Event{Type: event.EntityKilled, Data: event.KillData{
		VictimID:   victim.ID,
		VictimKind: victim.Kind,
		KillerID:   source.Attacker,
	}})
	if victim.Kind != types.KindPlayer {
		w.RemoveEntity(victim.ID, true)
	}
}

// DamageTaken returns the total damage dealt to id so far.
func (w *World) DamageTaken(id types.EntityID) float64 {
	return w.damage[id]
}

func (w *World) ApplyImpulse(target types.EntityID, impulse utils.Vec3) {
	if !impulse.IsFinite() {
		return
	}
	if entry, ok := w.entry(target); ok {
		e := EntityComponent.Get(entry)
		e.Velocity = e.Velocity.Add(impulse)
	}
}

// Explode damages living non-allied entities around pos. Radius is 2·power,
// damage falls off linearly from 2·power at the centre.
func (w *World) Explode(pos utils.Vec3, power int, source component.DamageSource) {
	if power < 1 {
		power = 1
	}
	w.explosions = append(w.explosions, Explosion{Tick: w.tick, Position: pos, Power: power, Source: source})
	if len(w.explosions) > maxExplosionLog {
		w.explosions = slices.Delete(w.explosions, 0, len(w.explosions)-maxExplosionLog)
	}

	radius := 2 * float64(power)
	hits := w.FindEntities(component.Sphere{Center: pos, Radius: radius}, func(e component.Entity) bool {
		if !e.Alive || e.ID == source.Attacker || e.ID == source.Direct {
			return false
		}
		return e.Kind == types.KindHostile || e.Kind == types.KindPassive
	})
	for _, e := range hits {
		falloff := 1 - e.Position.Distance(pos)/radius
		w.ApplyDamage(e.ID, 2*float64(power)*falloff, source)
	}
}

// Explosions returns the explosion log, oldest first. Only the latest
// entries are kept.
func (w *World) Explosions() []Explosion {
	return w.explosions
}

func (w *World) SetAttackTarget(attacker, target types.EntityID) {
	if _, ok := w.entry(attacker); !ok {
		return
	}
	w.targets[attacker] = target
}

// AttackTarget returns the target assigned to attacker, if any.
func (w *World) AttackTarget(attacker types.EntityID) (types.EntityID, bool) {
	t, ok := w.targets[attacker]
	return t, ok
}
