// internal/system/projectile.go
package system

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// orderedTable — ограниченная таблица с порядком вставки.
// При переполнении вытесняется самая старая запись.
type orderedTable[V any] struct {
	limit int
	order []types.EntityID
	items map[types.EntityID]V
}

func newOrderedTable[V any](limit int) *orderedTable[V] {
	return &orderedTable[V]{limit: limit, items: make(map[types.EntityID]V)}
}

// put adds or replaces id. When a new id does not fit, the oldest entry is
// evicted and returned.
func (t *orderedTable[V]) put(id types.EntityID, v V) (evictedID types.EntityID, evicted V, ok bool) {
	if _, exists := t.items[id]; exists {
		t.items[id] = v
		return
	}
	if t.limit > 0 && len(t.order) >= t.limit {
		evictedID = t.order[0]
		evicted = t.items[evictedID]
		ok = true
		t.order = t.order[1:]
		delete(t.items, evictedID)
	}
	t.order = append(t.order, id)
	t.items[id] = v
	return
}

func (t *orderedTable[V]) get(id types.EntityID) (V, bool) {
	v, ok := t.items[id]
	return v, ok
}

// removeAll deletes ids in one pass over the order slice.
func (t *orderedTable[V]) removeAll(ids []types.EntityID) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[types.EntityID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := t.items[id]; ok {
			drop[id] = struct{}{}
			delete(t.items, id)
		}
	}
	kept := t.order[:0]
	for _, id := range t.order {
		if _, gone := drop[id]; !gone {
			kept = append(kept, id)
		}
	}
	t.order = kept
}

// snapshot returns the ids in insertion order. Safe to mutate the table
// while iterating the result.
func (t *orderedTable[V]) snapshot() []types.EntityID {
	out := make([]types.EntityID, len(t.order))
	copy(out, t.order)
	return out
}

func (t *orderedTable[V]) size() int { return len(t.order) }

func (t *orderedTable[V]) clear() {
	t.order = nil
	t.items = make(map[types.EntityID]V)
}

// impact — обнаруженное попадание снаряда
type impact struct {
	projectile types.EntityID
	position   utils.Vec3
}

// detectImpacts walks the tracked projectiles. A projectile hit something
// when it vanished or did not move for a tick. Projectiles that vanish after
// the flight timeout produce no impact. Finished entries are removed after
// the pass.
func (m *CloudManager) detectImpacts(w interfaces.World) []impact {
	now := w.CurrentTick()
	var impacts []impact
	var done []types.EntityID

	for _, id := range m.projectiles.snapshot() {
		p, _ := m.projectiles.get(id)
		e, alive := w.Entity(id)
		switch {
		case !alive:
			done = append(done, id)
			if now-p.SpawnTick > config.ProjectileTimeoutTicks {
				m.log().WithField("projectile", id).Debug("cloud manager: projectile timed out")
				continue
			}
			impacts = append(impacts, impact{projectile: id, position: p.LastPos})
		case p.Seen && e.Position.DistanceSq(p.LastPos) < config.ProjectileRestEpsilon*config.ProjectileRestEpsilon:
			done = append(done, id)
			impacts = append(impacts, impact{projectile: id, position: e.Position})
			w.RemoveEntity(id, false)
		default:
			p.LastPos = e.Position
			p.Seen = true
		}
	}

	m.projectiles.removeAll(done)
	return impacts
}

// TrackProjectile registers a fired projectile. A full table evicts the
// oldest projectile, which then never spawns a cloud.
func (m *CloudManager) TrackProjectile(w interfaces.World, id types.EntityID, origin utils.Vec3) {
	evicted, _, ok := m.projectiles.put(id, &component.TrackedProjectile{
		ID:        id,
		OwnerID:   m.ownerID,
		LastPos:   origin,
		SpawnTick: w.CurrentTick(),
	})
	if ok {
		m.log().WithField("projectile", evicted).Warn("cloud manager: projectile table full, oldest evicted")
		m.events.Dispatch(event.Event{Type: event.ProjectileEvicted, Data: event.ProjectileData{
			OwnerID: m.ownerID, ProjectileID: evicted,
		}})
	}
}
