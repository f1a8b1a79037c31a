// internal/system/cloud_manager.go
package system

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/enchant"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Причины удаления облака (поле Reason события CloudRemoved)
const (
	ReasonExpired = "expired"
	ReasonRemoved = "removed"
	ReasonAged    = "max_age"
	ReasonEvicted = "evicted"
)

// TrackedCloud — облако под управлением менеджера и его процессор.
type TrackedCloud struct {
	ID          types.EntityID
	Processor   enchant.Processor
	Level       int
	CreatedTick int64
}

type cloudRemoval struct {
	id           types.EntityID
	reason       string
	removeEntity bool
}

// CloudManager следит за снарядами одного существа, порождает облака после
// попаданий и каждый тик прогоняет их через процессоры зачарований.
type CloudManager struct {
	ownerID     types.EntityID
	deps        enchant.Deps
	events      *event.Dispatcher
	projectiles *orderedTable[*component.TrackedProjectile]
	clouds      *orderedTable[*TrackedCloud]
	ticks       int
}

func NewCloudManager(ownerID types.EntityID, deps enchant.Deps) *CloudManager {
	if deps.Library == nil {
		deps.Library = defs.Default()
	}
	return &CloudManager{
		ownerID:     ownerID,
		deps:        deps,
		events:      deps.Events,
		projectiles: newOrderedTable[*component.TrackedProjectile](config.MaxTrackedProjectiles),
		clouds:      newOrderedTable[*TrackedCloud](config.MaxTrackedClouds),
	}
}

func (m *CloudManager) log() *logrus.Entry {
	return logger.Log.WithField("owner", m.ownerID)
}

// Tick detects impacts, spawns clouds for them, then processes every
// tracked cloud. Every CleanupIntervalTicks the tables are swept.
func (m *CloudManager) Tick(w interfaces.World, state *component.CreatureState) {
	m.ticks++

	for _, hit := range m.detectImpacts(w) {
		m.spawnCloud(w, state, hit)
	}

	removals := m.processClouds(w)
	if m.ticks%config.CleanupIntervalTicks == 0 {
		removals = append(removals, m.sweep(w)...)
	}
	m.finishRemovals(w, removals)
}

func (m *CloudManager) spawnCloud(w interfaces.World, state *component.CreatureState, hit impact) {
	if state.Level < config.CloudMinLevel {
		return
	}
	lib := m.deps.Library
	levelDef := lib.Level(state.Level)
	levelOf := func(t types.EnchantmentType) int { return ActiveEnchantmentLevel(state, lib, t) }

	durationLevel := levelOf(types.EnchantDuration)
	duration := int(math.Round(float64(levelDef.CloudDurationTicks) * enchant.DurationMultiplier(durationLevel)))
	if duration <= 0 || levelDef.CloudRadius <= 0 {
		return
	}

	id, cloud := w.SpawnAreaCloud(hit.position)
	cloud.OwnerID = m.ownerID
	cloud.Radius = levelDef.CloudRadius
	cloud.Age = 0
	cloud.ShrinkOver(duration)

	proc, procLevel := enchant.Select(levelOf, state.Level, m.deps)
	proc.ApplyToCloud(cloud, procLevel)

	tracked := &TrackedCloud{ID: id, Processor: proc, Level: procLevel, CreatedTick: w.CurrentTick()}
	if evicted, _, ok := m.clouds.put(id, tracked); ok {
		m.log().WithField("cloud", evicted).Warn("cloud manager: cloud table full, oldest evicted")
		m.finishRemovals(w, []cloudRemoval{{id: evicted, reason: ReasonEvicted, removeEntity: true}})
	}

	m.log().WithFields(logrus.Fields{
		"cloud":     id,
		"processor": processorName(proc),
		"level":     procLevel,
		"duration":  duration,
		"radius":    cloud.Radius,
	}).Debug("cloud manager: cloud spawned")
	m.events.Dispatch(event.Event{Type: event.CloudSpawned, Data: event.CloudData{
		OwnerID:   m.ownerID,
		CloudID:   id,
		Processor: processorName(proc),
	}})
}

// processClouds ticks every live cloud's processor and collects the clouds
// that are gone or expired.
func (m *CloudManager) processClouds(w interfaces.World) []cloudRemoval {
	var removals []cloudRemoval
	for _, id := range m.clouds.snapshot() {
		tracked, _ := m.clouds.get(id)
		cloud, ok := w.Cloud(id)
		if !ok {
			removals = append(removals, cloudRemoval{id: id, reason: ReasonRemoved})
			continue
		}
		if cloud.Expired() {
			removals = append(removals, cloudRemoval{id: id, reason: ReasonExpired, removeEntity: true})
			continue
		}
		tracked.Processor.Process(w, cloud, tracked.Level)
	}
	return removals
}

// sweep drops entries whose entity no longer exists and clouds past the
// hard age ceiling, whatever the entity state.
func (m *CloudManager) sweep(w interfaces.World) []cloudRemoval {
	var stale []types.EntityID
	for _, id := range m.projectiles.snapshot() {
		if _, ok := w.Entity(id); !ok {
			stale = append(stale, id)
		}
	}
	m.projectiles.removeAll(stale)

	now := w.CurrentTick()
	var removals []cloudRemoval
	for _, id := range m.clouds.snapshot() {
		tracked, _ := m.clouds.get(id)
		if _, ok := w.Cloud(id); !ok {
			removals = append(removals, cloudRemoval{id: id, reason: ReasonRemoved})
			continue
		}
		if now-tracked.CreatedTick >= config.CloudMaxAgeTicks {
			removals = append(removals, cloudRemoval{id: id, reason: ReasonAged, removeEntity: true})
		}
	}
	return removals
}

func (m *CloudManager) finishRemovals(w interfaces.World, removals []cloudRemoval) {
	if len(removals) == 0 {
		return
	}
	ids := make([]types.EntityID, 0, len(removals))
	seen := make(map[types.EntityID]bool, len(removals))
	for _, r := range removals {
		if seen[r.id] {
			continue
		}
		seen[r.id] = true
		ids = append(ids, r.id)

		if r.removeEntity {
			w.RemoveEntity(r.id, false)
		}
		m.log().WithFields(logrus.Fields{"cloud": r.id, "reason": r.reason}).Debug("cloud manager: cloud removed")
		m.events.Dispatch(event.Event{Type: event.CloudRemoved, Data: event.CloudData{
			OwnerID: m.ownerID,
			CloudID: r.id,
			Reason:  r.reason,
		}})
	}
	m.clouds.removeAll(ids)
}

// Discard drops all tracking state. Clouds already in the world are left to
// the host.
func (m *CloudManager) Discard() {
	m.projectiles.clear()
	m.clouds.clear()
	m.ticks = 0
}

// TrackedProjectiles returns the number of projectiles in flight.
func (m *CloudManager) TrackedProjectiles() int { return m.projectiles.size() }

// Clouds returns the tracked clouds in spawn order.
func (m *CloudManager) Clouds() []TrackedCloud {
	out := make([]TrackedCloud, 0, m.clouds.size())
	for _, id := range m.clouds.snapshot() {
		if c, ok := m.clouds.get(id); ok {
			out = append(out, *c)
		}
	}
	return out
}

func processorName(p enchant.Processor) string {
	if p.Type() == types.EnchantNone {
		return "healing"
	}
	return string(p.Type())
}

// SetLibrary swaps the balance snapshot used for new clouds.
func (m *CloudManager) SetLibrary(lib *defs.Library) {
	if lib != nil {
		m.deps.Library = lib
	}
}
