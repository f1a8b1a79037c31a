// internal/system/combat.go
package system

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// SchedulerState — состояние планировщика атак
type SchedulerState int

const (
	StateIdle SchedulerState = iota
	StateCooldown
	StateTargetAcquired
)

func (s SchedulerState) String() string {
	switch s {
	case StateCooldown:
		return "cooldown"
	case StateTargetAcquired:
		return "target_acquired"
	default:
		return "idle"
	}
}

// ShotDispatcher выпускает снаряды по готовой цели.
type ShotDispatcher interface {
	Fire(w interfaces.World, shooter component.Entity, direction utils.Vec3, stats component.CombatStats, target component.Entity) []types.EntityID
}

// AttackScheduler — перезарядка и выбор цели одного существа.
type AttackScheduler struct {
	Strategy     TargetStrategy
	SearchRadius float64
	MaxRange     float64

	state    SchedulerState
	cooldown int
	target   types.EntityID
}

func NewAttackScheduler(strategy TargetStrategy) *AttackScheduler {
	if strategy == nil {
		strategy = NearestToSelf{}
	}
	return &AttackScheduler{
		Strategy:     strategy,
		SearchRadius: config.TargetSearchRadius,
		MaxRange:     config.TargetMaxRange,
	}
}

func (s *AttackScheduler) State() SchedulerState  { return s.state }
func (s *AttackScheduler) Cooldown() int          { return s.cooldown }
func (s *AttackScheduler) Target() types.EntityID { return s.target }

// Reset discards cooldown and target.
func (s *AttackScheduler) Reset() {
	s.state = StateIdle
	s.cooldown = 0
	s.target = types.NoEntity
}

// Tick runs one scheduler step for self. The shot happens on the tick the
// cooldown reaches zero, so the firing period equals stats.CooldownTicks.
// Returns the ids of the projectiles fired this tick.
func (s *AttackScheduler) Tick(w interfaces.World, self component.Entity, stats component.CombatStats, dispatch ShotDispatcher) []types.EntityID {
	if s.cooldown > 0 {
		s.cooldown--
		if s.cooldown > 0 {
			s.state = StateCooldown
			return nil
		}
	}

	target, ok := s.validTarget(w, self)
	if !ok {
		target, ok = s.acquire(w, self)
	}
	if !ok {
		s.state = StateIdle
		s.target = types.NoEntity
		return nil
	}
	s.state = StateTargetAcquired
	s.target = target.ID

	origin := self.BodyCenter()
	direction := target.BodyCenter().Sub(origin).Normalize(utils.DefaultHeading)

	var fired []types.EntityID
	if dispatch != nil {
		fired = dispatch.Fire(w, self, direction, stats, target)
	}
	s.cooldown = stats.CooldownTicks
	if s.cooldown < 1 {
		s.cooldown = 1
	}
	return fired
}

// validTarget проверяет текущую цель: жива, в том же регионе и в пределах MaxRange.
func (s *AttackScheduler) validTarget(w interfaces.World, self component.Entity) (component.Entity, bool) {
	if s.target == types.NoEntity {
		return component.Entity{}, false
	}
	target, ok := w.Entity(s.target)
	if !ok || !target.Alive || target.Region != self.Region {
		return component.Entity{}, false
	}
	if self.Position.DistanceSq(target.Position) > s.MaxRange*s.MaxRange {
		return component.Entity{}, false
	}
	return target, true
}

func (s *AttackScheduler) acquire(w interfaces.World, self component.Entity) (component.Entity, bool) {
	candidates := w.FindEntities(component.Sphere{Center: self.Position, Radius: s.SearchRadius}, func(e component.Entity) bool {
		return e.IsHostile() && e.Region == self.Region && e.ID != self.ID
	})
	if len(candidates) == 0 {
		return component.Entity{}, false
	}
	return s.Strategy.Pick(w, self, candidates)
}
