// internal/system/companion_system.go
package system

import (
	"fmt"

	"go-companion-combat/internal/config"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Unit — то, что система компаньонов тикает каждый кадр.
type Unit interface {
	EntityID() types.EntityID
	Tick(w interfaces.World)
	AddExperience(amount int) bool
	Discard()
}

// CompanionSystem тикает всех зарегистрированных компаньонов и начисляет
// им опыт за убийства.
type CompanionSystem struct {
	world interfaces.World
	order []types.EntityID
	units map[types.EntityID]Unit
}

func NewCompanionSystem(w interfaces.World, events *event.Dispatcher) *CompanionSystem {
	s := &CompanionSystem{
		world: w,
		units: make(map[types.EntityID]Unit),
	}
	if events != nil {
		events.Subscribe(event.EntityKilled, s)
	}
	return s
}

// Add registers u. A unit with the same entity id is replaced.
func (s *CompanionSystem) Add(u Unit) {
	id := u.EntityID()
	if _, exists := s.units[id]; !exists {
		s.order = append(s.order, id)
	}
	s.units[id] = u
}

// Remove unregisters the unit and discards its state.
func (s *CompanionSystem) Remove(id types.EntityID) {
	u, ok := s.units[id]
	if !ok {
		return
	}
	u.Discard()
	delete(s.units, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *CompanionSystem) Get(id types.EntityID) (Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

// Units returns the registered units in registration order.
func (s *CompanionSystem) Units() []Unit {
	out := make([]Unit, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.units[id])
	}
	return out
}

// Update ticks every unit once. A panic inside one unit is logged and the
// remaining units still run.
func (s *CompanionSystem) Update() {
	for _, id := range append([]types.EntityID(nil), s.order...) {
		u, ok := s.units[id]
		if !ok {
			continue
		}
		if err := s.tickUnit(u); err != nil {
			logger.Log.WithError(err).WithField("companion", id).Warn("companion system: tick recovered")
		}
	}
}

func (s *CompanionSystem) tickUnit(u Unit) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("companion %d panicked: %v", u.EntityID(), r)
		}
	}()
	u.Tick(s.world)
	return nil
}

// OnEvent начисляет опыт компаньону, который добил существо.
func (s *CompanionSystem) OnEvent(e event.Event) {
	if e.Type != event.EntityKilled {
		return
	}
	data, ok := e.Data.(event.KillData)
	if !ok {
		return
	}
	u, ok := s.units[data.KillerID]
	if !ok {
		return
	}
	if xp := KillExperience(data.VictimKind); xp > 0 {
		u.AddExperience(xp)
		logger.Log.WithFields(logrus.Fields{
			"companion": data.KillerID,
			"victim":    data.VictimID,
			"xp":        xp,
		}).Debug("companion system: kill experience")
	}
}

// KillExperience — опыт за убийство существа данного вида.
func KillExperience(kind types.EntityKind) int {
	switch kind {
	case types.KindHostile:
		return config.KillExperienceHostile
	case types.KindPassive:
		return config.KillExperiencePassive
	default:
		return 0
	}
}
