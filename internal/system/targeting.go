// internal/system/targeting.go
package system

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// TargetStrategy выбирает цель среди найденных враждебных мобов.
type TargetStrategy interface {
	Pick(w interfaces.World, self component.Entity, candidates []component.Entity) (component.Entity, bool)
}

// NearestToSelf — ближайший к самому существу враг.
type NearestToSelf struct{}

func (NearestToSelf) Pick(_ interfaces.World, self component.Entity, candidates []component.Entity) (component.Entity, bool) {
	return nearestTo(self.Position, candidates)
}

// NearestToPlayer защищает игрока: выбирается враг, ближайший к ближайшему
// игроку. Если игроков рядом нет, работает как NearestToSelf.
type NearestToPlayer struct {
	Radius float64
}

func (s NearestToPlayer) Pick(w interfaces.World, self component.Entity, candidates []component.Entity) (component.Entity, bool) {
	players := w.FindEntities(component.Sphere{Center: self.Position, Radius: s.Radius}, func(e component.Entity) bool {
		return e.Alive && e.Kind == types.KindPlayer && e.Region == self.Region
	})
	if len(players) == 0 {
		return nearestTo(self.Position, candidates)
	}

	var best component.Entity
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		for _, p := range players {
			if d := c.Position.DistanceSq(p.Position); d < bestDist {
				bestDist = d
				best = c
			}
		}
	}
	return best, bestDist < math.MaxFloat64
}

// nearestTo returns the candidate with the smallest squared distance to
// point. Ties keep the first one seen.
func nearestTo(point utils.Vec3, candidates []component.Entity) (component.Entity, bool) {
	var best component.Entity
	bestDist := math.MaxFloat64
	for _, c := range candidates {
		if d := point.DistanceSq(c.Position); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist < math.MaxFloat64
}
