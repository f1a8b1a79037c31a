package component

import (
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// Entity — снимок сущности мира, который хост отдаёт ядру.
type Entity struct {
	ID         types.EntityID
	Kind       types.EntityKind
	Species    string // "zombie", "sheep", ...
	Region     string // мир/измерение
	Position   utils.Vec3
	Velocity   utils.Vec3
	Height     float64
	Yaw, Pitch float64
	Health     float64
	MaxHealth  float64
	Alive      bool
	CustomName string
	OwnerID    types.EntityID
}

// BodyCenter returns the point halfway up the entity's body.
func (e Entity) BodyCenter() utils.Vec3 {
	return e.Position.Add(utils.Vec3{Y: e.Height / 2})
}

// IsHostile — живой враждебный моб
func (e Entity) IsHostile() bool {
	return e.Alive && e.Kind == types.KindHostile
}

// Sphere — область поиска сущностей
type Sphere struct {
	Center utils.Vec3
	Radius float64
}

// Contains reports whether p lies inside the sphere (boundary included).
func (s Sphere) Contains(p utils.Vec3) bool {
	return p.DistanceSq(s.Center) <= s.Radius*s.Radius
}
