// internal/component/projectile.go
package component

import (
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// TrackedProjectile — снаряд, за которым следит менеджер облаков.
type TrackedProjectile struct {
	ID        types.EntityID
	OwnerID   types.EntityID
	LastPos   utils.Vec3
	SpawnTick int64
	Seen      bool // позиция уже наблюдалась хотя бы один тик
}
