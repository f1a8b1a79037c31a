// internal/interfaces/world.go
package interfaces

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// World — сервисы хост-симуляции, которые потребляет боевое ядро.
// Ядро не хранит сущности само: всё, что связано с позицией, физикой
// и появлением объектов, делает хост.
type World interface {
	// CurrentTick returns the host simulation tick.
	CurrentTick() int64
	Entity(id types.EntityID) (component.Entity, bool)
	FindEntities(area component.Sphere, pred func(component.Entity) bool) []component.Entity
	BiomeAt(pos utils.Vec3) types.Biome

	SpawnProjectile(spec ProjectileSpec) types.EntityID
	SpawnAreaCloud(pos utils.Vec3) (types.EntityID, *component.AreaCloud)
	// Cloud returns the live cloud data for id. The pointer stays owned by the host.
	Cloud(id types.EntityID) (*component.AreaCloud, bool)
	SpawnCreature(spec CreatureSpec) types.EntityID
	RemoveEntity(id types.EntityID, dropLoot bool)

	ApplyDamage(target types.EntityID, amount float64, source component.DamageSource)
	ApplyTimedEffect(target types.EntityID, effect types.EffectTag, duration, amplifier int)
	ApplyImpulse(target types.EntityID, impulse utils.Vec3)
	Explode(pos utils.Vec3, power int, source component.DamageSource)
	SetAttackTarget(attacker, target types.EntityID)
}

// ProjectileSpec описывает выпускаемый снаряд.
type ProjectileSpec struct {
	Element   types.Element
	OwnerID   types.EntityID
	Origin    utils.Vec3
	Direction utils.Vec3 // единичный вектор
	Power     float64    // скорость, блоков за тик
	Behavior  ProjectileBehavior
}

// CreatureSpec описывает существо, которое нужно создать (полиморф).
type CreatureSpec struct {
	Kind       types.EntityKind
	Species    string
	Region     string
	Position   utils.Vec3
	Yaw, Pitch float64
	CustomName string
}

// ProjectileBehavior — обработчик попаданий снаряда одной стихии.
// Хост вызывает OnEntityHit или OnBlockHit, а затем OnCollision.
type ProjectileBehavior interface {
	OnEntityHit(w World, projectile, target component.Entity)
	OnBlockHit(w World, projectile component.Entity, hitPoint utils.Vec3)
	OnCollision(w World, projectile component.Entity)
}
