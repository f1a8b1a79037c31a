package world

import (
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"

	"github.com/yohamta/donburi"
)

// ProjectileData — полётные данные снаряда
type ProjectileData struct {
	Behavior interfaces.ProjectileBehavior
	Age      int
}

// CloudData хранит указатель, чтобы ядро могло держать его между тиками.
type CloudData struct {
	Cloud *component.AreaCloud
}

// StatusEffects — активные временные эффекты сущности
type StatusEffects struct {
	Active map[types.EffectTag]component.ActiveEffect
}

var (
	EntityComponent     = donburi.NewComponentType[component.Entity]()
	ProjectileComponent = donburi.NewComponentType[ProjectileData]()
	CloudComponent      = donburi.NewComponentType[CloudData]()
	EffectsComponent    = donburi.NewComponentType[StatusEffects]()
)

// defaultHeight — высота тела по категории сущности
func defaultHeight(kind types.EntityKind) float64 {
	switch kind {
	case types.KindHostile:
		return 1.9
	case types.KindPlayer:
		return 1.8
	case types.KindPassive, types.KindCompanion:
		return 0.9
	case types.KindItem:
		return 0.25
	case types.KindProjectile:
		return 0.3
	default:
		return 0.5
	}
}

// defaultHealth — запас здоровья по категории сущности
func defaultHealth(kind types.EntityKind) float64 {
	switch kind {
	case types.KindHostile, types.KindPlayer, types.KindCompanion:
		return 20
	case types.KindPassive:
		return 8
	default:
		return 1
	}
}
