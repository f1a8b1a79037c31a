package event

import "go-companion-combat/internal/types"

const (
	LevelUp           EventType = "LevelUp"           // Существо повысило уровень
	ProjectileFired   EventType = "ProjectileFired"   // Снаряд выпущен
	ProjectileEvicted EventType = "ProjectileEvicted" // Таблица снарядов переполнена
	CloudSpawned      EventType = "CloudSpawned"      // Облако создано после попадания
	CloudRemoved      EventType = "CloudRemoved"
	EntityPolymorphed EventType = "EntityPolymorphed"
	EntityKilled      EventType = "EntityKilled" // Хост: сущность погибла
)

// LevelUpData — данные события LevelUp.
type LevelUpData struct {
	CreatureID types.EntityID
	Level      int
}

// CloudData — данные событий CloudSpawned и CloudRemoved.
type CloudData struct {
	OwnerID   types.EntityID
	CloudID   types.EntityID
	Processor string
	Reason    string // только для CloudRemoved
}

// KillData — данные события EntityKilled.
type KillData struct {
	VictimID   types.EntityID
	VictimKind types.EntityKind
	KillerID   types.EntityID
}

// PolymorphData — данные события EntityPolymorphed.
type PolymorphData struct {
	CloudID types.EntityID
	From    types.EntityID
	To      types.EntityID
	Species string
}

// ProjectileData — данные событий ProjectileFired и ProjectileEvicted.
type ProjectileData struct {
	OwnerID      types.EntityID
	ProjectileID types.EntityID
	TargetID     types.EntityID
}
