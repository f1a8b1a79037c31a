// internal/types/types.go
package types

import "strings"

// EntityID — идентификатор сущности в мире хоста
type EntityID uint64

// NoEntity обозначает отсутствие сущности.
const NoEntity EntityID = 0

// Element — стихия существа, задаётся при появлении и не меняется.
type Element string

const (
	ElementFire Element = "fire"
	ElementIce  Element = "ice"
	ElementWind Element = "wind"
	ElementSand Element = "sand"
)

// Elements перечисляет все стихии в порядке каталога.
var Elements = []Element{ElementFire, ElementIce, ElementWind, ElementSand}

// ParseElement разбирает идентификатор стихии. Неизвестные значения дают Fire.
func ParseElement(s string) Element {
	switch Element(strings.ToLower(strings.TrimSpace(s))) {
	case ElementIce:
		return ElementIce
	case ElementWind:
		return ElementWind
	case ElementSand:
		return ElementSand
	default:
		return ElementFire
	}
}

// Valid reports whether e is one of the four known elements.
func (e Element) Valid() bool {
	switch e {
	case ElementFire, ElementIce, ElementWind, ElementSand:
		return true
	}
	return false
}

// EntityKind — категория сущности с точки зрения боевой логики
type EntityKind int

const (
	KindUnknown EntityKind = iota
	KindHostile
	KindPassive
	KindPlayer
	KindCompanion
	KindItem
	KindProjectile
	KindCloud
)

func (k EntityKind) String() string {
	switch k {
	case KindHostile:
		return "hostile"
	case KindPassive:
		return "passive"
	case KindPlayer:
		return "player"
	case KindCompanion:
		return "companion"
	case KindItem:
		return "item"
	case KindProjectile:
		return "projectile"
	case KindCloud:
		return "cloud"
	default:
		return "unknown"
	}
}

// IsLiving — может ли сущность получать урон и эффекты
func (k EntityKind) IsLiving() bool {
	switch k {
	case KindHostile, KindPassive, KindPlayer, KindCompanion:
		return true
	}
	return false
}

// EffectTag — тип временного эффекта
type EffectTag string

const (
	EffectSlowness      EffectTag = "slowness"
	EffectMiningFatigue EffectTag = "mining_fatigue" // снижает скорость действий
	EffectBlindness     EffectTag = "blindness"
	EffectRegeneration  EffectTag = "regeneration"
	EffectSpeed         EffectTag = "speed"
	EffectBurning       EffectTag = "burning"
)

// DamageKind — источник урона
type DamageKind string

const (
	DamageFireball  DamageKind = "fireball"
	DamageFrost     DamageKind = "frost"
	DamageGust      DamageKind = "gust"
	DamageSand      DamageKind = "sand"
	DamageMobAttack DamageKind = "mob_attack"
	DamageMagic     DamageKind = "magic"
)

// Biome — идентификатор окружения в точке мира
type Biome string

const (
	BiomePlains Biome = "plains"
)

// EnchantmentType — идентификатор зачарования из фиксированного каталога
type EnchantmentType string

const (
	EnchantNone            EnchantmentType = ""
	EnchantMultishot       EnchantmentType = "multishot"
	EnchantDuration        EnchantmentType = "duration"
	EnchantFreezing        EnchantmentType = "freezing"
	EnchantCharm           EnchantmentType = "charm"
	EnchantGravity         EnchantmentType = "gravity"
	EnchantPolymorph       EnchantmentType = "polymorph"
	EnchantPiercingTracker EnchantmentType = "piercing_tracker" // зарезервировано, без эффекта
)

// Enchantments перечисляет каталог в порядке объявления.
var Enchantments = []EnchantmentType{
	EnchantMultishot,
	EnchantDuration,
	EnchantFreezing,
	EnchantCharm,
	EnchantGravity,
	EnchantPolymorph,
	EnchantPiercingTracker,
}

// ParseEnchantment разбирает идентификатор зачарования.
// Неизвестные значения дают EnchantNone.
func ParseEnchantment(s string) EnchantmentType {
	id := EnchantmentType(strings.ToLower(strings.TrimSpace(s)))
	for _, e := range Enchantments {
		if e == id {
			return e
		}
	}
	return EnchantNone
}
