package component

import "go-companion-combat/internal/types"

// CombatStats — неизменяемый снимок боевых параметров существа.
// Вычисляется заново при каждом обращении и никогда не сохраняется.
type CombatStats struct {
	Element          types.Element
	Level            int
	Damage           float64
	CooldownTicks    int
	ExplosionPower   int
	ControlStrength  float64
	ProjectileSpeed  float64
	HomeBiomeBoosted bool
}

// DamageSource описывает, кто и чем нанёс урон.
type DamageSource struct {
	Kind     types.DamageKind
	Attacker types.EntityID // владелец (существо, моб)
	Direct   types.EntityID // снаряд или облако, если есть
}
