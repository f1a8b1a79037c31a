package component

import (
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

// AreaCloud — данные облака эффектов, которыми владеет хост.
// Ядро получает указатель и может настраивать облако на месте.
type AreaCloud struct {
	ID            types.EntityID
	OwnerID       types.EntityID
	Position      utils.Vec3
	Radius        float64
	RadiusPerTick float64 // отрицательное значение — облако сжимается
	Duration      int     // тиков жизни
	Age           int
	Particle      string // визуальная подсказка, на геймплей не влияет
	Effects       []TimedEffect
	// AffectsHostiles: эффекты получают враждебные мобы, иначе — союзники
	// (игроки и компаньоны).
	AffectsHostiles bool
	// ApplyInterval — как часто хост накладывает Effects на сущности внутри.
	ApplyInterval int
}

// Expired reports whether the cloud reached the end of its life.
func (c *AreaCloud) Expired() bool {
	return c.Age >= c.Duration || c.Radius <= 0
}

// Sphere returns the cloud's current area.
func (c *AreaCloud) Sphere() Sphere {
	return Sphere{Center: c.Position, Radius: c.Radius}
}

// ShrinkOver sets RadiusPerTick so the radius reaches zero exactly at expiry.
func (c *AreaCloud) ShrinkOver(duration int) {
	c.Duration = duration
	if duration > 0 {
		c.RadiusPerTick = -c.Radius / float64(duration)
	}
}
