// internal/system/dispatch.go
package system

import (
	"math"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/element"
	"go-companion-combat/internal/enchant"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	iutils "go-companion-combat/internal/utils"
	"go-companion-combat/pkg/utils"
)

// EnchantmentDispatch решает, сколько снарядов выпустить, и регистрирует
// каждый в менеджере облаков своего существа.
type EnchantmentDispatch struct {
	state  *component.CreatureState
	lib    *defs.Library
	clouds *CloudManager
	events *event.Dispatcher
}

func NewEnchantmentDispatch(state *component.CreatureState, lib *defs.Library, clouds *CloudManager, events *event.Dispatcher) *EnchantmentDispatch {
	return &EnchantmentDispatch{state: state, lib: lib, clouds: clouds, events: events}
}

// Fire spawns one projectile, or a fan of 1+2L with Multishot level L.
func (d *EnchantmentDispatch) Fire(w interfaces.World, shooter component.Entity, direction utils.Vec3, stats component.CombatStats, target component.Entity) []types.EntityID {
	count := enchant.MultishotCount(ActiveEnchantmentLevel(d.state, d.lib, types.EnchantMultishot))
	origin := shooter.BodyCenter()

	ids := make([]types.EntityID, 0, count)
	for _, dir := range FanDirections(direction, count) {
		id := w.SpawnProjectile(interfaces.ProjectileSpec{
			Element:   stats.Element,
			OwnerID:   shooter.ID,
			Origin:    origin,
			Direction: dir,
			Power:     stats.ProjectileSpeed,
			Behavior:  element.NewBehavior(stats, shooter.ID),
		})
		if id == types.NoEntity {
			continue
		}
		if d.clouds != nil {
			d.clouds.TrackProjectile(w, id, origin)
		}
		d.events.Dispatch(event.Event{Type: event.ProjectileFired, Data: event.ProjectileData{
			OwnerID: shooter.ID, ProjectileID: id, TargetID: target.ID,
		}})
		ids = append(ids, id)
	}
	return ids
}

// SpreadAngle returns the half-width of the fan in degrees: 15°·min(count/3, 2).
func SpreadAngle(count int) float64 {
	if count <= 1 {
		return 0
	}
	return config.MultishotBaseSpreadDeg * math.Min(float64(count)/3.0, config.MultishotMaxSpreadStep)
}

// FanDirections spreads count directions evenly over [-spread, +spread]
// around dir. Only the horizontal part is rotated; the middle direction of
// an odd fan is dir itself.
func FanDirections(dir utils.Vec3, count int) []utils.Vec3 {
	dir = dir.Normalize(utils.DefaultHeading)
	if count <= 1 {
		return []utils.Vec3{dir}
	}
	spread := iutils.DegToRad(SpreadAngle(count))
	last := float64(count - 1)

	out := make([]utils.Vec3, count)
	for i := range out {
		// Числитель антисимметричен, поэтому крайние углы равны по модулю.
		angle := spread * float64(2*i-(count-1)) / last
		out[i] = dir.RotateHorizontal(angle)
	}
	return out
}

// SetLibrary swaps the balance snapshot between ticks.
func (d *EnchantmentDispatch) SetLibrary(lib *defs.Library) {
	if lib != nil {
		d.lib = lib
	}
}
