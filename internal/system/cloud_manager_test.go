package system

import (
	"math"
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/enchant"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/world"
	"go-companion-combat/pkg/utils"
)

type cloudFixture struct {
	w       *world.World
	owner   types.EntityID
	target  types.EntityID
	state   *component.CreatureState
	manager *CloudManager
	events  *event.Dispatcher
	removed []event.CloudData
}

func newCloudFixture(t *testing.T, level int) *cloudFixture {
	t.Helper()
	f := &cloudFixture{events: event.NewDispatcher()}
	f.events.Subscribe(event.CloudRemoved, event.ListenerFunc(func(e event.Event) {
		f.removed = append(f.removed, e.Data.(event.CloudData))
	}))
	f.w = world.New(f.events)
	f.owner = f.w.AddEntity(component.Entity{Kind: types.KindCompanion})
	f.target = f.w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{Z: 6}, MaxHealth: 1000})
	f.state = component.NewCreatureState(types.ElementWind, 10)
	f.state.Level = level
	f.manager = NewCloudManager(f.owner, enchant.Deps{Library: defs.Default(), Events: f.events})
	return f
}

// shoot fires one projectile at the target and runs the manager and the
// world until the projectile is gone.
func (f *cloudFixture) shoot(t *testing.T) {
	t.Helper()
	self, _ := f.w.Entity(f.owner)
	target, _ := f.w.Entity(f.target)
	lib := defs.Default()
	d := NewEnchantmentDispatch(f.state, lib, f.manager, f.events)
	stats := ResolveCombatStats(lib, f.state.Level, f.state.Element, types.BiomePlains)
	dir := target.BodyCenter().Sub(self.BodyCenter())
	d.Fire(f.w, self, dir, stats, target)

	for i := 0; i < 30 && f.manager.TrackedProjectiles() > 0; i++ {
		f.manager.Tick(f.w, f.state)
		f.w.Update()
	}
	f.manager.Tick(f.w, f.state)
	if f.manager.TrackedProjectiles() != 0 {
		t.Fatal("projectile never landed")
	}
}

func TestNoCloudBelowLevelThree(t *testing.T) {
	f := newCloudFixture(t, 2)
	f.shoot(t)
	if n := len(f.manager.Clouds()); n != 0 {
		t.Errorf("level 2 spawned %d clouds", n)
	}
	if n := len(f.w.Clouds()); n != 0 {
		t.Errorf("world has %d clouds", n)
	}
}

func TestImpactSpawnsHealingCloud(t *testing.T) {
	f := newCloudFixture(t, 3)
	f.shoot(t)

	clouds := f.manager.Clouds()
	if len(clouds) != 1 {
		t.Fatalf("expected one tracked cloud, got %d", len(clouds))
	}
	tracked := clouds[0]
	if tracked.Processor.Type() != types.EnchantNone || tracked.Level != 3 {
		t.Errorf("processor = %q level %d, want healing at level 3", tracked.Processor.Type(), tracked.Level)
	}
	cloud, ok := f.w.Cloud(tracked.ID)
	if !ok {
		t.Fatal("cloud missing from the world")
	}
	lvl := defs.Default().Level(3)
	if cloud.Duration != lvl.CloudDurationTicks {
		t.Errorf("duration = %d, want %d", cloud.Duration, lvl.CloudDurationTicks)
	}
	if cloud.OwnerID != f.owner || cloud.AffectsHostiles {
		t.Errorf("cloud = %+v, want an allied cloud owned by %d", cloud, f.owner)
	}
	for _, eff := range cloud.Effects {
		if eff.Tag == types.EffectRegeneration {
			t.Error("level 3 healing cloud must not regenerate")
		}
	}
}

func TestDurationEnchantmentExtendsCloud(t *testing.T) {
	f := newCloudFixture(t, 3)
	f.state.Enchantments[1] = component.EnchantmentSlot{Type: types.EnchantDuration, Level: 2}
	f.shoot(t)

	clouds := f.manager.Clouds()
	if len(clouds) != 1 {
		t.Fatalf("expected one cloud, got %d", len(clouds))
	}
	cloud, _ := f.w.Cloud(clouds[0].ID)
	want := 2 * defs.Default().Level(3).CloudDurationTicks
	if cloud.Duration != want {
		t.Errorf("duration = %d, want %d", cloud.Duration, want)
	}
	wantRate := -defs.Default().Level(3).CloudRadius / float64(want)
	if math.Abs(cloud.RadiusPerTick-wantRate) > 1e-12 {
		t.Errorf("radius rate = %v, want %v so the cloud reaches zero at expiry", cloud.RadiusPerTick, wantRate)
	}
}

func TestCloudExpiresAndIsUntracked(t *testing.T) {
	f := newCloudFixture(t, 3)
	f.shoot(t)
	id := f.manager.Clouds()[0].ID

	for i := 0; i < 400; i++ {
		f.manager.Tick(f.w, f.state)
		f.w.Update()
	}
	f.manager.Tick(f.w, f.state)

	if len(f.manager.Clouds()) != 0 {
		t.Fatal("expired cloud still tracked")
	}
	if _, ok := f.w.Cloud(id); ok {
		t.Error("expired cloud still in the world")
	}
	if len(f.removed) != 1 || f.removed[0].CloudID != id {
		t.Errorf("removal events = %+v", f.removed)
	}
}

func TestExternallyRemovedCloud(t *testing.T) {
	f := newCloudFixture(t, 4)
	f.shoot(t)
	id := f.manager.Clouds()[0].ID

	f.w.RemoveEntity(id, false)
	f.manager.Tick(f.w, f.state)

	if len(f.manager.Clouds()) != 0 {
		t.Fatal("removed cloud still tracked")
	}
	if len(f.removed) != 1 || f.removed[0].Reason != ReasonRemoved {
		t.Errorf("removal events = %+v, want one with reason %q", f.removed, ReasonRemoved)
	}
}

func TestSweepEnforcesMaxAge(t *testing.T) {
	f := newCloudFixture(t, 5)
	f.shoot(t)
	id := f.manager.Clouds()[0].ID

	// Облако, которое хост сам никогда не удалит.
	cloud, _ := f.w.Cloud(id)
	cloud.Duration = 1 << 30
	cloud.RadiusPerTick = 0

	for i := 0; i < config.CloudMaxAgeTicks+config.CleanupIntervalTicks; i++ {
		f.manager.Tick(f.w, f.state)
		f.w.Update()
	}

	if len(f.manager.Clouds()) != 0 {
		t.Fatal("cloud past the age ceiling still tracked")
	}
	if _, ok := f.w.Cloud(id); ok {
		t.Error("cloud past the age ceiling still in the world")
	}
	if len(f.removed) != 1 || f.removed[0].Reason != ReasonAged {
		t.Errorf("removal events = %+v, want one with reason %q", f.removed, ReasonAged)
	}
}

func TestProjectileTableEvictsOldest(t *testing.T) {
	f := newCloudFixture(t, 3)
	evicted := 0
	f.events.Subscribe(event.ProjectileEvicted, event.ListenerFunc(func(event.Event) { evicted++ }))

	var ids []types.EntityID
	for i := 0; i < config.MaxTrackedProjectiles+1; i++ {
		ids = append(ids, f.w.SpawnProjectile(interfaces.ProjectileSpec{
			Origin: utils.Vec3{Y: 50}, Direction: utils.Vec3{Y: 1}, Power: 0.5,
		}))
	}
	for _, id := range ids {
		f.manager.TrackProjectile(f.w, id, utils.Vec3{Y: 50})
	}

	if got := f.manager.TrackedProjectiles(); got != config.MaxTrackedProjectiles {
		t.Errorf("tracked = %d, want %d", got, config.MaxTrackedProjectiles)
	}
	if evicted != 1 {
		t.Errorf("evictions = %d, want 1", evicted)
	}
	if _, ok := f.manager.projectiles.get(ids[0]); ok {
		t.Error("the oldest projectile should have been evicted")
	}
}

func TestTimedOutProjectileSpawnsNoCloud(t *testing.T) {
	f := newCloudFixture(t, 6)
	id := f.w.SpawnProjectile(interfaces.ProjectileSpec{
		Origin: utils.Vec3{Y: 10}, Direction: utils.Vec3{Y: 1}, Power: 0.5,
	})
	f.manager.TrackProjectile(f.w, id, utils.Vec3{Y: 10})

	for i := 0; i < config.ProjectileTimeoutTicks+5; i++ {
		f.manager.Tick(f.w, f.state)
		f.w.Update()
	}
	f.manager.Tick(f.w, f.state)

	if f.manager.TrackedProjectiles() != 0 {
		t.Error("timed out projectile still tracked")
	}
	if len(f.manager.Clouds()) != 0 {
		t.Error("timed out projectile spawned a cloud")
	}
}

func TestOrderedTable(t *testing.T) {
	tbl := newOrderedTable[int](3)
	for i := 1; i <= 3; i++ {
		tbl.put(types.EntityID(i), i)
	}
	if id, v, ok := tbl.put(4, 4); !ok || id != 1 || v != 1 {
		t.Errorf("put over the limit evicted (%d, %d, %v), want (1, 1, true)", id, v, ok)
	}
	if _, _, ok := tbl.put(4, 40); ok {
		t.Error("replacing an existing id must not evict")
	}
	tbl.removeAll([]types.EntityID{3, 99})
	got := tbl.snapshot()
	if len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("order = %v, want [2 4]", got)
	}
	if v, _ := tbl.get(4); v != 40 {
		t.Errorf("value = %d, want 40", v)
	}
}
