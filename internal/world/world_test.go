package world

import (
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	"go-companion-combat/pkg/utils"
)

type recordingBehavior struct {
	entityHits []types.EntityID
	blockHits  []utils.Vec3
	collisions int
}

func (b *recordingBehavior) OnEntityHit(w interfaces.World, projectile, target component.Entity) {
	b.entityHits = append(b.entityHits, target.ID)
}

func (b *recordingBehavior) OnBlockHit(w interfaces.World, projectile component.Entity, hitPoint utils.Vec3) {
	b.blockHits = append(b.blockHits, hitPoint)
}

func (b *recordingBehavior) OnCollision(w interfaces.World, projectile component.Entity) {
	b.collisions++
	w.RemoveEntity(projectile.ID, false)
}

func TestProjectileHitsEntity(t *testing.T) {
	w := New(nil)
	zombie := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: 0, Y: 0, Z: 5}})
	behavior := &recordingBehavior{}

	proj := w.SpawnProjectile(interfaces.ProjectileSpec{
		Origin:    utils.Vec3{Y: 0.95},
		Direction: utils.Vec3{Z: 1},
		Power:     1,
		Behavior:  behavior,
	})

	for i := 0; i < 10; i++ {
		w.Update()
	}

	if len(behavior.entityHits) != 1 || behavior.entityHits[0] != zombie {
		t.Fatalf("expected one hit on %d, got %v", zombie, behavior.entityHits)
	}
	if behavior.collisions != 1 {
		t.Errorf("expected one collision, got %d", behavior.collisions)
	}
	if _, alive := w.Entity(proj); alive {
		t.Error("projectile should be removed after impact")
	}
}

func TestProjectileHitsGround(t *testing.T) {
	w := New(nil)
	behavior := &recordingBehavior{}
	w.SpawnProjectile(interfaces.ProjectileSpec{
		Origin:    utils.Vec3{Y: 2},
		Direction: utils.Vec3{Y: -1, Z: 1},
		Power:     1,
		Behavior:  behavior,
	})
	for i := 0; i < 10; i++ {
		w.Update()
	}
	if len(behavior.blockHits) != 1 {
		t.Fatalf("expected a block hit, got %v", behavior.blockHits)
	}
	if behavior.blockHits[0].Y != 0 {
		t.Errorf("hit point should be on the ground, got %v", behavior.blockHits[0])
	}
}

func TestCloudAppliesEffectsAndExpires(t *testing.T) {
	w := New(nil)
	zombie := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: 1}})
	player := w.AddEntity(component.Entity{Kind: types.KindPlayer, Position: utils.Vec3{X: -1}})

	id, cloud := w.SpawnAreaCloud(utils.Vec3{})
	cloud.Radius = 3
	cloud.ShrinkOver(20)
	cloud.AffectsHostiles = true
	cloud.Effects = []component.TimedEffect{{Tag: types.EffectSlowness, Duration: 100, Amplifier: 6}}

	w.Update()

	eff, ok := w.Effect(zombie, types.EffectSlowness)
	if !ok || eff.Amplifier != 6 {
		t.Fatalf("expected slowness 6 on zombie, got %+v (ok=%v)", eff, ok)
	}
	if _, ok := w.Effect(player, types.EffectSlowness); ok {
		t.Error("hostile cloud must not affect players")
	}

	for i := 0; i < 25; i++ {
		w.Update()
	}
	if _, alive := w.Cloud(id); alive {
		t.Error("cloud should expire after its duration")
	}
}

func TestApplyDamageKillsAndDispatches(t *testing.T) {
	events := event.NewDispatcher()
	var killed event.KillData
	events.Subscribe(event.EntityKilled, event.ListenerFunc(func(e event.Event) {
		killed = e.Data.(event.KillData)
	}))
	w := New(events)
	zombie := w.AddEntity(component.Entity{Kind: types.KindHostile})

	w.ApplyDamage(zombie, 100, component.DamageSource{Kind: types.DamageMagic, Attacker: 77})

	if _, alive := w.Entity(zombie); alive {
		t.Error("dead hostile should be removed")
	}
	if killed.VictimID != zombie || killed.KillerID != 77 {
		t.Errorf("unexpected kill event: %+v", killed)
	}
	items := w.FindEntities(component.Sphere{Radius: 1}, func(e component.Entity) bool { return e.Kind == types.KindItem })
	if len(items) != 1 {
		t.Errorf("expected one dropped item, got %d", len(items))
	}
}

func TestTimedEffectStacking(t *testing.T) {
	w := New(nil)
	id := w.AddEntity(component.Entity{Kind: types.KindHostile})

	w.ApplyTimedEffect(id, types.EffectSlowness, 50, 2)
	w.ApplyTimedEffect(id, types.EffectSlowness, 500, 1)
	if eff, _ := w.Effect(id, types.EffectSlowness); eff.Amplifier != 2 || eff.Remaining != 50 {
		t.Errorf("weaker effect must not override: %+v", eff)
	}
	w.ApplyTimedEffect(id, types.EffectSlowness, 80, 2)
	if eff, _ := w.Effect(id, types.EffectSlowness); eff.Remaining != 80 {
		t.Errorf("equal amplifier should extend duration: %+v", eff)
	}
}

func TestImpulseMovesAndDecays(t *testing.T) {
	w := New(nil)
	id := w.AddEntity(component.Entity{Kind: types.KindHostile})
	w.ApplyImpulse(id, utils.Vec3{X: 1})
	w.Update()

	e, _ := w.Entity(id)
	if e.Position.X != 1 {
		t.Errorf("expected x=1 after one tick, got %f", e.Position.X)
	}
	if e.Velocity.X >= 1 {
		t.Errorf("velocity should decay, got %f", e.Velocity.X)
	}
}
