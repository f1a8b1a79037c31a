package enchant

import (
	"math"
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/interfaces"
	"go-companion-combat/internal/types"
	iutils "go-companion-combat/internal/utils"
	"go-companion-combat/internal/world"
	"go-companion-combat/pkg/utils"
)

func testDeps(seed int64) Deps {
	return Deps{RNG: iutils.NewPRNGService(seed), Library: defs.Default()}
}

func spawnCloud(w *world.World, pos utils.Vec3, radius float64) *component.AreaCloud {
	_, cloud := w.SpawnAreaCloud(pos)
	cloud.Radius = radius
	return cloud
}

func TestSelectPriority(t *testing.T) {
	tests := []struct {
		name   string
		levels map[types.EnchantmentType]int
		want   types.EnchantmentType
		level  int
	}{
		{"none gives healing", nil, types.EnchantNone, 5},
		{"freezing only", map[types.EnchantmentType]int{types.EnchantFreezing: 2}, types.EnchantFreezing, 2},
		{"charm beats freezing", map[types.EnchantmentType]int{types.EnchantFreezing: 3, types.EnchantCharm: 1}, types.EnchantCharm, 1},
		{"gravity beats charm", map[types.EnchantmentType]int{types.EnchantGravity: 2, types.EnchantCharm: 3}, types.EnchantGravity, 2},
		{"polymorph wins", map[types.EnchantmentType]int{types.EnchantPolymorph: 1, types.EnchantGravity: 3, types.EnchantFreezing: 3}, types.EnchantPolymorph, 1},
		{"multishot is not a cloud processor", map[types.EnchantmentType]int{types.EnchantMultishot: 3, types.EnchantDuration: 2}, types.EnchantNone, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levelOf := func(e types.EnchantmentType) int { return tt.levels[e] }
			p, lvl := Select(levelOf, 5, testDeps(1))
			if p.Type() != tt.want {
				t.Errorf("processor = %q, want %q", p.Type(), tt.want)
			}
			if lvl != tt.level {
				t.Errorf("level = %d, want %d", lvl, tt.level)
			}
		})
	}
}

func TestNewUnknownEnchantment(t *testing.T) {
	if _, err := New(types.EnchantPiercingTracker, testDeps(1)); err == nil {
		t.Error("piercing tracker must not have a processor")
	}
}

func TestMultishotAndDurationTables(t *testing.T) {
	counts := map[int]int{0: 1, 1: 3, 2: 5, 3: 7}
	for level, want := range counts {
		if got := MultishotCount(level); got != want {
			t.Errorf("MultishotCount(%d) = %d, want %d", level, got, want)
		}
	}
	mults := map[int]float64{0: 1.0, 1: 1.5, 2: 2.0, 3: 3.0}
	for level, want := range mults {
		if got := DurationMultiplier(level); got != want {
			t.Errorf("DurationMultiplier(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestFreezingConfiguresCloud(t *testing.T) {
	tests := []struct {
		level, duration, amplifier int
	}{
		{1, 60, 4},
		{2, 100, 6},
		{3, 160, 9},
	}
	for _, tt := range tests {
		cloud := &component.AreaCloud{Radius: 3, Duration: 100}
		(&Freezing{}).ApplyToCloud(cloud, tt.level)
		if !cloud.AffectsHostiles {
			t.Errorf("level %d: freezing cloud must target hostiles", tt.level)
		}
		if len(cloud.Effects) != 2 {
			t.Fatalf("level %d: expected 2 effects, got %d", tt.level, len(cloud.Effects))
		}
		for _, eff := range cloud.Effects {
			if eff.Duration != tt.duration || eff.Amplifier != tt.amplifier {
				t.Errorf("level %d: %s = %d/%d, want %d/%d", tt.level, eff.Tag,
					eff.Duration, eff.Amplifier, tt.duration, tt.amplifier)
			}
		}
		if cloud.Duration != 100 || cloud.Radius != 3 {
			t.Errorf("level %d: freezing must not change size or duration", tt.level)
		}
	}
}

func TestHealingRegeneration(t *testing.T) {
	tests := []struct {
		level   int
		regen   bool
		amplify int
	}{
		{3, false, 0},
		{4, true, 0},
		{5, true, 1},
		{6, true, 2},
	}
	for _, tt := range tests {
		cloud := &component.AreaCloud{}
		(&Healing{}).ApplyToCloud(cloud, tt.level)
		if cloud.AffectsHostiles {
			t.Errorf("level %d: healing cloud must target allies", tt.level)
		}
		var regen *component.TimedEffect
		for i := range cloud.Effects {
			if cloud.Effects[i].Tag == types.EffectRegeneration {
				regen = &cloud.Effects[i]
			}
		}
		if (regen != nil) != tt.regen {
			t.Fatalf("level %d: regeneration present = %v, want %v", tt.level, regen != nil, tt.regen)
		}
		if regen != nil && regen.Amplifier != tt.amplify {
			t.Errorf("level %d: regeneration amplifier = %d, want %d", tt.level, regen.Amplifier, tt.amplify)
		}
	}
}

func TestGravityPullBoundaries(t *testing.T) {
	const radius, strength = 8.0, 0.9

	if got := GravityPull(utils.Vec3{X: radius}, radius, strength); got != (utils.Vec3{}) {
		t.Errorf("pull at R = %+v, want zero", got)
	}
	if got := GravityPull(utils.Vec3{X: 0.4}, radius, strength); got != (utils.Vec3{}) {
		t.Errorf("pull inside the event horizon = %+v, want zero", got)
	}

	half := GravityPull(utils.Vec3{X: radius / 2}, radius, strength)
	if half.X <= 0 || half.Y != 0 || half.Z != 0 {
		t.Fatalf("pull at R/2 = %+v, want positive X towards the centre", half)
	}
	if half.Length() > gravityMaxSpeed+1e-9 {
		t.Errorf("pull at R/2 = %v exceeds max speed", half.Length())
	}
	if want := strength * 0.25; math.Abs(half.Length()-want) > 1e-9 {
		t.Errorf("pull at R/2 = %v, want %v", half.Length(), want)
	}

	if strong := GravityPull(utils.Vec3{Z: 1}, radius, 100); math.Abs(strong.Length()-gravityMaxSpeed) > 1e-9 {
		t.Errorf("strong pull = %v, want capped at %v", strong.Length(), gravityMaxSpeed)
	}
}

func TestGravityProcessPullsHostilesAndItems(t *testing.T) {
	w := world.New(nil)
	zombie := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: 3}})
	item := w.AddEntity(component.Entity{Kind: types.KindItem, Position: utils.Vec3{X: -3}})
	player := w.AddEntity(component.Entity{Kind: types.KindPlayer, Position: utils.Vec3{Z: 3}})
	cloud := spawnCloud(w, utils.Vec3{}, 3)

	g := &Gravity{}
	g.ApplyToCloud(cloud, 1)
	g.Process(w, cloud, 1)
	if e, _ := w.Entity(zombie); e.Velocity != (utils.Vec3{}) {
		t.Fatalf("gravity pulsed on the first tick: %+v", e.Velocity)
	}
	g.Process(w, cloud, 1)

	z, _ := w.Entity(zombie)
	i, _ := w.Entity(item)
	p, _ := w.Entity(player)
	if z.Velocity.X >= 0 {
		t.Errorf("hostile velocity = %+v, want pull towards -X", z.Velocity)
	}
	if i.Velocity.X <= 0 {
		t.Errorf("item velocity = %+v, want pull towards +X", i.Velocity)
	}
	if math.Abs(i.Velocity.X)*2-math.Abs(z.Velocity.X) > 1e-9 {
		t.Errorf("item pull %v should be half of hostile pull %v", i.Velocity.X, z.Velocity.X)
	}
	if p.Velocity != (utils.Vec3{}) {
		t.Errorf("players must not be pulled, got %+v", p.Velocity)
	}
}

func TestCharmNeedsTwoHostiles(t *testing.T) {
	w := world.New(nil)
	lone := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: 1}})
	cloud := spawnCloud(w, utils.Vec3{}, 4)

	c := NewCharm(testDeps(3))
	for i := 0; i < charmPulseTicks*3; i++ {
		c.Process(w, cloud, 3)
	}
	if _, ok := w.AttackTarget(lone); ok {
		t.Error("a single hostile must not be charmed")
	}
}

func TestCharmTurnsHostilesOnEachOther(t *testing.T) {
	w := world.New(nil)
	var ids []types.EntityID
	for i := 0; i < 3; i++ {
		ids = append(ids, w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: float64(i)}}))
	}
	outside := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: 20}})
	cloud := spawnCloud(w, utils.Vec3{}, 4)

	c := NewCharm(testDeps(7))
	for i := 0; i < charmPulseTicks-1; i++ {
		c.Process(w, cloud, 1)
	}
	if _, ok := w.AttackTarget(ids[0]); ok {
		t.Fatal("charm pulsed before its interval")
	}
	c.Process(w, cloud, 1)

	total := 0.0
	for _, id := range ids {
		target, ok := w.AttackTarget(id)
		if !ok {
			t.Fatalf("hostile %d got no target", id)
		}
		if target == id {
			t.Errorf("hostile %d targets itself", id)
		}
		total += w.DamageTaken(id)
	}
	if total != 3*charmDamage[0] {
		t.Errorf("total charm damage = %v, want %v", total, 3*charmDamage[0])
	}
	if w.DamageTaken(outside) != 0 {
		t.Error("hostile outside the cloud was charmed")
	}
}

// stickyWorld never removes anything, so only the processor's own
// bookkeeping can stop repeated conversions.
type stickyWorld struct {
	*world.World
	spawned []interfaces.CreatureSpec
}

func (s *stickyWorld) RemoveEntity(types.EntityID, bool) {}

func (s *stickyWorld) SpawnCreature(spec interfaces.CreatureSpec) types.EntityID {
	s.spawned = append(s.spawned, spec)
	return types.EntityID(10_000 + len(s.spawned))
}

func TestPolymorphConvertsEachEntityOnce(t *testing.T) {
	w := &stickyWorld{World: world.New(nil)}
	for i := 0; i < 4; i++ {
		w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{Z: float64(i)}})
	}
	cloud := spawnCloud(w.World, utils.Vec3{}, 5)

	p := NewPolymorph(testDeps(11))
	for i := 0; i < polymorphPulseTicks*20; i++ {
		p.Process(w, cloud, 3)
	}
	if len(w.spawned) != 4 {
		t.Errorf("conversions = %d, want exactly one per hostile (4)", len(w.spawned))
	}
}

func TestPolymorphReplacesHostile(t *testing.T) {
	events := event.NewDispatcher()
	var got []event.PolymorphData
	events.Subscribe(event.EntityPolymorphed, event.ListenerFunc(func(e event.Event) {
		got = append(got, e.Data.(event.PolymorphData))
	}))

	w := world.New(events)
	pos := utils.Vec3{X: 1, Z: 1}
	zombie := w.AddEntity(component.Entity{
		Kind: types.KindHostile, Species: "zombie", Position: pos, Yaw: 45, CustomName: "Bob",
	})
	cloud := spawnCloud(w, utils.Vec3{}, 4)

	deps := testDeps(5)
	deps.Events = events
	p := NewPolymorph(deps)
	for i := 0; i < polymorphPulseTicks; i++ {
		p.Process(w, cloud, 3)
	}

	if _, ok := w.Entity(zombie); ok {
		t.Fatal("hostile should be removed")
	}
	if len(got) != 1 {
		t.Fatalf("expected one polymorph event, got %d", len(got))
	}
	animal, ok := w.Entity(got[0].To)
	if !ok {
		t.Fatal("replacement creature missing")
	}
	if animal.Kind != types.KindPassive || animal.Position != pos || animal.Yaw != 45 || animal.CustomName != "Bob" {
		t.Errorf("replacement = %+v, want passive at %v with yaw 45 and name Bob", animal, pos)
	}
	for _, e := range w.Entities() {
		if e.Kind == types.KindItem {
			t.Errorf("polymorph dropped loot: %+v", e)
		}
	}
	if !p.(*Polymorph).Converted(zombie) {
		t.Error("converted set must contain the original id")
	}
}

func TestPolymorphRespectsPerPulseLimit(t *testing.T) {
	w := &stickyWorld{World: world.New(nil)}
	for i := 0; i < 15; i++ {
		w.AddEntity(component.Entity{Kind: types.KindHostile, Position: utils.Vec3{X: float64(i) * 0.1}})
	}
	cloud := spawnCloud(w.World, utils.Vec3{}, 5)

	p := NewPolymorph(testDeps(2))
	for i := 0; i < polymorphPulseTicks; i++ {
		p.Process(w, cloud, 3)
	}
	if len(w.spawned) != polymorphMaxProcessed {
		t.Errorf("first pulse converted %d, want %d", len(w.spawned), polymorphMaxProcessed)
	}
}
