package app

import (
	"math"
	"path/filepath"
	"testing"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
	"go-companion-combat/internal/world"
	"go-companion-combat/pkg/logger"
	vec "go-companion-combat/pkg/utils"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	logger.Silence()
	s, err := NewSandbox(config.Settings{Seed: 3}, nil)
	if err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
	return s
}

func TestBiomeAt(t *testing.T) {
	tests := []struct {
		pos  vec.Vec3
		want types.Biome
	}{
		{vec.Vec3{}, types.BiomePlains},
		{vec.Vec3{X: 3}, types.BiomePlains},
		{vec.Vec3{X: 10, Z: 10}, "desert"},
		{vec.Vec3{X: -10, Z: 10}, "snowy_plains"},
		{vec.Vec3{X: -10, Z: -10}, "meadow"},
		{vec.Vec3{X: 10, Z: -10}, "savanna"},
	}
	for _, tt := range tests {
		if got := BiomeAt(tt.pos); got != tt.want {
			t.Errorf("BiomeAt(%v) = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestNewSandboxLineup(t *testing.T) {
	s := newTestSandbox(t)
	if _, ok := s.World.Entity(s.PlayerID); !ok {
		t.Fatal("player entity missing")
	}
	members := s.Members()
	if len(members) != len(lineup) {
		t.Fatalf("members = %d, want %d", len(members), len(lineup))
	}
	if got := len(s.Companions.Units()); got != len(lineup) {
		t.Errorf("registered units = %d, want %d", got, len(lineup))
	}
	for i, c := range members {
		st := c.State()
		if st.Element != lineup[i].element || st.Level != lineup[i].level {
			t.Errorf("member %d: element %s level %d", i, st.Element, st.Level)
		}
		for slot, want := range lineup[i].slots {
			if st.Enchantments[slot] != want {
				t.Errorf("member %d slot %d = %+v, want %+v", i, slot, st.Enchantments[slot], want)
			}
		}
		e, ok := s.World.Entity(c.EntityID())
		if !ok || e.Kind != types.KindCompanion || e.OwnerID != s.PlayerID {
			t.Errorf("member %d entity = %+v", i, e)
		}
	}
}

func TestUpdateRespectsPauseAndFrameCap(t *testing.T) {
	s := newTestSandbox(t)
	s.SetPaused(true)
	s.Update(1.0)
	if s.Tick() != 0 {
		t.Fatalf("paused sandbox advanced to tick %d", s.Tick())
	}
	s.SetPaused(false)
	s.Update(1.0)
	if s.Tick() != config.StepsPerFrameMax {
		t.Errorf("tick = %d, want %d", s.Tick(), config.StepsPerFrameMax)
	}
	s.SetSpeed(2)
	before := s.Tick()
	s.Update(0.1) // 0.2 с игрового времени = 4 тика
	if got := s.Tick() - before; got < 3 || got > 5 {
		t.Errorf("advanced %d ticks at x2, want about 4", got)
	}
}

func TestHeadlessRunKillsHostiles(t *testing.T) {
	s := newTestSandbox(t)
	s.Run(60 * config.TicksPerSecond)
	if s.Tick() != 60*config.TicksPerSecond {
		t.Errorf("tick = %d", s.Tick())
	}
	if s.Waves.Killed == 0 {
		t.Errorf("no hostile killed in a minute (leaked %d, active %d)", s.Waves.Leaked, s.Waves.Active())
	}
}

func TestItemPickupFeedsCompanions(t *testing.T) {
	s := newTestSandbox(t)
	c := s.Members()[0]
	st := c.State()
	st.Satiation = 1
	c.Restore(st)

	s.World.AddEntity(component.Entity{Kind: types.KindItem, Species: "zombie_drop", Position: vec.Vec3{X: 0.5}})
	s.collectItems()
	if s.Collected != 1 {
		t.Fatalf("collected = %d, want 1", s.Collected)
	}
	if got := c.State().Satiation; got != 1+config.PickupSatiation {
		t.Errorf("satiation = %v, want %v", got, 1+config.PickupSatiation)
	}
}

func TestSaveLoadRoster(t *testing.T) {
	s := newTestSandbox(t)
	path := filepath.Join(t.TempDir(), "roster.cbor")
	want := make([]component.CreatureState, 0)
	for _, c := range s.Members() {
		c.AddExperience(3)
		want = append(want, c.State())
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, err := NewSandbox(config.Settings{Seed: 4, StatePath: path}, nil)
	if err != nil {
		t.Fatalf("NewSandbox with state: %v", err)
	}
	for i, c := range other.Members() {
		if c.State() != want[i] {
			t.Errorf("member %d: got %+v, want %+v", i, c.State(), want[i])
		}
	}
}

func TestMissingStateFileIsIgnored(t *testing.T) {
	logger.Silence()
	path := filepath.Join(t.TempDir(), "absent.cbor")
	if _, err := NewSandbox(config.Settings{StatePath: path}, nil); err != nil {
		t.Fatalf("NewSandbox: %v", err)
	}
}

func TestWaveSpawnerSteersAndLeaks(t *testing.T) {
	logger.Silence()
	events := event.NewDispatcher()
	w := world.New(events)
	player := w.AddEntity(component.Entity{Kind: types.KindPlayer})
	ws := NewWaveSpawner(w, events, utils.NewPRNGService(1), player)
	ws.StartWave(1)

	mob := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: vec.Vec3{X: 3}})
	ws.active[mob] = struct{}{}
	ws.steer()
	e, _ := w.Entity(mob)
	if diff := 3 - e.Position.X; diff < config.WaveMobSpeed-1e-9 || diff > config.WaveMobSpeed+1e-9 {
		t.Errorf("moved %v, want %v", diff, config.WaveMobSpeed)
	}
	if math.Abs(e.Yaw-90) > 1e-9 {
		t.Errorf("yaw = %v, want 90 (facing -X)", e.Yaw)
	}

	w.ApplyTimedEffect(mob, types.EffectSlowness, 100, 1)
	before, _ := w.Entity(mob)
	ws.steer()
	after, _ := w.Entity(mob)
	want := config.WaveMobSpeed * 0.7
	if diff := before.Position.X - after.Position.X; diff < want-1e-9 || diff > want+1e-9 {
		t.Errorf("slowed step = %v, want %v", diff, want)
	}

	w.MoveEntity(mob, vec.Vec3{X: 1})
	ws.steer()
	if _, ok := w.Entity(mob); ok {
		t.Error("mob next to the player should leak")
	}
	if ws.Leaked != 1 || ws.Active() != 0 {
		t.Errorf("leaked %d active %d", ws.Leaked, ws.Active())
	}
}

func TestCharmedMobChasesItsTarget(t *testing.T) {
	logger.Silence()
	w := world.New(nil)
	player := w.AddEntity(component.Entity{Kind: types.KindPlayer})
	ws := NewWaveSpawner(w, nil, utils.NewPRNGService(1), player)
	ws.StartWave(1)

	a := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: vec.Vec3{X: 5}})
	b := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: vec.Vec3{X: 5, Z: 5}})
	ws.active[a] = struct{}{}
	w.SetAttackTarget(a, b)
	ws.steer()
	e, _ := w.Entity(a)
	if e.Position.X != 5 || e.Position.Z <= 0 {
		t.Errorf("charmed mob at %v, want moving along +Z", e.Position)
	}
}

func TestKillsAreCounted(t *testing.T) {
	logger.Silence()
	events := event.NewDispatcher()
	w := world.New(events)
	player := w.AddEntity(component.Entity{Kind: types.KindPlayer})
	ws := NewWaveSpawner(w, events, utils.NewPRNGService(1), player)
	mob := w.AddEntity(component.Entity{Kind: types.KindHostile, Position: vec.Vec3{X: 8}})
	ws.active[mob] = struct{}{}

	w.ApplyDamage(mob, 1000, component.DamageSource{Kind: types.DamageMagic})
	if ws.Killed != 1 || ws.Active() != 0 {
		t.Errorf("killed %d active %d", ws.Killed, ws.Active())
	}
}
