// internal/app/waves.go
package app

import (
	"maps"
	"math"
	"slices"

	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/event"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/utils"
	"go-companion-combat/internal/world"
	"go-companion-combat/pkg/logger"
	vec "go-companion-combat/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Wave — текущая волна враждебных мобов
type Wave struct {
	Number        int
	ToSpawn       int
	SpawnTimer    int
	SpawnInterval int // в тиках
}

var waveSpecies = []string{"zombie", "skeleton", "spider", "husk"}

// WaveSpawner выпускает волны мобов на кольце вокруг игрока и ведёт их к нему.
// Очарованные мобы идут к своей цели атаки, а не к игроку.
type WaveSpawner struct {
	world    *world.World
	events   *event.Dispatcher
	rng      *utils.PRNGService
	playerID types.EntityID

	current *Wave
	active  map[types.EntityID]struct{}
	Leaked  int // мобы, дошедшие до игрока
	Killed  int
}

func NewWaveSpawner(w *world.World, events *event.Dispatcher, rng *utils.PRNGService, playerID types.EntityID) *WaveSpawner {
	ws := &WaveSpawner{
		world:    w,
		events:   events,
		rng:      rng,
		playerID: playerID,
		active:   make(map[types.EntityID]struct{}),
	}
	if events != nil {
		events.Subscribe(event.EntityKilled, ws)
		events.Subscribe(event.EntityPolymorphed, ws)
	}
	return ws
}

// OnEvent убирает из учёта убитых и превращённых мобов.
func (s *WaveSpawner) OnEvent(e event.Event) {
	switch e.Type {
	case event.EntityKilled:
		data, ok := e.Data.(event.KillData)
		if !ok {
			return
		}
		if _, tracked := s.active[data.VictimID]; tracked {
			delete(s.active, data.VictimID)
			s.Killed++
		}
	case event.EntityPolymorphed:
		if data, ok := e.Data.(event.PolymorphData); ok {
			delete(s.active, data.From)
		}
	}
}

// StartWave готовит волну с номером n.
func (s *WaveSpawner) StartWave(n int) *Wave {
	s.current = &Wave{
		Number:        n,
		ToSpawn:       config.WaveBaseSize + config.WaveGrowth*(n-1),
		SpawnInterval: config.WaveSpawnIntervalTicks,
	}
	logger.Log.WithFields(logrus.Fields{"wave": n, "mobs": s.current.ToSpawn}).Info("sandbox: wave started")
	return s.current
}

func (s *WaveSpawner) Current() *Wave { return s.current }
func (s *WaveSpawner) Active() int    { return len(s.active) }

// Number returns the current wave number, 0 before the first wave.
func (s *WaveSpawner) Number() int {
	if s.current == nil {
		return 0
	}
	return s.current.Number
}

// Update — один тик: появление, движение, следующая волна.
func (s *WaveSpawner) Update() {
	if s.current == nil {
		s.StartWave(1)
	}
	wave := s.current
	if wave.ToSpawn > 0 {
		wave.SpawnTimer++
		if wave.SpawnTimer >= wave.SpawnInterval {
			s.spawnHostile()
			wave.ToSpawn--
			wave.SpawnTimer = 0
		}
	}
	s.steer()
	if wave.ToSpawn == 0 && len(s.active) == 0 {
		s.StartWave(wave.Number + 1)
	}
}

func (s *WaveSpawner) spawnHostile() {
	player, ok := s.world.Entity(s.playerID)
	if !ok {
		return
	}
	angle := utils.DegToRad(float64(s.rng.Intn(360)))
	pos := player.Position.Add(vec.Vec3{
		X: math.Cos(angle) * config.WaveSpawnRadius,
		Z: math.Sin(angle) * config.WaveSpawnRadius,
	})
	id := s.world.AddEntity(component.Entity{
		Kind:     types.KindHostile,
		Species:  waveSpecies[s.rng.Intn(len(waveSpecies))],
		Region:   player.Region,
		Position: pos,
	})
	s.active[id] = struct{}{}
}

// steer двигает мобов к цели. Замедление снижает скорость на 15% за уровень.
func (s *WaveSpawner) steer() {
	player, ok := s.world.Entity(s.playerID)
	if !ok {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(s.active)) {
		mob, ok := s.world.Entity(id)
		if !ok || !mob.Alive {
			delete(s.active, id)
			continue
		}
		goal := player.Position
		chasing := false
		if targetID, has := s.world.AttackTarget(id); has {
			if target, alive := s.world.Entity(targetID); alive && target.Alive {
				goal = target.Position
				chasing = true
			}
		}

		offset := goal.Sub(mob.Position).Horizontal()
		if !chasing && offset.LengthSq() <= config.WaveReachDistance*config.WaveReachDistance {
			s.leak(mob)
			continue
		}
		speed := config.WaveMobSpeed * slowFactor(s.world, id)
		step := offset.Normalize(vec.Vec3{}).Scale(math.Min(speed, offset.Length()))
		s.world.MoveEntity(id, mob.Position.Add(step))
		s.world.TurnEntity(id, utils.YawOf(offset.X, offset.Z))
	}
}

func (s *WaveSpawner) leak(mob component.Entity) {
	delete(s.active, mob.ID)
	s.world.RemoveEntity(mob.ID, false)
	s.Leaked++
	logger.Log.WithFields(logrus.Fields{"mob": mob.ID, "species": mob.Species}).Debug("sandbox: mob reached the player")
}

func slowFactor(w *world.World, id types.EntityID) float64 {
	eff, ok := w.Effect(id, types.EffectSlowness)
	if !ok {
		return 1
	}
	return vec.Clamp(1-0.15*float64(eff.Amplifier+1), 0, 1)
}
