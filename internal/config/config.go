// internal/config/config.go
package config

import "image/color"

const (
	TicksPerSecond = 20
	MaxLevel       = 6
	MinLevel       = 1

	// Уровень, с которого попадание снаряда порождает облако
	CloudMinLevel = 3

	// Ограничения таблиц отслеживания одного менеджера облаков
	MaxTrackedProjectiles = 50
	MaxTrackedClouds      = 30

	CleanupIntervalTicks   = 40                  // ~2 секунды
	CloudMaxAgeTicks       = 30 * TicksPerSecond // жёсткий потолок возраста облака
	ProjectileTimeoutTicks = 200

	// Потолки боевых параметров
	MinDamage             = 1.0
	MinCooldownTicks      = 5
	MinHomeCooldownTicks  = 4
	MinExplosionPower     = 1
	SatiationDecaySeconds = 1200.0
	SatiationLevelFalloff = 0.9

	// Наведение
	TargetSearchRadius = 16.0
	TargetMaxRange     = 24.0

	// Мультивыстрел
	MultishotBaseSpreadDeg = 15.0
	MultishotMaxSpreadStep = 2.0

	VanillaFireballDamage = 6.0
	FireballBurnTicks     = 100

	// Снаряд считается остановившимся, если сдвинулся меньше чем на это расстояние
	ProjectileRestEpsilon = 0.01

	// Опыт за убийство
	KillExperienceHostile = 10
	KillExperiencePassive = 1
)

// Волны песочницы
const (
	WaveBaseSize           = 3
	WaveGrowth             = 2
	WaveSpawnIntervalTicks = TicksPerSecond
	WaveSpawnRadius        = 14.0
	WaveReachDistance      = 1.5
	WaveMobSpeed           = 0.06 // блоков за тик

	PickupRadius     = 1.5
	PickupSatiation  = 5.0
	StepsPerFrameMax = 8
)

// Sandbox window
const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	WorldScale   = 18.0 // pixels per block
	MaxDeltaTime = 0.06

	IndicatorOffsetX   = 30
	IndicatorRadius    = 5
	FeedAmount         = 20.0
	PauseButtonOffsetX = 40
	HUDPanelX          = 16
	HUDPanelY          = 60
	HUDCardHeight      = 78
	GroundCellSize     = 2.0 // блоков
	SpeedButtonOffsetX = 80
	SpeedButtonY       = 30
	SpeedButtonSize    = 12.0
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	HostileColor    = color.RGBA{200, 40, 40, 255}
	PassiveColor    = color.RGBA{240, 220, 200, 255}
	PlayerColor     = color.RGBA{50, 205, 50, 255}
	ItemColor       = color.RGBA{255, 215, 0, 255}
	StrokeColor     = color.RGBA{255, 255, 255, 255}
	ElementColors   = map[string]color.RGBA{
		"fire": {255, 90, 40, 255},
		"ice":  {120, 200, 255, 255},
		"wind": {200, 255, 220, 255},
		"sand": {220, 190, 120, 255},
	}
	ProjectileColor = color.RGBA{255, 255, 255, 255}
	ExplosionColor  = color.RGBA{255, 160, 40, 255}
	// Цвета облаков по подсказке частиц
	ParticleColors = map[string]color.RGBA{
		"happy_villager": {90, 220, 90, 255},
		"snowflake":      {180, 230, 255, 255},
		"heart":          {255, 110, 170, 255},
		"portal":         {150, 70, 220, 255},
		"witch":          {120, 40, 160, 255},
		"falling_dust":   {220, 190, 120, 255},
	}
	BiomeColors = map[string]color.RGBA{
		"plains":       {60, 90, 50, 255},
		"desert":       {120, 105, 70, 255},
		"snowy_plains": {90, 100, 115, 255},
		"meadow":       {70, 100, 70, 255},
		"savanna":      {100, 95, 55, 255},
	}
	SpeedButtonColors = []color.RGBA{
		{70, 130, 180, 220},  // x1
		{220, 60, 60, 220},   // x2
		{194, 178, 128, 255}, // x4, песочно-жёлтый
	}
	SpeedMultipliers = []float64{1, 2, 4}
	// Цвета состояний планировщика атак: Idle, Cooldown, TargetAcquired
	SchedulerColors = []color.RGBA{
		{120, 120, 120, 255},
		{70, 130, 180, 255},
		{220, 60, 60, 255},
	}
	PauseColor = color.RGBA{220, 60, 60, 220}
	PlayColor  = color.RGBA{70, 130, 180, 220}
)
