package defs

// LevelDefinition holds the static per-level numbers of a companion.
type LevelDefinition struct {
	Level              int     `json:"level"`
	ExperienceToNext   int     `json:"experience_to_next"`
	MaxSatiation       float64 `json:"max_satiation"`
	BaseDamage         float64 `json:"base_damage"`
	CooldownTicks      int     `json:"cooldown_ticks"`
	ExplosionPower     int     `json:"explosion_power"`
	ControlStrength    float64 `json:"control_strength"`
	ProjectileSpeed    float64 `json:"projectile_speed"`
	CloudRadius        float64 `json:"cloud_radius"`
	CloudDurationTicks int     `json:"cloud_duration_ticks"`
}
