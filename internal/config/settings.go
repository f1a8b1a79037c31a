package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings — параметры запуска, читаются из переменных окружения.
type Settings struct {
	DefsPath       string `env:"COMPANION_DEFS_PATH"`
	Seed           int64  `env:"COMPANION_SEED" envDefault:"0"`
	ProtectPlayers bool   `env:"COMPANION_PROTECT_PLAYERS" envDefault:"false"`
	Headless       bool   `env:"COMPANION_HEADLESS" envDefault:"false"`
	Ticks          int    `env:"COMPANION_TICKS" envDefault:"600"`
	StatePath      string `env:"COMPANION_STATE_PATH"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if s.Ticks < 0 {
		s.Ticks = 0
	}
	return s, nil
}
