// cmd/sandbox/main.go
package main

import (
	"os"
	"time"

	"go-companion-combat/internal/app"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/defs"
	"go-companion-combat/internal/state"
	"go-companion-combat/pkg/logger"

	"github.com/hajimehoshi/ebiten/v2"
)

const startFromSandbox = false // true — сразу в песочницу, false — с меню

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		logger.Log.WithError(err).Fatal("sandbox: bad settings")
	}
	logger.Init(settings.LogLevel, settings.LogFormat)

	store := defs.NewStore(nil)
	if settings.DefsPath != "" {
		if err := store.Reload(settings.DefsPath); err != nil {
			logger.Log.WithError(err).Fatal("sandbox: cannot load balance")
		}
	}

	sandbox, err := app.NewSandbox(settings, store)
	if err != nil {
		logger.Log.WithError(err).Fatal("sandbox: setup failed")
	}

	if settings.Headless {
		sandbox.Run(settings.Ticks)
		if settings.StatePath != "" {
			if err := sandbox.Save(settings.StatePath); err != nil {
				logger.Log.WithError(err).Error("sandbox: save failed")
				os.Exit(1)
			}
		}
		return
	}

	sm := state.NewStateMachine()
	if startFromSandbox {
		sm.SetState(state.NewSandboxState(sm, sandbox))
	} else {
		sm.SetState(state.NewMenuState(sm, sandbox))
	}
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Companion Combat Sandbox")
	if err := ebiten.RunGame(game); err != nil {
		logger.Log.WithError(err).Fatal("sandbox: run failed")
	}
}
