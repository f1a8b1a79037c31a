// internal/state/menu_state.go
package state

import (
	"go-companion-combat/internal/app"
	"go-companion-combat/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var menuLines = []string{
	"Companion combat sandbox",
	"",
	"SPACE  start",
	"P/F9   pause",
	"S      save roster (COMPANION_STATE_PATH)",
	"R      reload balance (COMPANION_DEFS_PATH)",
	"click  select entity, speed and pause buttons",
}

// MenuState — стартовый экран с подсказкой по управлению
type MenuState struct {
	sm      *StateMachine
	sandbox *app.Sandbox
}

func NewMenuState(sm *StateMachine, sandbox *app.Sandbox) *MenuState {
	return &MenuState{sm: sm, sandbox: sandbox}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		m.sm.SetState(NewSandboxState(m.sm, m.sandbox))
	}
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	y := config.ScreenHeight/2 - len(menuLines)*10
	for _, line := range menuLines {
		text.Draw(screen, line, basicfont.Face7x13, config.ScreenWidth/2-160, y, config.TextLightColor)
		y += 20
	}
}

func (m *MenuState) Exit() {}
