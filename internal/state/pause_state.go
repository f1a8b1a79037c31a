// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-companion-combat/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// Pausable — состояние, которое умеет снимать себя с паузы.
type Pausable interface {
	State
	SetPaused(paused bool)
}

type PauseState struct {
	stateMachine  *StateMachine
	previousState Pausable
}

func NewPauseState(sm *StateMachine, prevState Pausable) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if !unpause {
		return
	}
	// SandboxState.Enter снимает паузу с кнопки и симуляции
	s.stateMachine.SetState(s.previousState)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	pauseText := "PAUSED"
	x := (config.ScreenWidth - len(pauseText)*7) / 2
	text.Draw(screen, pauseText, basicfont.Face7x13, x, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {}
