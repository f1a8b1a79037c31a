// internal/ui/pause_button.go
package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// PauseButton — кнопка паузы: две полосы, на паузе — треугольник «play».
type PauseButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	IsPaused      bool
	PauseColor    color.Color
	PlayColor     color.Color
}

func NewPauseButton(x, y, size float32, pauseColor, playColor color.Color) *PauseButton {
	return &PauseButton{
		X:          x,
		Y:          y,
		Size:       size,
		PauseColor: pauseColor,
		PlayColor:  playColor,
	}
}

func (b *PauseButton) Draw(screen *ebiten.Image) {
	rectSize := b.Size * clickScale(time.Since(b.LastClickTime).Seconds())

	if b.IsPaused {
		fillTriangle(screen,
			b.X-rectSize, b.Y-rectSize*1.2,
			b.X-rectSize, b.Y+rectSize*1.2,
			b.X+rectSize, b.Y,
			b.PlayColor)
		return
	}

	width := rectSize * 0.6
	height := rectSize * 2.0
	spacing := rectSize * 0.4
	for _, x := range []float32{b.X - width - spacing/2, b.X + spacing/2} {
		vector.DrawFilledRect(screen, x, b.Y-height/2, width, height, b.PauseColor, true)
		vector.StrokeRect(screen, x, b.Y-height/2, width, height, 1, color.White, true)
	}
}

// IsClicked проверяет попадание курсора в круг вокруг кнопки.
func (b *PauseButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	return dx*dx+dy*dy <= b.Size*b.Size*1.5*1.5
}

func (b *PauseButton) TogglePause() {
	b.IsPaused = !b.IsPaused
	b.LastClickTime = time.Now()
}

func (b *PauseButton) SetPaused(paused bool) {
	b.IsPaused = paused
}
