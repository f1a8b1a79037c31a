// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpeedButton переключает множитель скорости по кругу.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32, stateColors []color.RGBA) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	triangleSize := b.Size * clickScale(time.Since(b.LastClickTime).Seconds())
	clr := b.StateColors[b.CurrentState]

	height := triangleSize * 1.2
	width := triangleSize
	offset := width * 0.8

	// Левый треугольник
	fillTriangle(screen, b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2, clr)
	// Правый треугольник
	fillTriangle(screen, b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2, clr)
}

// IsClicked — круг, так как форма сложная
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx := float32(x) - b.X
	dy := float32(y) - b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) ToggleState() {
	b.CurrentState = (b.CurrentState + 1) % len(b.StateColors)
	b.LastClickTime = time.Now()
}
