// internal/ui/indicator.go
package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator — кружок, цвет которого показывает состояние планировщика атак.
// При смене состояния кружок коротко «вспыхивает».
type StateIndicator struct {
	X, Y       float32
	Radius     float32
	lastChange time.Time
	last       color.RGBA
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

func (i *StateIndicator) Draw(screen *ebiten.Image, stateColor color.RGBA) {
	if stateColor != i.last {
		i.last = stateColor
		i.lastChange = time.Now()
	}
	r := i.Radius * clickScale(time.Since(i.lastChange).Seconds())
	vector.DrawFilledCircle(screen, i.X, i.Y, r, stateColor, true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}
