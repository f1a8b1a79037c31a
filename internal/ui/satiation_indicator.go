// internal/ui/satiation_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	SatiationCells        = 10
	SatiationCircleRadius = 5.0
	SatiationSpacing      = 3.0
)

var (
	satiationFull = color.RGBA{230, 160, 60, 255}
	satiationLow  = color.RGBA{200, 40, 40, 255}
	satiationNone = color.RGBA{0, 0, 0, 255}
)

// SatiationIndicator — ряд кружков сытости, как «сердечки» здоровья.
type SatiationIndicator struct {
	X, Y float32
}

func NewSatiationIndicator(x, y float32) *SatiationIndicator {
	return &SatiationIndicator{X: x, Y: y}
}

// Draw рисует сытость value из max. Ниже четверти кружки краснеют.
func (i *SatiationIndicator) Draw(screen *ebiten.Image, value, maxValue float64) {
	filled := 0
	if maxValue > 0 {
		filled = int(value / maxValue * SatiationCells)
		if value > 0 && filled == 0 {
			filled = 1
		}
	}
	low := maxValue > 0 && value < maxValue/4

	step := float32(SatiationCircleRadius*2 + SatiationSpacing)
	for j := 0; j < SatiationCells; j++ {
		cx := i.X + float32(j)*step + SatiationCircleRadius
		cy := i.Y + SatiationCircleRadius
		clr := satiationNone
		if j < filled {
			clr = satiationFull
			if low {
				clr = satiationLow
			}
		}
		vector.DrawFilledCircle(screen, cx, cy, SatiationCircleRadius, clr, true)
		vector.StrokeCircle(screen, cx, cy, SatiationCircleRadius, 1, color.White, true)
	}

	label := fmt.Sprintf("%.0f/%.0f", value, maxValue)
	text.Draw(screen, label, basicfont.Face7x13, int(i.X+SatiationCells*step+6), int(i.Y+SatiationCircleRadius*2), color.White)
}
