// internal/ui/level_indicator.go
package ui

import (
	"image/color"

	"go-companion-combat/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// LevelIndicator отображает уровень и опыт компаньона.
type LevelIndicator struct {
	X, Y float32
}

const (
	xpBarWidth      = 118
	xpBarHeight     = 10
	levelRectWidth  = 14
	levelRectHeight = 10
	levelRectGap    = 6
	borderWidth     = 1
)

var (
	xpBarColorFill = color.RGBA{70, 100, 120, 220}
	borderColor    = color.White
)

func NewLevelIndicator(x, y float32) *LevelIndicator {
	return &LevelIndicator{X: x, Y: y}
}

// Height — полная высота индикатора в пикселях
func (i *LevelIndicator) Height() float32 {
	return xpBarHeight + 6 + levelRectHeight
}

// Draw рисует полосу опыта и ряд квадратиков уровня. На максимальном
// уровне полоса заполнена целиком.
func (i *LevelIndicator) Draw(screen *ebiten.Image, level, currentXP, xpToNext int, fill color.Color) {
	if fill == nil {
		fill = xpBarColorFill
	}
	vector.StrokeRect(screen, i.X, i.Y, xpBarWidth, xpBarHeight, borderWidth, borderColor, true)

	fillRatio := 1.0
	if level < config.MaxLevel && xpToNext > 0 {
		fillRatio = float64(currentXP) / float64(xpToNext)
	}
	if fillRatio > 1.0 {
		fillRatio = 1.0
	}
	fillWidth := float32(float64(xpBarWidth-borderWidth*2) * fillRatio)
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, i.X+borderWidth, i.Y+borderWidth, fillWidth, xpBarHeight-borderWidth*2, fill, true)
	}

	rectY := i.Y + xpBarHeight + 6
	for j := 0; j < config.MaxLevel; j++ {
		rectX := i.X + float32(j)*(levelRectWidth+levelRectGap)
		vector.StrokeRect(screen, rectX, rectY, levelRectWidth, levelRectHeight, borderWidth, borderColor, true)
		if j < level {
			vector.DrawFilledRect(screen, rectX+borderWidth, rectY+borderWidth, levelRectWidth-borderWidth*2, levelRectHeight-borderWidth*2, fill, true)
		}
	}
}
