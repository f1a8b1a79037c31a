// internal/ui/shapes.go
package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whitePixel *ebiten.Image

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(3, 3)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// fillTriangle рисует залитый треугольник с белой обводкой.
func fillTriangle(screen *ebiten.Image, x1, y1, x2, y2, x3, y3 float32, clr color.Color) {
	var path vector.Path
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	path.LineTo(x3, y3)
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteImage(), op)

	vector.StrokeLine(screen, x1, y1, x2, y2, 1, color.White, true)
	vector.StrokeLine(screen, x2, y2, x3, y3, 1, color.White, true)
	vector.StrokeLine(screen, x3, y3, x1, y1, 1, color.White, true)
}

// clickScale — «пружинка» после нажатия
func clickScale(elapsedSeconds float64) float32 {
	return float32(1.0 + 0.3*math.Exp(-elapsedSeconds*8))
}
