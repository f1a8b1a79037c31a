// internal/state/ground.go
package state

import (
	"image/color"

	"go-companion-combat/pkg/render"
	"go-companion-combat/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GroundRenderer рисует сетку клеток земли, окрашенных по биому.
// Картинка строится один раз и потом только копируется на экран.
type GroundRenderer struct {
	camera   render.Camera
	cellSize float64 // в блоках
	colorAt  func(utils.Vec3) color.RGBA
	mapImage *ebiten.Image
}

func NewGroundRenderer(camera render.Camera, cellSize float64, colorAt func(utils.Vec3) color.RGBA) *GroundRenderer {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &GroundRenderer{camera: camera, cellSize: cellSize, colorAt: colorAt}
}

// RenderMapImage перестраивает кэшированную картинку земли.
func (r *GroundRenderer) RenderMapImage() {
	if r.mapImage == nil {
		r.mapImage = ebiten.NewImage(r.camera.ScreenWidth, r.camera.ScreenHeight)
	}
	r.mapImage.Clear()

	topLeft := r.camera.ScreenToWorld(0, 0)
	bottomRight := r.camera.ScreenToWorld(float32(r.camera.ScreenWidth), float32(r.camera.ScreenHeight))
	px := float32(r.cellSize * r.camera.Scale)
	for z := snap(topLeft.Z, r.cellSize); z < bottomRight.Z; z += r.cellSize {
		for x := snap(topLeft.X, r.cellSize); x < bottomRight.X; x += r.cellSize {
			cell := utils.Vec3{X: x, Z: z}
			sx, sy := r.camera.WorldToScreen(cell)
			clr := r.colorAt(cell.Add(utils.Vec3{X: r.cellSize / 2, Z: r.cellSize / 2}))
			vector.DrawFilledRect(r.mapImage, sx, sy, px, px, clr, false)
			vector.StrokeRect(r.mapImage, sx, sy, px, px, 1, render.DarkenColor(clr), false)
		}
	}
}

// Draw копирует картинку земли на экран, строя её при первом вызове.
func (r *GroundRenderer) Draw(screen *ebiten.Image) {
	if r.mapImage == nil {
		r.RenderMapImage()
	}
	screen.DrawImage(r.mapImage, nil)
}

func snap(v, step float64) float64 {
	n := int(v / step)
	if float64(n)*step > v {
		n--
	}
	return float64(n) * step
}
