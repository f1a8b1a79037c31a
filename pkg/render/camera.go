// pkg/render/camera.go
package render

import "go-companion-combat/pkg/utils"

// Camera — ортографическая проекция сверху: X мира идёт вправо, Z вниз.
type Camera struct {
	Center       utils.Vec3
	Scale        float64 // пикселей на блок
	ScreenWidth  int
	ScreenHeight int
}

// WorldToScreen projects p onto the screen. Height is ignored.
func (c Camera) WorldToScreen(p utils.Vec3) (float32, float32) {
	x := (p.X-c.Center.X)*c.Scale + float64(c.ScreenWidth)/2
	y := (p.Z-c.Center.Z)*c.Scale + float64(c.ScreenHeight)/2
	return float32(x), float32(y)
}

// ScreenToWorld is the inverse of WorldToScreen on the ground plane.
func (c Camera) ScreenToWorld(x, y float32) utils.Vec3 {
	if c.Scale == 0 {
		return c.Center
	}
	return utils.Vec3{
		X: (float64(x)-float64(c.ScreenWidth)/2)/c.Scale + c.Center.X,
		Z: (float64(y)-float64(c.ScreenHeight)/2)/c.Scale + c.Center.Z,
	}
}

// Visible reports whether p projects inside the screen with margin pixels of slack.
func (c Camera) Visible(p utils.Vec3, margin float32) bool {
	x, y := c.WorldToScreen(p)
	return x >= -margin && y >= -margin && x <= float32(c.ScreenWidth)+margin && y <= float32(c.ScreenHeight)+margin
}
