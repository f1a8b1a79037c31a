// pkg/utils/vec.go
package utils

import "math"

// DegenerateLength is the length below which a direction vector is treated as zero.
const DegenerateLength = 1e-4

// Vec3 is a position or direction in world space. Y points up.
type Vec3 struct {
	X, Y, Z float64
}

// DefaultHeading is used wherever a direction cannot be derived.
var DefaultHeading = Vec3{0, 0, 1}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) LengthSq() float64 { return v.Dot(v) }

func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSq()) }

// DistanceSq returns the squared distance between two points.
func (v Vec3) DistanceSq(o Vec3) float64 { return v.Sub(o).LengthSq() }

// Distance returns the distance between two points.
func (v Vec3) Distance(o Vec3) float64 { return math.Sqrt(v.DistanceSq(o)) }

// Horizontal drops the vertical component.
func (v Vec3) Horizontal() Vec3 { return Vec3{v.X, 0, v.Z} }

// IsFinite reports whether every component is a real number.
func (v Vec3) IsFinite() bool {
	return Finite(v.X) && Finite(v.Y) && Finite(v.Z)
}

// Normalize returns the unit vector of v, or fallback when v is degenerate
// (shorter than DegenerateLength or not finite).
func (v Vec3) Normalize(fallback Vec3) Vec3 {
	if !v.IsFinite() {
		return fallback
	}
	l := v.Length()
	if l < DegenerateLength {
		return fallback
	}
	return v.Scale(1 / l)
}

// ClampLength scales v down so that its length does not exceed max.
func (v Vec3) ClampLength(max float64) Vec3 {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// RotateHorizontal rotates the (x, z) part of v by angle radians around the
// vertical axis. Y is preserved. Near-vertical vectors are returned unchanged.
func (v Vec3) RotateHorizontal(angle float64) Vec3 {
	if v.X*v.X+v.Z*v.Z < DegenerateLength*DegenerateLength {
		return v
	}
	sin, cos := math.Sincos(angle)
	return Vec3{
		X: v.X*cos - v.Z*sin,
		Y: v.Y,
		Z: v.X*sin + v.Z*cos,
	}
}
