// internal/utils/math.go
package utils

import "math"

// Lerp выполняет стандартную линейную интерполяцию
func Lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

// DegToRad переводит градусы в радианы
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// NormalizeAngle нормализует угол (в градусах) в диапазон [-180, 180)
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle+180, 360)
	if angle < 0 {
		angle += 360
	}
	return angle - 180
}

// YawOf возвращает угол поворота (в градусах) для горизонтального направления.
func YawOf(dx, dz float64) float64 {
	if dx == 0 && dz == 0 {
		return 0
	}
	return NormalizeAngle(-math.Atan2(dx, dz) * 180 / math.Pi)
}
