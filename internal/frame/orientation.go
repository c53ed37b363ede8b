package frame

import "math"

// Roll returns the rotation about the x axis in radians.
func Roll(x, y, z float64) float64 {
	return math.Atan2(y, z)
}

// Pitch returns the rotation about the y axis in radians.
func Pitch(x, y, z float64) float64 {
	return math.Atan2(-x, math.Sqrt(y*y+z*z))
}

func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
