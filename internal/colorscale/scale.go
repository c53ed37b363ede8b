// Package colorscale maps a numeric domain linearly onto a two-color range.
package colorscale

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with channels in [0, 1].
type Color = colorful.Color

// Scale interpolates each RGB channel independently between Low and High.
// Values outside [Min, Max] extrapolate unless Clamp is set.
type Scale struct {
	Min, Max  float64
	Low, High Color
	Clamp     bool
}

// New builds an extrapolating scale over [min, max].
func New(min, max float64, low, high Color) Scale {
	return Scale{Min: min, Max: max, Low: low, High: high}
}

// Clamped returns a copy of s that pins out-of-domain values to the endpoints.
func (s Scale) Clamped() Scale {
	s.Clamp = true
	return s
}

// T returns the normalized position of v within the domain.
// A degenerate domain maps everything to 0.
func (s Scale) T(v float64) float64 {
	if s.Max == s.Min {
		return 0
	}
	t := (v - s.Min) / (s.Max - s.Min)
	if s.Clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return t
}

// At maps v onto the color range.
func (s Scale) At(v float64) Color {
	t := s.T(v)
	return Color{
		R: lerp(s.Low.R, s.High.R, t),
		G: lerp(s.Low.G, s.High.G, t),
		B: lerp(s.Low.B, s.High.B, t),
	}
}

// Func exposes the scale as a plain mapping function.
func (s Scale) Func() func(float64) Color {
	return s.At
}

// lerp is exact at both endpoints: lerp(a, b, 0) == a and lerp(a, b, 1) == b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// MustParseHex parses "#rrggbb" and panics on malformed input.
func MustParseHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	return colorful.Hex(s)
}

// Hex formats c as "#rrggbb", clamping out-of-gamut channels.
func Hex(c Color) string {
	return c.Clamped().Hex()
}

var (
	Blue = Color{R: 0, G: 0, B: 1}
	Red  = Color{R: 1, G: 0, B: 0}
)
