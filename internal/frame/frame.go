// Package frame derives animation frames from parsed telemetry samples.
package frame

import (
	"github.com/san-kum/cpxplay/internal/colorscale"
)

// DefaultIntervalMs is the synthetic spacing between consecutive frames.
const DefaultIntervalMs = 50.0

// Vec3 holds raw accelerometer axes.
type Vec3 struct {
	X, Y, Z float64
}

// Extremum is one end of the temperature range, in Fahrenheit.
type Extremum struct {
	Value float64
	Label string
	Color colorscale.Color
}

// Extrema is computed once over a whole batch and shared by every frame.
type Extrema struct {
	Minimum Extremum
	Maximum Extremum
}

// Frame is the derived, read-only record for one sample index.
type Frame struct {
	Acceleration Vec3

	TemperatureC float64
	TemperatureF float64
	Light        float64

	// TimeRecorded is the sample index; TimeLapse is its synthetic timestamp in ms.
	TimeRecorded int
	TimeLapse    float64

	// Degrees, for display.
	Pitch float64
	Roll  float64

	// Rotation is [pitch, yaw, roll] in radians; yaw is always 0.
	Rotation [3]float64
	Color    colorscale.Color

	MinimumTemperature Extremum
	MaximumTemperature Extremum
}

// ElapsedSeconds is the playback position of f in seconds.
func (f Frame) ElapsedSeconds() float64 {
	return f.TimeLapse / 1000
}
