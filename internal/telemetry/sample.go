package telemetry

import "math"

// NumFields is the number of data fields per row.
const NumFields = 5

// Sample is one parsed telemetry row.
type Sample struct {
	X            float64
	Y            float64
	Z            float64
	TemperatureC float64
	Light        float64
}

func sampleFromFields(f [NumFields]float64) Sample {
	return Sample{X: f[0], Y: f[1], Z: f[2], TemperatureC: f[3], Light: f[4]}
}

// IsValid reports whether every field is a finite number.
func (s Sample) IsValid() bool {
	for _, v := range [...]float64{s.X, s.Y, s.Z, s.TemperatureC, s.Light} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
