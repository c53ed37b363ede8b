package metrics

import (
	"math"

	"github.com/san-kum/cpxplay/internal/frame"
)

// MeanLight averages the finite light readings.
type MeanLight struct {
	name    string
	total   float64
	samples int
}

func NewMeanLight() *MeanLight {
	return &MeanLight{name: "mean_light"}
}

func (m *MeanLight) Name() string { return m.name }

func (m *MeanLight) Observe(f frame.Frame) {
	if math.IsNaN(f.Light) || math.IsInf(f.Light, 0) {
		return
	}
	m.total += f.Light
	m.samples++
}

func (m *MeanLight) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanLight) Reset() {
	m.total = 0
	m.samples = 0
}
