package metrics

import (
	"math"

	"github.com/san-kum/cpxplay/internal/frame"
)

// Level is the fraction of frames whose pitch and roll both stay within
// threshold degrees of flat. Frames with unknown orientation count as tilted.
type Level struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewLevel(threshold float64) *Level {
	return &Level{
		name:      "level",
		threshold: threshold,
	}
}

func (l *Level) Name() string {
	return l.name
}

func (l *Level) Observe(f frame.Frame) {
	l.samples++
	if !(math.Abs(f.Pitch) <= l.threshold && math.Abs(f.Roll) <= l.threshold) {
		l.violations++
	}
}

func (l *Level) Value() float64 {
	if l.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(l.violations)/float64(l.samples)
}

func (l *Level) Reset() {
	l.violations = 0
	l.samples = 0
}
