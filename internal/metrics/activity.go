package metrics

import (
	"math"

	"github.com/san-kum/cpxplay/internal/frame"
)

// Activity is the mean absolute change in acceleration magnitude between
// consecutive frames. Non-finite steps are skipped.
type Activity struct {
	name  string
	prev  float64
	have  bool
	sum   float64
	steps int
}

func NewActivity() *Activity {
	return &Activity{
		name: "activity",
	}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(f frame.Frame) {
	acc := f.Acceleration
	mag := math.Sqrt(acc.X*acc.X + acc.Y*acc.Y + acc.Z*acc.Z)
	if a.have {
		d := math.Abs(mag - a.prev)
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			a.sum += d
			a.steps++
		}
	}
	a.prev = mag
	a.have = true
}

func (a *Activity) Value() float64 {
	if a.steps == 0 {
		return 0
	}
	return a.sum / float64(a.steps)
}

func (a *Activity) Reset() {
	a.prev = 0
	a.have = false
	a.sum = 0
	a.steps = 0
}
