// Package metrics summarizes a recorded flight as scalar scores.
package metrics

import "github.com/san-kum/cpxplay/internal/frame"

// Metric accumulates one score over a sequence of frames.
type Metric interface {
	Name() string
	Observe(f frame.Frame)
	Value() float64
	Reset()
}

// Result is a named metric value.
type Result struct {
	Name  string
	Value float64
}

// Evaluate feeds every frame to each metric and collects the values in order.
func Evaluate(frames []frame.Frame, ms ...Metric) []Result {
	for _, m := range ms {
		m.Reset()
		for _, f := range frames {
			m.Observe(f)
		}
	}
	out := make([]Result, len(ms))
	for i, m := range ms {
		out[i] = Result{Name: m.Name(), Value: m.Value()}
	}
	return out
}

// Defaults returns the metrics reported by the stats command.
func Defaults() []Metric {
	return []Metric{
		NewLevel(10),
		NewActivity(),
		NewMeanLight(),
	}
}
