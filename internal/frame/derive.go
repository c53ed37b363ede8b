package frame

import (
	"errors"
	"math"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/telemetry"
)

// Config is the immutable derivation setup.
type Config struct {
	IntervalMs float64
	Cold       colorscale.Color // assigned to the minimum temperature
	Hot        colorscale.Color // assigned to the maximum temperature
	Clamp      bool
}

func DefaultConfig() Config {
	return Config{
		IntervalMs: DefaultIntervalMs,
		Cold:       colorscale.Blue,
		Hot:        colorscale.Red,
	}
}

var ErrInvalidInterval = errors.New("frame: interval must be positive")

// Deriver turns a batch of samples into frames.
type Deriver struct {
	cfg Config
}

func NewDeriver(cfg Config) (*Deriver, error) {
	if !(cfg.IntervalMs > 0) || math.IsInf(cfg.IntervalMs, 0) {
		return nil, ErrInvalidInterval
	}
	return &Deriver{cfg: cfg}, nil
}

func (d *Deriver) Config() Config { return d.cfg }

// ComputeExtrema returns the Fahrenheit minimum and maximum over samples.
// NaN temperatures propagate into both ends.
func (d *Deriver) ComputeExtrema(samples []telemetry.Sample) Extrema {
	if len(samples) == 0 {
		return Extrema{}
	}
	lo := CelsiusToFahrenheit(samples[0].TemperatureC)
	hi := lo
	for _, s := range samples[1:] {
		f := CelsiusToFahrenheit(s.TemperatureC)
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
	}
	return Extrema{
		Minimum: Extremum{Value: lo, Label: "minimum", Color: d.cfg.Cold},
		Maximum: Extremum{Value: hi, Label: "maximum", Color: d.cfg.Hot},
	}
}

// Scale builds the temperature color scale for the given extrema.
func (d *Deriver) Scale(ext Extrema) colorscale.Scale {
	s := colorscale.New(ext.Minimum.Value, ext.Maximum.Value, d.cfg.Cold, d.cfg.Hot)
	if d.cfg.Clamp {
		s = s.Clamped()
	}
	return s
}

// Derive converts every sample into a frame. Extrema and the color scale are
// computed once over the entire batch.
func (d *Deriver) Derive(samples []telemetry.Sample) []Frame {
	if len(samples) == 0 {
		return nil
	}

	ext := d.ComputeExtrema(samples)
	scale := d.Scale(ext)

	frames := make([]Frame, len(samples))
	for i, s := range samples {
		frames[i] = d.deriveOne(i, s, ext, scale)
	}
	return frames
}

func (d *Deriver) deriveOne(i int, s telemetry.Sample, ext Extrema, scale colorscale.Scale) Frame {
	pitch := Pitch(s.X, s.Y, s.Z)
	roll := Roll(s.X, s.Y, s.Z)
	tempF := CelsiusToFahrenheit(s.TemperatureC)

	return Frame{
		Acceleration:       Vec3{X: s.X, Y: s.Y, Z: s.Z},
		TemperatureC:       s.TemperatureC,
		TemperatureF:       tempF,
		Light:              s.Light,
		TimeRecorded:       i,
		TimeLapse:          float64(i) * d.cfg.IntervalMs,
		Pitch:              RadiansToDegrees(pitch),
		Roll:               RadiansToDegrees(roll),
		Rotation:           [3]float64{pitch, 0, roll},
		Color:              scale.At(tempF),
		MinimumTemperature: ext.Minimum,
		MaximumTemperature: ext.Maximum,
	}
}
