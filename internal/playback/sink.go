package playback

import (
	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
)

// RenderSink receives the board orientation ([pitch, yaw, roll] in radians)
// and its temperature color.
type RenderSink interface {
	ApplyOrientationAndColor(rotation [3]float64, c colorscale.Color)
}

// LabelSink receives the full frame for textual display.
type LabelSink interface {
	RenderInfo(f frame.Frame)
}

// RenderFunc adapts a function to RenderSink.
type RenderFunc func(rotation [3]float64, c colorscale.Color)

func (fn RenderFunc) ApplyOrientationAndColor(rotation [3]float64, c colorscale.Color) {
	fn(rotation, c)
}

// LabelFunc adapts a function to LabelSink.
type LabelFunc func(f frame.Frame)

func (fn LabelFunc) RenderInfo(f frame.Frame) { fn(f) }

type nopSink struct{}

func (nopSink) ApplyOrientationAndColor([3]float64, colorscale.Color) {}
func (nopSink) RenderInfo(frame.Frame)                                {}
