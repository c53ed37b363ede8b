// Package label renders the human-readable summary of a frame.
package label

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
)

// Section is one titled group of label lines.
type Section struct {
	Title string
	Color string // hex, empty for default
	Lines []Line
}

type Line struct {
	Key   string
	Value string
	Color string
}

// Sections breaks a frame into the label's display groups.
func Sections(f frame.Frame) []Section {
	minT, maxT := f.MinimumTemperature, f.MaximumTemperature
	return []Section{
		{
			Title: "Accelerometer",
			Lines: []Line{
				{Key: "x", Value: fixed(f.Acceleration.X)},
				{Key: "y", Value: fixed(f.Acceleration.Y)},
				{Key: "z", Value: fixed(f.Acceleration.Z)},
			},
		},
		{
			Title: "Rotation",
			Lines: []Line{
				{Key: "Pitch", Value: fixed(f.Pitch)},
				{Key: "Roll", Value: fixed(f.Roll)},
			},
		},
		{
			Title: "Temperature",
			Color: colorscale.Hex(f.Color),
			Lines: []Line{
				{Key: "Min", Value: fixed(minT.Value) + " (F)", Color: colorscale.Hex(minT.Color)},
				{Key: "Max", Value: fixed(maxT.Value) + " (F)", Color: colorscale.Hex(maxT.Color)},
				{Key: "(F)", Value: fixed(f.TemperatureF)},
				{Key: "(C)", Value: fixed(f.TemperatureC)},
			},
		},
		{
			Title: "Light",
			Lines: []Line{
				{Key: "(lumens)", Value: fixed(f.Light)},
			},
		},
	}
}

// Heading is the elapsed-time title; the sample index doubles as seconds
// recorded.
func Heading(f frame.Frame) string {
	return fmt.Sprintf("%d seconds", f.TimeRecorded)
}

// Format renders f as plain text.
func Format(f frame.Frame) string {
	var b strings.Builder
	Write(&b, f)
	return b.String()
}

func Write(w io.Writer, f frame.Frame) {
	fmt.Fprintln(w, Heading(f))
	for _, sec := range Sections(f) {
		fmt.Fprintf(w, "\n%s\n", sec.Title)
		for _, ln := range sec.Lines {
			fmt.Fprintf(w, "  %-9s %s\n", ln.Key, ln.Value)
		}
	}
}

func fixed(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
