package tui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/label"
)

const (
	width       = 70
	height      = 17
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	resetColor  = "\033[0m"
)

// LiveRenderer draws the board as two side views (roll on the left, pitch
// on the right) followed by the frame label, using plain ANSI escapes.
type LiveRenderer struct {
	out      io.Writer
	title    string
	color    colorscale.Color
	noColor  bool
	canvas   [][]rune
	rendered int
}

func NewLiveRenderer(out io.Writer, title string) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:    out,
		title:  title,
		canvas: canvas,
	}
}

// DisableColor drops ANSI color escapes from the output.
func (r *LiveRenderer) DisableColor() { r.noColor = true }

// Rendered is the number of frames written so far.
func (r *LiveRenderer) Rendered() int { return r.rendered }

func (r *LiveRenderer) ApplyOrientationAndColor(rotation [3]float64, c colorscale.Color) {
	r.clear()
	r.color = c

	half := width / 2
	r.drawView(half/2, "ROLL", rotation[2])
	r.drawView(half+half/2, "PITCH", rotation[0])
	for y := 0; y < height; y++ {
		r.set(half, y, ':')
	}
}

func (r *LiveRenderer) RenderInfo(f frame.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs\n", r.title, f.ElapsedSeconds()))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(r.paint(string(row)))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(label.Format(f))

	fmt.Fprint(r.out, b.String())
	r.rendered++
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

// drawView draws a board edge through (cx, mid) tilted by angle radians.
func (r *LiveRenderer) drawView(cx int, name string, angle float64) {
	cy := height / 2
	for i, c := range name {
		r.set(cx-len(name)/2+i, 0, c)
	}
	if math.IsNaN(angle) {
		r.set(cx, cy, '?')
		return
	}

	// rows are roughly twice as tall as columns
	arm := 12.0
	dx := int(math.Round(arm * math.Cos(angle)))
	dy := int(math.Round(arm / 2 * math.Sin(angle)))
	r.line(cx-dx, cy+dy, cx+dx, cy-dy, '=')
	r.set(cx, cy, '+')

	// normal marks the top face of the board
	nx := int(math.Round(-3 * math.Sin(angle)))
	ny := int(math.Round(-1.5 * math.Cos(angle)))
	r.set(cx+nx, cy+ny, '^')
}

func (r *LiveRenderer) paint(s string) string {
	if r.noColor {
		return s
	}
	c := r.color.Clamped()
	if !c.IsValid() {
		return s
	}
	cr, cg, cb := c.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm%s%s", cr, cg, cb, s, resetColor)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
