// Package timeline holds the ordered, read-only sequence of derived frames
// and answers nearest-frame queries against the synthetic clock.
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/cpxplay/internal/frame"
)

var (
	ErrEmpty         = errors.New("timeline: no frames")
	ErrNotMonotonic  = errors.New("timeline: timestamps not strictly increasing")
	ErrInvalidWindow = errors.New("timeline: interval must be positive")
)

// Timeline is safe for concurrent reads; it never changes after New.
type Timeline struct {
	frames     []frame.Frame
	intervalMs float64
}

// New copies frames into a timeline. Frames must be ordered by strictly
// increasing TimeLapse. intervalMs sets the match window (half of it on
// either side of a frame).
func New(frames []frame.Frame, intervalMs float64) (*Timeline, error) {
	if len(frames) == 0 {
		return nil, ErrEmpty
	}
	if !(intervalMs > 0) {
		return nil, ErrInvalidWindow
	}
	for i := 1; i < len(frames); i++ {
		if !(frames[i].TimeLapse > frames[i-1].TimeLapse) {
			return nil, fmt.Errorf("%w: frame %d at %.3fms after %.3fms",
				ErrNotMonotonic, i, frames[i].TimeLapse, frames[i-1].TimeLapse)
		}
	}

	fs := make([]frame.Frame, len(frames))
	copy(fs, frames)
	return &Timeline{frames: fs, intervalMs: intervalMs}, nil
}

func (t *Timeline) Len() int             { return len(t.frames) }
func (t *Timeline) At(i int) frame.Frame { return t.frames[i] }
func (t *Timeline) First() frame.Frame   { return t.frames[0] }
func (t *Timeline) Last() frame.Frame    { return t.frames[len(t.frames)-1] }
func (t *Timeline) IntervalMs() float64  { return t.intervalMs }
func (t *Timeline) DurationMs() float64  { return t.Last().TimeLapse }

// Frames returns a copy of the underlying frames.
func (t *Timeline) Frames() []frame.Frame {
	fs := make([]frame.Frame, len(t.frames))
	copy(fs, t.frames)
	return fs
}

// Series extracts one value per frame, in order.
func (t *Timeline) Series(fn func(frame.Frame) float64) []float64 {
	out := make([]float64, len(t.frames))
	for i, f := range t.frames {
		out[i] = fn(f)
	}
	return out
}

// Nearest returns the frame closest to ts. A frame matches only when it lies
// strictly within half an interval of ts; on a tie the earlier frame wins.
func (t *Timeline) Nearest(ts float64) (frame.Frame, bool) {
	i, ok := t.NearestIndex(ts)
	if !ok {
		return frame.Frame{}, false
	}
	return t.frames[i], true
}

// NearestIndex is Nearest returning the frame's position.
func (t *Timeline) NearestIndex(ts float64) (int, bool) {
	if math.IsNaN(ts) {
		return -1, false
	}

	// first frame at or after ts
	hi := sort.Search(len(t.frames), func(i int) bool {
		return t.frames[i].TimeLapse >= ts
	})

	best, bestDist := -1, math.Inf(1)
	for _, i := range [...]int{hi - 1, hi} {
		if i < 0 || i >= len(t.frames) {
			continue
		}
		// strict < keeps the earlier candidate on a tie
		if d := math.Abs(t.frames[i].TimeLapse - ts); d < bestDist {
			best, bestDist = i, d
		}
	}

	if best < 0 || !(bestDist < t.intervalMs/2) {
		return -1, false
	}
	return best, true
}
