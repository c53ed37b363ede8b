package playback

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/san-kum/cpxplay/internal/timeline"
)

type Phase int

const (
	Idle Phase = iota
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Stats counts what a session has done so far.
type Stats struct {
	Ticks    int
	Matched  int
	Missed   int
	Dropped  int     // ticks whose time went backwards
	LastTime float64 // ms
}

type Scheduler struct {
	tl     *timeline.Timeline
	render RenderSink
	label  LabelSink
	phase  Phase
	id     string
	log    zerolog.Logger
	stats  Stats
}

type Option func(*Scheduler)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

func WithSessionID(id string) Option {
	return func(s *Scheduler) { s.id = id }
}

// NewScheduler returns an Idle scheduler over tl. Nil sinks are replaced by
// no-ops.
func NewScheduler(tl *timeline.Timeline, render RenderSink, label LabelSink, opts ...Option) *Scheduler {
	s := &Scheduler{
		tl:     tl,
		render: render,
		label:  label,
		phase:  Idle,
		log:    zerolog.Nop(),
	}
	if s.render == nil {
		s.render = nopSink{}
	}
	if s.label == nil {
		s.label = nopSink{}
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	s.log = s.log.With().Str("session", s.id).Logger()
	return s
}

func (s *Scheduler) Phase() Phase                 { return s.phase }
func (s *Scheduler) ID() string                   { return s.id }
func (s *Scheduler) Stats() Stats                 { return s.stats }
func (s *Scheduler) Timeline() *timeline.Timeline { return s.tl }

// Start moves an Idle scheduler to Playing. It reports whether the host
// should begin ticking.
func (s *Scheduler) Start() bool {
	if s.phase != Idle {
		return s.phase == Playing
	}
	s.transition(Playing)
	return true
}

// Tick advances playback to now (ms on the virtual clock). A matching frame
// is dispatched to the render sink and then the label sink. Tick returns
// whether the host should request another tick.
func (s *Scheduler) Tick(now float64) bool {
	if s.phase != Playing {
		return false
	}
	if s.stats.Ticks > 0 && now < s.stats.LastTime {
		s.stats.Dropped++
		s.log.Debug().Float64("t", now).Float64("last", s.stats.LastTime).Msg("tick out of order")
		return true
	}

	s.stats.Ticks++
	s.stats.LastTime = now

	if f, ok := s.tl.Nearest(now); ok {
		s.stats.Matched++
		s.render.ApplyOrientationAndColor(f.Rotation, f.Color)
		s.label.RenderInfo(f)
	} else {
		s.stats.Missed++
	}

	if now >= s.tl.Last().TimeLapse {
		s.transition(Finished)
		return false
	}
	return true
}

// Stop ends the session early. It is a no-op once Finished.
func (s *Scheduler) Stop() {
	if s.phase == Finished {
		return
	}
	s.transition(Finished)
}

func (s *Scheduler) transition(to Phase) {
	s.log.Debug().
		Stringer("from", s.phase).
		Stringer("to", to).
		Int("ticks", s.stats.Ticks).
		Int("matched", s.stats.Matched).
		Msg("playback phase")
	s.phase = to
}
