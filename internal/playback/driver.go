package playback

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

var ErrNotStartable = errors.New("playback: scheduler already finished")

// Driver ticks a Scheduler from wall-clock time. The virtual clock is the
// elapsed time since Run began, in ms, multiplied by Speed.
type Driver struct {
	FPS   int
	Speed float64

	now func() time.Time
	log zerolog.Logger
}

func NewDriver(fps int, speed float64, log zerolog.Logger) *Driver {
	if fps <= 0 {
		fps = 60
	}
	if !(speed > 0) {
		speed = 1
	}
	return &Driver{FPS: fps, Speed: speed, now: time.Now, log: log}
}

// VirtualMs converts a wall-clock duration into playback ms.
func (d *Driver) VirtualMs(elapsed time.Duration) float64 {
	return float64(elapsed) / float64(time.Millisecond) * d.Speed
}

// Run plays s to completion or until ctx is done, in which case s is
// stopped and ctx.Err() returned.
func (d *Driver) Run(ctx context.Context, s *Scheduler) error {
	if !s.Start() {
		return ErrNotStartable
	}

	start := d.now()
	if !s.Tick(0) {
		return nil
	}

	ticker := time.NewTicker(time.Second / time.Duration(d.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Stop()
			d.log.Info().Str("session", s.ID()).Err(ctx.Err()).Msg("playback interrupted")
			return ctx.Err()
		case <-ticker.C:
			if !s.Tick(d.VirtualMs(d.now().Sub(start))) {
				st := s.Stats()
				d.log.Info().
					Str("session", s.ID()).
					Int("ticks", st.Ticks).
					Int("matched", st.Matched).
					Int("missed", st.Missed).
					Msg("playback finished")
				return nil
			}
		}
	}
}
