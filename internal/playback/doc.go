// Package playback replays a [timeline.Timeline] against a virtual clock.
//
// A [Scheduler] is a small state machine (Idle, Playing, Finished) advanced
// one tick at a time by a host-owned loop:
//
//	s := playback.NewScheduler(tl, render, label)
//	s.Start()
//	for s.Tick(now()) {
//	    // wait for the next display refresh
//	}
//
// Each tick looks up the frame nearest the supplied time and, when one
// matches, hands it to the render and label sinks. Tick returns false once
// the clock has reached the last frame; the host stops ticking then.
//
// [Driver] is a ready-made host that ticks from a wall-clock ticker.
//
// # Thread Safety
//
// A Scheduler is NOT safe for concurrent use. Exactly one host goroutine
// may call Start, Tick and Stop.
package playback
