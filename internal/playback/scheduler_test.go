package playback_test

import (
	"bytes"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/logging"
	"github.com/san-kum/cpxplay/internal/playback"
	"github.com/san-kum/cpxplay/internal/timeline"
)

var _ = Describe("Scheduler", func() {
	var (
		tl  *timeline.Timeline
		rec *recorder
		s   *playback.Scheduler
	)

	BeforeEach(func() {
		tl = buildTimeline(5) // frames at 0..200ms
		rec = &recorder{}
		s = playback.NewScheduler(tl, rec, rec)
	})

	Describe("lifecycle", func() {
		It("starts Idle with a session id", func() {
			Expect(s.Phase()).To(Equal(playback.Idle))
			Expect(s.ID()).NotTo(BeEmpty())
		})

		It("ignores ticks before Start", func() {
			Expect(s.Tick(0)).To(BeFalse())
			Expect(rec.sinkCalls()).To(BeZero())
			Expect(s.Phase()).To(Equal(playback.Idle))
		})

		It("moves to Playing on Start", func() {
			Expect(s.Start()).To(BeTrue())
			Expect(s.Phase()).To(Equal(playback.Playing))
			Expect(s.Start()).To(BeTrue())
		})

		It("honors an explicit session id", func() {
			s = playback.NewScheduler(tl, rec, rec, playback.WithSessionID("abc"))
			Expect(s.ID()).To(Equal("abc"))
		})
	})

	Describe("ticking", func() {
		BeforeEach(func() {
			s.Start()
		})

		It("dispatches render then label for a matched frame", func() {
			Expect(s.Tick(10)).To(BeTrue())

			Expect(rec.calls).To(Equal([]string{"render", "label"}))
			Expect(rec.frames[0].TimeRecorded).To(Equal(0))
			Expect(rec.rotations[0]).To(Equal(rec.frames[0].Rotation))
			Expect(rec.colors[0]).To(Equal(colorscale.Blue))
		})

		It("skips sinks when no frame is within half an interval", func() {
			Expect(s.Tick(25)).To(BeTrue())
			Expect(rec.sinkCalls()).To(BeZero())
			Expect(s.Stats().Missed).To(Equal(1))
		})

		It("picks the nearest frame for irregular tick times", func() {
			for _, ts := range []float64{0, 16.7, 33.4, 50.1, 66.8, 83.5, 100.2} {
				s.Tick(ts)
			}
			recorded := make([]int, 0, len(rec.frames))
			for _, f := range rec.frames {
				recorded = append(recorded, f.TimeRecorded)
			}
			Expect(recorded).To(Equal([]int{0, 0, 1, 1, 1, 2, 2}))
		})

		It("finishes once the clock reaches the last frame", func() {
			Expect(s.Tick(199)).To(BeTrue())
			Expect(s.Phase()).To(Equal(playback.Playing))

			Expect(s.Tick(200)).To(BeFalse())
			Expect(s.Phase()).To(Equal(playback.Finished))
			Expect(rec.frames[len(rec.frames)-1].TimeRecorded).To(Equal(4))
		})

		It("finishes when the clock jumps past the end", func() {
			Expect(s.Tick(10_000)).To(BeFalse())
			Expect(s.Phase()).To(Equal(playback.Finished))
			Expect(rec.sinkCalls()).To(BeZero())
		})

		It("issues no sink calls after finishing", func() {
			s.Tick(200)
			calls := rec.sinkCalls()

			Expect(s.Tick(200)).To(BeFalse())
			Expect(s.Tick(50)).To(BeFalse())
			Expect(rec.sinkCalls()).To(Equal(calls))
			Expect(s.Start()).To(BeFalse())
		})

		It("drops ticks that go backwards", func() {
			s.Tick(100)
			calls := rec.sinkCalls()

			Expect(s.Tick(40)).To(BeTrue())
			Expect(rec.sinkCalls()).To(Equal(calls))
			Expect(s.Stats().Dropped).To(Equal(1))
			Expect(s.Stats().LastTime).To(Equal(100.0))
		})

		It("keeps going on a NaN clock without matching", func() {
			Expect(s.Tick(math.NaN())).To(BeTrue())
			Expect(rec.sinkCalls()).To(BeZero())
		})

		It("counts ticks and matches", func() {
			for _, ts := range []float64{0, 25, 50, 75, 100, 150, 200} {
				s.Tick(ts)
			}
			st := s.Stats()
			Expect(st.Ticks).To(Equal(7))
			Expect(st.Matched).To(Equal(5))
			Expect(st.Missed).To(Equal(2))
		})
	})

	Describe("Stop", func() {
		It("finishes from Playing and silences later ticks", func() {
			s.Start()
			s.Stop()
			Expect(s.Phase()).To(Equal(playback.Finished))
			Expect(s.Tick(0)).To(BeFalse())
			Expect(rec.sinkCalls()).To(BeZero())
		})

		It("finishes from Idle", func() {
			s.Stop()
			Expect(s.Phase()).To(Equal(playback.Finished))
			Expect(s.Start()).To(BeFalse())
		})
	})

	Describe("function sinks", func() {
		It("adapts plain functions", func() {
			var got []frame.Frame
			var rots [][3]float64
			s = playback.NewScheduler(tl,
				playback.RenderFunc(func(r [3]float64, _ colorscale.Color) { rots = append(rots, r) }),
				playback.LabelFunc(func(f frame.Frame) { got = append(got, f) }),
			)
			s.Start()
			s.Tick(50)
			Expect(got).To(HaveLen(1))
			Expect(rots).To(HaveLen(1))
			Expect(got[0].TimeLapse).To(Equal(50.0))
		})

		It("tolerates nil sinks", func() {
			s = playback.NewScheduler(tl, nil, nil)
			s.Start()
			Expect(func() { s.Tick(0) }).NotTo(Panic())
		})
	})

	It("logs phase transitions with the session id", func() {
		var buf bytes.Buffer
		s = playback.NewScheduler(tl, rec, rec,
			playback.WithLogger(logging.Setup("debug", true, &buf)),
			playback.WithSessionID("sess-1"),
		)
		s.Start()
		s.Tick(200)

		out := buf.String()
		Expect(out).To(ContainSubstring(`"session":"sess-1"`))
		Expect(out).To(ContainSubstring(`"to":"playing"`))
		Expect(out).To(ContainSubstring(`"to":"finished"`))
	})

	Describe("Phase", func() {
		DescribeTable("String",
			func(p playback.Phase, want string) {
				Expect(p.String()).To(Equal(want))
			},
			Entry("idle", playback.Idle, "idle"),
			Entry("playing", playback.Playing, "playing"),
			Entry("finished", playback.Finished, "finished"),
			Entry("unknown", playback.Phase(9), "unknown"),
		)
	})
})
