package frame_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cpxplay/internal/colorscale"
	"github.com/san-kum/cpxplay/internal/frame"
	"github.com/san-kum/cpxplay/internal/telemetry"
)

func mustDeriver(cfg frame.Config) *frame.Deriver {
	d, err := frame.NewDeriver(cfg)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return d
}

var _ = Describe("Deriver", func() {
	var d *frame.Deriver

	BeforeEach(func() {
		d = mustDeriver(frame.DefaultConfig())
	})

	DescribeTable("rejects a non-positive or non-finite interval",
		func(iv float64) {
			cfg := frame.DefaultConfig()
			cfg.IntervalMs = iv
			_, err := frame.NewDeriver(cfg)
			Expect(err).To(MatchError(frame.ErrInvalidInterval))
		},
		Entry("zero", 0.0),
		Entry("negative", -50.0),
		Entry("NaN", math.NaN()),
		Entry("infinite", math.Inf(1)),
	)

	It("derives the two-sample scenario", func() {
		samples, err := telemetry.Parse("0,0,1,0,100\n0,0,1,10,200")
		Expect(err).NotTo(HaveOccurred())

		frames := d.Derive(samples)
		Expect(frames).To(HaveLen(2))

		f0 := frames[0]
		Expect(f0.Pitch).To(Equal(0.0))
		Expect(f0.Roll).To(Equal(0.0))
		Expect(f0.TemperatureF).To(Equal(32.0))
		Expect(f0.Color).To(Equal(colorscale.Blue))
		Expect(f0.TimeLapse).To(Equal(0.0))
		Expect(f0.Light).To(Equal(100.0))

		f1 := frames[1]
		Expect(f1.TemperatureF).To(Equal(50.0))
		Expect(f1.Color).To(Equal(colorscale.Red))
		Expect(f1.TimeLapse).To(Equal(50.0))
		Expect(f1.TimeRecorded).To(Equal(1))
	})

	It("converts Celsius to Fahrenheit", func() {
		temps := []float64{-40, -12.5, 0, 21.3, 37, 100}
		samples := make([]telemetry.Sample, len(temps))
		for i, c := range temps {
			samples[i] = telemetry.Sample{Z: 1, TemperatureC: c}
		}

		frames := d.Derive(samples)
		for i, f := range frames {
			Expect(f.TemperatureF).To(Equal(temps[i]*9/5 + 32))
			Expect(f.TemperatureC).To(Equal(temps[i]))
		}
		Expect(frames[0].TemperatureF).To(Equal(-40.0))
	})

	It("spaces frames by the configured interval", func() {
		cfg := frame.DefaultConfig()
		cfg.IntervalMs = 20

		frames := mustDeriver(cfg).Derive(make([]telemetry.Sample, 25))
		for i, f := range frames {
			Expect(f.TimeLapse).To(Equal(float64(i) * 20))
			Expect(f.TimeRecorded).To(Equal(i))
			if i > 0 {
				Expect(f.TimeLapse).To(BeNumerically(">", frames[i-1].TimeLapse))
			}
		}
	})

	DescribeTable("computes orientation from gravity",
		func(x, y, z, pitch, roll float64) {
			frames := d.Derive([]telemetry.Sample{{X: x, Y: y, Z: z}})
			Expect(frames).To(HaveLen(1))
			f := frames[0]

			Expect(f.Rotation[0]).To(BeNumerically("~", pitch, 1e-12))
			Expect(f.Rotation[1]).To(Equal(0.0))
			Expect(f.Rotation[2]).To(BeNumerically("~", roll, 1e-12))
			Expect(f.Pitch).To(BeNumerically("~", pitch*180/math.Pi, 1e-9))
			Expect(f.Roll).To(BeNumerically("~", roll*180/math.Pi, 1e-9))
		},
		Entry("flat", 0.0, 0.0, 1.0, 0.0, 0.0),
		Entry("nose down", 1.0, 0.0, 0.0, -math.Pi/2, 0.0),
		Entry("nose up", -1.0, 0.0, 0.0, math.Pi/2, 0.0),
		Entry("on side", 0.0, 1.0, 0.0, 0.0, math.Pi/2),
		Entry("upside down", 0.0, 0.0, -1.0, 0.0, math.Pi),
	)

	It("colors the coldest and hottest samples with the exact endpoints", func() {
		cold := colorscale.MustParseHex("#2c7bb6")
		hot := colorscale.MustParseHex("#d7191c")
		cfg := frame.DefaultConfig()
		cfg.Cold, cfg.Hot = cold, hot

		frames := mustDeriver(cfg).Derive([]telemetry.Sample{
			{Z: 1, TemperatureC: 22.7},
			{Z: 1, TemperatureC: 19.1},
			{Z: 1, TemperatureC: 25.9},
			{Z: 1, TemperatureC: 23.3},
		})

		Expect(frames[1].Color).To(Equal(cold))
		Expect(frames[2].Color).To(Equal(hot))
		Expect(frames[0].Color).NotTo(Equal(cold))
		Expect(frames[3].Color).NotTo(Equal(hot))
	})

	It("shares one set of extrema across the batch", func() {
		frames := d.Derive([]telemetry.Sample{
			{Z: 1, TemperatureC: 20},
			{Z: 1, TemperatureC: 30},
			{Z: 1, TemperatureC: 10},
		})

		for _, f := range frames {
			Expect(f.MinimumTemperature.Value).To(Equal(50.0))
			Expect(f.MaximumTemperature.Value).To(Equal(86.0))
			Expect(f.MinimumTemperature.Label).To(Equal("minimum"))
			Expect(f.MaximumTemperature.Color).To(Equal(colorscale.Red))
		}
	})

	It("uses the cold color when the temperature never changes", func() {
		frames := d.Derive([]telemetry.Sample{{Z: 1, TemperatureC: 21}, {Z: 1, TemperatureC: 21}})
		for _, f := range frames {
			Expect(f.Color).To(Equal(colorscale.Blue))
		}
	})

	It("propagates NaN without disturbing the timeline", func() {
		frames := d.Derive([]telemetry.Sample{
			{X: math.NaN(), Y: 0, Z: 1, TemperatureC: 20},
			{Z: 1, TemperatureC: 25},
		})

		Expect(math.IsNaN(frames[0].Pitch)).To(BeTrue())
		Expect(frames[0].Roll).To(Equal(0.0))
		Expect(frames[1].TimeLapse).To(Equal(50.0))
	})

	It("derives nothing from no samples", func() {
		Expect(d.Derive(nil)).To(BeNil())
	})
})
