package telemetry_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cpxplay/internal/telemetry"
)

func malformed(err error) *telemetry.MalformedInputError {
	var mErr *telemetry.MalformedInputError
	ExpectWithOffset(1, errors.As(err, &mErr)).To(BeTrue(), "expected *MalformedInputError, got %v", err)
	return mErr
}

var _ = Describe("Parse", func() {
	Context("strict", func() {
		It("converts rows positionally", func() {
			samples, err := telemetry.Parse("0,0,1,0,100\n0,0,1,10,200")
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(Equal([]telemetry.Sample{
				{X: 0, Y: 0, Z: 1, TemperatureC: 0, Light: 100},
				{X: 0, Y: 0, Z: 1, TemperatureC: 10, Light: 200},
			}))
		})

		It("trims whitespace, CRLF and blank rows", func() {
			text := "  \n 1.5 , -2.25,9.81 , 23.4, 12 \r\n\n0,0,1,0,0\n\n\n"
			samples, err := telemetry.Parse(text)
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(HaveLen(2))
			Expect(samples[0]).To(Equal(telemetry.Sample{X: 1.5, Y: -2.25, Z: 9.81, TemperatureC: 23.4, Light: 12}))
		})

		DescribeTable("reports no samples",
			func(text string) {
				_, err := telemetry.Parse(text)
				Expect(err).To(MatchError(telemetry.ErrNoSamples))
			},
			Entry("empty", ""),
			Entry("spaces", "   "),
			Entry("newlines", "\n\n"),
			Entry("CRLF only", "\r\n\r\n"),
		)

		DescribeTable("rejects a wrong field count",
			func(text string, line int) {
				_, err := telemetry.Parse(text)
				Expect(err).To(MatchError(telemetry.ErrFieldCount))
				mErr := malformed(err)
				Expect(mErr.Line).To(Equal(line))
				Expect(mErr.Field).To(Equal(-1))
			},
			Entry("too few", "0,0,1,0", 1),
			Entry("too many", "0,0,1,0,1\n0,0,1,0,1,2", 2),
		)

		It("names the line and field of a bad number", func() {
			_, err := telemetry.Parse("0,0,1,0,1\n0,abc,1,0,1")
			Expect(err).To(MatchError(telemetry.ErrBadNumber))

			mErr := malformed(err)
			Expect(mErr.Line).To(Equal(2))
			Expect(mErr.Field).To(Equal(1))
			Expect(mErr.Text).To(Equal("abc"))
			Expect(mErr.Error()).To(ContainSubstring("line 2 field 1"))
		})

		It("counts leading and interior blank lines in the line number", func() {
			_, err := telemetry.Parse("\n\n0,0,1,0,1\n0,abc,1,0,1")
			Expect(malformed(err).Line).To(Equal(4))

			_, err = telemetry.Parse("\r\n  \r\n0,0,1,0,1\r\n\r\n0,0,1,0")
			Expect(malformed(err).Line).To(Equal(5))
		})

		DescribeTable("rejects non-finite and empty fields",
			func(text string) {
				_, err := telemetry.Parse(text)
				Expect(err).To(MatchError(telemetry.ErrBadNumber))
			},
			Entry("NaN", "NaN,0,1,0,1"),
			Entry("Inf", "0,Inf,1,0,1"),
			Entry("Infinity", "0,0,Infinity,0,1"),
			Entry("empty", "1,,1,0,5"),
		)
	})

	Context("lenient", func() {
		It("turns bad and missing fields into NaN and ignores extras", func() {
			samples, err := telemetry.Parse("0,abc,1,0,1\n1,2,3\n1,2,3,4,5,6", telemetry.Lenient())
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(HaveLen(3))

			Expect(math.IsNaN(samples[0].Y)).To(BeTrue())
			Expect(samples[0].Z).To(Equal(1.0))
			Expect(samples[0].IsValid()).To(BeFalse())

			Expect(samples[1].Z).To(Equal(3.0))
			Expect(math.IsNaN(samples[1].TemperatureC)).To(BeTrue())
			Expect(math.IsNaN(samples[1].Light)).To(BeTrue())

			Expect(samples[2]).To(Equal(telemetry.Sample{X: 1, Y: 2, Z: 3, TemperatureC: 4, Light: 5}))
			Expect(samples[2].IsValid()).To(BeTrue())
		})

		It("reads an empty field as zero", func() {
			samples, err := telemetry.Parse("1,,1,0,5", telemetry.Lenient())
			Expect(err).NotTo(HaveOccurred())
			Expect(samples[0]).To(Equal(telemetry.Sample{X: 1, Y: 0, Z: 1, TemperatureC: 0, Light: 5}))
		})

		It("accepts Infinity, radix integers and overflowing exponents", func() {
			samples, err := telemetry.Parse("Infinity,-Infinity,0x1A,0b101,0o17\n1e500,+.5,5.,-0,1E2", telemetry.Lenient())
			Expect(err).NotTo(HaveOccurred())

			s := samples[0]
			Expect(math.IsInf(s.X, 1)).To(BeTrue())
			Expect(math.IsInf(s.Y, -1)).To(BeTrue())
			Expect(s.Z).To(Equal(26.0))
			Expect(s.TemperatureC).To(Equal(5.0))
			Expect(s.Light).To(Equal(15.0))

			s = samples[1]
			Expect(math.IsInf(s.X, 1)).To(BeTrue())
			Expect(s.Y).To(Equal(0.5))
			Expect(s.Z).To(Equal(5.0))
			Expect(s.TemperatureC).To(BeZero())
			Expect(s.Light).To(Equal(100.0))
		})

		It("rejects spellings a browser would not parse", func() {
			samples, err := telemetry.Parse("inf,nan,1_000,-0x1,0x1p3\ninfinity,0b2,0x,1.5.2,+", telemetry.Lenient())
			Expect(err).NotTo(HaveOccurred())
			for _, s := range samples {
				for _, v := range []float64{s.X, s.Y, s.Z, s.TemperatureC, s.Light} {
					Expect(math.IsNaN(v)).To(BeTrue(), "sample %+v", s)
				}
			}
		})
	})

	Context("with an index column", func() {
		It("drops the leading sequence number", func() {
			samples, err := telemetry.Parse("1, 0.1, 0.2, 9.8, 21.5, 40\n2, 0.3, 0.4, 9.7, 21.6, 41", telemetry.WithIndexColumn())
			Expect(err).NotTo(HaveOccurred())
			Expect(samples).To(HaveLen(2))
			Expect(samples[1]).To(Equal(telemetry.Sample{X: 0.3, Y: 0.4, Z: 9.7, TemperatureC: 21.6, Light: 41}))
		})

		It("requires the extra column in strict mode", func() {
			_, err := telemetry.Parse("0.1, 0.2, 9.8, 21.5, 40", telemetry.WithIndexColumn())
			Expect(err).To(MatchError(telemetry.ErrFieldCount))
		})
	})

	It("reads from an io.Reader", func() {
		samples, err := telemetry.NewParser().ParseReader(newLineReader("0,0,1,0,1", "0,0,1,2,3"))
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(2))
	})
})
