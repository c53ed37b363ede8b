package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data. len(data) must be a
// power of two; use [Pad] first otherwise.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

func PowerSpectrum(data []float64) []float64 {
	fft := FFT(data)
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// Pad returns data with its mean removed, non-finite values zeroed and the
// length zero-padded to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}

	var sum float64
	var count int
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			sum += v
			count++
		}
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}

	out := make([]float64, n)
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = v - mean
	}
	return out
}

// Spectrum returns the power spectrum of a series sampled every intervalMs,
// together with the frequency in Hz of each bin.
func Spectrum(series []float64, intervalMs float64) (freqs, power []float64) {
	if len(series) < 2 || !(intervalMs > 0) {
		return nil, nil
	}
	padded := Pad(series)
	power = PowerSpectrum(padded)

	rate := 1000 / intervalMs
	freqs = make([]float64, len(power))
	for k := range freqs {
		freqs[k] = float64(k) * rate / float64(len(padded))
	}
	return freqs, power
}

// DominantFrequency returns the frequency and magnitude of the strongest
// component above DC. A flat or too-short series yields zeros.
func DominantFrequency(series []float64, intervalMs float64) (hz, power float64) {
	freqs, ps := Spectrum(series, intervalMs)
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			hz, power = freqs[k], ps[k]
		}
	}
	return hz, power
}
