// Package analysis provides spectral tools for recorded telemetry series.
//
//   - [FFT]: radix-2 Cooley-Tukey transform
//   - [PowerSpectrum]: magnitude of the positive-frequency bins
//   - [Spectrum]: power spectrum of a uniformly sampled series, with bin frequencies
//   - [DominantFrequency]: strongest non-DC component of a series
//
// # Wobble Detection
//
// A board that is rocked back and forth shows a clear peak in its pitch or
// roll spectrum:
//
//	pitch := tl.Series(func(f frame.Frame) float64 { return f.Pitch })
//	hz, power := analysis.DominantFrequency(pitch, tl.IntervalMs())
package analysis
