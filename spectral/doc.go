// Package spectral computes de-trended amplitude spectra for detected zones.
//
// For one zone of one channel the analyzer removes the mean (so the DC
// component does not dominate), takes a real-input discrete Fourier
// transform, and scales the non-negative-frequency magnitudes to amplitudes:
//
//	Freqs[k] = k / (N * dt)        k = 0 .. floor(N/2)
//	Amps[k]  = |X[k]| * 2 / N
//
// dt is the mean sample spacing of the zone's elapsed-time slice. The factor
// of 2 compensates for the discarded negative-frequency half; at DC and
// Nyquist it slightly overstates the amplitude, which is accepted as a known
// approximation and not corrected.
//
// Power-of-two zone lengths run through an FFT plan; other lengths are
// evaluated bin by bin with the Goertzel recurrence, which computes
// individual DFT terms without requiring a composite transform size.
package spectral
