package spectral

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-welltest/zone"
)

// Errors returned by Analyze.
var (
	ErrEmptyZone           = errors.New("spectral: zone selects no samples")
	ErrInsufficientSamples = errors.New("spectral: a spectrum needs at least 2 samples")
	ErrZoneOutOfRange      = errors.New("spectral: zone does not fit the series")
	ErrLengthMismatch      = errors.New("spectral: elapsed and value series must have same length")
)

// Spectrum is the one-sided amplitude spectrum of one zone of one channel.
//
// Freqs and Amps have identical length floor(N/2)+1 for a zone of N samples.
// Spectra are immutable value objects; recomputing a zone produces a fresh
// one.
type Spectrum struct {
	Freqs []float64 // bin frequencies in Hz, non-negative
	Amps  []float64 // linear amplitudes, non-negative
}

// Analyze computes the amplitude spectrum of values[z.Start:z.End] against
// the matching elapsed-time slice.
//
// The zone is guarded independently of the detectors: zones may reach this
// component from sources other than the paired detection pass.
func Analyze(z zone.Zone, elapsed, values []float64) (Spectrum, error) {
	if len(elapsed) != len(values) {
		return Spectrum{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(elapsed), len(values))
	}

	if z.Start < 0 || z.End > len(values) || z.Start > z.End {
		return Spectrum{}, fmt.Errorf("%w: %v with %d samples", ErrZoneOutOfRange, z, len(values))
	}

	if z.Len() == 0 {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrEmptyZone, z)
	}

	if z.Len() == 1 {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInsufficientSamples, z)
	}

	t := z.Slice(elapsed)
	x := z.Slice(values)
	n := len(x)

	// Mean spacing of the zone's time slice; individual gaps may vary.
	dt := (t[n-1] - t[0]) / float64(n-1)

	centered := make([]float64, n)
	mean := seriesMean(x)
	for i, v := range x {
		centered[i] = v - mean
	}

	re, im, err := halfSpectrum(centered)
	if err != nil {
		return Spectrum{}, err
	}

	bins := len(re)

	amps := make([]float64, bins)
	vecmath.Magnitude(amps, re, im)

	scale := 2 / float64(n)
	for i := range amps {
		amps[i] *= scale
	}

	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) / (float64(n) * dt)
	}

	return Spectrum{Freqs: freqs, Amps: amps}, nil
}

// halfSpectrum returns the real and imaginary parts of the DFT bins
// k = 0 .. floor(n/2) of x.
func halfSpectrum(x []float64) (re, im []float64, err error) {
	n := len(x)
	bins := n/2 + 1

	re = make([]float64, bins)
	im = make([]float64, bins)

	if isPowerOfTwo(n) {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, nil, fmt.Errorf("spectral: failed to create FFT plan: %w", err)
		}

		in := make([]complex128, n)
		for i, v := range x {
			in[i] = complex(v, 0)
		}

		out := make([]complex128, n)
		if err := plan.Forward(out, in); err != nil {
			return nil, nil, fmt.Errorf("spectral: forward FFT: %w", err)
		}

		for k := range bins {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		return re, im, nil
	}

	// Arbitrary lengths: Goertzel recurrence per bin. O(n) per bin keeps
	// typical zone sizes tractable and avoids padding, which would move the
	// bin frequencies away from k/(N*dt).
	for k := range bins {
		omega := 2 * math.Pi * float64(k) / float64(n)
		coeff := 2 * math.Cos(omega)

		var s0, s1 float64
		for _, v := range x {
			s := v + coeff*s0 - s1
			s1 = s0
			s0 = s
		}

		sin, cos := math.Sincos(omega)
		re[k] = s0 - s1*cos
		im[k] = s1 * sin
	}

	return re, im, nil
}

func seriesMean(x []float64) float64 {
	// Kahan summation; zones can be long and sit far from zero.
	var sum, c float64
	for _, v := range x {
		y := v - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(x))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
