// Package rolling provides trailing-window statistics over sample series.
//
// All functions use trailing windows with a minimum of one sample of history:
// position i covers values[max(0, i-window+1) .. i], so the first samples use
// whatever history exists instead of being undefined. This models the local
// behavior of a signal without looking ahead.
package rolling

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidWindow indicates a window size below one sample.
var ErrInvalidWindow = errors.New("rolling: window must be >= 1")

func validateWindow(window int) error {
	if window < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	return nil
}

// Std returns the trailing rolling sample standard deviation of values.
//
// The sample (n-1 denominator) form is used. Positions with fewer than two
// samples of history have no defined dispersion and are reported as NaN;
// callers decide how an undefined value participates in thresholding.
//
// Each window is evaluated with Welford's algorithm for numerical stability,
// which matters for signals with a large offset relative to their noise
// (pressure traces sit thousands of units above a sub-unit noise floor).
func Std(values []float64, window int) ([]float64, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))

	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}

		m := i - lo + 1
		if m < 2 {
			out[i] = math.NaN()
			continue
		}

		var mean, m2 float64
		for k := lo; k <= i; k++ {
			count := float64(k - lo + 1)
			delta := values[k] - mean
			mean += delta / count
			m2 += delta * (values[k] - mean)
		}

		out[i] = math.Sqrt(m2 / float64(m-1))
	}

	return out, nil
}

// Mean returns the trailing rolling mean of values.
func Mean(values []float64, window int) ([]float64, error) {
	if err := validateWindow(window); err != nil {
		return nil, err
	}

	out := make([]float64, len(values))

	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}

		var sum float64
		for k := lo; k <= i; k++ {
			sum += values[k]
		}

		out[i] = sum / float64(i-lo+1)
	}

	return out, nil
}

// Median returns the median of values, skipping NaN entries.
//
// For an even count the two middle values are averaged. An empty or all-NaN
// input yields NaN.
func Median(values []float64) float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}

	if len(kept) == 0 {
		return math.NaN()
	}

	sort.Float64s(kept)

	mid := len(kept) / 2
	if len(kept)%2 == 1 {
		return kept[mid]
	}

	return (kept[mid-1] + kept[mid]) / 2
}
