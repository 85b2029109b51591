// Package step detects step zones: intervals bounded by abrupt level changes
// in a channel.
//
// The detector smooths the absolute first difference of the signal with a
// trailing rolling mean, flags every position where the smoothed derivative
// exceeds a threshold, collapses clustered detections around one real
// transition to the earliest index, and cuts the series at the surviving
// transitions. The threshold is self-calibrating by default: three times the
// median smoothed derivative, which adapts to each channel's baseline noise.
package step

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-welltest/stats/rolling"
	"github.com/cwbudde/algo-welltest/zone"
)

// Errors returned by Detect.
var (
	ErrInvalidDiffWindow = errors.New("step: diff window must be >= 1")
	ErrInvalidThreshold  = errors.New("step: diff threshold must be >= 0")
	ErrInvalidMinSize    = errors.New("step: min size must be >= 1")
)

// Config holds step-zone detection parameters.
type Config struct {
	// DiffWindow is the trailing rolling-mean window applied to the absolute
	// derivative, in samples. It also sets the de-duplication distance
	// between kept transitions.
	DiffWindow int

	// DiffThreshold is the smoothed-derivative level above which a position
	// counts as a transition. Zero selects the automatic threshold
	// (3 x median of the smoothed derivative); negative values are invalid.
	DiffThreshold float64

	// MinSize is the minimum accepted zone length in samples.
	MinSize int
}

// Validate checks the configuration before any computation starts.
func (c Config) Validate() error {
	if c.DiffWindow < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDiffWindow, c.DiffWindow)
	}

	if c.DiffThreshold < 0 || math.IsNaN(c.DiffThreshold) {
		return fmt.Errorf("%w: %f", ErrInvalidThreshold, c.DiffThreshold)
	}

	if c.MinSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinSize, c.MinSize)
	}

	return nil
}

// Result holds the outcome of one step-detection pass.
type Result struct {
	// Transitions lists the kept transition indices in increasing order.
	// Diagnostic output: the zone boundaries derive from it.
	Transitions []int

	// Zones are the intervals between consecutive boundaries, already
	// filtered by the configured minimum size.
	Zones []zone.Zone

	// Threshold is the smoothed-derivative level that was applied. For the
	// automatic mode this reports the selected 3 x median value, so callers
	// can judge its sensitivity on their traces. NaN when the series is too
	// short to form a derivative.
	Threshold float64
}

// Detect segments values into step zones.
//
// Detection is deterministic: identical input and configuration always yield
// identical transitions and zones. An empty input yields an empty Result.
func Detect(values []float64, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	n := len(values)
	if n == 0 {
		return Result{Threshold: math.NaN()}, nil
	}

	// Absolute first difference; the value at index 0 has no predecessor and
	// never participates, so the slice is laid out from index 1 onward.
	deriv := make([]float64, n-1)
	for i := 1; i < n; i++ {
		deriv[i-1] = math.Abs(values[i] - values[i-1])
	}

	smoothed, err := rolling.Mean(deriv, cfg.DiffWindow)
	if err != nil {
		return Result{}, err
	}

	threshold := cfg.DiffThreshold
	if threshold == 0 {
		threshold = 3 * rolling.Median(smoothed)
	}

	// Greedy de-duplication: within a cluster of detections around one real
	// transition the earliest index wins; the next kept index must be more
	// than DiffWindow samples later.
	var transitions []int

	lastKept := -(cfg.DiffWindow + 1)
	for j, s := range smoothed {
		i := j + 1
		if s > threshold && i-lastKept > cfg.DiffWindow {
			transitions = append(transitions, i)
			lastKept = i
		}
	}

	bounds := make([]int, 0, len(transitions)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, transitions...)
	bounds = append(bounds, n)

	zones := make([]zone.Zone, 0, len(bounds)-1)
	for i := 1; i < len(bounds); i++ {
		zones = append(zones, zone.Zone{Start: bounds[i-1], End: bounds[i]})
	}

	return Result{
		Transitions: transitions,
		Zones:       zone.FilterMinSize(zones, cfg.MinSize),
		Threshold:   threshold,
	}, nil
}

// DetectAll runs Detect on several channels sharing one time axis.
//
// Each channel calibrates its own automatic threshold. The result is
// index-aligned with channels.
func DetectAll(channels [][]float64, cfg Config) ([]Result, error) {
	out := make([]Result, len(channels))

	for i, ch := range channels {
		res, err := Detect(ch, cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}

		out[i] = res
	}

	return out, nil
}
