// Package flat detects flat zones: maximal intervals where a channel's
// short-term dispersion stays below a threshold.
//
// The detector computes a trailing rolling standard deviation, thresholds it
// into a per-sample candidate mask, repairs the mask (small holes filled,
// small islands removed), and extracts maximal candidate runs as zones. Zones
// shorter than the configured minimum are dropped.
package flat

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-welltest/stats/rolling"
	"github.com/cwbudde/algo-welltest/zone"
	"github.com/cwbudde/algo-welltest/zone/mask"
)

// Errors returned by Detect.
var (
	ErrInvalidWindowSize = errors.New("flat: window size must be >= 1")
	ErrInvalidThreshold  = errors.New("flat: std threshold must be >= 0")
	ErrInvalidMinSize    = errors.New("flat: min size must be >= 1")
)

// Config holds flat-zone detection parameters.
type Config struct {
	// WindowSize is the trailing rolling-std window in samples.
	WindowSize int

	// StdThreshold is the dispersion cap: a sample is a flat candidate when
	// its rolling std is at or below this value.
	StdThreshold float64

	// MinSize is the minimum accepted zone length in samples.
	MinSize int
}

// Validate checks the configuration before any computation starts.
func (c Config) Validate() error {
	if c.WindowSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWindowSize, c.WindowSize)
	}

	if c.StdThreshold < 0 || math.IsNaN(c.StdThreshold) {
		return fmt.Errorf("%w: %f", ErrInvalidThreshold, c.StdThreshold)
	}

	if c.MinSize < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidMinSize, c.MinSize)
	}

	return nil
}

// Detect segments values into flat zones.
//
// Zones are returned in increasing start order and are disjoint by
// construction. An empty input yields an empty zone list. A window larger
// than the series is not an error; every position simply uses all available
// history.
//
// Positions whose rolling std is undefined (fewer than two samples of
// history) count as flat candidates: failing to compute dispersion must not
// exclude a sample.
func Detect(values []float64, cfg Config) ([]zone.Zone, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, nil
	}

	rollingStd, err := rolling.Std(values, cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	m := make([]bool, len(rollingStd))
	for i, s := range rollingStd {
		m[i] = math.IsNaN(s) || s <= cfg.StdThreshold
	}

	// Gap heuristics scale with the observation window.
	cleaned := mask.Clean(m, cfg.WindowSize/2, cfg.WindowSize/10)

	zones := zone.FromMask(cleaned)

	return zone.FilterMinSize(zones, cfg.MinSize), nil
}

// DetectAll runs Detect on several channels sharing one time axis.
//
// The result is index-aligned with channels. The first invalid configuration
// or channel error aborts the whole pass.
func DetectAll(channels [][]float64, cfg Config) ([][]zone.Zone, error) {
	out := make([][]zone.Zone, len(channels))

	for i, ch := range channels {
		zones, err := Detect(ch, cfg)
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", i, err)
		}

		out[i] = zones
	}

	return out, nil
}
