// Package timeaxis converts a raw time column into a monotonic
// elapsed-seconds axis shared by every value channel of a measurement table.
//
// Well-test equipment exports either numeric elapsed values or time-of-day
// strings whose calendar date is recorded out of band. Rows whose time entry
// cannot be parsed are dropped, together with the same row of every aligned
// value column, so that all channels stay index-aligned with the axis.
package timeaxis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode selects how the raw time column is interpreted.
type Mode int

const (
	// ModeElapsed treats each entry as a numeric elapsed value (seconds).
	ModeElapsed Mode = iota

	// ModeAbsolute treats each entry as a time-of-day string on the
	// reference date; the axis becomes seconds since the first row.
	ModeAbsolute
)

// Errors returned by Normalize.
var (
	ErrEmptyAfterNormalization = errors.New("timeaxis: no rows survived normalization")
	ErrColumnLengthMismatch    = errors.New("timeaxis: value column length does not match time column")
	ErrUnknownMode             = errors.New("timeaxis: unknown normalization mode")
)

// Clock-time layouts accepted in ModeAbsolute, tried after the reference date
// has been prefixed. The fractional-second digits are optional.
var absoluteLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02 3:04:05.999999999 PM",
}

// Normalize converts rawTime into an elapsed-seconds axis and drops failed
// rows from every aligned value column.
//
// The returned columns are fresh slices; the inputs are never modified. Input
// rows are assumed pre-sorted in time, no re-sort is performed. refDate is
// only consulted in ModeAbsolute.
//
// If every row fails parsing, Normalize returns ErrEmptyAfterNormalization:
// the caller must learn that there is no usable series rather than receive an
// empty one silently.
func Normalize(rawTime []string, values [][]float64, refDate time.Time, mode Mode) ([]float64, [][]float64, error) {
	for i, col := range values {
		if len(col) != len(rawTime) {
			return nil, nil, fmt.Errorf("%w: column %d has %d rows, time column has %d",
				ErrColumnLengthMismatch, i, len(col), len(rawTime))
		}
	}

	var (
		elapsed []float64
		kept    []int
		err     error
	)

	switch mode {
	case ModeElapsed:
		elapsed, kept = parseElapsed(rawTime)
	case ModeAbsolute:
		elapsed, kept = parseAbsolute(rawTime, refDate)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	if err != nil {
		return nil, nil, err
	}

	if len(elapsed) == 0 {
		return nil, nil, ErrEmptyAfterNormalization
	}

	out := make([][]float64, len(values))
	for c, col := range values {
		out[c] = make([]float64, len(kept))
		for r, idx := range kept {
			out[c][r] = col[idx]
		}
	}

	return elapsed, out, nil
}

func parseElapsed(rawTime []string) ([]float64, []int) {
	elapsed := make([]float64, 0, len(rawTime))
	kept := make([]int, 0, len(rawTime))

	for i, s := range rawTime {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			continue
		}

		elapsed = append(elapsed, v)
		kept = append(kept, i)
	}

	return elapsed, kept
}

func parseAbsolute(rawTime []string, refDate time.Time) ([]float64, []int) {
	prefix := refDate.Format("2006-01-02")

	elapsed := make([]float64, 0, len(rawTime))
	kept := make([]int, 0, len(rawTime))

	var first time.Time

	for i, s := range rawTime {
		t, ok := parseTimestamp(prefix + " " + strings.TrimSpace(s))
		if !ok {
			continue
		}

		if len(kept) == 0 {
			first = t
		}

		elapsed = append(elapsed, t.Sub(first).Seconds())
		kept = append(kept, i)
	}

	return elapsed, kept
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range absoluteLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
