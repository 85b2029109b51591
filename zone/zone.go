// Package zone defines the half-open index interval used by all detectors
// and the shared size filter applied to candidate intervals.
package zone

import "fmt"

// Zone is a half-open index interval [Start, End) into a sample series.
//
// Zones produced by one detection pass are non-overlapping and ordered by
// increasing Start. A zone carries no identity beyond its interval; ordinal
// numbering (1..K) is a presentation concern and is not stored here.
type Zone struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the zone.
func (z Zone) Len() int {
	return z.End - z.Start
}

// Slice returns xs[Start:End].
//
// It panics like a normal slice expression if the zone does not fit xs;
// callers pairing zones with the series they were detected on never hit this.
func (z Zone) Slice(xs []float64) []float64 {
	return xs[z.Start:z.End]
}

// String formats the zone as "[start,end)".
func (z Zone) String() string {
	return fmt.Sprintf("[%d,%d)", z.Start, z.End)
}

// FromMask extracts each maximal run of true values as a candidate zone.
//
// A run still open at the end of the mask closes at len(mask). Zones are
// returned in increasing Start order and are disjoint by construction.
func FromMask(mask []bool) []Zone {
	var zones []Zone

	inRun := false
	start := 0

	for i, ok := range mask {
		switch {
		case ok && !inRun:
			start = i
			inRun = true
		case !ok && inRun:
			zones = append(zones, Zone{Start: start, End: i})
			inRun = false
		}
	}

	if inRun {
		zones = append(zones, Zone{Start: start, End: len(mask)})
	}

	return zones
}

// FilterMinSize drops every zone shorter than minSize samples.
//
// The relative order of surviving zones is preserved and their indices are
// left untouched.
func FilterMinSize(zones []Zone, minSize int) []Zone {
	out := make([]Zone, 0, len(zones))
	for _, z := range zones {
		if z.Len() >= minSize {
			out = append(out, z)
		}
	}

	return out
}
