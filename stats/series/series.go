// Package series computes time-domain summary statistics for a slice of a
// sample series, typically one detected zone of a pressure channel.
package series

import "math"

// Stats holds the time-domain summary of a series slice.
type Stats struct {
	Length int
	Mean   float64
	Std    float64 // sample standard deviation (n-1 denominator)
	Min    float64
	MinPos int
	Max    float64
	MaxPos int
	Range  float64 // Max - Min
	RMS    float64
}

// Summarize computes all statistics in a single pass, using Welford's online
// algorithm for the variance so that large-offset signals keep precision.
//
// An empty input yields a zero-length Stats with NaN Mean and Std.
func Summarize(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{Mean: math.NaN(), Std: math.NaN()}
	}

	var (
		mean  float64
		m2    float64
		sumSq float64
	)

	maxVal := values[0]
	minVal := values[0]

	var maxPos, minPos int

	for i, x := range values {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	std := math.NaN()
	if n > 1 {
		std = math.Sqrt(m2 / float64(n-1))
	}

	return Stats{
		Length: n,
		Mean:   mean,
		Std:    std,
		Min:    minVal,
		MinPos: minPos,
		Max:    maxVal,
		MaxPos: maxPos,
		Range:  maxVal - minVal,
		RMS:    math.Sqrt(sumSq / float64(n)),
	}
}
