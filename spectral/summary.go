package spectral

// Summary holds headline statistics of an amplitude spectrum, the numbers an
// analyst reads off a zone's FFT panel.
type Summary struct {
	BinCount int
	PeakBin  int
	PeakFreq float64 // Hz
	PeakAmp  float64
	Sum      float64 // sum of amplitudes over all bins
	Average  float64
}

// Summarize computes summary statistics of s in one pass.
//
// The DC bin is excluded from the peak search: the analyzer de-means every
// zone, so whatever remains at bin 0 is numeric residue, not signal. An empty
// spectrum yields a zero Summary.
func Summarize(s Spectrum) Summary {
	n := len(s.Amps)
	if n == 0 {
		return Summary{}
	}

	out := Summary{BinCount: n}

	peakBin := 0
	peakAmp := s.Amps[0]

	for i, a := range s.Amps {
		out.Sum += a

		if i == 0 {
			continue
		}

		if peakBin == 0 || a > peakAmp {
			peakAmp = a
			peakBin = i
		}
	}

	out.PeakBin = peakBin
	out.PeakAmp = s.Amps[peakBin]
	out.PeakFreq = s.Freqs[peakBin]
	out.Average = out.Sum / float64(n)

	return out
}
