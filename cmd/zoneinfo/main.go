// Command zoneinfo detects stability zones in a well-test pressure table and
// prints per-zone time-domain and spectral summaries.
//
// Usage:
//
//	zoneinfo [flags] <table.csv>
//
// The input is a CSV table with a header row, one time column, and one or
// more numeric channel columns. With "-" as the file name the table is read
// from stdin.
//
// Examples:
//
//	zoneinfo -time "Elapsed Time [s]" data.csv
//	zoneinfo -detector step -diff-window 5 data.csv
//	zoneinfo -mode absolute -date 2024-03-18 -time Time -spectra data.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-welltest/spectral"
	"github.com/cwbudde/algo-welltest/stats/series"
	"github.com/cwbudde/algo-welltest/timeaxis"
	"github.com/cwbudde/algo-welltest/zone"
	"github.com/cwbudde/algo-welltest/zone/flat"
	"github.com/cwbudde/algo-welltest/zone/step"
)

func main() {
	timeCol := flag.String("time", "", "time column name (default: first column)")
	mode := flag.String("mode", "elapsed", "time column interpretation: elapsed | absolute")
	date := flag.String("date", "", "reference date YYYY-MM-DD (absolute mode)")
	detector := flag.String("detector", "flat", "zone detector: flat | step")
	window := flag.Int("window", 25, "rolling-std window in samples (flat)")
	stdThreshold := flag.Float64("std-threshold", 25, "max rolling std inside a flat zone")
	diffWindow := flag.Int("diff-window", 5, "derivative smoothing window in samples (step)")
	diffThreshold := flag.Float64("diff-threshold", 0, "smoothed-derivative threshold (step); 0 = auto (3 x median)")
	minSize := flag.Int("min-size", 20, "minimum zone length in samples")
	spectra := flag.Bool("spectra", false, "include per-zone spectral peak columns")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zoneinfo [flags] <table.csv>\n\n")
		fmt.Fprintf(os.Stderr, "Detects flat or step zones in a pressure table and summarizes each zone.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zoneinfo -time \"Elapsed Time [s]\" data.csv\n")
		fmt.Fprintf(os.Stderr, "  zoneinfo -detector step -diff-window 5 data.csv\n")
		fmt.Fprintf(os.Stderr, "  zoneinfo -mode absolute -date 2024-03-18 -spectra data.csv\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	tbl, err := readTable(flag.Arg(0), *timeCol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	axisMode, refDate, err := resolveMode(*mode, *date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	elapsed, channels, err := timeaxis.Normalize(tbl.rawTime, tbl.channels, refDate, axisMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	zones, err := detectZones(*detector, channels, detectorConfig{
		window:        *window,
		stdThreshold:  *stdThreshold,
		diffWindow:    *diffWindow,
		diffThreshold: *diffThreshold,
		minSize:       *minSize,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printZones(os.Stdout, tbl.names, elapsed, channels, zones, *spectra); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type table struct {
	names    []string // channel column names
	rawTime  []string
	channels [][]float64
}

// readTable loads the CSV and splits it into the raw time column and numeric
// channel columns. Channel cells that do not parse as numbers are rejected
// outright; only the time column may drop rows, so that the alignment
// invariant stays with the normalizer.
func readTable(path, timeCol string) (*table, error) {
	var r io.Reader

	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s: need a header row and at least one data row", path)
	}

	header := records[0]
	rows := records[1:]

	timeIdx := 0
	if timeCol != "" {
		timeIdx = -1
		for i, name := range header {
			if name == timeCol {
				timeIdx = i
				break
			}
		}
		if timeIdx < 0 {
			return nil, fmt.Errorf("time column %q not found in header", timeCol)
		}
	}

	t := &table{}
	t.rawTime = make([]string, len(rows))
	for r, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d: %d cells, header has %d", r+2, len(row), len(header))
		}
		t.rawTime[r] = row[timeIdx]
	}

	for c, name := range header {
		if c == timeIdx {
			continue
		}

		col := make([]float64, len(rows))
		for r, row := range rows {
			v, err := strconv.ParseFloat(row[c], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", r+2, name, err)
			}
			col[r] = v
		}

		t.names = append(t.names, name)
		t.channels = append(t.channels, col)
	}

	if len(t.channels) == 0 {
		return nil, fmt.Errorf("%s: no channel columns besides the time column", path)
	}

	return t, nil
}

func resolveMode(mode, date string) (timeaxis.Mode, time.Time, error) {
	switch mode {
	case "elapsed":
		return timeaxis.ModeElapsed, time.Time{}, nil
	case "absolute":
		if date == "" {
			return 0, time.Time{}, fmt.Errorf("absolute mode needs -date YYYY-MM-DD")
		}
		ref, err := time.Parse("2006-01-02", date)
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("invalid -date: %w", err)
		}
		return timeaxis.ModeAbsolute, ref, nil
	default:
		return 0, time.Time{}, fmt.Errorf("unknown mode %q (use elapsed or absolute)", mode)
	}
}

type detectorConfig struct {
	window        int
	stdThreshold  float64
	diffWindow    int
	diffThreshold float64
	minSize       int
}

func detectZones(detector string, channels [][]float64, cfg detectorConfig) ([][]zone.Zone, error) {
	switch detector {
	case "flat":
		return flat.DetectAll(channels, flat.Config{
			WindowSize:   cfg.window,
			StdThreshold: cfg.stdThreshold,
			MinSize:      cfg.minSize,
		})
	case "step":
		results, err := step.DetectAll(channels, step.Config{
			DiffWindow:    cfg.diffWindow,
			DiffThreshold: cfg.diffThreshold,
			MinSize:       cfg.minSize,
		})
		if err != nil {
			return nil, err
		}

		zones := make([][]zone.Zone, len(results))
		for i, res := range results {
			zones[i] = res.Zones
			fmt.Fprintf(os.Stderr, "channel %d: threshold=%.6g transitions=%v\n",
				i, res.Threshold, res.Transitions)
		}
		return zones, nil
	default:
		return nil, fmt.Errorf("unknown detector %q (use flat or step)", detector)
	}
}

func printZones(w io.Writer, names []string, elapsed []float64, channels [][]float64, zones [][]zone.Zone, spectra bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "Channel\tZone\tStart\tEnd\tSamples\tFrom [s]\tTo [s]\tMean\tStd\tMin\tMax"
	if spectra {
		header += "\tPeak [Hz]\tPeak Amp"
	}

	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for c, chZones := range zones {
		for i, z := range chZones {
			st := series.Summarize(z.Slice(channels[c]))

			row := fmt.Sprintf("%s\t%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f",
				names[c], i+1, z.Start, z.End, z.Len(),
				elapsed[z.Start], elapsed[z.End-1],
				st.Mean, st.Std, st.Min, st.Max)

			if spectra {
				spec, err := spectral.Analyze(z, elapsed, channels[c])
				if err != nil {
					return fmt.Errorf("channel %s zone %d: %w", names[c], i+1, err)
				}

				sum := spectral.Summarize(spec)
				row += fmt.Sprintf("\t%.6g\t%.6g", sum.PeakFreq, sum.PeakAmp)
			}

			if _, err := fmt.Fprintln(tw, row); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}
