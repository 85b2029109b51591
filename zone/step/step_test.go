package step

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/cwbudde/algo-welltest/zone"
)

func TestDetectSingleStep(t *testing.T) {
	values := []float64{0, 0, 0, 10, 10, 10}

	res, err := Detect(values, Config{DiffWindow: 1, DiffThreshold: 5, MinSize: 1})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if !reflect.DeepEqual(res.Transitions, []int{3}) {
		t.Fatalf("transitions=%v want=[3]", res.Transitions)
	}

	want := []zone.Zone{{Start: 0, End: 3}, {Start: 3, End: 6}}
	if !reflect.DeepEqual(res.Zones, want) {
		t.Fatalf("zones=%v want=%v", res.Zones, want)
	}

	if res.Threshold != 5 {
		t.Fatalf("threshold=%f want=5 (explicit value reported back)", res.Threshold)
	}
}

func TestDetectAutoThreshold(t *testing.T) {
	// Flat everywhere except one jump: the median smoothed derivative is 0,
	// so the auto threshold is 0 and only the jump exceeds it.
	values := []float64{0, 0, 0, 0, 10, 10, 10, 10}

	res, err := Detect(values, Config{DiffWindow: 1, MinSize: 1})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if !reflect.DeepEqual(res.Transitions, []int{4}) {
		t.Fatalf("transitions=%v want=[4]", res.Transitions)
	}

	if res.Threshold != 0 {
		t.Fatalf("threshold=%f want=0 (3 x median of smoothed derivative)", res.Threshold)
	}

	want := []zone.Zone{{Start: 0, End: 4}, {Start: 4, End: 8}}
	if !reflect.DeepEqual(res.Zones, want) {
		t.Fatalf("zones=%v want=%v", res.Zones, want)
	}
}

func TestDetectDeduplicationKeepsEarliest(t *testing.T) {
	// One real transition smeared over several samples: the smoothed
	// derivative exceeds the threshold at consecutive indices, but only the
	// earliest survives de-duplication.
	values := []float64{0, 0, 0, 4, 8, 12, 12, 12, 12, 12}

	res, err := Detect(values, Config{DiffWindow: 3, DiffThreshold: 1, MinSize: 1})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if len(res.Transitions) == 0 {
		t.Fatalf("expected at least one transition")
	}

	for i := 1; i < len(res.Transitions); i++ {
		if res.Transitions[i]-res.Transitions[i-1] <= 3 {
			t.Fatalf("transitions %d and %d closer than DiffWindow: %v",
				i-1, i, res.Transitions)
		}
	}

	if res.Transitions[0] != 3 {
		t.Fatalf("first transition=%d want=3 (earliest in the cluster)", res.Transitions[0])
	}
}

func TestDetectMinSizeDropsShortZones(t *testing.T) {
	values := []float64{0, 0, 0, 0, 0, 10, 10}

	res, err := Detect(values, Config{DiffWindow: 1, DiffThreshold: 5, MinSize: 3})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	// [5,7) has only 2 samples and is dropped; the transition itself is
	// still reported.
	if !reflect.DeepEqual(res.Transitions, []int{5}) {
		t.Fatalf("transitions=%v want=[5]", res.Transitions)
	}

	want := []zone.Zone{{Start: 0, End: 5}}
	if !reflect.DeepEqual(res.Zones, want) {
		t.Fatalf("zones=%v want=%v", res.Zones, want)
	}
}

func TestDetectDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	values := make([]float64, 500)
	level := 0.0
	for i := range values {
		if i%100 == 0 {
			level += 50
		}
		values[i] = level + rng.NormFloat64()
	}

	cfg := Config{DiffWindow: 5, MinSize: 10}

	first, err := Detect(values, cfg)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	second, err := Detect(values, cfg)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if !reflect.DeepEqual(first.Transitions, second.Transitions) {
		t.Fatalf("transitions differ between runs: %v vs %v", first.Transitions, second.Transitions)
	}

	if !reflect.DeepEqual(first.Zones, second.Zones) {
		t.Fatalf("zones differ between runs: %v vs %v", first.Zones, second.Zones)
	}

	if first.Threshold != second.Threshold {
		t.Fatalf("thresholds differ: %f vs %f", first.Threshold, second.Threshold)
	}
}

func TestDetectEmptyInput(t *testing.T) {
	res, err := Detect(nil, Config{DiffWindow: 1, MinSize: 1})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if len(res.Transitions) != 0 || len(res.Zones) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestDetectSingleSample(t *testing.T) {
	// No derivative exists; the whole series is one zone and the threshold
	// is undefined.
	res, err := Detect([]float64{42}, Config{DiffWindow: 1, MinSize: 1})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	if !reflect.DeepEqual(res.Zones, []zone.Zone{{Start: 0, End: 1}}) {
		t.Fatalf("zones=%v want=[[0,1)]", res.Zones)
	}

	if !math.IsNaN(res.Threshold) {
		t.Fatalf("threshold=%f want NaN", res.Threshold)
	}
}

func TestDetectInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"diff window below one", Config{DiffWindow: 0, MinSize: 1}, ErrInvalidDiffWindow},
		{"negative threshold", Config{DiffWindow: 1, DiffThreshold: -2, MinSize: 1}, ErrInvalidThreshold},
		{"min size below one", Config{DiffWindow: 1, MinSize: 0}, ErrInvalidMinSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Detect([]float64{1, 2, 3}, tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestDetectAllIndependentThresholds(t *testing.T) {
	channels := [][]float64{
		{0, 0, 0, 0, 10, 10, 10, 10},
		{5, 5, 5, 5, 5, 5, 5, 5},
	}

	results, err := DetectAll(channels, Config{DiffWindow: 1, MinSize: 1})
	if err != nil {
		t.Fatalf("DetectAll error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("result count=%d want=2", len(results))
	}

	if len(results[0].Transitions) != 1 {
		t.Fatalf("channel 0 transitions=%v want one", results[0].Transitions)
	}

	// A constant channel has no transitions: one zone spanning the series.
	if len(results[1].Transitions) != 0 {
		t.Fatalf("channel 1 transitions=%v want none", results[1].Transitions)
	}

	if !reflect.DeepEqual(results[1].Zones, []zone.Zone{{Start: 0, End: 8}}) {
		t.Fatalf("channel 1 zones=%v want=[[0,8)]", results[1].Zones)
	}
}
