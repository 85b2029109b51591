package zone

import (
	"reflect"
	"testing"
)

func TestFromMaskRuns(t *testing.T) {
	tests := []struct {
		name string
		mask []bool
		want []Zone
	}{
		{
			name: "empty mask",
			mask: nil,
			want: nil,
		},
		{
			name: "all false",
			mask: []bool{false, false, false},
			want: nil,
		},
		{
			name: "all true closes at N",
			mask: []bool{true, true, true},
			want: []Zone{{0, 3}},
		},
		{
			name: "two interior runs",
			mask: []bool{false, true, true, false, true, false},
			want: []Zone{{1, 3}, {4, 5}},
		},
		{
			name: "run open at end",
			mask: []bool{false, false, true, true},
			want: []Zone{{2, 4}},
		},
		{
			name: "single sample runs",
			mask: []bool{true, false, true},
			want: []Zone{{0, 1}, {2, 3}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FromMask(tc.mask)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FromMask(%v)=%v want=%v", tc.mask, got, tc.want)
			}
		})
	}
}

func TestFromMaskOrderedDisjoint(t *testing.T) {
	mask := []bool{true, false, true, true, false, false, true, true, true, false, true}

	zones := FromMask(mask)

	for i, z := range zones {
		if z.Start >= z.End {
			t.Fatalf("zone %d is empty or inverted: %v", i, z)
		}

		if i > 0 && z.Start < zones[i-1].End {
			t.Fatalf("zones %d and %d overlap or are out of order: %v %v",
				i-1, i, zones[i-1], z)
		}
	}
}

func TestFilterMinSize(t *testing.T) {
	zones := []Zone{{0, 3}, {5, 6}, {8, 12}}

	got := FilterMinSize(zones, 3)
	want := []Zone{{0, 3}, {8, 12}}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterMinSize=%v want=%v", got, want)
	}
}

func TestFilterMinSizeOneIsIdentity(t *testing.T) {
	zones := []Zone{{0, 1}, {2, 5}, {7, 8}}

	got := FilterMinSize(zones, 1)
	if !reflect.DeepEqual(got, zones) {
		t.Fatalf("FilterMinSize(zones, 1)=%v want unchanged %v", got, zones)
	}
}

func TestZoneHelpers(t *testing.T) {
	z := Zone{Start: 2, End: 5}

	if z.Len() != 3 {
		t.Fatalf("Len=%d want=3", z.Len())
	}

	xs := []float64{0, 1, 2, 3, 4, 5}

	got := z.Slice(xs)
	if len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Fatalf("Slice=%v want=[2 3 4]", got)
	}

	if z.String() != "[2,5)" {
		t.Fatalf("String=%q want=%q", z.String(), "[2,5)")
	}
}
