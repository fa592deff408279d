package domain

import (
	"math"
	"testing"
)

func TestAddCount(t *testing.T) {
	tests := []struct {
		a, b, want int64
	}{
		{0, 0, 0},
		{120, 30, 150},
		{math.MaxInt64, 0, math.MaxInt64},
		{math.MaxInt64 - 1, 1, math.MaxInt64},
		{math.MaxInt64 - 1, 2, math.MaxInt64},
		{9e18, 9e18, math.MaxInt64},
	}

	for _, tt := range tests {
		if got := AddCount(tt.a, tt.b); got != tt.want {
			t.Errorf("AddCount(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSum(t *testing.T) {
	if got := Sum(nil); got != 0 {
		t.Fatalf("expected 0 for no rows, got %d", got)
	}

	rows := []AggregatedRow{{Branch: "A", Count: 120}, {Branch: "B", Count: 30}}
	if got := Sum(rows); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}

	rows = append(rows, AggregatedRow{Branch: "C", Count: math.MaxInt64})
	if got := Sum(rows); got != math.MaxInt64 {
		t.Fatalf("expected saturated total, got %d", got)
	}
}

func TestSortRows(t *testing.T) {
	in := []AggregatedRow{
		{Branch: "B", Count: 10},
		{Branch: "C", Count: 30},
		{Branch: "A", Count: 10},
	}

	out := SortRows(in)

	want := []string{"C", "A", "B"}
	for i, r := range out {
		if r.Branch != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], r.Branch)
		}
	}
	if in[0].Branch != "B" {
		t.Fatalf("input must not be reordered")
	}
}
