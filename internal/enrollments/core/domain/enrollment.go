package domain

import (
	"math"
	"sort"
	"time"
)

// RawRecord is one element of the remote JSON array. Keys vary between
// query versions, so nothing about its shape is assumed.
type RawRecord map[string]any

type AggregatedRow struct {
	Branch string
	Count  int64
}

// AggregationStats counts records that did not contribute cleanly.
// They are diagnostics only and never change the rows.
type AggregationStats struct {
	Records       int
	Skipped       int // no branch after normalization
	CoercedToZero int // count present but not a usable number
}

type Snapshot struct {
	Rows      []AggregatedRow
	Total     int64
	FetchedAt time.Time
	Meta      QueryMetadata
	Stats     AggregationStats
}

// AddCount adds two non-negative counts, saturating at math.MaxInt64.
func AddCount(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Sum returns the sum of all row counts, saturating at math.MaxInt64.
func Sum(rows []AggregatedRow) int64 {
	var total int64
	for _, r := range rows {
		total = AddCount(total, r.Count)
	}
	return total
}

// SortRows returns a copy of rows ordered by count descending, then branch.
func SortRows(rows []AggregatedRow) []AggregatedRow {
	out := make([]AggregatedRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Branch < out[j].Branch
	})
	return out
}
