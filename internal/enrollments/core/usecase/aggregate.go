package usecase

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
)

// Lookup order for the branch name and the enrollment count. Different
// versions of the report expose the same column under different names.
var (
	BranchKeys = []string{"FILIAL", "Filial", "NOMEFANTASIA"}
	CountKeys  = []string{"MATRICULAS", "Matriculas", "QTD"}
)

// Aggregate sums enrollment counts per normalized branch name.
// It never fails: records without a branch are skipped and unusable counts
// contribute zero. Output order follows first appearance and is not sorted.
func Aggregate(records []domain.RawRecord, noise string) []domain.AggregatedRow {
	rows, _ := AggregateWithStats(records, noise)
	return rows
}

func AggregateWithStats(records []domain.RawRecord, noise string) ([]domain.AggregatedRow, domain.AggregationStats) {
	stats := domain.AggregationStats{Records: len(records)}

	index := make(map[string]int, len(records))
	rows := make([]domain.AggregatedRow, 0)

	for _, rec := range records {
		branch := NormalizeBranch(branchValue(rec), noise)
		if branch == "" {
			stats.Skipped++
			continue
		}

		count, ok := coerceCount(firstTruthy(rec, CountKeys))
		if !ok {
			stats.CoercedToZero++
		}

		if i, seen := index[branch]; seen {
			rows[i].Count = domain.AddCount(rows[i].Count, count)
			continue
		}
		index[branch] = len(rows)
		rows = append(rows, domain.AggregatedRow{Branch: branch, Count: count})
	}

	return rows, stats
}

// NormalizeBranch trims s and removes every occurrence of noise.
func NormalizeBranch(s, noise string) string {
	s = strings.TrimSpace(s)
	if noise != "" {
		s = strings.ReplaceAll(s, noise, "")
	}
	return strings.TrimSpace(s)
}

func branchValue(rec domain.RawRecord) string {
	switch v := firstTruthy(rec, BranchKeys).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// firstTruthy returns the first value under keys that is not empty, zero,
// false or nil. A present-but-empty value falls through to the next key.
func firstTruthy(rec domain.RawRecord, keys []string) any {
	for _, k := range keys {
		v, ok := rec[k]
		if ok && truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// coerceCount converts v to a non-negative count, truncating toward zero.
// ok is false when a value was present but had to be replaced with zero.
func coerceCount(v any) (int64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, true
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
