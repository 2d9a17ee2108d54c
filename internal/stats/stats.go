// Package stats computes the summaries behind the notebook's charts:
// value distributions for the pie chart, five-number summaries for the
// box plot, and per-column statistics for describe output.
//
// NULL handling follows the usual dataframe default: NULLs are skipped
// in counts and aggregates rather than treated as a value.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/tablelab/tablelab/internal/database"
)

// ValueCount is the frequency of one distinct value in a column.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts computes the frequency of each distinct value of a
// column, NULLs skipped. Results are ordered by count descending,
// ties by value ascending, so output is deterministic.
func ValueCounts(frame *database.Frame, column string) ([]ValueCount, error) {
	values, err := frame.Column(column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, v := range values {
		if v == nil {
			continue
		}
		counts[database.FormatValue(v)]++
	}

	result := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		result = append(result, ValueCount{Value: value, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Value < result[j].Value
	})
	return result, nil
}

// NumericColumn extracts a column as float64 values, NULLs skipped.
// Any non-numeric value is an error; the caller picks a different
// column and re-triggers.
func NumericColumn(frame *database.Frame, column string) ([]float64, error) {
	values, err := frame.Column(column)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		f, ok := asFloat(v)
		if !ok {
			return nil, fmt.Errorf("column %q is not numeric: got %T value %v", column, v, v)
		}
		out = append(out, f)
	}
	return out, nil
}

func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int64:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}

// Summary is a five-number summary. Min and Max are the whisker ends:
// the furthest points within 1.5 IQR of the quartiles. Points beyond
// the fences are reported as Outliers.
type Summary struct {
	Count    int
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
	Outliers []float64
}

// FiveNumber computes the five-number summary of values.
func FiveNumber(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, fmt.Errorf("no values to summarize")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := Summary{
		Count:  len(sorted),
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}

	iqr := s.Q3 - s.Q1
	loFence := s.Q1 - 1.5*iqr
	hiFence := s.Q3 + 1.5*iqr

	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	// All points outside the fences can only happen with pathological
	// quartiles; fall back to data extremes.
	if math.IsInf(s.Min, 1) {
		s.Min = sorted[0]
		s.Max = sorted[len(sorted)-1]
	}

	return s, nil
}

// quantile computes the p-quantile of sorted values by linear
// interpolation, matching the common dataframe default.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// GroupSummary is the five-number summary of the value column for one
// distinct category.
type GroupSummary struct {
	Group   string
	Summary Summary
}

// GroupSummaries groups frame rows by categoryCol and summarizes
// valueCol per group. Rows with a NULL category or value are skipped.
// Groups are ordered by name; the group set equals the distinct
// non-NULL category values that have at least one value.
func GroupSummaries(frame *database.Frame, categoryCol, valueCol string) ([]GroupSummary, error) {
	catIdx, err := frame.ColumnIndex(categoryCol)
	if err != nil {
		return nil, err
	}
	valIdx, err := frame.ColumnIndex(valueCol)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	for _, row := range frame.Rows {
		cat := row[catIdx]
		val := row[valIdx]
		if cat == nil || val == nil {
			continue
		}
		f, ok := asFloat(val)
		if !ok {
			return nil, fmt.Errorf("column %q is not numeric: got %T value %v", valueCol, val, val)
		}
		key := database.FormatValue(cat)
		groups[key] = append(groups[key], f)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]GroupSummary, 0, len(names))
	for _, name := range names {
		summary, err := FiveNumber(groups[name])
		if err != nil {
			return nil, err
		}
		result = append(result, GroupSummary{Group: name, Summary: summary})
	}
	return result, nil
}

// ColumnSummary holds per-column describe statistics.
type ColumnSummary struct {
	Name     string
	NonNull  int
	Nulls    int
	Distinct int
	Numeric  bool
	Min      float64
	Mean     float64
	Max      float64
}

// Summarize computes describe statistics for every column of a frame.
// Min/Mean/Max are only populated for columns whose non-NULL values
// are all numeric.
func Summarize(frame *database.Frame) []ColumnSummary {
	result := make([]ColumnSummary, 0, len(frame.Columns))

	for idx, name := range frame.Columns {
		cs := ColumnSummary{Name: name, Numeric: true}
		distinct := make(map[string]bool)
		var sum float64
		var numSeen int

		for _, row := range frame.Rows {
			v := row[idx]
			if v == nil {
				cs.Nulls++
				continue
			}
			cs.NonNull++
			distinct[database.FormatValue(v)] = true

			f, ok := asFloat(v)
			if !ok {
				cs.Numeric = false
				continue
			}
			numSeen++
			if numSeen == 1 || f < cs.Min {
				cs.Min = f
			}
			if numSeen == 1 || f > cs.Max {
				cs.Max = f
			}
			sum += f
		}

		cs.Distinct = len(distinct)
		if cs.NonNull == 0 {
			cs.Numeric = false
		}
		if cs.Numeric {
			cs.Mean = sum / float64(cs.NonNull)
		} else {
			cs.Min, cs.Mean, cs.Max = 0, 0, 0
		}
		result = append(result, cs)
	}
	return result
}
