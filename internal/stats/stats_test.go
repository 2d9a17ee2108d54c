package stats

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/tablelab/tablelab/internal/database"
)

func flightFrame() *database.Frame {
	return &database.Frame{
		Table:   "sflight",
		Columns: []string{"carrid", "connid", "price", "planetype"},
		Rows: [][]any{
			{"AA", int64(17), 422.94, "747-400"},
			{"AA", int64(64), 580.0, "A310-300"},
			{"AA", int64(17), 422.94, "747-400"},
			{"LH", int64(400), 666.0, "A319"},
			{"LH", int64(402), 666.0, "A319"},
			{"LH", int64(2402), nil, "A321"},
			{"LH", int64(2407), 555.0, "A319"},
			{"SQ", int64(26), 1140.77, nil},
			{"SQ", int64(158), 923.5, "A340-600"},
		},
	}
}

func TestValueCounts(t *testing.T) {
	counts, err := ValueCounts(flightFrame(), "carrid")
	if err != nil {
		t.Fatalf("ValueCounts failed: %v", err)
	}

	want := []ValueCount{
		{Value: "LH", Count: 4},
		{Value: "AA", Count: 3},
		{Value: "SQ", Count: 2},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestValueCountsSkipsNulls(t *testing.T) {
	counts, err := ValueCounts(flightFrame(), "planetype")
	if err != nil {
		t.Fatalf("ValueCounts failed: %v", err)
	}

	total := 0
	for _, c := range counts {
		if c.Value == "" {
			t.Error("NULL should not appear as a counted value")
		}
		total += c.Count
	}
	if total != 8 {
		t.Errorf("counts sum to %d, want 8 (9 rows, 1 NULL)", total)
	}
}

func TestValueCountsTieBreak(t *testing.T) {
	frame := &database.Frame{
		Columns: []string{"c"},
		Rows:    [][]any{{"b"}, {"a"}, {"b"}, {"a"}, {"c"}},
	}
	counts, err := ValueCounts(frame, "c")
	if err != nil {
		t.Fatalf("ValueCounts failed: %v", err)
	}
	want := []ValueCount{{"a", 2}, {"b", 2}, {"c", 1}}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestValueCountsUnknownColumn(t *testing.T) {
	if _, err := ValueCounts(flightFrame(), "bogus"); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestNumericColumn(t *testing.T) {
	values, err := NumericColumn(flightFrame(), "price")
	if err != nil {
		t.Fatalf("NumericColumn failed: %v", err)
	}
	if len(values) != 8 {
		t.Errorf("got %d values, want 8 (NULL skipped)", len(values))
	}

	_, err = NumericColumn(flightFrame(), "carrid")
	if err == nil {
		t.Fatal("expected error for text column")
	}
	if !strings.Contains(err.Error(), "is not numeric") {
		t.Errorf("error = %q, want mention of non-numeric", err)
	}
}

func TestFiveNumberOddCount(t *testing.T) {
	s, err := FiveNumber([]float64{9, 1, 8, 2, 7, 3, 6, 4, 5})
	if err != nil {
		t.Fatalf("FiveNumber failed: %v", err)
	}

	if s.Count != 9 {
		t.Errorf("Count = %d, want 9", s.Count)
	}
	if s.Q1 != 3 || s.Median != 5 || s.Q3 != 7 {
		t.Errorf("quartiles = %v/%v/%v, want 3/5/7", s.Q1, s.Median, s.Q3)
	}
	if s.Min != 1 || s.Max != 9 {
		t.Errorf("whiskers = %v/%v, want 1/9", s.Min, s.Max)
	}
	if len(s.Outliers) != 0 {
		t.Errorf("outliers = %v, want none", s.Outliers)
	}
}

func TestFiveNumberOutlier(t *testing.T) {
	s, err := FiveNumber([]float64{1, 2, 3, 4, 5, 100})
	if err != nil {
		t.Fatalf("FiveNumber failed: %v", err)
	}

	if s.Q1 != 2.25 || s.Q3 != 4.75 {
		t.Errorf("Q1/Q3 = %v/%v, want 2.25/4.75", s.Q1, s.Q3)
	}
	// IQR 2.5, upper fence 8.5: 100 falls outside, whisker stops at 5.
	if !reflect.DeepEqual(s.Outliers, []float64{100}) {
		t.Errorf("outliers = %v, want [100]", s.Outliers)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("whiskers = %v/%v, want 1/5", s.Min, s.Max)
	}
}

func TestFiveNumberSingleValue(t *testing.T) {
	s, err := FiveNumber([]float64{42})
	if err != nil {
		t.Fatalf("FiveNumber failed: %v", err)
	}
	if s.Min != 42 || s.Q1 != 42 || s.Median != 42 || s.Q3 != 42 || s.Max != 42 {
		t.Errorf("all statistics should equal the single value, got %+v", s)
	}
}

func TestFiveNumberEmpty(t *testing.T) {
	if _, err := FiveNumber(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 17.5},
		{0.5, 25},
		{0.75, 32.5},
		{1, 40},
	}
	for _, tt := range tests {
		if got := quantile(sorted, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("quantile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGroupSummaries(t *testing.T) {
	groups, err := GroupSummaries(flightFrame(), "carrid", "price")
	if err != nil {
		t.Fatalf("GroupSummaries failed: %v", err)
	}

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Group
	}
	if !reflect.DeepEqual(names, []string{"AA", "LH", "SQ"}) {
		t.Errorf("groups = %v, want sorted carriers", names)
	}

	// LH has 4 rows but one NULL price.
	for _, g := range groups {
		wantCount := map[string]int{"AA": 3, "LH": 3, "SQ": 2}[g.Group]
		if g.Summary.Count != wantCount {
			t.Errorf("%s count = %d, want %d", g.Group, g.Summary.Count, wantCount)
		}
	}
}

func TestGroupSummariesNonNumericValue(t *testing.T) {
	if _, err := GroupSummaries(flightFrame(), "carrid", "planetype"); err == nil {
		t.Fatal("expected error for non-numeric value column")
	}
}

func TestGroupSummariesUnknownColumns(t *testing.T) {
	if _, err := GroupSummaries(flightFrame(), "bogus", "price"); err == nil {
		t.Fatal("expected error for unknown category column")
	}
	if _, err := GroupSummaries(flightFrame(), "carrid", "bogus"); err == nil {
		t.Fatal("expected error for unknown value column")
	}
}

func TestSummarize(t *testing.T) {
	frame := &database.Frame{
		Columns: []string{"carrid", "price", "note"},
		Rows: [][]any{
			{"AA", 100.0, nil},
			{"AA", 200.0, nil},
			{"LH", nil, nil},
		},
	}

	summaries := Summarize(frame)
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}

	carrid := summaries[0]
	if carrid.NonNull != 3 || carrid.Nulls != 0 || carrid.Distinct != 2 {
		t.Errorf("carrid = %+v, want 3 non-null, 0 nulls, 2 distinct", carrid)
	}
	if carrid.Numeric {
		t.Error("carrid should not be numeric")
	}

	price := summaries[1]
	if !price.Numeric {
		t.Fatal("price should be numeric")
	}
	if price.NonNull != 2 || price.Nulls != 1 {
		t.Errorf("price counts = %d/%d, want 2 non-null, 1 null", price.NonNull, price.Nulls)
	}
	if price.Min != 100 || price.Mean != 150 || price.Max != 200 {
		t.Errorf("price min/mean/max = %v/%v/%v, want 100/150/200", price.Min, price.Mean, price.Max)
	}

	note := summaries[2]
	if note.Numeric {
		t.Error("all-NULL column should not be reported numeric")
	}
	if note.NonNull != 0 || note.Nulls != 3 || note.Distinct != 0 {
		t.Errorf("note = %+v, want all NULL", note)
	}
}
