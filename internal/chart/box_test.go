package chart

import (
	"strings"
	"testing"

	"github.com/tablelab/tablelab/internal/stats"
)

func priceGroups() []stats.GroupSummary {
	return []stats.GroupSummary{
		{Group: "AA", Summary: stats.Summary{
			Count: 3, Min: 422.94, Q1: 422.94, Median: 422.94, Q3: 501.47, Max: 580,
		}},
		{Group: "LH", Summary: stats.Summary{
			Count: 3, Min: 555, Q1: 610.5, Median: 666, Q3: 666, Max: 666,
		}},
		{Group: "SQ", Summary: stats.Summary{
			Count: 2, Min: 923.5, Q1: 977.82, Median: 1032.14, Q3: 1086.45, Max: 1140.77,
		}},
	}
}

func TestBoxHeader(t *testing.T) {
	out := NewBox("CARRID", "PRICE", priceGroups()).Render(72)
	if !strings.Contains(out, "PRICE by CARRID (3 groups)") {
		t.Errorf("missing header in:\n%s", out)
	}
}

func TestBoxRows(t *testing.T) {
	out := NewBox("carrid", "price", priceGroups()).Render(72)

	for _, group := range []string{"AA", "LH", "SQ"} {
		if !strings.Contains(out, group) {
			t.Errorf("missing group %s in:\n%s", group, out)
		}
	}
	for _, mark := range []string{"├", "┤", "┃", "█"} {
		if !strings.Contains(out, mark) {
			t.Errorf("missing plot mark %s in:\n%s", mark, out)
		}
	}
	for _, n := range []string{"n=3", "n=2"} {
		if !strings.Contains(out, n) {
			t.Errorf("missing count %s in:\n%s", n, out)
		}
	}
}

func TestBoxNumbers(t *testing.T) {
	out := NewBox("carrid", "price", priceGroups()).Render(72)

	for _, want := range []string{
		"min 422.94", "med 666", "max 1140.77", "q1 977.82", "q3 501.47",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestBoxAxisEndpoints(t *testing.T) {
	out := NewBox("carrid", "price", priceGroups()).Render(72)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	axis := lines[len(lines)-1]

	// Shared scale spans the global extremes.
	if !strings.Contains(axis, "422.94") {
		t.Errorf("axis missing low endpoint: %q", axis)
	}
	if !strings.Contains(axis, "1140.77") {
		t.Errorf("axis missing high endpoint: %q", axis)
	}
}

func TestBoxOutliersNoted(t *testing.T) {
	groups := []stats.GroupSummary{
		{Group: "LH", Summary: stats.Summary{
			Count: 6, Min: 1, Q1: 2.25, Median: 3.5, Q3: 4.75, Max: 5,
			Outliers: []float64{100},
		}},
	}
	out := NewBox("carrid", "price", groups).Render(72)

	if !strings.Contains(out, "outliers 1") {
		t.Errorf("missing outlier note in:\n%s", out)
	}
	if !strings.Contains(out, "•") {
		t.Errorf("missing outlier dot in:\n%s", out)
	}
	// The axis extends past the whisker to cover the outlier.
	if !strings.Contains(out, "100") {
		t.Errorf("axis should reach 100 in:\n%s", out)
	}
}

func TestBoxEmpty(t *testing.T) {
	out := NewBox("carrid", "price", nil).Render(72)
	if !strings.Contains(out, "no groups to chart") {
		t.Errorf("empty chart output = %q", out)
	}
}

func TestBoxIdenticalValues(t *testing.T) {
	groups := []stats.GroupSummary{
		{Group: "AA", Summary: stats.Summary{
			Count: 3, Min: 5, Q1: 5, Median: 5, Q3: 5, Max: 5,
		}},
	}
	// Zero range must not divide by zero or panic.
	out := NewBox("carrid", "price", groups).Render(72)
	if !strings.Contains(out, "n=3") {
		t.Errorf("degenerate chart missing row in:\n%s", out)
	}
}

func TestFormatNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5, "5"},
		{666, "666"},
		{422.94, "422.94"},
		{0.5, "0.50"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := formatNum(tt.in); got != tt.want {
			t.Errorf("formatNum(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
