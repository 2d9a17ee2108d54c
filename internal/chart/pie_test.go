package chart

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/tablelab/tablelab/internal/stats"
)

func carrierCounts() []stats.ValueCount {
	return []stats.ValueCount{
		{Value: "LH", Count: 4},
		{Value: "AA", Count: 3},
		{Value: "SQ", Count: 2},
	}
}

func TestPieHeader(t *testing.T) {
	out := NewPie("CARRID", carrierCounts()).Render(60)
	if !strings.Contains(out, "CARRID distribution (9 values, 3 distinct)") {
		t.Errorf("missing header line in:\n%s", out)
	}
}

func TestPieSegmentBarWidth(t *testing.T) {
	for _, width := range []int{20, 40, 72} {
		out := NewPie("carrid", carrierCounts()).Render(width)
		lines := strings.Split(out, "\n")
		if len(lines) < 3 {
			t.Fatalf("unexpected output shape:\n%s", out)
		}
		// Line 0 header, line 1 blank, line 2 the segment bar.
		bar := lines[2]
		if got := utf8.RuneCountInString(bar); got != width {
			t.Errorf("width %d: segment bar has %d cells", width, got)
		}
	}
}

func TestPieLegend(t *testing.T) {
	out := NewPie("carrid", carrierCounts()).Render(60)

	for _, want := range []string{"LH", "AA", "SQ", "44.4%", "33.3%", "22.2%"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend missing %q in:\n%s", want, out)
		}
	}

	// Counts appear right-aligned in the legend rows.
	if !strings.Contains(out, "     4") || !strings.Contains(out, "     3") {
		t.Errorf("legend missing aligned counts in:\n%s", out)
	}
}

func TestPieEverySliceVisible(t *testing.T) {
	// One huge and many tiny slices: each still gets a cell.
	counts := []stats.ValueCount{
		{Value: "big", Count: 1000},
		{Value: "a", Count: 1},
		{Value: "b", Count: 1},
		{Value: "c", Count: 1},
	}
	out := NewPie("col", counts).Render(40)
	bar := strings.Split(out, "\n")[2]
	for _, mark := range []string{"█", "▓", "▒", "░"} {
		if !strings.Contains(bar, mark) {
			t.Errorf("slice mark %s missing from bar %q", mark, bar)
		}
	}
}

func TestPieEmpty(t *testing.T) {
	out := NewPie("carrid", nil).Render(60)
	if !strings.Contains(out, "no values to chart") {
		t.Errorf("empty chart output = %q", out)
	}
}

func TestPieLongLabelTruncated(t *testing.T) {
	counts := []stats.ValueCount{
		{Value: strings.Repeat("x", 100), Count: 1},
		{Value: "y", Count: 1},
	}
	out := NewPie("col", counts).Render(30)
	for _, line := range strings.Split(out, "\n") {
		if utf8.RuneCountInString(line) > 40 {
			t.Errorf("line too wide for a 30-cell chart: %q", line)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"longer than ten", 10, "longer th…"},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
