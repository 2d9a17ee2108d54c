// Package chart renders the notebook's two chart types as plain text
// sized to a width. Output is uncolored; the TUI applies styling on
// top and the CLI writes it as-is.
package chart

import (
	"fmt"
	"strings"

	"github.com/tablelab/tablelab/internal/stats"
)

// sliceRunes are cycled across pie slices so adjacent segments stay
// distinguishable without color.
var sliceRunes = []rune{'█', '▓', '▒', '░'}

// PieChart is the value distribution of one column: one slice per
// distinct value, slice size proportional to its count.
type PieChart struct {
	Column string
	Total  int
	Slices []Slice
}

// Slice is one rendered pie segment.
type Slice struct {
	Label   string
	Count   int
	Percent float64
}

// NewPie builds a pie chart from value counts. The counts' ordering is
// preserved.
func NewPie(column string, counts []stats.ValueCount) *PieChart {
	total := 0
	for _, c := range counts {
		total += c.Count
	}

	slices := make([]Slice, len(counts))
	for i, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c.Count) / float64(total) * 100
		}
		slices[i] = Slice{Label: c.Value, Count: c.Count, Percent: pct}
	}

	return &PieChart{Column: column, Total: total, Slices: slices}
}

// Render renders the chart as a proportional segment bar plus a legend
// with counts and percentages.
func (p *PieChart) Render(width int) string {
	if width < 20 {
		width = 20
	}
	if len(p.Slices) == 0 || p.Total == 0 {
		return fmt.Sprintf("%s: no values to chart", p.Column)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s distribution (%d values, %d distinct)\n\n", p.Column, p.Total, len(p.Slices))

	b.WriteString(p.segmentBar(width))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, s := range p.Slices {
		if len(s.Label) > labelWidth {
			labelWidth = len(s.Label)
		}
	}
	if labelWidth > width/3 {
		labelWidth = width / 3
	}

	barWidth := width - labelWidth - 18
	if barWidth < 4 {
		barWidth = 4
	}

	for i, s := range p.Slices {
		mark := sliceRunes[i%len(sliceRunes)]
		bar := int(s.Percent / 100 * float64(barWidth))
		if bar < 1 {
			bar = 1
		}
		fmt.Fprintf(&b, "%c %-*s %s %6d %5.1f%%\n",
			mark,
			labelWidth, truncate(s.Label, labelWidth),
			strings.Repeat(string(mark), bar),
			s.Count, s.Percent)
	}

	return b.String()
}

// segmentBar renders the one-line proportional breakdown. Every slice
// gets at least one cell; the largest slice absorbs rounding.
func (p *PieChart) segmentBar(width int) string {
	cells := make([]int, len(p.Slices))
	used := 0
	largest := 0
	for i, s := range p.Slices {
		cells[i] = s.Count * width / p.Total
		if cells[i] < 1 {
			cells[i] = 1
		}
		used += cells[i]
		if s.Count > p.Slices[largest].Count {
			largest = i
		}
	}
	if diff := width - used; diff != 0 {
		cells[largest] += diff
		if cells[largest] < 1 {
			cells[largest] = 1
		}
	}

	var b strings.Builder
	for i, n := range cells {
		b.WriteString(strings.Repeat(string(sliceRunes[i%len(sliceRunes)]), n))
	}
	return b.String()
}

// truncate shortens a string to maxLen, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-1] + "…"
}
