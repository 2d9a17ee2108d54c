package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/tablelab/tablelab/internal/stats"
)

// BoxPlot renders the five-number distribution of a numeric column per
// category, all groups on a shared scale.
type BoxPlot struct {
	Category string
	Value    string
	Groups   []stats.GroupSummary
}

// NewBox builds a box plot from grouped summaries. The groups'
// ordering is preserved.
func NewBox(category, value string, groups []stats.GroupSummary) *BoxPlot {
	return &BoxPlot{Category: category, Value: value, Groups: groups}
}

// Render renders one box-and-whisker row per group: whiskers, box,
// median mark, and outlier dots, followed by the numbers.
func (b *BoxPlot) Render(width int) string {
	if width < 40 {
		width = 40
	}
	if len(b.Groups) == 0 {
		return fmt.Sprintf("%s by %s: no groups to chart", b.Value, b.Category)
	}

	lo, hi := b.scale()

	labelWidth := len(b.Category)
	for _, g := range b.Groups {
		if len(g.Group) > labelWidth {
			labelWidth = len(g.Group)
		}
	}
	if labelWidth > width/4 {
		labelWidth = width / 4
	}

	plotWidth := width - labelWidth - 10
	if plotWidth < 10 {
		plotWidth = 10
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s by %s (%d groups)\n\n", b.Value, b.Category, len(b.Groups))

	for _, g := range b.Groups {
		fmt.Fprintf(&out, "%-*s %s n=%d\n",
			labelWidth, truncate(g.Group, labelWidth),
			renderRow(g.Summary, lo, hi, plotWidth),
			g.Summary.Count)
		fmt.Fprintf(&out, "%-*s min %s  q1 %s  med %s  q3 %s  max %s",
			labelWidth, "",
			formatNum(g.Summary.Min), formatNum(g.Summary.Q1), formatNum(g.Summary.Median),
			formatNum(g.Summary.Q3), formatNum(g.Summary.Max))
		if n := len(g.Summary.Outliers); n > 0 {
			fmt.Fprintf(&out, "  outliers %d", n)
		}
		out.WriteString("\n")
	}

	// Shared axis
	fmt.Fprintf(&out, "%-*s %s\n", labelWidth, "", axisLine(lo, hi, plotWidth))

	return out.String()
}

// scale returns the shared numeric range across all groups, outliers
// included.
func (b *BoxPlot) scale() (float64, float64) {
	lo := math.Inf(1)
	hi := math.Inf(-1)
	for _, g := range b.Groups {
		s := g.Summary
		lo = math.Min(lo, s.Min)
		hi = math.Max(hi, s.Max)
		for _, o := range s.Outliers {
			lo = math.Min(lo, o)
			hi = math.Max(hi, o)
		}
	}
	return lo, hi
}

// renderRow draws one box-and-whisker line scaled into plotWidth cells.
func renderRow(s stats.Summary, lo, hi float64, plotWidth int) string {
	cells := make([]rune, plotWidth)
	for i := range cells {
		cells[i] = ' '
	}

	pos := func(v float64) int {
		if hi == lo {
			return plotWidth / 2
		}
		p := int(math.Round((v - lo) / (hi - lo) * float64(plotWidth-1)))
		if p < 0 {
			p = 0
		}
		if p >= plotWidth {
			p = plotWidth - 1
		}
		return p
	}

	// Whiskers first, then the box over them, median and outliers last.
	for i := pos(s.Min); i <= pos(s.Max); i++ {
		cells[i] = '─'
	}
	for i := pos(s.Q1); i <= pos(s.Q3); i++ {
		cells[i] = '█'
	}
	cells[pos(s.Min)] = '├'
	cells[pos(s.Max)] = '┤'
	cells[pos(s.Median)] = '┃'
	for _, o := range s.Outliers {
		cells[pos(o)] = '•'
	}

	return string(cells)
}

// axisLine renders the shared scale's endpoints under the plot area.
func axisLine(lo, hi float64, plotWidth int) string {
	left := formatNum(lo)
	right := formatNum(hi)
	gap := plotWidth - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// formatNum formats an axis or summary number compactly.
func formatNum(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
