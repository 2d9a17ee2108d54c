package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tablelab/tablelab/internal/chart"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/history"
	"github.com/tablelab/tablelab/internal/stats"
)

const defaultChartWidth = 72

// chartWidth reads the --width flag with a fallback.
func (c *CommandContext) chartWidth() int {
	if flag := c.GetFlag("width"); flag != "" {
		if n, err := strconv.Atoi(flag); err == nil && n >= 20 {
			return n
		}
	}
	return defaultChartWidth
}

// cmdDescribe shows per-column summary statistics for a table.
func (h *Handler) cmdDescribe(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(ctx.Err, "Usage: describe <database> <table> [--format=json]")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	start := time.Now()
	frame, err := database.FetchAll(conn, tableName)
	if err != nil {
		ctx.recordAnalysis(history.ActionDescribe, h.dbPath(dbName), tableName, "", start, err)
		fmt.Fprintf(ctx.Err, "Describe error: %v\n", err)
		ctx.Exit(1)
		return
	}

	summaries := stats.Summarize(frame)
	ctx.recordAnalysis(history.ActionDescribe, h.dbPath(dbName), tableName, "", start, nil)

	if ctx.GetFlag("format") == "json" {
		printJSON(ctx.Out, summaries)
		return
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		min, mean, max := "-", "-", "-"
		if s.Numeric {
			min = fmt.Sprintf("%.4g", s.Min)
			mean = fmt.Sprintf("%.4g", s.Mean)
			max = fmt.Sprintf("%.4g", s.Max)
		}
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.NonNull),
			fmt.Sprintf("%d", s.Nulls),
			fmt.Sprintf("%d", s.Distinct),
			min, mean, max,
		})
	}
	renderTable(ctx.Out, []string{"COLUMN", "NON-NULL", "NULLS", "DISTINCT", "MIN", "MEAN", "MAX"}, rows)
}

// cmdPie renders the value distribution of a column as a pie chart.
func (h *Handler) cmdPie(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 3 {
		fmt.Fprintln(ctx.Err, "Usage: pie <database> <table> <column> [--width=N]")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]
	column := args[2]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	start := time.Now()
	frame, err := database.FetchAll(conn, tableName)
	if err == nil {
		var counts []stats.ValueCount
		counts, err = stats.ValueCounts(frame, column)
		if err == nil {
			pie := chart.NewPie(column, counts)
			fmt.Fprintln(ctx.Out, pie.Render(ctx.chartWidth()))
		}
	}
	ctx.recordAnalysis(history.ActionPie, h.dbPath(dbName), tableName, column, start, err)

	if err != nil {
		fmt.Fprintf(ctx.Err, "Pie error: %v\n", err)
		ctx.Exit(1)
	}
}

// cmdBox renders per-category box plots of a numeric column.
func (h *Handler) cmdBox(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 4 {
		fmt.Fprintln(ctx.Err, "Usage: box <database> <table> <category> <value> [--width=N]")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]
	category := args[2]
	value := args[3]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	start := time.Now()
	frame, err := database.FetchAll(conn, tableName)
	if err == nil {
		var groups []stats.GroupSummary
		groups, err = stats.GroupSummaries(frame, category, value)
		if err == nil {
			box := chart.NewBox(category, value, groups)
			fmt.Fprintln(ctx.Out, box.Render(ctx.chartWidth()))
		}
	}
	ctx.recordAnalysis(history.ActionBox, h.dbPath(dbName), tableName, category+","+value, start, err)

	if err != nil {
		fmt.Fprintf(ctx.Err, "Box error: %v\n", err)
		ctx.Exit(1)
	}
}
