package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/history"
)

// dbPath resolves a database argument to its full path for the analysis log.
func (h *Handler) dbPath(dbName string) string {
	if src := h.dbManager.Lookup(dbName); src != nil {
		return src.Path
	}
	return dbName
}

// cmdPreview shows a row sample from a table.
func (h *Handler) cmdPreview(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(ctx.Err, "Usage: preview <database> <table> [--limit=N] [--format=json|csv]")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	limit := h.previewRows
	if flag := ctx.GetFlag("limit"); flag != "" {
		if n, err := strconv.Atoi(flag); err == nil && n > 0 {
			limit = n
		}
	}

	start := time.Now()
	frame, err := database.Preview(conn, tableName, limit)
	ctx.recordAnalysis(history.ActionPreview, h.dbPath(dbName), tableName, "", start, err)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Preview error: %v\n", err)
		ctx.Exit(1)
		return
	}

	switch ctx.GetFlag("format") {
	case "json":
		printJSON(ctx.Out, frameJSON(frame))
	case "csv":
		rows := make([][]string, len(frame.Rows))
		for i, row := range frame.Rows {
			rows[i] = database.FormatRow(row)
		}
		printCSV(ctx.Out, frame.Columns, rows)
	default:
		renderFrame(ctx.Out, frame)
	}
}

// cmdCount shows the row count of a table.
func (h *Handler) cmdCount(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(ctx.Err, "Usage: count <database> <table>")
		ctx.Exit(1)
		return
	}

	dbName := args[0]
	tableName := args[1]

	conn, ok := ctx.openConnection(dbName)
	if !ok {
		return
	}

	catalog := database.NewCatalog(conn)
	count, err := catalog.GetRowCount(tableName)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Count error: %v\n", err)
		ctx.Exit(1)
		return
	}

	if ctx.GetFlag("format") == "json" {
		printJSON(ctx.Out, map[string]any{"table": tableName, "rows": count})
		return
	}
	fmt.Fprintf(ctx.Out, "%s\n", humanize.Comma(count))
}

// cmdExport exports all rows of a table to stdout.
func (h *Handler) cmdExport(ctx *CommandContext) {
	args := ctx.GetPositionalArgs()
	if len(args) < 2 {
		fmt.Fprintln(ctx.Err, "Usage: export <database> <table> [--format=csv|json]")
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
	ctx.recordAnalysis(history.ActionExport, h.dbPath(dbName), tableName, "", start, err)
	if err != nil {
		fmt.Fprintf(ctx.Err, "Export error: %v\n", err)
		ctx.Exit(1)
		return
	}

	format := ctx.GetFlag("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "json":
		printJSON(ctx.Out, frameJSON(frame))
	case "csv":
		rows := make([][]string, len(frame.Rows))
		for i, row := range frame.Rows {
			rows[i] = database.FormatRow(row)
		}
		printCSV(ctx.Out, frame.Columns, rows)
	default:
		fmt.Fprintf(ctx.Err, "Unknown format: %s (use csv or json)\n", format)
		ctx.Exit(1)
	}
}
