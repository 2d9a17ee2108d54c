package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tablelab/tablelab/internal/database"
)

// printJSON writes indented JSON to a writer.
func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// renderTable renders headers and rows as a bordered text table.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		t.AppendRow(r)
	}

	t.Render()
}

// renderFrame renders a query frame as a bordered text table.
func renderFrame(w io.Writer, frame *database.Frame) {
	rows := make([][]string, len(frame.Rows))
	for i, row := range frame.Rows {
		rows[i] = database.FormatRow(row)
	}
	renderTable(w, frame.Columns, rows)
	fmt.Fprintf(w, "(%d rows)\n", len(frame.Rows))
}

// frameJSON converts a frame into a list of column-keyed objects.
func frameJSON(frame *database.Frame) []map[string]any {
	rows := make([]map[string]any, 0, len(frame.Rows))
	for _, row := range frame.Rows {
		m := make(map[string]any)
		for i, col := range frame.Columns {
			if i < len(row) {
				m[col] = row[i]
			}
		}
		rows = append(rows, m)
	}
	return rows
}

// printCSV writes CSV output.
func printCSV(w io.Writer, headers []string, rows [][]string) {
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, ",")
		}
		fmt.Fprint(w, escapeCSV(h))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprint(w, escapeCSV(val))
		}
		fmt.Fprintln(w)
	}
}

// escapeCSV escapes a value for CSV output.
func escapeCSV(s string) string {
	needsQuotes := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuotes = true
			break
		}
	}
	if !needsQuotes {
		return s
	}
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\"\""
		} else {
			escaped += string(c)
		}
	}
	return "\"" + escaped + "\""
}
