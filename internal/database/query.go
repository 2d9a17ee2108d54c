package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Frame holds the result set of a table retrieval, tagged with the
// table it came from.
type Frame struct {
	Table    string
	Columns  []string
	Rows     [][]any
	Duration time.Duration
}

// RowCount returns the number of rows in the frame.
func (f *Frame) RowCount() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of a column, or an error if the
// frame has no such column.
func (f *Frame) ColumnIndex(name string) (int, error) {
	for i, c := range f.Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("frame for table %q has no column %q", f.Table, name)
}

// Column returns all values of a named column.
func (f *Frame) Column(name string) ([]any, error) {
	idx, err := f.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// DefaultPreviewLimit is the row sample size used when no limit is
// configured. The preview exists to enumerate column names, so it
// stays small.
const DefaultPreviewLimit = 20

// Preview retrieves a row-limited sample of a table.
func Preview(conn *Connection, tableName string, limit int) (*Frame, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT %d", quoteIdentifier(tableName), limit)
	return fetch(conn, tableName, query)
}

// FetchAll retrieves the complete contents of a table.
func FetchAll(conn *Connection, tableName string) (*Frame, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteIdentifier(tableName))
	return fetch(conn, tableName, query)
}

// fetch executes a SELECT and collects the result into a Frame.
func fetch(conn *Connection, tableName, query string) (*Frame, error) {
	start := time.Now()

	rows, err := conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch table %q: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	frame := &Frame{
		Table:   tableName,
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		// Convert []byte to string for readability
		row := make([]any, len(columns))
		for i, v := range values {
			switch val := v.(type) {
			case []byte:
				row[i] = string(val)
			default:
				row[i] = val
			}
		}
		frame.Rows = append(frame.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %q: %w", tableName, err)
	}

	frame.Duration = time.Since(start)
	return frame, nil
}

// FormatValue formats a cell value for display.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case sql.NullString:
		if val.Valid {
			return val.String
		}
		return "NULL"
	case sql.NullInt64:
		if val.Valid {
			return fmt.Sprintf("%d", val.Int64)
		}
		return "NULL"
	case sql.NullFloat64:
		if val.Valid {
			return fmt.Sprintf("%g", val.Float64)
		}
		return "NULL"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatRow formats a whole row for display.
func FormatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatValue(v)
	}
	return out
}
