package database

import (
	"database/sql"
	"fmt"
	"strings"
)

// TableInfo describes a catalog table.
type TableInfo struct {
	Name     string
	Columns  []ColumnInfo
	RowCount int64
}

// ColumnInfo describes a table column.
type ColumnInfo struct {
	CID          int
	Name         string
	Type         string
	NotNull      bool
	DefaultValue sql.NullString
	PrimaryKey   int // 0 if not PK, otherwise position in composite PK
}

// Catalog lists and introspects the tables of a source database.
type Catalog struct {
	conn *Connection
}

// NewCatalog creates a catalog backed by conn.
func NewCatalog(conn *Connection) *Catalog {
	return &Catalog{conn: conn}
}

// ListTables returns the names of all user tables, sorted.
func (c *Catalog) ListTables() ([]string, error) {
	rows, err := c.conn.Query(`
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// TableExists checks if a table exists.
func (c *Catalog) TableExists(tableName string) (bool, error) {
	var count int
	err := c.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`, tableName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return count > 0, nil
}

// GetColumns returns column information for a table.
func (c *Catalog) GetColumns(tableName string) ([]ColumnInfo, error) {
	rows, err := c.conn.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(tableName)))
	if err != nil {
		return nil, fmt.Errorf("failed to get column info: %w", err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		if err := rows.Scan(&col.CID, &col.Name, &col.Type, &col.NotNull, &col.DefaultValue, &col.PrimaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

// GetRowCount returns the number of rows in a table.
func (c *Catalog) GetRowCount(tableName string) (int64, error) {
	var count int64
	err := c.conn.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdentifier(tableName))).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}

// GetTableInfo returns columns and row count for a table.
func (c *Catalog) GetTableInfo(tableName string) (*TableInfo, error) {
	exists, err := c.TableExists(tableName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("table %q not found", tableName)
	}

	columns, err := c.GetColumns(tableName)
	if err != nil {
		return nil, err
	}

	count, err := c.GetRowCount(tableName)
	if err != nil {
		return nil, err
	}

	return &TableInfo{
		Name:     tableName,
		Columns:  columns,
		RowCount: count,
	}, nil
}

// quoteIdentifier safely quotes a SQL identifier.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
