// Package database handles SQLite connections, catalog introspection,
// and read-only table retrieval for the notebook.
package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Connection wraps a database connection with metadata.
// The notebook never writes to a source database, so connections are
// opened read-only unless the caller opts out.
type Connection struct {
	DB       *sql.DB
	Path     string
	ReadOnly bool
	mu       sync.Mutex
}

// OpenOptions configures how a database connection is opened.
type OpenOptions struct {
	ReadOnly    bool
	BusyTimeout int // milliseconds
}

// DefaultOpenOptions returns sensible defaults for opening a source database.
func DefaultOpenOptions() OpenOptions {
	return OpenOptions{
		ReadOnly:    true,
		BusyTimeout: 5000, // 5 seconds
	}
}

// Open opens a database connection with the given options.
func Open(path string, opts OpenOptions) (*Connection, error) {
	mode := "rwc"
	if opts.ReadOnly {
		mode = "ro"
	}

	dsn := fmt.Sprintf("file:%s?mode=%s&_busy_timeout=%d&_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON",
		path, mode, opts.BusyTimeout)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection. Connection errors surface here, once; there
	// is no retry.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // Don't close idle connections

	return &Connection{
		DB:       db,
		Path:     path,
		ReadOnly: opts.ReadOnly,
	}, nil
}

// OpenReadOnly opens a database in read-only mode.
func OpenReadOnly(path string) (*Connection, error) {
	return Open(path, DefaultOpenOptions())
}

// OpenReadWrite opens a database in read-write mode.
// Used by the fixture generator; the notebook itself never needs it.
func OpenReadWrite(path string) (*Connection, error) {
	opts := DefaultOpenOptions()
	opts.ReadOnly = false
	return Open(path, opts)
}

// Close closes the database connection.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Query runs a query that returns rows.
func (c *Connection) Query(query string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.DB.Query(query, args...)
}

// QueryRow runs a query that returns at most one row.
func (c *Connection) QueryRow(query string, args ...any) *sql.Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.DB.QueryRow(query, args...)
}

// Execute runs a statement that doesn't return rows.
func (c *Connection) Execute(query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.DB.Exec(query, args...)
}
