// Package testutil provides test utilities for tablelab tests.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// SeedDB creates a temporary database and executes the given statements
// against it. Returns the path and a cleanup function.
func SeedDB(t *testing.T, name string, statements ...string) (string, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, name)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create db %s: %v", name, err)
	}
	defer db.Close()

	// sql.Open is lazy; ping so the database file is created even when
	// there are no statements to execute.
	if err := db.Ping(); err != nil {
		t.Fatalf("failed to create db %s: %v", name, err)
	}

	for _, stmt := range statements {
		MustExec(t, db, stmt)
	}

	cleanup := func() {
		os.Remove(dbPath)
		os.Remove(dbPath + "-shm")
		os.Remove(dbPath + "-wal")
	}

	return dbPath, cleanup
}

// EmptyDB creates a new empty database for testing.
func EmptyDB(t *testing.T) (string, func()) {
	t.Helper()
	return SeedDB(t, "empty.db")
}

// FlightsDB creates the flights demo database used across tests: a
// flight schedule table and a customer table, both with NULLs mixed in.
func FlightsDB(t *testing.T) (string, func()) {
	t.Helper()

	return SeedDB(t, "flights.db",
		`CREATE TABLE sflight (
			carrid TEXT NOT NULL,
			connid INTEGER NOT NULL,
			fldate TEXT NOT NULL,
			price REAL,
			currency TEXT,
			planetype TEXT,
			seatsmax INTEGER,
			seatsocc INTEGER
		)`,
		`INSERT INTO sflight VALUES
			('AA', 17, '2026-01-03', 422.94, 'USD', '747-400', 385, 371),
			('AA', 17, '2026-02-03', 422.94, 'USD', '747-400', 385, 250),
			('AA', 64, '2026-01-06', 580.00, 'USD', 'A340-600', 330, 330),
			('LH', 400, '2026-01-02', 666.00, 'EUR', 'A380', 509, 467),
			('LH', 400, '2026-02-02', 666.00, 'EUR', 'A380', 509, 509),
			('LH', 2402, '2026-01-05', 185.00, 'EUR', 'A320-200', 140, 112),
			('LH', 2402, '2026-02-05', NULL, 'EUR', 'A320-200', 140, 99),
			('SQ', 26, '2026-01-07', 1140.77, 'SGD', '747-400', 385, 374),
			('SQ', 26, '2026-02-07', 1140.77, 'SGD', NULL, 385, 385)`,
		`CREATE TABLE scustom (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT,
			custtype TEXT,
			discount REAL
		)`,
		`INSERT INTO scustom VALUES
			(1, 'Dorothea Fischer', 'Berlin', 'P', 0.0),
			(2, 'Jim Martinez', 'Boston', 'P', 5.0),
			(3, 'Allied Freight', 'Chicago', 'B', 12.5),
			(4, 'Hansa Travel', 'Frankfurt', 'B', 10.0),
			(5, 'Akiko Tanaka', NULL, 'P', NULL)`,
	)
}

// FindGoldenDir locates the testdata/golden directory.
func FindGoldenDir(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	for i := 0; i < 10; i++ {
		goldenDir := filepath.Join(dir, "testdata", "golden")
		if info, err := os.Stat(goldenDir); err == nil && info.IsDir() {
			return goldenDir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	t.Fatalf("could not find testdata/golden directory")
	return ""
}

// Golden compares output against a golden file.
// If GOLDEN_UPDATE=1 is set, updates the golden file instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenDir := FindGoldenDir(t)
	goldenPath := filepath.Join(goldenDir, name+".golden")

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file not found: %s\nGot:\n%s\n\nRun with GOLDEN_UPDATE=1 to create", goldenPath, got)
		}
		t.Fatalf("failed to read golden file: %v", err)
	}

	if !bytes.Equal(normalizeNewlines(got), normalizeNewlines(want)) {
		t.Errorf("output mismatch for %s\nGot:\n%s\nWant:\n%s", name, got, want)
	}
}

// GoldenJSON compares JSON output against a golden file (normalized).
func GoldenJSON(t *testing.T, name string, got []byte) {
	t.Helper()

	var gotObj any
	if err := json.Unmarshal(got, &gotObj); err != nil {
		t.Fatalf("failed to parse output as JSON: %v\nGot: %s", err, got)
	}

	normalized, err := json.MarshalIndent(gotObj, "", "  ")
	if err != nil {
		t.Fatalf("failed to normalize JSON: %v", err)
	}

	Golden(t, name, normalized)
}

// CaptureOutput captures stdout and stderr from a function.
func CaptureOutput(fn func(out, errOut io.Writer)) (stdout, stderr string) {
	var outBuf, errBuf bytes.Buffer
	fn(&outBuf, &errBuf)
	return outBuf.String(), errBuf.String()
}

func normalizeNewlines(b []byte) []byte {
	return []byte(strings.ReplaceAll(string(b), "\r\n", "\n"))
}

// MustExec executes SQL or fails the test.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("MustExec failed: %v\nQuery: %s", err, query)
	}
}

// MustQueryRow executes a query and scans the first row into dest.
func MustQueryRow(t *testing.T, db *sql.DB, query string, dest ...any) {
	t.Helper()
	if err := db.QueryRow(query).Scan(dest...); err != nil {
		t.Fatalf("MustQueryRow failed: %v\nQuery: %s", err, query)
	}
}
