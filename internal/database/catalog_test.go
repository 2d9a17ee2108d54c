package database_test

import (
	"reflect"
	"testing"

	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/testutil"
)

func openFlights(t *testing.T) *database.Connection {
	t.Helper()

	path, cleanup := testutil.FlightsDB(t)
	t.Cleanup(cleanup)

	conn, err := database.OpenReadOnly(path)
	if err != nil {
		t.Fatalf("failed to open flights db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestListTables(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	tables, err := catalog.ListTables()
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}

	want := []string{"scustom", "sflight"}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("ListTables() = %v, want %v", tables, want)
	}
}

func TestListTablesEmptyDB(t *testing.T) {
	path, cleanup := testutil.EmptyDB(t)
	defer cleanup()

	conn, err := database.OpenReadOnly(path)
	if err != nil {
		t.Fatalf("failed to open empty db: %v", err)
	}
	defer conn.Close()

	tables, err := database.NewCatalog(conn).ListTables()
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("ListTables() = %v, want empty", tables)
	}
}

func TestTableExists(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	exists, err := catalog.TableExists("sflight")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if !exists {
		t.Error("sflight should exist")
	}

	exists, err = catalog.TableExists("bogus")
	if err != nil {
		t.Fatalf("TableExists failed: %v", err)
	}
	if exists {
		t.Error("bogus should not exist")
	}
}

func TestGetRowCount(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	tests := []struct {
		table string
		want  int64
	}{
		{"sflight", 9},
		{"scustom", 5},
	}
	for _, tt := range tests {
		count, err := catalog.GetRowCount(tt.table)
		if err != nil {
			t.Fatalf("GetRowCount(%s) failed: %v", tt.table, err)
		}
		if count != tt.want {
			t.Errorf("GetRowCount(%s) = %d, want %d", tt.table, count, tt.want)
		}
	}
}

func TestGetColumns(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	columns, err := catalog.GetColumns("scustom")
	if err != nil {
		t.Fatalf("GetColumns failed: %v", err)
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	want := []string{"id", "name", "city", "custtype", "discount"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("column names = %v, want %v", names, want)
	}

	if columns[0].PrimaryKey == 0 {
		t.Error("id should be the primary key")
	}
	if !columns[1].NotNull {
		t.Error("name should be NOT NULL")
	}
	if columns[2].NotNull {
		t.Error("city should be nullable")
	}
}

func TestGetTableInfo(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	info, err := catalog.GetTableInfo("sflight")
	if err != nil {
		t.Fatalf("GetTableInfo failed: %v", err)
	}

	if info.Name != "sflight" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.RowCount != 9 {
		t.Errorf("RowCount = %d, want 9", info.RowCount)
	}
	if len(info.Columns) != 8 {
		t.Errorf("got %d columns, want 8", len(info.Columns))
	}
}

func TestGetTableInfoMissingTable(t *testing.T) {
	catalog := database.NewCatalog(openFlights(t))

	if _, err := catalog.GetTableInfo("bogus"); err == nil {
		t.Fatal("expected error for missing table")
	}
}
