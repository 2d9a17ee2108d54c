package tui

import (
	"github.com/tablelab/tablelab/internal/database"
)

// Messages for async operations

// CatalogLoadedMsg is sent when the table catalog is loaded.
type CatalogLoadedMsg struct {
	Tables []database.TableInfo
	Error  error
}

// SchemaLoadedMsg is sent when table schema details are loaded.
type SchemaLoadedMsg struct {
	Info  *database.TableInfo
	Error error
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}
