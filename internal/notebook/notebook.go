// Package notebook implements the reactive core of tablelab: the
// selected-table state, the cached full-table frame, and the column
// selectors that feed the two chart types.
//
// Control flow mirrors the notebook surface: the user picks a table,
// the preview refreshes and the cache invalidates; a statistics or
// chart trigger populates the cache on first use; column selectors are
// reset from the preview's column names on every selection change.
package notebook

import (
	"fmt"

	"github.com/tablelab/tablelab/internal/database"
	"github.com/tablelab/tablelab/internal/stats"
)

// Fetcher retrieves table contents from a source database.
type Fetcher interface {
	// Preview returns a row-limited sample of a table.
	Preview(table string, limit int) (*database.Frame, error)
	// FetchAll returns the complete contents of a table.
	FetchAll(table string) (*database.Frame, error)
}

// Named subscribers wired by New, in emit order.
const (
	subInvalidateCache = "invalidate-cache"
	subResetSelectors  = "reset-selectors"
)

// Notebook bundles the selected table, its preview, the full-table
// cache, and the chart column selectors behind a single SelectTable
// entry point.
type Notebook struct {
	fetcher      Fetcher
	previewLimit int

	table   string
	preview *database.Frame
	cache   *TableCache

	// Chart axis selectors. One column feeds the pie chart; the box
	// plot takes a category column and a numeric value column.
	PieColumn   *ColumnSelector
	BoxCategory *ColumnSelector
	BoxValue    *ColumnSelector

	selection *Signal
}

// New creates a notebook over the given fetcher and wires the standard
// selection-changed subscribers.
func New(fetcher Fetcher, previewLimit int) *Notebook {
	if previewLimit <= 0 {
		previewLimit = database.DefaultPreviewLimit
	}

	n := &Notebook{
		fetcher:      fetcher,
		previewLimit: previewLimit,
		cache:        NewTableCache(fetcher.FetchAll),
		PieColumn:    &ColumnSelector{},
		BoxCategory:  &ColumnSelector{},
		BoxValue:     &ColumnSelector{},
		selection:    NewSignal(),
	}

	n.selection.Subscribe(subInvalidateCache, func(string) {
		n.cache.Invalidate()
	})
	n.selection.Subscribe(subResetSelectors, func(string) {
		n.PieColumn.Reset(n.Columns())
		n.BoxCategory.Reset(n.Columns())
		n.BoxValue.Reset(n.Columns())
	})

	return n
}

// OnSelect registers an additional named subscriber for selection
// changes. The UI uses this to clear rendered chart output.
func (n *Notebook) OnSelect(name string, fn func(table string)) {
	n.selection.Subscribe(name, fn)
}

// SelectTable makes table the current selection: the preview refreshes
// and the selection-changed signal fans out to the cache, the column
// selectors, and any external subscribers. A preview fetch failure
// still invalidates all dependent state before propagating.
func (n *Notebook) SelectTable(table string) error {
	n.table = table

	preview, err := n.fetcher.Preview(table, n.previewLimit)
	if err != nil {
		n.preview = nil
		n.selection.Emit(table)
		return fmt.Errorf("failed to preview table %q: %w", table, err)
	}

	n.preview = preview
	n.selection.Emit(table)
	return nil
}

// Table returns the currently selected table name.
func (n *Notebook) Table() string {
	return n.table
}

// Preview returns the row sample for the current table, or nil before
// the first selection.
func (n *Notebook) Preview() *database.Frame {
	return n.preview
}

// Columns returns the column names of the current preview.
func (n *Notebook) Columns() []string {
	if n.preview == nil {
		return nil
	}
	return n.preview.Columns
}

// Full returns the complete frame for the current table, fetching it
// on first use after a selection change.
func (n *Notebook) Full() (*database.Frame, error) {
	if n.table == "" {
		return nil, fmt.Errorf("no table selected")
	}
	return n.cache.GetOrFetch(n.table)
}

// Cache exposes the table cache, mainly for inspection.
func (n *Notebook) Cache() *TableCache {
	return n.cache
}

// Describe computes per-column summary statistics over the full table.
func (n *Notebook) Describe() ([]stats.ColumnSummary, error) {
	frame, err := n.Full()
	if err != nil {
		return nil, err
	}
	return stats.Summarize(frame), nil
}

// PieCounts computes the value distribution of the pie column over the
// full table.
func (n *Notebook) PieCounts() ([]stats.ValueCount, error) {
	column := n.PieColumn.Value()
	if column == "" {
		return nil, fmt.Errorf("no column selected")
	}
	frame, err := n.Full()
	if err != nil {
		return nil, err
	}
	return stats.ValueCounts(frame, column)
}

// BoxGroups computes per-category five-number summaries of the box
// value column over the full table.
func (n *Notebook) BoxGroups() ([]stats.GroupSummary, error) {
	category := n.BoxCategory.Value()
	value := n.BoxValue.Value()
	if category == "" || value == "" {
		return nil, fmt.Errorf("no columns selected")
	}
	frame, err := n.Full()
	if err != nil {
		return nil, err
	}
	return stats.GroupSummaries(frame, category, value)
}

// ConnFetcher adapts a read-only database connection to the Fetcher
// interface.
type ConnFetcher struct {
	Conn *database.Connection
}

func (f ConnFetcher) Preview(table string, limit int) (*database.Frame, error) {
	return database.Preview(f.Conn, table, limit)
}

func (f ConnFetcher) FetchAll(table string) (*database.Frame, error) {
	return database.FetchAll(f.Conn, table)
}
