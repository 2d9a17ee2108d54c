package notebook

import "fmt"

// ColumnSelector tracks the selectable column names for a chart axis
// and the current choice. It holds no other state; a table-selection
// change must Reset it, since the prior column list may no longer be
// valid.
type ColumnSelector struct {
	options []string
	index   int
}

// Reset replaces the options with columns and moves the choice to the
// first entry.
func (s *ColumnSelector) Reset(columns []string) {
	s.options = make([]string, len(columns))
	copy(s.options, columns)
	s.index = 0
}

// Options returns the current selectable column names.
func (s *ColumnSelector) Options() []string {
	return s.options
}

// Value returns the currently chosen column, or "" when there are no
// options.
func (s *ColumnSelector) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

// Next cycles the choice forward.
func (s *ColumnSelector) Next() {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.options)
}

// Prev cycles the choice backward.
func (s *ColumnSelector) Prev() {
	if len(s.options) == 0 {
		return
	}
	s.index = (s.index + len(s.options) - 1) % len(s.options)
}

// Select sets the choice to a named column.
func (s *ColumnSelector) Select(column string) error {
	for i, opt := range s.options {
		if opt == column {
			s.index = i
			return nil
		}
	}
	return fmt.Errorf("column %q is not among the current options", column)
}
