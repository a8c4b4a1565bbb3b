package domain

import (
	"errors"
	"fmt"
)

// ErrMissingColumn indicates a table does not carry a column the caller needs.
var ErrMissingColumn = errors.New("domain: missing column")

// Table is an in-memory delimited dataset: a header row plus raw string cells.
// Cells are kept exactly as read so that untouched columns round-trip
// byte-identical through a load/save cycle. A table has a single owner for the
// duration of a run; there is no internal locking.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// NewTable builds a table from a header and rows. Short rows are padded with
// empty cells so every row has one cell per header column.
func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	for i, row := range t.Rows {
		if len(row) < len(t.Header) {
			padded := make([]string, len(t.Header))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		t.index[name] = i
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// Get returns the raw cell at (row, column name), or "" if the column does not
// exist.
func (t *Table) Get(row int, column string) string {
	i, ok := t.ColumnIndex(column)
	if !ok || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][i]
}

// Set overwrites a single cell.
func (t *Table) Set(row int, column, value string) error {
	i, ok := t.ColumnIndex(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("domain: row %d out of range", row)
	}
	t.Rows[row][i] = value
	return nil
}

// EnsureColumns appends any of the named columns that are not yet present,
// filling the new cells with empty strings. Existing columns are untouched.
func (t *Table) EnsureColumns(names ...string) {
	for _, name := range names {
		if _, ok := t.ColumnIndex(name); ok {
			continue
		}
		t.Header = append(t.Header, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.index[name] = len(t.Header) - 1
	}
}

// DropColumn removes a column and its cells. Dropping an absent column is a
// no-op.
func (t *Table) DropColumn(name string) {
	i, ok := t.ColumnIndex(name)
	if !ok {
		return
	}
	t.Header = append(t.Header[:i], t.Header[i+1:]...)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r][:i], t.Rows[r][i+1:]...)
	}
	t.reindex()
}

// Clone returns a deep copy. Mutating the copy never touches the original.
func (t *Table) Clone() *Table {
	header := make([]string, len(t.Header))
	copy(header, t.Header)
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		copy(rows[i], row)
	}
	return NewTable(header, rows)
}

// CheckSchema verifies every required column of the schema is present.
// Performed once at load time so later stages can address columns by name
// without re-checking.
func (t *Table) CheckSchema(s Schema) error {
	for _, name := range s.Required() {
		if _, ok := t.ColumnIndex(name); !ok {
			return fmt.Errorf("%w: %s dataset requires column %q", ErrMissingColumn, s.Name, name)
		}
	}
	return nil
}
