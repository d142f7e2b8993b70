// Package table holds the in-memory tables exchanged with the reconciliation
// core and reads and writes them as CSV or Excel workbooks.
package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn is matched by every *MissingColumnError.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnreadable wraps failures to parse an uploaded table.
	ErrUnreadable = errors.New("unreadable table")
)

// MissingColumnError names the table and the column that was not found.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table: missing required column %q", e.Table, e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Warning is a non-fatal problem found while reading a row.
type Warning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Table is a header row plus data rows. Every row has len(Headers) cells.
type Table struct {
	Name     string
	Headers  []string
	Rows     [][]string
	Warnings []Warning
}

func New(name string, headers []string) *Table {
	h := make([]string, len(headers))
	for i, v := range headers {
		h[i] = cleanHeader(v)
	}
	return &Table{Name: name, Headers: h}
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []string) {
	cells := make([]string, len(t.Headers))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of col, or -1.
func (t *Table) ColumnIndex(col string) int {
	for i, h := range t.Headers {
		if h == col {
			return i
		}
	}
	return -1
}

func (t *Table) Has(col string) bool {
	return t.ColumnIndex(col) >= 0
}

// Require returns a *MissingColumnError for the first absent column.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return &MissingColumnError{Table: t.Name, Column: c}
		}
	}
	return nil
}

// Value returns the cell at row, col. Out-of-range cells read as empty.
func (t *Table) Value(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Column returns a copy of the named column, or nil when it is absent.
func (t *Table) Column(col string) []string {
	idx := t.ColumnIndex(col)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Value(i, idx)
	}
	return out
}

// SetColumn overwrites col with values, appending the column when absent.
func (t *Table) SetColumn(col string, values []string) {
	idx := t.ColumnIndex(col)
	if idx < 0 {
		t.Headers = append(t.Headers, col)
		idx = len(t.Headers) - 1
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	for i := range t.Rows {
		if i < len(values) {
			t.Rows[i][idx] = values[i]
		} else {
			t.Rows[i][idx] = ""
		}
	}
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
}
