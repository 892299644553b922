package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Row holds one record's cells keyed by column name. Reading a column the
// row does not carry yields "", so consumers can compare cell values as
// plain strings without nil checks.
type Row map[string]string

// Table is an ordered header plus rows of string cells. The column order is
// the wire order: Encode emits columns exactly as listed here.
type Table struct {
	Columns []string
	Rows    []Row
}

// New creates an empty table with the given column set.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumns appends any missing expected column with empty-string
// values. Columns already present keep their position; extra columns in the
// stored data are preserved untouched.
func (t *Table) EnsureColumns(columns []string) {
	for _, c := range columns {
		if !t.HasColumn(c) {
			t.Columns = append(t.Columns, c)
			for _, row := range t.Rows {
				row[c] = ""
			}
		}
	}
}

// Append adds a row, filling cells for columns the row does not set.
func (t *Table) Append(row Row) {
	r := make(Row, len(t.Columns))
	for _, c := range t.Columns {
		r[c] = row[c]
	}
	t.Rows = append(t.Rows, r)
}

// Delete removes every row the match function selects and reports how many
// rows were removed.
func (t *Table) Delete(match func(Row) bool) int {
	kept := t.Rows[:0]
	removed := 0
	for _, row := range t.Rows {
		if match(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	return removed
}

// Find returns the first row the match function selects, or nil.
func (t *Table) Find(match func(Row) bool) Row {
	for _, row := range t.Rows {
		if match(row) {
			return row
		}
	}
	return nil
}

// Decode parses CSV bytes into a table. The first record is the header.
// Rows shorter than the header read as empty cells; cells beyond the header
// are dropped. Content without a header row is a parse failure, which
// callers treat as "source absent".
func Decode(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("tabular: no header row")
	}

	t := New(records[0])
	for _, rec := range records[1:] {
		row := make(Row, len(t.Columns))
		for i, c := range t.Columns {
			if i < len(rec) {
				row[c] = rec[i]
			} else {
				row[c] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Encode serializes the table as CSV in column order.
func (t *Table) Encode() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
