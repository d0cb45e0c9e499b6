package models

// Table is a header row plus the records read beneath it.
type Table struct {
	// ID is the table identifier inside its document (e.g. "t1").
	ID string `json:"id,omitempty"`
	// Label is the human title the table was found under.
	Label string `json:"label,omitempty"`
	// Columns lists the record keys in sheet order.
	Columns []string `json:"columns"`
	// Rows contains one record per data row.
	Rows []*Record `json:"rows"`
	// Sources holds the 1-based sheet column of each entry in Columns,
	// when the table was read from a sheet.
	Sources []int `json:"-"`
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.Columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Source returns the sheet column of column i, or 0 when unknown.
func (t *Table) Source(i int) int {
	if i < 0 || i >= len(t.Sources) {
		return 0
	}
	return t.Sources[i]
}

// CheatSheet is the document written for title-located tables.
type CheatSheet struct {
	// Tables contains one entry per configured title that was found.
	Tables []Table `json:"tables"`
}
