package models

// Panel is a colored-header block carved out of a dashboard sheet.
type Panel struct {
	// Title is the first non-empty text on the header row inside the panel span.
	Title string `json:"title"`
	// HeaderRow is the row holding the colored title (1-based).
	HeaderRow int `json:"header_row"`
	// DataStartRow is the first row beneath the title.
	DataStartRow int `json:"data_start_row"`
	// RangeRows is the inclusive [first, last] row range covered by the panel.
	RangeRows [2]int `json:"range_rows"`
	// Columns is the inclusive [first, last] column range of the panel span.
	Columns [2]int `json:"range_cols"`
	// Rows holds JSON-safe cell values, trimmed to the last non-empty column.
	Rows [][]any `json:"rows"`
	// Text holds the display text of the same cells.
	Text [][]string `json:"-"`
}

// Empty reports whether the panel has no data rows.
func (p *Panel) Empty() bool {
	return len(p.Rows) == 0
}
