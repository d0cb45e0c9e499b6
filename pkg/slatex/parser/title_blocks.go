package parser

import (
	"strings"
)

// Block is a fixed-width table found under a title cell.
type Block struct {
	// Title is the text of the title cell.
	Title string
	// Row and Col locate the title cell (1-based).
	Row, Col int
	// HeaderRow is the row the labels were read from.
	HeaderRow int
	// Labels are the raw header texts, one per column.
	Labels []string
	// Rows are the data rows, each len(Labels) wide.
	Rows [][]Cell
}

// BlockOptions configures ReadBlock.
type BlockOptions struct {
	// Width is the number of columns, starting at the title column.
	Width int
	// HeaderBelow reads labels from the row below the title instead of the
	// title row itself.
	HeaderBelow bool
	// Limit caps the number of data rows (0 for no cap).
	Limit int
	// Stop ends the block when the first cell of a row satisfies it.
	Stop func(text string) bool
}

// FoldTitle returns a normalizer for title matching: trimmed, and
// lower-cased when caseInsensitive is set.
func FoldTitle(caseInsensitive bool) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		if caseInsensitive {
			return strings.ToLower(s)
		}
		return s
	}
}

// FindTitle returns the top-most, then left-most, cell whose text satisfies
// match, considering only columns up to maxCol (0 for the sheet width).
func FindTitle(g *Grid, maxCol int, match func(text string) bool) (row, col int, ok bool) {
	if maxCol <= 0 || maxCol > g.MaxCol() {
		maxCol = g.MaxCol()
	}
	for r := 1; r <= g.MaxRow(); r++ {
		for c := 1; c <= maxCol; c++ {
			if t := g.Text(r, c); t != "" && match(t) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// ReadBlock reads the labels and data rows of the block titled at (r, c).
// Data ends at the first blank row, at a row whose first cell satisfies
// opts.Stop, or after opts.Limit rows.
func ReadBlock(g *Grid, r, c int, opts BlockOptions) Block {
	width := opts.Width
	if width < 1 {
		width = 1
	}
	if end := g.MaxCol(); c+width-1 > end {
		width = end - c + 1
		if width < 1 {
			width = 1
		}
	}
	b := Block{Title: g.Text(r, c), Row: r, Col: c, HeaderRow: r}
	if opts.HeaderBelow {
		b.HeaderRow = r + 1
	}
	c1 := c + width - 1
	b.Labels = g.RowTexts(b.HeaderRow, c, c1)

	for k := b.HeaderRow + 1; k <= g.MaxRow(); k++ {
		if opts.Limit > 0 && len(b.Rows) >= opts.Limit {
			break
		}
		if g.BlankRow(k, c, c1) {
			break
		}
		if opts.Stop != nil && opts.Stop(g.Text(k, c)) {
			break
		}
		row := make([]Cell, 0, width)
		for col := c; col <= c1; col++ {
			row = append(row, g.Cell(k, col))
		}
		b.Rows = append(b.Rows, row)
	}
	return b
}

// Texts returns the display texts of the block's data rows.
func (b Block) Texts() [][]string {
	out := make([][]string, len(b.Rows))
	for i, row := range b.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Text
		}
	}
	return out
}
