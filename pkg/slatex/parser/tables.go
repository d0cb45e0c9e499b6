package parser

import (
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// TableOptions holds parameters for reading a header-plus-rows table.
type TableOptions struct {
	// HeaderRow and DataStartRow are 1-based. When either is zero the
	// header is detected as the densest of the first ScanRows rows and data
	// starts on the row below it.
	HeaderRow    int
	DataStartRow int
	// LimitCol caps the rightmost column read (1-based, 0 for none).
	LimitCol int
	// Typed keeps numbers as numbers; otherwise values are display text.
	Typed bool
	// ScanRows bounds header detection.
	ScanRows int
	// BlankStop ends the table after this many consecutive blank rows.
	BlankStop int
	// Dedup selects how repeated header labels are suffixed.
	Dedup DedupStyle
}

// DefaultTableOptions returns default table reading parameters.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		ScanRows:  8,
		BlankStop: 3,
	}
}

// ReadTable reads a header row and the data rows beneath it. Header labels
// are normalized and deduplicated; rows and columns with no data are dropped.
// Blank cells hold "" in text mode and nil in typed mode.
func ReadTable(g *Grid, opts TableOptions) *models.Table {
	if opts.ScanRows <= 0 {
		opts.ScanRows = 8
	}
	if opts.BlankStop <= 0 {
		opts.BlankStop = 3
	}
	maxCol := g.MaxCol()
	if opts.LimitCol > 0 && opts.LimitCol < maxCol {
		maxCol = opts.LimitCol
	}
	maxRow := g.MaxRow()

	header, start := opts.HeaderRow, opts.DataStartRow
	if header <= 0 || start <= 0 {
		header = DetectHeaderRow(g, opts.ScanRows, maxCol)
		start = header + 1
	}

	labels := make([]string, maxCol)
	for c := 1; c <= maxCol; c++ {
		labels[c-1] = NormalizeHeader(g.Text(header, c))
	}
	columns := DedupHeaders(labels, opts.Dedup)

	var rows [][]Cell
	blanks := 0
	for r := start; r <= maxRow; r++ {
		if g.BlankRow(r, 1, maxCol) {
			blanks++
			if blanks >= opts.BlankStop {
				break
			}
			continue
		}
		blanks = 0
		row := make([]Cell, maxCol)
		for c := 1; c <= maxCol; c++ {
			row[c-1] = g.Cell(r, c)
		}
		rows = append(rows, row)
	}

	keep := make([]int, 0, maxCol)
	for c := 0; c < maxCol; c++ {
		for _, row := range rows {
			if row[c].Text != "" {
				keep = append(keep, c)
				break
			}
		}
	}

	t := &models.Table{
		Columns: make([]string, 0, len(keep)),
		Rows:    make([]*models.Record, 0, len(rows)),
		Sources: make([]int, 0, len(keep)),
	}
	for _, c := range keep {
		t.Columns = append(t.Columns, columns[c])
		t.Sources = append(t.Sources, c+1)
	}
	for _, row := range rows {
		rec := models.NewRecord()
		for i, c := range keep {
			rec.Set(t.Columns[i], cellValue(row[c], opts.Typed))
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

func cellValue(c Cell, typed bool) any {
	if typed {
		return c.Value
	}
	return c.Text
}

// DetectHeaderRow returns the row among the first scan rows with the most
// non-empty cells in columns 1..maxCol. Ties keep the earlier row.
func DetectHeaderRow(g *Grid, scan, maxCol int) int {
	if scan > g.MaxRow() {
		scan = g.MaxRow()
	}
	best, bestCount := 1, -1
	for r := 1; r <= scan; r++ {
		if n := countNonEmptyCells(g, r, r, 1, maxCol); n > bestCount {
			best, bestCount = r, n
		}
	}
	return best
}

// DataBounds finds the bounding box of non-empty cells (1-based, inclusive).
// ok is false for an empty sheet.
func DataBounds(g *Grid) (area models.Area, ok bool) {
	area = models.Area{R1: -1, C1: -1, R2: -1, C2: -1}
	for r := 1; r <= g.MaxRow(); r++ {
		for c := 1; c <= g.MaxCol(); c++ {
			if g.Text(r, c) == "" {
				continue
			}
			if area.R1 < 0 || r < area.R1 {
				area.R1 = r
			}
			if r > area.R2 {
				area.R2 = r
			}
			if area.C1 < 0 || c < area.C1 {
				area.C1 = c
			}
			if c > area.C2 {
				area.C2 = c
			}
		}
	}
	return area, area.R1 > 0
}

// countNonEmptyCells counts non-empty cells within bounds.
func countNonEmptyCells(g *Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if g.Text(r, c) != "" {
				count++
			}
		}
	}
	return count
}
