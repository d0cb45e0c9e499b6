// Package parser reads slate workbook sheets into grids, tables and panels.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/xuri/excelize/v2"
)

// Cell is one worksheet cell as seen by the exporters.
type Cell struct {
	// Text is the display text (number format applied, trimmed).
	Text string
	// Value is nil, int64, float64 or string.
	Value any
}

// Grid is a dense, 1-based snapshot of a sheet's values.
type Grid struct {
	Sheet  string
	rows   [][]Cell
	maxCol int

	f      *excelize.File
	fills  map[int]string
	merges []models.Area
}

// ReadGrid loads every cell of sheet. The workbook keeps cached formula
// results, so values are what the workbook last computed.
func ReadGrid(f *excelize.File, sheet string) (*Grid, error) {
	shown, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	g := &Grid{Sheet: sheet, f: f, fills: make(map[int]string)}
	n := len(shown)
	if len(raw) > n {
		n = len(raw)
	}
	g.rows = make([][]Cell, n)
	for r := 0; r < n; r++ {
		var sr, rr []string
		if r < len(shown) {
			sr = shown[r]
		}
		if r < len(raw) {
			rr = raw[r]
		}
		width := len(sr)
		if len(rr) > width {
			width = len(rr)
		}
		row := make([]Cell, width)
		for c := 0; c < width; c++ {
			var s, v string
			if c < len(sr) {
				s = sr[c]
			}
			if c < len(rr) {
				v = rr[c]
			}
			row[c] = makeCell(s, v)
		}
		g.rows[r] = trimRow(row)
		if len(g.rows[r]) > g.maxCol {
			g.maxCol = len(g.rows[r])
		}
	}

	if merged, err := f.GetMergeCells(sheet, true); err == nil {
		for _, m := range merged {
			if a := parseRangeToArea(m.GetStartAxis() + ":" + m.GetEndAxis()); a != nil {
				g.merges = append(g.merges, *a)
			}
		}
	}
	return g, nil
}

// NewGrid builds a grid from display strings, mainly for composing
// exporters over data that did not come from a workbook.
func NewGrid(sheet string, rows [][]string) *Grid {
	g := &Grid{Sheet: sheet, fills: make(map[int]string)}
	g.rows = make([][]Cell, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, s := range row {
			cells[c] = makeCell(s, s)
		}
		g.rows[r] = trimRow(cells)
		if len(g.rows[r]) > g.maxCol {
			g.maxCol = len(g.rows[r])
		}
	}
	return g
}

func trimRow(row []Cell) []Cell {
	end := len(row)
	for end > 0 && row[end-1].Text == "" {
		end--
	}
	return row[:end]
}

// MaxRow returns the last row holding any value.
func (g *Grid) MaxRow() int {
	for r := len(g.rows); r > 0; r-- {
		if len(g.rows[r-1]) > 0 {
			return r
		}
	}
	return 0
}

// MaxCol returns the widest populated column.
func (g *Grid) MaxCol() int {
	return g.maxCol
}

// Cell returns the cell at row r, column c (both 1-based).
func (g *Grid) Cell(r, c int) Cell {
	if r < 1 || c < 1 || r > len(g.rows) {
		return Cell{}
	}
	row := g.rows[r-1]
	if c > len(row) {
		return Cell{}
	}
	return row[c-1]
}

// Text returns the display text at (r, c).
func (g *Grid) Text(r, c int) string {
	return g.Cell(r, c).Text
}

// Value returns the typed value at (r, c).
func (g *Grid) Value(r, c int) any {
	return g.Cell(r, c).Value
}

// RowTexts returns the display texts of columns c0..c1 in row r.
func (g *Grid) RowTexts(r, c0, c1 int) []string {
	if c1 < c0 {
		return nil
	}
	out := make([]string, 0, c1-c0+1)
	for c := c0; c <= c1; c++ {
		out = append(out, g.Text(r, c))
	}
	return out
}

// BlankRow reports whether columns c0..c1 of row r are all empty.
func (g *Grid) BlankRow(r, c0, c1 int) bool {
	for c := c0; c <= c1; c++ {
		if g.Text(r, c) != "" {
			return false
		}
	}
	return true
}

// MergeEnd returns the last column of the merged range that starts at
// (r, c), or c when the cell is not the top-left of a merge.
func (g *Grid) MergeEnd(r, c int) int {
	for _, m := range g.merges {
		if m.R1 <= r && r <= m.R2 && m.C1 == c {
			return m.C2
		}
	}
	return c
}

func makeCell(shown, raw string) Cell {
	shown = strings.TrimSpace(shown)
	raw = strings.TrimSpace(raw)
	if raw == "" && shown == "" {
		return Cell{}
	}
	n, isNum := parseNumber(raw)
	if !isNum {
		if shown == "" {
			shown = raw
		}
		return Cell{Text: shown, Value: shown}
	}
	text := displayNumber(n, shown)
	if !looksNumeric(text) {
		// dates and times render as text; keep what the sheet shows
		return Cell{Text: text, Value: text}
	}
	return Cell{Text: text, Value: parseValue(raw)}
}

// displayNumber renders a numeric cell: whole numbers without decimals,
// percents as the sheet shows them (whole percents without decimals), and
// unformatted fractions with one decimal.
func displayNumber(n float64, shown string) string {
	if strings.HasSuffix(shown, "%") {
		if p, err := strconv.ParseFloat(strings.TrimSuffix(shown, "%"), 64); err == nil && p == math.Trunc(p) {
			return strconv.FormatInt(int64(p), 10) + "%"
		}
		return shown
	}
	if s, ok := parseNumber(shown); ok || shown == "" {
		if !ok || math.Abs(s-n) <= 1e-9*math.Max(1, math.Abs(n)) {
			if n == math.Trunc(n) && math.Abs(n) < 1e15 {
				return strconv.FormatInt(int64(n), 10)
			}
			return strconv.FormatFloat(n, 'f', 1, 64)
		}
	}
	return shown
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func looksNumeric(s string) bool {
	_, ok := CleanNumber(s)
	return ok
}

// CleanNumber parses numbers written with $, thousands separators or a
// trailing percent sign. The percent sign is dropped, not applied.
func CleanNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("$", "", ",", "", "%", "").Replace(s)
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1]
	}
	return parseNumber(s)
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return int64(f)
		}
		return f
	}
	// Return as string
	return s
}
