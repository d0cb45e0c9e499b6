package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates a requested sheet is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open workbook whose sheet grids are read once and reused
// by every exporter.
type Workbook struct {
	f     *excelize.File
	grids map[string]*Grid
}

// OpenWorkbook opens the workbook at path.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return NewWorkbook(f), nil
}

// NewWorkbook wraps an already open file.
func NewWorkbook(f *excelize.File) *Workbook {
	return &Workbook{f: f, grids: make(map[string]*Grid)}
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.f
}

// Close closes the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Has reports whether a sheet with exactly this name exists.
func (w *Workbook) Has(sheet string) bool {
	for _, s := range w.Sheets() {
		if s == sheet {
			return true
		}
	}
	return false
}

// Grid returns the grid of sheet, reading it on first use.
func (w *Workbook) Grid(sheet string) (*Grid, error) {
	if g, ok := w.grids[sheet]; ok {
		return g, nil
	}
	if !w.Has(sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	g, err := ReadGrid(w.f, sheet)
	if err != nil {
		return nil, err
	}
	w.grids[sheet] = g
	return g, nil
}

// PickSheet returns the first wanted name present in the workbook, trying
// each name exactly and then case-insensitively.
func (w *Workbook) PickSheet(want ...string) (string, bool) {
	sheets := w.Sheets()
	lower := make(map[string]string, len(sheets))
	for _, s := range sheets {
		lower[strings.ToLower(s)] = s
	}
	for _, name := range want {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if w.Has(name) {
			return name, true
		}
		if s, ok := lower[strings.ToLower(name)]; ok {
			return s, true
		}
	}
	return "", false
}

// PickSheetContaining is PickSheet followed by a case-insensitive substring
// search over the sheet names.
func (w *Workbook) PickSheetContaining(want ...string) (string, bool) {
	if s, ok := w.PickSheet(want...); ok {
		return s, true
	}
	for _, name := range want {
		needle := strings.ToLower(strings.TrimSpace(name))
		if needle == "" {
			continue
		}
		if s, ok := w.FindSheet(func(sheet string) bool {
			return strings.Contains(strings.ToLower(sheet), needle)
		}); ok {
			return s, true
		}
	}
	return "", false
}

// FindSheet returns the first sheet whose name satisfies match.
func (w *Workbook) FindSheet(match func(sheet string) bool) (string, bool) {
	for _, s := range w.Sheets() {
		if match(s) {
			return s, true
		}
	}
	return "", false
}
