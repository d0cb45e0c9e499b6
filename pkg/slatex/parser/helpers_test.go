package parser

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// reopen saves f into a temp dir and opens the saved copy, so tests read
// exactly what a workbook on disk would hold.
func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f.Close()
	out, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { out.Close() })
	return out
}

func setRows(t *testing.T, f *excelize.File, sheet string, start int, rows [][]any) {
	t.Helper()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, start+i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
}

// fillStyle registers a solid fill. excelize stores colors other than
// 6-digit RGB as black, so ARGB values are rejected here.
func fillStyle(t *testing.T, f *excelize.File, color string) int {
	t.Helper()
	if len(color) != 6 {
		t.Fatalf("fill color %q: want 6-digit RGB", color)
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	return id
}

func gridOf(t *testing.T, f *excelize.File, sheet string) *Grid {
	t.Helper()
	g, err := ReadGrid(f, sheet)
	if err != nil {
		t.Fatalf("ReadGrid: %v", err)
	}
	return g
}
