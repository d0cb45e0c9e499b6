package matchups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/xuri/excelize/v2"
)

// sheet is one fixture sheet: rows written from A1 down, and solid fills
// keyed by "A1:C1" style ranges.
type sheet struct {
	name  string
	rows  [][]any
	fills map[string]string
}

func fixture(t *testing.T, sheets ...sheet) *parser.Workbook {
	t.Helper()
	f := excelize.NewFile()
	for _, s := range sheets {
		if s.name != "Sheet1" {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for i, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &r))
		}
		for rng, color := range s.fills {
			require.Len(t, color, 6, "fill colors are 6-digit RGB")
			style, err := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
			})
			require.NoError(t, err)
			from, to, _ := strings.Cut(rng, ":")
			if to == "" {
				to = from
			}
			require.NoError(t, f.SetCellStyle(s.name, from, to, style))
		}
	}
	path := filepath.Join(t.TempDir(), "slate.xlsm")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := parser.OpenWorkbook(path)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }
func sptr(v string) *string   { return &v }
