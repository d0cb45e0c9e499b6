package players

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/xuri/excelize/v2"
)

// sheet is one fixture sheet: rows written from A1 down.
type sheet struct {
	name string
	rows [][]any
}

// fixture builds a workbook from sheets, saves it under t.TempDir and
// opens the saved copy.
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
	}
	path := filepath.Join(t.TempDir(), "slate.xlsm")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := parser.OpenWorkbook(path)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })
	return wb
}
