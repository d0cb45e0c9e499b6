package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadGrid(t *testing.T) {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "  Header2 ")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "C2", 12.345)
	f.SetCellValue(sheetName, "A3", "Text")
	f.SetCellValue(sheetName, "B3", 0.25)
	f.SetCellValue(sheetName, "C3", 0.254)

	pct, err := f.NewStyle(&excelize.Style{NumFmt: 9})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheetName, "B3", "B3", pct))
	pct2, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheetName, "C3", "C3", pct2))

	g := gridOf(t, reopen(t, f), sheetName)

	assert.Equal(t, 3, g.MaxRow())
	assert.Equal(t, 3, g.MaxCol())
	assert.Equal(t, "Header2", g.Text(1, 2))

	assert.Equal(t, "100", g.Text(2, 1))
	assert.Equal(t, int64(100), g.Value(2, 1))
	assert.Equal(t, "200.5", g.Text(2, 2))
	assert.Equal(t, 200.5, g.Value(2, 2))
	assert.Equal(t, "12.3", g.Text(2, 3))

	assert.Equal(t, "25%", g.Text(3, 2))
	assert.Equal(t, 0.25, g.Value(3, 2))
	assert.Equal(t, "25.40%", g.Text(3, 3))

	// out of range is empty, not a panic
	assert.Equal(t, Cell{}, g.Cell(99, 99))
	assert.Equal(t, Cell{}, g.Cell(0, 1))
}

func TestReadGridMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := ReadGrid(f, "Nope")
	assert.Error(t, err)
}

func TestMergeEnd(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "B2", "SEA @ TB")
	require.NoError(t, f.MergeCell("Sheet1", "B2", "E2"))
	g := gridOf(t, reopen(t, f), "Sheet1")

	assert.Equal(t, 5, g.MergeEnd(2, 2))
	assert.Equal(t, 3, g.MergeEnd(2, 3))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"7.0", int64(7)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestDisplayNumber(t *testing.T) {
	tests := []struct {
		n     float64
		shown string
		want  string
	}{
		{3, "3", "3"},
		{3, "3.00", "3"},
		{2.456, "2.456", "2.5"},
		{0.30000000000000004, "0.3", "0.3"},
		{0.25, "25.00%", "25%"},
		{0.254, "25.4%", "25.4%"},
		{8500, "$8,500", "$8,500"},
		{12.345, "12.35", "12.35"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, displayNumber(tt.n, tt.shown), "displayNumber(%v, %q)", tt.n, tt.shown)
	}
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$8,500", 8500, true},
		{"25.4%", 25.4, true},
		{" 12 ", 12, true},
		{"(3.5)", -3.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"9/7/2025", 0, false},
	}
	for _, tt := range tests {
		got, ok := CleanNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, tt.in)
		}
	}
}

func TestNewGrid(t *testing.T) {
	g := NewGrid("x", [][]string{{"a", "", ""}, {}, {"1", "2.5"}})
	assert.Equal(t, 3, g.MaxRow())
	assert.Equal(t, 2, g.MaxCol())
	assert.Equal(t, int64(1), g.Value(3, 1))
	assert.True(t, g.BlankRow(2, 1, 2))
	assert.Equal(t, "", g.Fill(1, 1))
}
