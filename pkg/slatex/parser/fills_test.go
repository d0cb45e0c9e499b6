package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeColor(t *testing.T) {
	assert.Equal(t, "FFE699", NormalizeColor("FFFFE699"))
	assert.Equal(t, "FFE699", NormalizeColor("#ffe699"))
	assert.Equal(t, "", NormalizeColor("FFF"))
	assert.Equal(t, "", NormalizeColor(""))
}

func TestColorSet(t *testing.T) {
	cs := NewColorSet(DefaultHeaderColors...)
	assert.Equal(t, 3, cs.Len())
	assert.True(t, cs.Match("FFE699"))
	assert.True(t, cs.Match("ffff00"))
	assert.False(t, cs.Match("5B9BD5"))
	assert.False(t, cs.Match(""))

	anyFill := NewColorSet("*")
	assert.True(t, anyFill.Match("5B9BD5"))
	assert.False(t, anyFill.Match(""))
}

func TestGridFill(t *testing.T) {
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "PITCHER")
	f.SetCellValue("Sheet1", "B1", "plain")
	yellow := fillStyle(t, f, "FFE699")
	if err := f.SetCellStyle("Sheet1", "A1", "A1", yellow); err != nil {
		t.Fatal(err)
	}
	hatched, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 2, Color: []string{"FFE699"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellStyle("Sheet1", "C1", "C1", hatched); err != nil {
		t.Fatal(err)
	}

	g := gridOf(t, reopen(t, f), "Sheet1")
	assert.Equal(t, "FFE699", g.Fill(1, 1))
	assert.Equal(t, "", g.Fill(1, 2))
	assert.Equal(t, "", g.Fill(1, 3), "only solid fills count")
	assert.Equal(t, "FFE699", g.Fill(1, 1), "cached lookup")
}
