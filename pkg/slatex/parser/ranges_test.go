package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/xuri/excelize/v2"
)

func TestColumnNumber(t *testing.T) {
	assert.Equal(t, 1, ColumnNumber("A"))
	assert.Equal(t, 31, ColumnNumber("ae"))
	assert.Equal(t, 3, ColumnNumber("$C$1"))
	assert.Equal(t, 0, ColumnNumber(""))
}

func TestColumnSpan(t *testing.T) {
	tests := []struct {
		in     string
		c0, c1 int
		err    bool
	}{
		{"A:F", 1, 6, false},
		{"A-F", 1, 6, false},
		{"F : A", 1, 6, false},
		{"$B$2:$D$40", 2, 4, false},
		{"A", 0, 0, true},
		{"1:4", 0, 0, true},
	}
	for _, tt := range tests {
		c0, c1, err := ColumnSpan(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.c0, c0, tt.in)
		assert.Equal(t, tt.c1, c1, tt.in)
	}
}

func TestParseAreaReference(t *testing.T) {
	sheet, areas := parseAreaReference("='DK Salaries'!$A$1:$D$10,'DK Salaries'!$F:$G")
	assert.Equal(t, "DK Salaries", sheet)
	require.Len(t, areas, 2)
	assert.Equal(t, models.Area{R1: 1, C1: 1, R2: 10, C2: 4}, areas[0])
	assert.Equal(t, 6, areas[1].C1)
	assert.Equal(t, 7, areas[1].C2)
	assert.Equal(t, excelize.TotalRows, areas[1].R2)
}

func TestResolveDefinedName(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "KeepCols",
		RefersTo: "Sheet1!$B$1:$E$20",
	}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "Sheet1!$A$1:$C$5",
		Scope:    "Sheet1",
	}))
	f = reopen(t, f)

	areas, err := ResolveDefinedName(f, "Sheet1", "keepcols")
	require.NoError(t, err)
	require.Len(t, areas, 1)
	assert.Equal(t, 2, areas[0].C1)
	assert.Equal(t, 5, areas[0].C2)

	assert.Equal(t, []models.Area{{R1: 1, C1: 1, R2: 5, C2: 3}}, PrintAreas(f, "Sheet1"))

	_, err = ResolveDefinedName(f, "Sheet1", "Missing")
	assert.Error(t, err)
}
