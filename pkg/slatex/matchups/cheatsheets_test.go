package matchups

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/config"
)

func nascarCheatSheet() sheet {
	return sheet{name: "Cheat Sheet", rows: [][]any{
		{"Top 10 Win%", nil},
		{"Kyle Larson", 0.5},
		{"Denny Hamlin", 0.125},
		{"William Byron", "n/a"},
		{},
		{"Dominators", "Laps Led", "Pts"},
		{"Kyle Larson", 120, 45.5},
		{"Chase Elliott", 80, 30},
		{"Fades", nil},
		{"Ross Chastain", "Bad track"},
	}}
}

func TestCheatSheets(t *testing.T) {
	wb := fixture(t, nascarCheatSheet())
	g, err := wb.Grid("Cheat Sheet")
	require.NoError(t, err)

	doc, missing := CheatSheets(g, config.Cheatsheets{Tables: []config.CheatTable{
		{Title: "Top 10 Win%", Width: 2},
		{Title: "dominators"},
		{Title: "Missing Table"},
		{Title: "Fades", Width: 2},
	}})
	assert.Equal(t, []string{"Missing Table"}, missing)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tables": [
		{"id": "t1", "label": "Top 10 Win%", "columns": ["Driver", "Value"], "rows": [
			{"Driver": "Kyle Larson", "Value": "50.0%"},
			{"Driver": "Denny Hamlin", "Value": "12.5%"},
			{"Driver": "William Byron", "Value": ""}
		]},
		{"id": "t2", "label": "dominators", "columns": ["Dominators", "Laps Led", "Pts"], "rows": [
			{"Dominators": "Kyle Larson", "Laps Led": 120, "Pts": 45.5},
			{"Dominators": "Chase Elliott", "Laps Led": 80, "Pts": 30}
		]},
		{"id": "t4", "label": "Fades", "columns": ["Fades", "Value"], "rows": [
			{"Fades": "Ross Chastain", "Value": "Bad track"}
		]}
	]}`, string(data))
}

func TestCheatSheetsHeaderModesAndLimit(t *testing.T) {
	wb := fixture(t, sheet{name: "Cheat Sheet", rows: [][]any{
		{"Top Plays"},
		{"Driver", "Proj"},
		{"Kyle Larson", 61.2},
		{"Ryan Blaney", 55},
	}})
	g, err := wb.Grid("Cheat Sheet")
	require.NoError(t, err)

	for _, mode := range []string{"below", "auto"} {
		t.Run(mode, func(t *testing.T) {
			doc, missing := CheatSheets(g, config.Cheatsheets{
				Header:    mode,
				LimitRows: 1,
				Tables:    []config.CheatTable{{Title: "top plays", Width: 2}},
			})
			assert.Empty(t, missing)
			require.Len(t, doc.Tables, 1)
			assert.Equal(t, []string{"Driver", "Proj"}, doc.Tables[0].Columns)
			require.Len(t, doc.Tables[0].Rows, 1)
			v, _ := doc.Tables[0].Rows[0].Get("Proj")
			assert.Equal(t, 61.2, v)
		})
	}

	strict := config.Cheatsheets{TitleMatchCI: new(bool), Tables: []config.CheatTable{{Title: "top plays"}}}
	_, missing := CheatSheets(g, strict)
	assert.Equal(t, []string{"top plays"}, missing)
}

func TestExportCheatSheets(t *testing.T) {
	wb := fixture(t, nascarCheatSheet())
	path := filepath.Join(t.TempDir(), "cheatsheets.json")
	n, missing, err := ExportCheatSheets(wb, config.Cheatsheets{Tables: []config.CheatTable{{Title: "Fades", Width: 2}}}, path, true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, missing)
	_, err = os.Stat(path)
	assert.NoError(t, err)

	_, _, err = ExportCheatSheets(wb, config.Cheatsheets{Sheet: "Nope"}, path, true)
	assert.Error(t, err)
}
