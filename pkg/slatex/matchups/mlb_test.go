package matchups

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

const yellow = "FFE699"

func cheatSheet() sheet {
	return sheet{
		name: "Cheat Sheet",
		rows: [][]any{
			{"PITCHER", nil, nil, nil, "OF"},
			{"Player", "Team", "Sal", nil, "Player", "Sal"},
			{"Gerrit Cole", "NYY", 10500, nil, "Juan Soto", 6000},
			{},
			{"OF"},
			{"Player", "Sal"},
			{"Aaron Judge", 6500},
			{},
			{"SEA @ TB"},
			{"O/U: 8", "SEA ML: -115", nil, "TB ML: -105"},
			{"Park: TB", "Batting 102%", nil, "Pitching 98%"},
			{"Temp: 82.8°F, Humidity: 77%"},
			{"Wind: 4.61 mph (In), Conditions: Few Clouds"},
			{"SP: Bryan Woo (R)", nil, nil, "SP: Drew Rasmussen (R)"},
			{"SEA (4.1 Runs)", nil, nil, "TB (3.9 Runs)"},
			{"J. Rodriguez CF", nil, nil, "Y. Diaz 1B"},
			{"C. Raleigh C"},
			{},
			{"LAD @ SD"},
			{"O/U: 7.5"},
		},
		fills: map[string]string{"A1:C1": yellow, "E1:F1": yellow, "A5:B5": yellow},
	}
}

func mlbPanels(t *testing.T) []models.Panel {
	t.Helper()
	wb := fixture(t, cheatSheet())
	g, err := wb.Grid("Cheat Sheet")
	require.NoError(t, err)
	return SafePanels(parser.FindPanels(g, parser.DefaultPanelOptions()))
}

func TestCheatSheet(t *testing.T) {
	cheat := CheatSheet(mlbPanels(t), config.DefaultSections, config.DefaultMergeSections)
	require.Equal(t, []string{"Pitcher", "OF"}, cheat.Keys())

	data, err := json.Marshal(cheat)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Pitcher": [{"Player": "Gerrit Cole", "Team": "NYY", "Sal": 10500}],
		"OF": [{"Player": "Juan Soto", "Sal": 6000}, {"Player": "Aaron Judge", "Sal": 6500}]
	}`, string(data))
}

func TestCheatSheetLastWinsWithoutMerge(t *testing.T) {
	cheat := CheatSheet(mlbPanels(t), map[string]string{"of": "Outfield"}, nil)
	require.Equal(t, []string{"Outfield"}, cheat.Keys())
	v, _ := cheat.Get("Outfield")
	recs := v.([]*models.Record)
	require.Len(t, recs, 1)
	name, _ := recs[0].Get("Player")
	assert.Equal(t, "Aaron Judge", name)
}

func TestMatchups(t *testing.T) {
	games := Matchups(mlbPanels(t))
	require.Len(t, games, 2)

	want := models.Matchup{
		Away: "SEA", Home: "TB",
		OU: fptr(8), MLAway: iptr(-115), MLHome: iptr(-105),
		ImpAway: fptr(4.1), ImpHome: fptr(3.9),
		Park: sptr("TB"), BattingPct: fptr(102), PitchingPct: fptr(98),
		Weather: models.Weather{
			TempF: fptr(82.8), Humidity: fptr(77), WindMPH: fptr(4.61),
			WindDir: "In", Desc: "Few Clouds",
		},
		SPAway: sptr("Bryan Woo (R)"), SPHome: sptr("Drew Rasmussen (R)"),
		TeamBlocks: models.TeamBlocks{
			Away: models.TeamBlock{Header: sptr("SEA (4.1 Runs)"), Lines: []string{"J. Rodriguez CF", "C. Raleigh C"}},
			Home: models.TeamBlock{Header: sptr("TB (3.9 Runs)"), Lines: []string{"Y. Diaz 1B"}},
		},
	}
	if diff := cmp.Diff(want, games[0]); diff != "" {
		t.Errorf("matchup mismatch (-want +got):\n%s", diff)
	}

	lad := games[1]
	assert.Equal(t, "LAD", lad.Away)
	assert.Equal(t, 7.5, *lad.OU)
	assert.Nil(t, lad.MLAway)
	assert.Nil(t, lad.TeamBlocks.Away.Header)
	assert.Empty(t, lad.TeamBlocks.Home.Lines)

	data, err := json.Marshal(lad)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"weather":{}`)
	assert.Contains(t, string(data), `"away":{"header":null,"lines":[]}`)
}

func TestExportMLB(t *testing.T) {
	wb := fixture(t, sheet{name: "Notes", rows: [][]any{{"x"}}}, cheatSheet())
	dir := filepath.Join(t.TempDir(), "data", "mlb", "latest")

	res, err := ExportMLB(wb, config.Matchups{Sheet: config.StringList{"Missing"}}, dir, true)
	require.NoError(t, err)
	assert.Equal(t, "Cheat Sheet", res.Sheet)
	assert.Equal(t, 5, res.Panels)
	assert.Equal(t, []string{"Pitcher", "OF"}, res.Sections)
	assert.Equal(t, 2, res.Games)
	require.Len(t, res.Files, 4)

	for _, name := range []string{"matchups_raw.json", "cheat_sheet_raw.json", "cheat_sheet.json", "matchups.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	var raw []map[string]any
	data, err := os.ReadFile(filepath.Join(dir, "matchups_raw.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "PITCHER", raw[0]["title"])
}

func TestExportMLBNoPanelSheet(t *testing.T) {
	wb := fixture(t, sheet{name: "Notes", rows: [][]any{{"x"}}})
	_, err := ExportMLB(wb, config.Matchups{}, t.TempDir(), false)
	assert.ErrorIs(t, err, parser.ErrSheetNotFound)
}
