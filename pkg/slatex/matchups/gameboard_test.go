package matchups

import (
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

func dashboard() sheet {
	return sheet{
		name: "NFL Game Dashboard Wk2",
		rows: [][]any{
			{"BUF @ MIA", nil, nil, nil, "KC @ LAC"},
			{"O/U: 47.5", "BUF ML: -250", "MIA ML: +205", nil, "O/U: 41"},
			{"Spread: BUF -6.5 | MIA +6.5"},
			{},
			{"Weather: 84°F, Wind 7 mph, Clear"},
			{"BUF (27)", nil, nil, "MIA (20.5)"},
			{"J. Allen QB", nil, nil, "T. Tagovailoa QB"},
			{"J. Cook RB"},
			{},
			{},
			{"K. Coleman WR"},
			{"NYJ @ NE"},
			{"Totals: NYJ 20.5 | NE 23"},
			{"NYJ (19)", nil, nil, "NE (24)"},
			{"B. Hall RB"},
			{"DAL @ PHI"},
			{"Weather: Dome"},
			{"Spread: PHI -3 | DAL 3"},
			{"DAL (21.25)", nil, nil, "PHI (24.25)"},
			{"C. Lamb WR", nil, nil, "J. Hurts QB"},
		},
		fills: map[string]string{"A1": yellow, "E1": yellow, "A12": "FFF2CC"},
	}
}

func TestGameboard(t *testing.T) {
	wb := fixture(t, dashboard())
	g, err := wb.Grid("NFL Game Dashboard Wk2")
	require.NoError(t, err)
	games := Gameboard(g, parser.DefaultPanelOptions())
	require.Len(t, games, 3)

	want := models.Game{
		Away: "BUF", Home: "MIA",
		OU: fptr(47.5), SpreadHome: fptr(6.5), MLHome: iptr(205), MLAway: iptr(-250),
		Weather: &models.GameWeather{
			TempF: fptr(84), WindMPH: fptr(7), Desc: sptr("84°F, Wind 7 mph, Clear"),
		},
		ImpHome: fptr(20.5), ImpAway: fptr(27),
		TeamBlocks: models.TeamBlocks{
			Away: models.TeamBlock{Header: sptr("BUF (27)"), Lines: []string{"J. Allen QB", "J. Cook RB"}},
			Home: models.TeamBlock{Header: sptr("MIA (20.5)"), Lines: []string{"T. Tagovailoa QB"}},
		},
	}
	if diff := cmp.Diff(want, games[0]); diff != "" {
		t.Errorf("BUF @ MIA mismatch (-want +got):\n%s", diff)
	}

	// team totals win over the team bar; the total is backfilled
	nyj := games[1]
	assert.Equal(t, "NYJ", nyj.Away)
	assert.Equal(t, 20.5, *nyj.ImpAway)
	assert.Equal(t, 23.0, *nyj.ImpHome)
	assert.Equal(t, 43.5, *nyj.OU)
	assert.Equal(t, []string{"B. Hall RB"}, nyj.TeamBlocks.Away.Lines)
	assert.Empty(t, nyj.TeamBlocks.Home.Lines)

	dal := games[2]
	assert.Equal(t, -3.0, *dal.SpreadHome)
	require.NotNil(t, dal.Weather)
	assert.True(t, dal.Weather.IsDome)
	assert.Nil(t, dal.Weather.Desc)
	assert.Nil(t, dal.Weather.TempF)
	assert.Equal(t, 45.5, *dal.OU)
	assert.Equal(t, []string{"J. Hurts QB"}, dal.TeamBlocks.Home.Lines)
}

func TestTeamsOf(t *testing.T) {
	assert.Equal(t, [2]string{"BUF", "MIA"}, pair(teamsOf("BUF @ MIA", parser.DefaultTitlePattern)))
	assert.Equal(t, [2]string{"", ""}, pair(teamsOf("Week 2", parser.DefaultTitlePattern)))

	grouped, err := PanelOptions(nil, `^(\w+) at (\w+)$`)
	require.NoError(t, err)
	assert.Equal(t, [2]string{"Bills", "Dolphins"}, pair(teamsOf("Bills at Dolphins", grouped.TitleRe)))

	_, err = PanelOptions(nil, `(`)
	assert.Error(t, err)
}

func pair(a, b string) [2]string { return [2]string{a, b} }

func TestExportGameboard(t *testing.T) {
	wb := fixture(t, dashboard())
	path := filepath.Join(t.TempDir(), "data", "nfl", "gameboard.json")

	sheet, n, err := ExportGameboard(wb, config.Gameboard{}, path, false)
	require.NoError(t, err)
	assert.Equal(t, "NFL Game Dashboard Wk2", sheet)
	assert.Equal(t, 3, n)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":null,"away":"BUF","home":"MIA"`)

	_, _, err = ExportGameboard(wb, config.Gameboard{Sheet: config.StringList{"Scores"}}, path, false)
	assert.ErrorIs(t, err, parser.ErrSheetNotFound)
}
