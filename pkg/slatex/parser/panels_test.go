package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// cheatSheetFixture lays out two yellow panels side by side on row 1 and a
// pattern-titled game panel further down.
func cheatSheetFixture(t *testing.T) *Grid {
	t.Helper()
	f := excelize.NewFile()
	s := "Sheet1"
	setRows(t, f, s, 1, [][]any{
		{"PITCHER", nil, nil, nil, "C"},
		{"Player", "Team", "Sal", nil, "Player", "Sal"},
		{"Gerrit Cole", "NYY", 10500, nil, "Cal Raleigh", 6000},
		{nil, nil, nil, nil, "Will Smith", 5200},
		{},
		{"not part of any panel"},
		{"SEA @ TB", nil, nil, "NYY @ BOS"},
		{"O/U: 8", nil, nil, "O/U: 9.5"},
		{"SP: Bryan Woo (R)", nil, nil, "SP: Max Fried (L)"},
		{"LAD @ SD"},
		{"O/U: 7"},
	})
	yellow := fillStyle(t, f, "FFE699")
	require.NoError(t, f.SetCellStyle(s, "A1", "C1", yellow))
	require.NoError(t, f.SetCellStyle(s, "E1", "F1", yellow))
	return gridOf(t, reopen(t, f), s)
}

func TestFindPanelsWalkSpan(t *testing.T) {
	g := cheatSheetFixture(t)
	panels := FindPanels(g, DefaultPanelOptions())
	require.Len(t, panels, 5)

	pitcher := panels[0]
	assert.Equal(t, "PITCHER", pitcher.Title)
	assert.Equal(t, [2]int{1, 3}, pitcher.Columns)
	assert.Equal(t, [2]int{1, 3}, pitcher.RangeRows)
	assert.Equal(t, 2, pitcher.DataStartRow)
	require.Len(t, pitcher.Rows, 2)
	assert.Equal(t, []any{"Gerrit Cole", "NYY", int64(10500)}, pitcher.Rows[1])

	catcher := panels[1]
	assert.Equal(t, "C", catcher.Title)
	assert.Equal(t, [2]int{5, 6}, catcher.Columns)
	assert.Equal(t, [2]int{1, 4}, catcher.RangeRows)
	require.Len(t, catcher.Rows, 3)

	sea := panels[2]
	assert.Equal(t, "SEA @ TB", sea.Title)
	assert.Equal(t, [2]int{1, 1}, sea.Columns)
	assert.Equal(t, [][]string{{"O/U: 8"}, {"SP: Bryan Woo (R)"}}, sea.Text)

	nyy := panels[3]
	assert.Equal(t, "NYY @ BOS", nyy.Title)
	assert.Equal(t, [2]int{4, 4}, nyy.Columns)
	assert.Len(t, nyy.Rows, 2)

	// the next title in the same columns ends the panel above it
	assert.Equal(t, "LAD @ SD", panels[4].Title)
	assert.Equal(t, [2]int{10, 11}, panels[4].RangeRows)
}

func TestFindPanelsWalkStopsAtTwoBlankColumns(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want [2]int
	}{
		{
			name: "two blank columns end the span",
			rows: [][]any{
				{"PITCHER", nil, nil, nil, "Notes"},
				{"Player", "Sal", nil, nil, "unrelated"},
				{"Gerrit Cole", 10500, nil, nil, "also unrelated"},
			},
			want: [2]int{1, 2},
		},
		{
			name: "one blank column is bridged",
			rows: [][]any{
				{"PITCHER", nil, nil, nil, nil, "Notes"},
				{"Player", "Sal", nil, "Own%", nil, nil},
				{"Gerrit Cole", 10500, nil, "12.5%", nil, nil},
			},
			want: [2]int{1, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := excelize.NewFile()
			setRows(t, f, "Sheet1", 1, tt.rows)
			require.NoError(t, f.SetCellStyle("Sheet1", "A1", "B1", fillStyle(t, f, "FFE699")))
			g := gridOf(t, reopen(t, f), "Sheet1")

			panels := FindPanels(g, DefaultPanelOptions())
			require.Len(t, panels, 1)
			p := panels[0]
			assert.Equal(t, "PITCHER", p.Title)
			assert.Equal(t, tt.want, p.Columns)
			require.Len(t, p.Text, 2)
			for _, row := range p.Text {
				assert.NotContains(t, row, "unrelated")
				assert.NotContains(t, row, "also unrelated")
			}
		})
	}
}

func TestFindPanelsWindowSpan(t *testing.T) {
	g := cheatSheetFixture(t)
	opts := DefaultPanelOptions()
	opts.Span = SpanWindow
	opts.HeaderColors = NewColorSet()
	panels := FindPanels(g, opts)
	require.Len(t, panels, 3)

	assert.Equal(t, [2]int{1, 3}, panels[0].Columns)
	assert.Equal(t, [2]int{4, 6}, panels[1].Columns)
	assert.Equal(t, [2]int{1, 6}, panels[2].Columns)
}

func TestPanelRecordsPicksHeaderRow(t *testing.T) {
	g := cheatSheetFixture(t)
	panels := FindPanels(g, DefaultPanelOptions())

	cols, recs := PanelRecords(panels[1], g.TitleRowTexts(panels[1]), HeaderAuto, nil)
	assert.Equal(t, []string{"Player", "Sal"}, cols)
	require.Len(t, recs, 2)
	v, _ := recs[1].Get("Sal")
	assert.Equal(t, int64(5200), v)

	cols, recs = PanelRecords(panels[0], g.TitleRowTexts(panels[0]), HeaderTitle, nil)
	assert.Equal(t, []string{"PITCHER", "col_2", "col_3"}, cols)
	assert.Len(t, recs, 2)
}

func TestHeaderScore(t *testing.T) {
	kw := DefaultHeaderKeywords
	assert.Greater(t, HeaderScore([]string{"Player", "Team", "Sal"}, kw), HeaderScore([]string{"PITCHER"}, kw))
	assert.Less(t, HeaderScore([]string{"Cole", "10500", "25%"}, kw), HeaderScore([]string{"Cole", "NYY", "x"}, kw))
}

func TestGroupPanels(t *testing.T) {
	g := cheatSheetFixture(t)
	panels := FindPanels(g, DefaultPanelOptions())
	games := regexp.MustCompile(`@`)
	keys, groups := GroupPanels(panels, func(title string) (string, bool) {
		if games.MatchString(title) {
			return "games", true
		}
		return "", false
	})
	assert.Equal(t, []string{"games"}, keys)
	assert.Len(t, groups["games"], 3)
}
