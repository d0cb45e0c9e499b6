package matchups

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// PanelOptions builds detection options from configured header colors and
// title pattern, falling back to the yellow bars and "AAA @ BBB".
func PanelOptions(colors []string, titleRegex string) (parser.PanelOptions, error) {
	opts := parser.DefaultPanelOptions()
	if len(colors) > 0 {
		opts.HeaderColors = parser.NewColorSet(colors...)
	}
	if titleRegex != "" {
		re, err := regexp.Compile(titleRegex)
		if err != nil {
			return opts, fmt.Errorf("title_regex: %w", err)
		}
		opts.TitleRe = re
	}
	return opts, nil
}

// Written describes one output file.
type Written struct {
	Path string
	Rows int
}

// MLBResult reports what ExportMLB read and wrote.
type MLBResult struct {
	Sheet    string
	Panels   int
	Sections []string
	Games    int
	Files    []Written
}

// ExportMLB reads the panels of the MLB cheat sheet and writes
// matchups_raw.json, cheat_sheet_raw.json, cheat_sheet.json and
// matchups.json into dir.
func ExportMLB(wb *parser.Workbook, cfg config.Matchups, dir string, pretty bool) (MLBResult, error) {
	var res MLBResult
	want := append(append([]string{}, cfg.Sheet...), config.DefaultPanelSheets...)
	sheet, ok := wb.PickSheet(want...)
	if !ok {
		return res, fmt.Errorf("%w: none of %q", parser.ErrSheetNotFound, want)
	}
	res.Sheet = sheet

	opts, err := PanelOptions(cfg.HeaderYellowRGB, cfg.TitleRegex)
	if err != nil {
		return res, err
	}
	g, err := wb.Grid(sheet)
	if err != nil {
		return res, err
	}
	panels := parser.FindPanels(g, opts)
	res.Panels = len(panels)
	safe := SafePanels(panels)

	sections := cfg.Sections
	if len(sections) == 0 {
		sections = config.DefaultSections
	}
	merge := []string(cfg.MergeSections)
	if len(merge) == 0 {
		merge = config.DefaultMergeSections
	}
	cheat := CheatSheet(safe, sections, merge)
	res.Sections = cheat.Keys()
	games := Matchups(safe)
	res.Games = len(games)

	files := []struct {
		name   string
		v      any
		rows   int
		pretty bool
	}{
		{"matchups_raw.json", nonNil(panels), len(panels), false},
		{"cheat_sheet_raw.json", nonNil(safe), len(safe), pretty},
		{"cheat_sheet.json", cheat, cheat.Len(), pretty},
		{"matchups.json", games, len(games), pretty},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := output.WriteJSON(path, f.v, f.pretty); err != nil {
			return res, err
		}
		res.Files = append(res.Files, Written{Path: path, Rows: f.rows})
	}
	return res, nil
}

// ExportGameboard parses the NFL dashboard sheet and writes the games to
// path. It returns the sheet used and the number of games.
func ExportGameboard(wb *parser.Workbook, cfg config.Gameboard, path string, pretty bool) (string, int, error) {
	want := []string(cfg.Sheet)
	if len(want) == 0 {
		want = []string{DefaultDashboardSheet}
	}
	sheet, ok := wb.PickSheetContaining(want...)
	if !ok {
		return "", 0, fmt.Errorf("%w: dashboard %q", parser.ErrSheetNotFound, want)
	}
	opts, err := PanelOptions(cfg.HeaderYellowRGB, cfg.TitleRegex)
	if err != nil {
		return sheet, 0, err
	}
	g, err := wb.Grid(sheet)
	if err != nil {
		return sheet, 0, err
	}
	games := Gameboard(g, opts)
	if err := output.WriteJSON(path, games, pretty); err != nil {
		return sheet, 0, err
	}
	return sheet, len(games), nil
}

func nonNil(panels []models.Panel) []models.Panel {
	if panels == nil {
		return []models.Panel{}
	}
	return panels
}
