package matchups

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

var valueLabelRe = regexp.MustCompile(`^[\d.%kK,]+$`)

// CheatSheets reads every configured table by its title text. It returns
// the tables found and the titles that were not found or had no rows.
func CheatSheets(g *parser.Grid, cfg config.Cheatsheets) (models.CheatSheet, []string) {
	fold := parser.FoldTitle(cfg.CaseInsensitive())
	titles := make(map[string]bool, len(cfg.Tables))
	for _, t := range cfg.Tables {
		if t.Title != "" {
			titles[fold(t.Title)] = true
		}
	}

	doc := models.CheatSheet{Tables: []models.Table{}}
	var missing []string
	for i, t := range cfg.Tables {
		title := strings.TrimSpace(t.Title)
		if title == "" {
			title = fmt.Sprintf("Table %d", i+1)
		}
		want := fold(title)
		r, c, ok := parser.FindTitle(g, 0, func(s string) bool { return fold(s) == want })
		if !ok {
			missing = append(missing, title)
			continue
		}

		below := false
		switch cfg.HeaderMode() {
		case string(parser.HeaderBelow):
			below = true
		case string(parser.HeaderAuto):
			c1 := c + t.Columns() - 1
			kw := parser.DefaultHeaderKeywords
			below = parser.HeaderScore(g.RowTexts(r, c, c1), kw) <= parser.HeaderScore(g.RowTexts(r+1, c, c1), kw)
		}
		b := parser.ReadBlock(g, r, c, parser.BlockOptions{
			Width:       t.Columns(),
			HeaderBelow: below,
			Limit:       cfg.Limit(),
			Stop:        func(s string) bool { return titles[fold(s)] },
		})
		if len(b.Rows) == 0 {
			missing = append(missing, title)
			continue
		}

		tbl := models.Table{ID: fmt.Sprintf("t%d", i+1), Label: title}
		tbl.Columns = blockColumns(b.Labels, cfg)
		for _, row := range b.Rows {
			rec := models.NewRecord()
			for j, col := range tbl.Columns {
				var v any = ""
				if j < len(row) && row[j].Value != nil {
					v = row[j].Value
				}
				rec.Set(col, v)
			}
			tbl.Rows = append(tbl.Rows, rec)
		}
		if hasKeyword(title, cfg.PercentKeywords()) && len(tbl.Columns) >= 2 {
			formatPercentColumn(&tbl, valueColumn(tbl.Columns))
		}
		doc.Tables = append(doc.Tables, tbl)
	}
	return doc, missing
}

// blockColumns dedups the block labels and names the first and last
// columns: a blank or "Top 10 ..." first label becomes the driver column,
// a blank or numeric-looking last label becomes the value column.
func blockColumns(labels []string, cfg config.Cheatsheets) []string {
	cols := parser.DedupHeaders(labels, parser.DedupIndexed)
	if len(cols) == 0 {
		return cols
	}
	first := strings.ToLower(strings.TrimSpace(labels[0]))
	if first == "" || hasPrefix(first, cfg.Prefixes()) {
		cols[0] = cfg.FirstColumn()
	}
	last := strings.TrimSpace(labels[len(labels)-1])
	if last == "" || valueLabelRe.MatchString(last) {
		cols[len(cols)-1] = cfg.ValueColumn()
	}
	return cols
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func hasKeyword(title string, keywords []string) bool {
	low := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(low, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// valueColumn returns the right-most column named "value", or the last one.
func valueColumn(cols []string) string {
	for i := len(cols) - 1; i >= 0; i-- {
		if strings.EqualFold(strings.TrimSpace(cols[i]), "value") {
			return cols[i]
		}
	}
	return cols[len(cols)-1]
}

// formatPercentColumn renders col as "x.y%". Fractions are scaled by 100
// when no value exceeds 1.5; cells that are not numbers become "".
func formatPercentColumn(t *models.Table, col string) {
	vals := make([]float64, len(t.Rows))
	has := make([]bool, len(t.Rows))
	peak, found := 0.0, false
	for i, rec := range t.Rows {
		v, _ := rec.Get(col)
		n, ok := rawNumber(v)
		if !ok {
			continue
		}
		vals[i], has[i], found = n, true, true
		peak = math.Max(peak, math.Abs(n))
	}
	if !found {
		return
	}
	scale := 1.0
	if peak <= 1.5 {
		scale = 100
	}
	for i, rec := range t.Rows {
		if !has[i] {
			rec.Set(col, "")
			continue
		}
		rec.Set(col, strconv.FormatFloat(vals[i]*scale, 'f', 1, 64)+"%")
	}
}

// rawNumber accepts stored numbers and plain numeric text, not display
// strings such as "25%".
func rawNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return transform.Number(v)
}

// ExportCheatSheets reads the configured titled tables and writes them to
// path. It returns the number of tables written and the missing titles.
func ExportCheatSheets(wb *parser.Workbook, cfg config.Cheatsheets, path string, pretty bool) (int, []string, error) {
	g, err := wb.Grid(cfg.SheetName())
	if err != nil {
		return 0, nil, err
	}
	doc, missing := CheatSheets(g, cfg)
	if err := output.WriteJSON(path, doc, pretty); err != nil {
		return 0, missing, err
	}
	return len(doc.Tables), missing, nil
}
