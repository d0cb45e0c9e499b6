package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// SpanMode selects how far a panel reaches to the right of its title cell.
type SpanMode int

const (
	// SpanWalk walks right from the title until another title cell or two
	// consecutive empty, unfilled cells.
	SpanWalk SpanMode = iota
	// SpanWindow reaches to the column before the next title on the same
	// row, or to the sheet edge.
	SpanWindow
)

// DefaultTitlePattern matches matchup titles such as "SEA @ TB".
var DefaultTitlePattern = regexp.MustCompile(`^[A-Z]{2,4}\s*@\s*[A-Z]{2,4}$`)

// PanelOptions configures panel detection.
type PanelOptions struct {
	// HeaderColors are the fills that mark a title cell.
	HeaderColors ColorSet
	// TitleRe marks a title cell by its text, regardless of fill.
	TitleRe *regexp.Regexp
	// Span selects the column span rule.
	Span SpanMode
	// BlankStop ends a panel after this many consecutive blank rows.
	BlankStop int
}

// DefaultPanelOptions returns the yellow-bar, "AAA @ BBB" configuration.
func DefaultPanelOptions() PanelOptions {
	return PanelOptions{
		HeaderColors: NewColorSet(DefaultHeaderColors...),
		TitleRe:      DefaultTitlePattern,
		Span:         SpanWalk,
		BlankStop:    1,
	}
}

// IsTitleCell reports whether (r, c) holds text and is marked as a panel
// title by fill or by pattern.
func (g *Grid) IsTitleCell(r, c int, opts PanelOptions) bool {
	text := g.Text(r, c)
	if text == "" {
		return false
	}
	if opts.TitleRe != nil && opts.TitleRe.MatchString(text) {
		return true
	}
	return opts.HeaderColors.Match(g.Fill(r, c))
}

// TitleColumns returns the title cell columns of row r within c0..c1.
func (g *Grid) TitleColumns(r, c0, c1 int, opts PanelOptions) []int {
	var cols []int
	for c := c0; c <= c1; c++ {
		if g.IsTitleCell(r, c, opts) {
			cols = append(cols, c)
		}
	}
	return cols
}

// FindPanels locates every titled panel on the sheet, in row then column
// order, and reads the rows beneath each one.
func FindPanels(g *Grid, opts PanelOptions) []models.Panel {
	if opts.BlankStop <= 0 {
		opts.BlankStop = 1
	}
	maxRow, maxCol := g.MaxRow(), g.MaxCol()
	var panels []models.Panel
	for r := 1; r <= maxRow; r++ {
		cols := g.TitleColumns(r, 1, maxCol, opts)
		for i, c := range cols {
			limit := maxCol
			if i+1 < len(cols) {
				limit = cols[i+1] - 1
			}
			end := limit
			if opts.Span == SpanWalk {
				end = g.walkSpan(r, c, limit)
			}
			panels = append(panels, g.readPanel(r, c, end, opts))
		}
	}
	return panels
}

// walkSpan finds the last column of the panel titled at (r, c), never
// passing limit. The title row and the row below are both walked so a
// short title over a wider table still covers the table.
func (g *Grid) walkSpan(r, c, limit int) int {
	end := g.MergeEnd(r, c)
	if end > limit {
		end = limit
	}
	for _, row := range []int{r, r + 1} {
		if e := g.walkRow(row, end, limit); e > end {
			end = e
		}
	}
	return end
}

func (g *Grid) walkRow(r, from, limit int) int {
	end, gap := from, 0
	for c := from + 1; c <= limit; c++ {
		if g.Text(r, c) == "" && g.Fill(r, c) == "" {
			gap++
			if gap >= 2 {
				break
			}
			continue
		}
		gap = 0
		end = c
	}
	return end
}

func (g *Grid) readPanel(r, c0, c1 int, opts PanelOptions) models.Panel {
	p := models.Panel{
		HeaderRow:    r,
		DataStartRow: r + 1,
		Columns:      [2]int{c0, c1},
		Rows:         [][]any{},
	}
	for c := c0; c <= c1; c++ {
		if t := g.Text(r, c); t != "" {
			p.Title = t
			break
		}
	}
	if p.Title == "" {
		p.Title = fmt.Sprintf("Panel @ row %d", r)
	}

	last, blanks := r, 0
	for k := r + 1; k <= g.MaxRow(); k++ {
		if g.BlankRow(k, c0, c1) {
			blanks++
			if blanks >= opts.BlankStop {
				break
			}
			continue
		}
		if len(g.TitleColumns(k, c0, c1, opts)) > 0 {
			break
		}
		blanks = 0
		vals := make([]any, 0, c1-c0+1)
		texts := make([]string, 0, c1-c0+1)
		for c := c0; c <= c1; c++ {
			cell := g.Cell(k, c)
			vals = append(vals, cell.Value)
			texts = append(texts, cell.Text)
		}
		p.Rows = append(p.Rows, vals)
		p.Text = append(p.Text, texts)
		last = k
	}
	p.RangeRows = [2]int{r, last}
	trimPanel(&p)
	return p
}

// trimPanel cuts every row to the last column that is non-empty in any row.
func trimPanel(p *models.Panel) {
	width := 0
	for _, row := range p.Text {
		for i, s := range row {
			if s != "" && i+1 > width {
				width = i + 1
			}
		}
	}
	for i := range p.Rows {
		p.Rows[i] = p.Rows[i][:width]
		p.Text[i] = p.Text[i][:width]
	}
}

// HeaderMode selects which row of a panel supplies record keys.
type HeaderMode string

const (
	// HeaderAuto scores the title row against the row below it.
	HeaderAuto HeaderMode = "auto"
	// HeaderTitle uses the title row itself.
	HeaderTitle HeaderMode = "title"
	// HeaderBelow uses the first row beneath the title.
	HeaderBelow HeaderMode = "below"
)

// DefaultHeaderKeywords are the labels that mark a row as a table header.
var DefaultHeaderKeywords = []string{
	"player", "name", "team", "opp", "pos", "sal", "proj", "own", "value",
	"pts", "driver", "id", "rtg", "stack", "hitter", "pitcher", "ml", "o/u",
}

// HeaderScore rates how much a row looks like a header: keyword hits count
// double, text cells add one and numeric cells subtract one.
func HeaderScore(texts []string, keywords []string) int {
	score := 0
	for _, t := range texts {
		if t == "" {
			continue
		}
		if looksNumeric(t) {
			score--
			continue
		}
		score++
		low := strings.ToLower(t)
		for _, k := range keywords {
			if strings.Contains(low, k) {
				score += 2
				break
			}
		}
	}
	return score
}

// PanelRecords turns a panel into keyed records. The title row texts are
// needed for HeaderTitle and HeaderAuto. Records whose values are all empty
// are skipped.
func PanelRecords(p models.Panel, titleRow []string, mode HeaderMode, keywords []string) ([]string, []*models.Record) {
	if keywords == nil {
		keywords = DefaultHeaderKeywords
	}
	useBelow := true
	switch mode {
	case HeaderTitle:
		useBelow = false
	case HeaderAuto:
		if len(p.Text) == 0 || HeaderScore(titleRow, keywords) > HeaderScore(p.Text[0], keywords) {
			useBelow = false
		}
	}

	var labels []string
	body := p.Rows
	if useBelow {
		if len(p.Text) == 0 {
			return nil, nil
		}
		labels = p.Text[0]
		body = p.Rows[1:]
	} else {
		labels = titleRow
	}

	width := len(labels)
	for _, row := range body {
		if len(row) > width {
			width = len(row)
		}
	}
	norm := make([]string, width)
	for i := range norm {
		if i < len(labels) {
			norm[i] = NormalizeHeader(labels[i])
		}
	}
	columns := DedupHeaders(norm, DedupOrdinal)

	records := make([]*models.Record, 0, len(body))
	for _, row := range body {
		rec := models.NewRecord()
		for i, col := range columns {
			var v any
			if i < len(row) {
				v = row[i]
			}
			if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
				v = nil
			}
			rec.Set(col, v)
		}
		if !rec.IsEmpty() {
			records = append(records, rec)
		}
	}
	return columns, records
}

// TitleRowTexts returns the display texts of a panel's title row, trimmed
// to its last non-empty cell.
func (g *Grid) TitleRowTexts(p models.Panel) []string {
	texts := g.RowTexts(p.HeaderRow, p.Columns[0], p.Columns[1])
	end := len(texts)
	for end > 0 && texts[end-1] == "" {
		end--
	}
	return texts[:end]
}

// GroupPanels merges panels that share a key. keyFn maps a title to its
// group key; panels it rejects are dropped. Keys keep first-seen order.
func GroupPanels(panels []models.Panel, keyFn func(title string) (string, bool)) (keys []string, groups map[string][]models.Panel) {
	groups = make(map[string][]models.Panel)
	for _, p := range panels {
		k, ok := keyFn(p.Title)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], p)
	}
	return keys, groups
}
