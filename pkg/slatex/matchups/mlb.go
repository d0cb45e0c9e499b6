// Package matchups turns dashboard panels into cheat sheet sections and
// per-game matchup objects.
package matchups

import (
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

var (
	gameTitleRe = regexp.MustCompile(`^([A-Z]{2,3})\s*@\s*([A-Z]{2,3})$`)

	ouRe       = regexp.MustCompile(`O/U:\s*([-+]?\d+(?:\.\d+)?)`)
	parkRe     = regexp.MustCompile(`Park:\s*([A-Za-z0-9 .-]+)`)
	battingRe  = regexp.MustCompile(`Batting\s+([0-9.]+%)`)
	pitchingRe = regexp.MustCompile(`Pitching\s+([0-9.]+%)`)
	tempRe     = regexp.MustCompile(`Temp:\s*([-+]?\d+(?:\.\d+)?)`)
	humidityRe = regexp.MustCompile(`Humidity:\s*([-+]?\d+(?:\.\d+)?)%`)
	windRe     = regexp.MustCompile(`Wind:\s*([-+]?\d+(?:\.\d+)?)\s*mph`)
	windDirRe  = regexp.MustCompile(`mph\s*\(([^)]+)\)`)
	condRe     = regexp.MustCompile(`Conditions:\s*(.+)$`)
	spPrefixRe = regexp.MustCompile(`^SP:\s*`)
	runsRe     = regexp.MustCompile(`\(([-+]?\d+(?:\.\d+)?)\s*Runs?\)`)
)

// CheatSheet builds the section map of cheat_sheet.json. Panel titles are
// looked up upper-cased in sections; titles not listed are ignored. The
// first panel row supplies the record keys. Sections named in merge
// accumulate records across panels, others keep the last panel seen.
// Panels without records are skipped.
func CheatSheet(panels []models.Panel, sections map[string]string, merge []string) *models.Record {
	names := make(map[string]string, len(sections))
	for title, name := range sections {
		names[strings.ToUpper(strings.TrimSpace(title))] = name
	}
	merged := make(map[string]bool, len(merge))
	for _, m := range merge {
		merged[m] = true
	}

	out := models.NewRecord()
	for _, p := range panels {
		name, ok := names[strings.ToUpper(strings.TrimSpace(p.Title))]
		if !ok {
			continue
		}
		_, recs := parser.PanelRecords(p, nil, parser.HeaderBelow, nil)
		if len(recs) == 0 {
			continue
		}
		if merged[name] {
			if prev, ok := out.Get(name); ok {
				recs = append(prev.([]*models.Record), recs...)
			}
		}
		out.Set(name, recs)
	}
	return out
}

// SafePanels returns copies of panels whose blank text cells are nil.
func SafePanels(panels []models.Panel) []models.Panel {
	out := make([]models.Panel, len(panels))
	for i, p := range panels {
		q := p
		q.Rows = make([][]any, len(p.Rows))
		for j, row := range p.Rows {
			vals := make([]any, len(row))
			for k, v := range row {
				if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
					v = nil
				}
				vals[k] = v
			}
			q.Rows[j] = vals
		}
		out[i] = q
	}
	return out
}

// Matchups parses every "AAA @ BBB" panel into a game. Meta lines are
// matched by their leading label; the lineup header is the first row
// whose outer cells both end in "(N Runs)", and the rows after it are
// hitter lines until a blank row.
func Matchups(panels []models.Panel) []models.Matchup {
	games := make([]models.Matchup, 0, len(panels))
	for _, p := range panels {
		m := gameTitleRe.FindStringSubmatch(strings.TrimSpace(p.Title))
		if m == nil {
			continue
		}
		games = append(games, matchup(p, m[1], m[2]))
	}
	return games
}

func matchup(p models.Panel, away, home string) models.Matchup {
	g := models.Matchup{Away: away, Home: home, TeamBlocks: models.NewTeamBlocks(nil)}

	var texts []string
	for _, row := range p.Text {
		if t := joinRow(row); t != "" {
			texts = append(texts, t)
		}
	}

	if line := findLine(texts, func(t string) bool { return strings.Contains(t, "O/U") }); line != "" {
		g.OU = floatOf(ouRe, line)
		g.MLAway = intOf(mlRe(away), line)
		g.MLHome = intOf(mlRe(home), line)
	}
	if line := findLine(texts, prefix("Park:")); line != "" {
		if sm := parkRe.FindStringSubmatch(line); sm != nil {
			park := strings.TrimSpace(sm[1])
			g.Park = &park
		}
		g.BattingPct = pctOf(battingRe, line)
		g.PitchingPct = pctOf(pitchingRe, line)
	}
	if line := findLine(texts, prefix("Temp:")); line != "" {
		g.Weather.TempF = floatOf(tempRe, line)
		g.Weather.Humidity = floatOf(humidityRe, line)
	}
	if line := findLine(texts, prefix("Wind:")); line != "" {
		g.Weather.WindMPH = floatOf(windRe, line)
		if sm := windDirRe.FindStringSubmatch(line); sm != nil {
			g.Weather.WindDir = strings.TrimSpace(sm[1])
		}
		if sm := condRe.FindStringSubmatch(line); sm != nil {
			g.Weather.Desc = strings.TrimSpace(sm[1])
		}
	}
	if line := findLine(texts, prefix("SP:")); line != "" {
		var parts []string
		for _, s := range strings.Split(line, "|") {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			g.SPAway = pitcher(parts[0])
		}
		if len(parts) > 1 {
			g.SPHome = pitcher(parts[1])
		}
	}

	head := -1
	for i, row := range p.Text {
		l, r := splitLR(row)
		if strings.Contains(l, "Runs)") && strings.Contains(r, "Runs)") {
			head = i
			g.TeamBlocks.Away.Header = &l
			g.TeamBlocks.Home.Header = &r
			g.ImpAway = floatOf(runsRe, l)
			g.ImpHome = floatOf(runsRe, r)
			break
		}
	}
	if head >= 0 {
		for _, row := range p.Text[head+1:] {
			l, r := splitLR(row)
			if l == "" && r == "" {
				break
			}
			if l != "" {
				g.TeamBlocks.Away.Lines = append(g.TeamBlocks.Away.Lines, l)
			}
			if r != "" {
				g.TeamBlocks.Home.Lines = append(g.TeamBlocks.Home.Lines, r)
			}
		}
	}
	return g
}

func mlRe(team string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(team) + `\s*ML:\s*([+-]?\d+)`)
}

func pitcher(part string) *string {
	s := strings.TrimSpace(spPrefixRe.ReplaceAllString(part, ""))
	if s == "" {
		return nil
	}
	return &s
}

func prefix(p string) func(string) bool {
	return func(t string) bool { return strings.HasPrefix(t, p) }
}

func findLine(texts []string, match func(string) bool) string {
	for _, t := range texts {
		if match(t) {
			return t
		}
	}
	return ""
}

// joinRow joins a row's non-empty cells with " | ".
func joinRow(row []string) string {
	return strings.Join(nonEmpty(row), " | ")
}

// splitLR returns the first and last non-empty cells of a row. A row with
// a single value has no right side.
func splitLR(row []string) (string, string) {
	vals := nonEmpty(row)
	switch len(vals) {
	case 0:
		return "", ""
	case 1:
		return vals[0], ""
	}
	return vals[0], vals[len(vals)-1]
}

func nonEmpty(row []string) []string {
	var out []string
	for _, s := range row {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func floatOf(re *regexp.Regexp, s string) *float64 {
	sm := re.FindStringSubmatch(s)
	if sm == nil {
		return nil
	}
	f, ok := transform.ParseFloat(sm[1])
	if !ok {
		return nil
	}
	return &f
}

func intOf(re *regexp.Regexp, s string) *int {
	sm := re.FindStringSubmatch(s)
	if sm == nil {
		return nil
	}
	n, ok := transform.ParseInt(sm[1])
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

func pctOf(re *regexp.Regexp, s string) *float64 {
	sm := re.FindStringSubmatch(s)
	if sm == nil {
		return nil
	}
	f, ok := transform.PctToFloat(sm[1])
	if !ok {
		return nil
	}
	return &f
}
