package matchups

import (
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

// DefaultDashboardSheet is the NFL dashboard sheet name.
const DefaultDashboardSheet = "NFL Game Dashboard"

var (
	teamBarRe  = regexp.MustCompile(`^\s*([A-Z]{2,4})\s*\(([-+]?[0-9.]+)\)\s*$`)
	titleTeams = regexp.MustCompile(`^([A-Z]{2,4})\s*@\s*([A-Z]{2,4})$`)

	gbOURe     = regexp.MustCompile(`(?i)O/?U:\s*([0-9.]+)`)
	gbMLRe     = regexp.MustCompile(`(?i)\b([A-Z]{2,4})\s*ML:\s*([+-]?\d+)`)
	gbSpreadRe = regexp.MustCompile(`(?i)Spread:\s*([A-Z]{2,4})\s*([+-]?[0-9.]+)\s*\|\s*([A-Z]{2,4})\s*([+-]?[0-9.]+)`)
	gbTotalsRe = regexp.MustCompile(`(?i)Totals?:\s*([A-Z]{2,4})\s*([0-9.]+)\s*\|\s*([A-Z]{2,4})\s*([0-9.]+)`)
	gbTempRe   = regexp.MustCompile(`(?i)([0-9.]+)\s*°?F`)
	gbWindRe   = regexp.MustCompile(`(?i)([0-9.]+)\s*mph`)
)

// Gameboard parses the game panels of an NFL dashboard sheet. Each panel
// spans from its title column to the column before the next title on the
// same row. Rows under the title are meta lines until the team bar
// ("BUF (27.5) ... MIA (19.5)"); rows after it are player lines until the
// next title, another team bar or two blank rows. Panels without a team
// bar are dropped.
func Gameboard(g *parser.Grid, opts parser.PanelOptions) []models.Game {
	opts.Span = parser.SpanWindow
	var games []models.Game
	for _, p := range parser.FindPanels(g, opts) {
		if game, ok := readGame(g, p, opts); ok {
			games = append(games, game)
		}
	}
	for i := range games {
		games[i].Backfill()
	}
	if games == nil {
		games = []models.Game{}
	}
	return games
}

func readGame(g *parser.Grid, p models.Panel, opts parser.PanelOptions) (models.Game, bool) {
	c0, c1 := p.Columns[0], p.Columns[1]
	empty := ""
	game := models.Game{TeamBlocks: models.NewTeamBlocks(&empty)}
	game.Away, game.Home = teamsOf(p.Title, opts.TitleRe)

	barRow := 0
	for k := p.HeaderRow + 1; k <= g.MaxRow(); k++ {
		vals := g.RowTexts(k, c0, c1)
		left, right := splitLR(vals)
		if left == "" && right == "" {
			continue
		}
		la, limp, lok := teamBar(left)
		ra, rimp, rok := teamBar(right)
		if lok && rok {
			game.TeamBlocks.Away.Header = &left
			game.TeamBlocks.Home.Header = &right
			if game.Away == "" {
				game.Away = la
			}
			if game.Home == "" {
				game.Home = ra
			}
			if game.ImpAway == nil {
				game.ImpAway = &limp
			}
			if game.ImpHome == nil {
				game.ImpHome = &rimp
			}
			barRow = k
			break
		}
		parseMeta(&game, joinRow(vals))
	}
	if barRow == 0 {
		return game, false
	}

	blanks := 0
	for k := barRow + 1; k <= g.MaxRow(); k++ {
		if len(g.TitleColumns(k, c0, c1, opts)) > 0 {
			break
		}
		left, right := splitLR(g.RowTexts(k, c0, c1))
		_, _, lok := teamBar(left)
		_, _, rok := teamBar(right)
		if lok && rok {
			break
		}
		if left == "" && right == "" {
			blanks++
			if blanks >= 2 {
				break
			}
			continue
		}
		blanks = 0
		if left != "" {
			game.TeamBlocks.Away.Lines = append(game.TeamBlocks.Away.Lines, left)
		}
		if right != "" {
			game.TeamBlocks.Home.Lines = append(game.TeamBlocks.Home.Lines, right)
		}
	}
	return game, true
}

// teamsOf reads away and home from a panel title. A title pattern with two
// capture groups supplies them; otherwise the "AAA @ BBB" form is tried.
func teamsOf(title string, re *regexp.Regexp) (string, string) {
	title = strings.TrimSpace(strings.SplitN(title, "|", 2)[0])
	if re != nil && re.NumSubexp() >= 2 {
		if m := re.FindStringSubmatch(title); m != nil {
			return m[1], m[2]
		}
		return "", ""
	}
	if re != nil && !re.MatchString(title) {
		return "", ""
	}
	if m := titleTeams.FindStringSubmatch(title); m != nil {
		return m[1], m[2]
	}
	return "", ""
}

func teamBar(s string) (string, float64, bool) {
	m := teamBarRe.FindStringSubmatch(s)
	if m == nil {
		return "", 0, false
	}
	v, ok := transform.ParseFloat(m[2])
	if !ok {
		return "", 0, false
	}
	return strings.ToUpper(m[1]), v, true
}

func parseMeta(game *models.Game, whole string) {
	upper := strings.ToUpper(whole)
	switch {
	case strings.Contains(upper, "O/U"):
		game.OU = floatOf(gbOURe, whole)
		for _, m := range gbMLRe.FindAllStringSubmatch(whole, -1) {
			n, ok := transform.ParseInt(m[2])
			if !ok {
				continue
			}
			ml := int(n)
			switch strings.ToUpper(m[1]) {
			case game.Away:
				game.MLAway = &ml
			case game.Home:
				game.MLHome = &ml
			}
		}
	case strings.Contains(upper, "SPREAD"):
		if sp := pairOf(gbSpreadRe, whole); sp != nil {
			if v, ok := sp[game.Home]; ok {
				game.SpreadHome = &v
			}
		}
	case strings.Contains(upper, "TOTAL"):
		if tp := pairOf(gbTotalsRe, whole); tp != nil {
			if v, ok := tp[game.Away]; ok {
				game.ImpAway = &v
			}
			if v, ok := tp[game.Home]; ok {
				game.ImpHome = &v
			}
		}
	case strings.Contains(upper, "WEATHER"):
		s := whole
		if _, after, ok := strings.Cut(whole, ":"); ok {
			s = after
		}
		game.Weather = parseWeather(s)
	}
}

// pairOf reads "TEAM value | TEAM value" into a map keyed by upper-cased team.
func pairOf(re *regexp.Regexp, s string) map[string]float64 {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	out := make(map[string]float64, 2)
	for _, i := range []int{1, 3} {
		if v, ok := transform.ParseFloat(m[i+1]); ok {
			out[strings.ToUpper(m[i])] = v
		}
	}
	return out
}

func parseWeather(s string) *models.GameWeather {
	w := &models.GameWeather{IsDome: strings.Contains(strings.ToLower(s), "dome")}
	w.TempF = floatOf(gbTempRe, s)
	w.WindMPH = floatOf(gbWindRe, s)
	if !w.IsDome {
		desc := strings.TrimSpace(strings.ReplaceAll(s, "|", " "))
		w.Desc = &desc
	}
	return w
}
