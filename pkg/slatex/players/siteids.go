package players

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

// ErrNoBlocks is returned in blocks mode when neither id block is found.
var ErrNoBlocks = errors.New("no 'FD IDs' or 'DK IDs' block")

const (
	// blankBreak ends a salary sheet scan after this many empty rows once
	// data has been seen.
	blankBreak = 200
	// autoScanRows and autoMaxCol bound header detection in auto mode.
	autoScanRows = 10
	autoMaxCol   = 52

	showdownBlankRows = 50
)

var (
	idDigitsRe   = regexp.MustCompile(`[\d\-]+`)
	idSuffixRe   = regexp.MustCompile(`\(([\d-]+)\)\s*$`)
	dkRoleTokens = regexp.MustCompile(`(?i)\s*(?:\((?:CPT|CAPT|Captain|FLEX)\)|-\s*(?:CPT|CAPT|Captain|FLEX)|\b(?:CPT|CAPT|Captain|FLEX)\b)\s*$`)
)

// Header candidates for auto mode, lower-cased.
var (
	fdNameCandidates = []string{"nickname", "name", "player", "player name"}
	dkNameCandidates = []string{"name", "player", "player name"}
	fdIDCandidates   = []string{"id", "player id", "fd id"}
	dkIDCandidates   = []string{"id", "player id", "dk id"}
	teamCandidates   = []string{"team", "teamabbrev"}
	posCandidates    = []string{"position", "pos"}
)

// Site names the salary sheet a row list came from.
type Site string

const (
	SiteDK Site = "dk"
	SiteFD Site = "fd"
)

// ReadSiteIDs reads DraftKings and FanDuel ids from wb using the reader
// selected by cfg.Mode.
func ReadSiteIDs(wb *parser.Workbook, cfg config.SiteIDs) (*models.SiteIDs, error) {
	switch cfg.ModeOrDefault() {
	case config.ModeBlocks:
		return readBlockIDs(wb, cfg)
	case config.ModeShowdown:
		return readShowdownIDs(wb, cfg)
	}
	dk, err := ReadSalaryRows(wb, SiteDK, cfg)
	if err != nil {
		return nil, err
	}
	fd, err := ReadSalaryRows(wb, SiteFD, cfg)
	if err != nil {
		return nil, err
	}
	return &models.SiteIDs{DK: dk, FD: fd}, nil
}

// ReadSalaryRows reads one site's salary sheet in columns mode, trying
// header autodetection first when the mode is auto or the site's
// autodetect flag is set. A missing sheet yields no rows.
func ReadSalaryRows(wb *parser.Workbook, site Site, cfg config.SiteIDs) ([]models.SiteRow, error) {
	sheet := salarySheet(site, cfg)
	if !wb.Has(sheet) {
		return []models.SiteRow{}, nil
	}
	g, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}
	auto := cfg.ModeOrDefault() == config.ModeAuto ||
		(site == SiteDK && cfg.DKAutodetect) ||
		(site == SiteFD && cfg.FDAutodetect)
	if auto {
		if rows := readAutoColumns(g, site, cfg.RowHardCap); len(rows) > 0 {
			return rows, nil
		}
	}
	return readLetterColumns(g, letterColumns(site, cfg), cfg.RowHardCap), nil
}

func salarySheet(site Site, cfg config.SiteIDs) string {
	if site == SiteFD {
		return orDefault(cfg.FDSheet, "FD Salaries")
	}
	return orDefault(cfg.DKSheet, "DK Salaries")
}

type columnSet struct {
	name, id, team, pos int
}

func letterColumns(site Site, cfg config.SiteIDs) columnSet {
	if site == SiteFD {
		return columnSet{
			name: column(cfg.FDNameCol, "D"),
			id:   column(cfg.FDIDCol, "A"),
			team: column(cfg.FDTeamCol, "J"),
			pos:  column(cfg.FDPosCol, "B"),
		}
	}
	return columnSet{
		name: column(cfg.DKNameCol, "C"),
		id:   column(cfg.DKIDCol, "D"),
		team: column(cfg.DKTeamCol, ""),
		pos:  column(cfg.DKPosCol, ""),
	}
}

// column returns the 1-based column for a letter, falling back to def;
// 0 means not configured.
func column(letter, def string) int {
	if strings.TrimSpace(letter) == "" {
		letter = def
	}
	if letter == "" {
		return 0
	}
	return parser.ColumnNumber(letter)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

// cleanID keeps the first run of digits and hyphens. Header cells such as
// "ID" carry no digits and are rejected.
func cleanID(s string) (string, bool) {
	if m := idDigitsRe.FindString(s); m != "" {
		s = m
	}
	return s, strings.ContainsAny(s, "0123456789")
}

func readLetterColumns(g *parser.Grid, cols columnSet, hardCap int) []models.SiteRow {
	out := []models.SiteRow{}
	seen := make(map[string]bool)
	blank, seenAny := 0, false
	for r := 1; r <= g.MaxRow(); r++ {
		name, id := g.Text(r, cols.name), g.Text(r, cols.id)
		if (name == "" || name == "Name") && id == "" {
			if seenAny {
				blank++
				if blank >= blankBreak {
					break
				}
			}
			continue
		}
		blank, seenAny = 0, true
		if name == "" || id == "" {
			continue
		}
		id, ok := cleanID(id)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.SiteRow{
			Name: name,
			ID:   id,
			Team: strings.ToUpper(g.Text(r, cols.team)),
			Pos:  strings.ToUpper(g.Text(r, cols.pos)),
		})
		if hardCap > 0 && len(out) >= hardCap {
			break
		}
	}
	return out
}

// autoHeader returns the densest of the first rows and its labels,
// lower-cased, mapped to their columns.
func autoHeader(g *parser.Grid) (int, map[string]int) {
	maxCol := g.MaxCol()
	if maxCol > autoMaxCol {
		maxCol = autoMaxCol
	}
	bestRow, best := 1, -1
	var labels map[string]int
	for r := 1; r <= autoScanRows && r <= g.MaxRow(); r++ {
		n := 0
		for c := 1; c <= maxCol; c++ {
			if g.Text(r, c) != "" {
				n++
			}
		}
		if n <= best {
			continue
		}
		bestRow, best = r, n
		labels = make(map[string]int)
		for c := 1; c <= maxCol; c++ {
			if t := g.Text(r, c); t != "" {
				labels[strings.ToLower(parser.NormalizeHeader(t))] = c
			}
		}
	}
	return bestRow, labels
}

func firstLabel(labels map[string]int, names []string) int {
	for _, n := range names {
		if c, ok := labels[n]; ok {
			return c
		}
	}
	return 0
}

func readAutoColumns(g *parser.Grid, site Site, hardCap int) []models.SiteRow {
	header, labels := autoHeader(g)
	var cols columnSet
	var first, last int
	if site == SiteFD {
		cols.name = firstLabel(labels, fdNameCandidates)
		cols.id = firstLabel(labels, fdIDCandidates)
		first, last = labels["first name"], labels["last name"]
	} else {
		cols.name = firstLabel(labels, dkNameCandidates)
		cols.id = firstLabel(labels, dkIDCandidates)
	}
	cols.team = firstLabel(labels, teamCandidates)
	cols.pos = firstLabel(labels, posCandidates)
	if cols.id == 0 || (cols.name == 0 && (first == 0 || last == 0)) {
		return nil
	}

	out := []models.SiteRow{}
	seen := make(map[string]bool)
	blank, seenAny := 0, false
	for r := header + 1; r <= g.MaxRow(); r++ {
		id := g.Text(r, cols.id)
		if id == "" {
			if seenAny {
				blank++
				if blank >= blankBreak {
					break
				}
			}
			continue
		}
		blank, seenAny = 0, true

		name := g.Text(r, cols.name)
		if cols.name == 0 {
			name = strings.TrimSpace(g.Text(r, first) + " " + g.Text(r, last))
		}
		id, ok := cleanID(id)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, models.SiteRow{
			Name: name,
			ID:   id,
			Team: strings.ToUpper(g.Text(r, cols.team)),
			Pos:  strings.ToUpper(g.Text(r, cols.pos)),
		})
		if hardCap > 0 && len(out) >= hardCap {
			break
		}
	}
	return out
}

// ParseSiteID accepts a bare id ("119626-82889") or a name carrying the id
// in trailing parentheses ("Joey Logano (39722112)").
func ParseSiteID(s string) string {
	s = strings.TrimSpace(s)
	if m := idSuffixRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

func readBlockIDs(wb *parser.Workbook, cfg config.SiteIDs) (*models.SiteIDs, error) {
	sheet := orDefault(cfg.Sheet, "Imports")
	g, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}
	fd, fdOK := readIDBlock(g, "FD IDs")
	dk, dkOK := readIDBlock(g, "DK IDs")
	if !fdOK && !dkOK {
		return nil, fmt.Errorf("sheet %q: %w", sheet, ErrNoBlocks)
	}
	return &models.SiteIDs{DK: dedupByName(dk), FD: dedupByName(fd)}, nil
}

// readIDBlock reads the three-column block titled title, with its header
// on the row below the title.
func readIDBlock(g *parser.Grid, title string) ([]models.SiteRow, bool) {
	want := Keyify(title)
	r, c, ok := parser.FindTitle(g, 0, func(text string) bool { return Keyify(text) == want })
	if !ok {
		return []models.SiteRow{}, false
	}
	b := parser.ReadBlock(g, r, c, parser.BlockOptions{Width: 3, HeaderBelow: true})
	nameCol := labelIndex(b.Labels, "Driver", "Name", "Player")
	if nameCol < 0 {
		nameCol = 0
	}
	idCol := labelIndex(b.Labels, "ID")
	pairCol := labelIndex(b.Labels, "Driver (ID)", "Name (ID)")

	out := []models.SiteRow{}
	for _, row := range b.Texts() {
		name := cellAt(row, nameCol)
		raw := cellAt(row, idCol)
		if raw == "" {
			raw = cellAt(row, pairCol)
		}
		if id := ParseSiteID(raw); name != "" && id != "" {
			out = append(out, models.SiteRow{Name: name, ID: id})
		}
	}
	return out, true
}

func labelIndex(labels []string, names ...string) int {
	for _, n := range names {
		for i, l := range labels {
			if strings.EqualFold(strings.TrimSpace(l), n) {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func dedupByName(rows []models.SiteRow) []models.SiteRow {
	seen := make(map[string]bool, len(rows))
	out := make([]models.SiteRow, 0, len(rows))
	for _, r := range rows {
		k := Keyify(r.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// StripRole removes DraftKings showdown role markers such as "(CPT)",
// "- Captain" or a trailing "FLEX" from a player name.
func StripRole(name string) string {
	s := strings.TrimSpace(name)
	for {
		next := strings.TrimSpace(dkRoleTokens.ReplaceAllString(s, ""))
		if next == s {
			break
		}
		s = next
	}
	return strings.Join(strings.Fields(s), " ")
}

func salary(g *parser.Grid, r, c int) *float64 {
	if c == 0 {
		return nil
	}
	v, ok := transform.Number(g.Value(r, c))
	if !ok {
		return nil
	}
	return &v
}

func kickoff(game string) string {
	t, _ := transform.NormalizeTime(game)
	return t
}

func readShowdownIDs(wb *parser.Workbook, cfg config.SiteIDs) (*models.SiteIDs, error) {
	maxBlank := cfg.MaxBlankRows
	if maxBlank <= 0 {
		maxBlank = showdownBlankRows
	}
	out := &models.SiteIDs{DK: []models.SiteRow{}, FD: []models.SiteRow{}}

	if sheet := salarySheet(SiteDK, cfg); wb.Has(sheet) {
		g, err := wb.Grid(sheet)
		if err != nil {
			return nil, err
		}
		var (
			nameC = column(cfg.DKNameCol, "C")
			idC   = column(cfg.DKIDCol, "D")
			posC  = column(cfg.DKPosCol, "E")
			salC  = column(cfg.DKSalCol, "F")
			gameC = column(cfg.DKGameCol, "G")
			teamC = column(cfg.DKTeamCol, "H")
		)
		eachShowdownRow(g, nameC, idC, maxBlank, func(r int, raw, id string) {
			game := g.Text(r, gameC)
			out.DK = append(out.DK, models.SiteRow{
				Name:    StripRole(raw),
				RawName: raw,
				ID:      id,
				Team:    strings.ToUpper(g.Text(r, teamC)),
				Pos:     strings.ToUpper(g.Text(r, posC)),
				Salary:  salary(g, r, salC),
				Game:    game,
				Time:    kickoff(game),
			})
		})
	}

	if sheet := salarySheet(SiteFD, cfg); wb.Has(sheet) {
		g, err := wb.Grid(sheet)
		if err != nil {
			return nil, err
		}
		mvp := cfg.FDMVPSalCol
		if mvp == "" {
			mvp = cfg.FDMVPCol
		}
		var (
			nameC = column(cfg.FDNameCol, "D")
			idC   = column(cfg.FDIDCol, "A")
			posC  = column(cfg.FDPosCol, "B")
			salC  = column(cfg.FDSalCol, "H")
			mvpC  = column(mvp, "I")
			gameC = column(cfg.FDGameCol, "J")
			teamC = column(cfg.FDTeamCol, "K")
		)
		eachShowdownRow(g, nameC, idC, maxBlank, func(r int, name, id string) {
			game := g.Text(r, gameC)
			out.FD = append(out.FD, models.SiteRow{
				Name:       name,
				ID:         id,
				Team:       strings.ToUpper(g.Text(r, teamC)),
				Pos:        strings.ToUpper(g.Text(r, posC)),
				SalaryFlex: salary(g, r, salC),
				SalaryMVP:  salary(g, r, mvpC),
				Game:       game,
				Time:       kickoff(game),
			})
		})
	}

	out.DKJoined = JoinRoles(out.DK)
	return out, nil
}

// eachShowdownRow walks data rows from row 2, stopping after maxBlank rows
// in a row without a name. Rows without an id are skipped.
func eachShowdownRow(g *parser.Grid, nameC, idC, maxBlank int, fn func(r int, name, id string)) {
	blanks := 0
	for r := 2; r <= g.MaxRow(); r++ {
		name := g.Text(r, nameC)
		if name == "" {
			blanks++
			if blanks >= maxBlank {
				return
			}
			continue
		}
		blanks = 0
		if id := g.Text(r, idC); id != "" {
			fn(r, name, id)
		}
	}
}

// JoinRoles pairs each DraftKings showdown player's CPT and FLEX entries,
// keyed by PlayerKey.
func JoinRoles(rows []models.SiteRow) map[string]*models.JoinedSlot {
	joined := make(map[string]*models.JoinedSlot)
	for _, r := range rows {
		k := PlayerKey(r.Name, r.Team)
		j, ok := joined[k]
		if !ok {
			j = &models.JoinedSlot{Name: r.Name, Team: r.Team, Time: r.Time}
			joined[k] = j
		}
		slot := &models.RoleSlot{ID: r.ID, Salary: r.Salary}
		if strings.EqualFold(r.Pos, "CPT") {
			j.CPT = slot
		} else {
			j.Flex = slot
		}
		if j.Time == "" {
			j.Time = r.Time
		}
	}
	return joined
}
