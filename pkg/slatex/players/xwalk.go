package players

import (
	"errors"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// ErrNoProjections is returned when none of the projection sheets exist
// or they hold no players.
var ErrNoProjections = errors.New("no projection rows")

// ProjectionRow is a player as named on a projections sheet.
type ProjectionRow struct {
	Player string
	Team   string
	Pos    string
}

// ReadProjections reads player, team and position from each configured
// projections sheet, in order. Missing sheets are skipped. Team and
// position are upper-cased and the position is cut at the first "/".
func ReadProjections(wb *parser.Workbook, cfg config.NameXwalk) ([]ProjectionRow, error) {
	header, start := cfg.HeaderRow, cfg.DataStartRow
	switch {
	case header <= 0 && start <= 0:
		header, start = 1, 2
	case start <= 0:
		start = header + 1
	case header <= 0:
		header = start - 1
	}

	var out []ProjectionRow
	for _, sheet := range cfg.Sheets() {
		if !wb.Has(sheet) {
			continue
		}
		g, err := wb.Grid(sheet)
		if err != nil {
			return nil, err
		}
		opts := parser.DefaultTableOptions()
		opts.HeaderRow, opts.DataStartRow, opts.LimitCol = header, start, autoMaxCol
		t := parser.ReadTable(g, opts)

		playerCol := resolveField(t.Columns, orDefault(cfg.PlayerField, "Player"))
		teamCol := resolveField(t.Columns, orDefault(cfg.TeamField, "Team"))
		posCol := resolveField(t.Columns, orDefault(cfg.PosField, "Pos"))
		if posCol == "" {
			posCol = resolveField(t.Columns, "Position")
		}
		if playerCol == "" {
			continue
		}
		for _, rec := range t.Rows {
			p := ProjectionRow{
				Player: recordText(rec, playerCol),
				Team:   strings.ToUpper(recordText(rec, teamCol)),
				Pos:    strings.ToUpper(recordText(rec, posCol)),
			}
			if p.Player == "" {
				continue
			}
			if i := strings.Index(p.Pos, "/"); i >= 0 {
				p.Pos = p.Pos[:i]
			}
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoProjections
	}
	return out, nil
}

// resolveField finds name among columns, exactly and then ignoring case.
func resolveField(columns []string, name string) string {
	for _, c := range columns {
		if c == name {
			return c
		}
	}
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return ""
}

func recordText(rec *models.Record, key string) string {
	if key == "" {
		return ""
	}
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

type nameKeys struct {
	norm, base, filast, last string
}

func keysOf(name string) nameKeys {
	return nameKeys{
		norm:   NormName(name),
		base:   BaseKey(name),
		filast: FiLast(name),
		last:   Last(name),
	}
}

func (k nameKeys) each() [3]string {
	return [3]string{k.norm, k.base, k.filast}
}

type exactKey struct {
	name, team, pos string
}

// siteIndex holds one site's rows keyed for crosswalk lookups. The first
// row wins for every key.
type siteIndex struct {
	rows    []models.SiteRow
	keys    []nameKeys
	exact   [3]map[exactKey]int
	keyOnly [3]map[string]int
	byLast  map[string][]int
}

func newSiteIndex(rows []models.SiteRow) *siteIndex {
	ix := &siteIndex{rows: rows, byLast: make(map[string][]int)}
	for k := range ix.exact {
		ix.exact[k] = make(map[exactKey]int)
		ix.keyOnly[k] = make(map[string]int)
	}
	for i, r := range rows {
		keys := keysOf(r.Name)
		ix.keys = append(ix.keys, keys)
		team, pos := strings.ToUpper(r.Team), strings.ToUpper(r.Pos)
		for k, name := range keys.each() {
			ek := exactKey{name, team, pos}
			if _, ok := ix.exact[k][ek]; !ok {
				ix.exact[k][ek] = i
			}
			if _, ok := ix.keyOnly[k][name]; !ok {
				ix.keyOnly[k][name] = i
			}
		}
		ix.byLast[keys.last] = append(ix.byLast[keys.last], i)
	}
	return ix
}

// lookup tries the exact keys gated by team and position, then by team
// alone, then by position alone, then the keys by themselves.
func (ix *siteIndex) lookup(keys nameKeys, team, pos string) (int, bool) {
	gates := []exactKey{{team: team, pos: pos}, {team: team}, {pos: pos}}
	for _, gate := range gates {
		for k, name := range keys.each() {
			if i, ok := ix.exact[k][exactKey{name, gate.team, gate.pos}]; ok {
				return i, true
			}
		}
	}
	for k, name := range keys.each() {
		if i, ok := ix.keyOnly[k][name]; ok {
			return i, true
		}
	}
	return 0, false
}

// fuzzy compares the base key against rows sharing the last name,
// narrowed to the same team and then the same position when any match.
func (ix *siteIndex) fuzzy(keys nameKeys, team, pos string, minRatio float64) (int, bool) {
	cand := ix.byLast[keys.last]
	if len(cand) == 0 {
		return 0, false
	}
	narrow := func(keep func(models.SiteRow) bool) {
		var out []int
		for _, i := range cand {
			if keep(ix.rows[i]) {
				out = append(out, i)
			}
		}
		if len(out) > 0 {
			cand = out
		}
	}
	if team != "" {
		narrow(func(r models.SiteRow) bool { return strings.EqualFold(r.Team, team) })
	}
	if pos != "" {
		narrow(func(r models.SiteRow) bool { return strings.EqualFold(r.Pos, pos) })
	}

	best, bestRatio := -1, 0.0
	for _, i := range cand {
		if r := Ratio(keys.base, ix.keys[i].base); r > bestRatio {
			best, bestRatio = i, r
		}
	}
	if best < 0 || bestRatio < minRatio {
		return 0, false
	}
	return best, true
}

func (ix *siteIndex) match(keys nameKeys, team, pos string, minRatio float64) (models.SiteRow, bool) {
	i, ok := ix.lookup(keys, team, pos)
	if !ok {
		i, ok = ix.fuzzy(keys, team, pos, minRatio)
	}
	if !ok {
		return models.SiteRow{}, false
	}
	return ix.rows[i], true
}

// Ratio is the similarity of a and b in [0, 1], computed over characters
// the way difflib's SequenceMatcher does.
func Ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// Crosswalk maps every projection row to its DraftKings and FanDuel name
// and id. Unmatched sites leave the fields empty.
func Crosswalk(proj []ProjectionRow, dk, fd []models.SiteRow, minRatio float64) []models.XwalkRow {
	dkIx, fdIx := newSiteIndex(dk), newSiteIndex(fd)
	out := make([]models.XwalkRow, 0, len(proj))
	for _, p := range proj {
		name := strings.TrimSpace(p.Player)
		if name == "" {
			continue
		}
		keys := keysOf(name)
		team, pos := strings.ToUpper(p.Team), strings.ToUpper(p.Pos)
		row := models.XwalkRow{Proj: name, Team: team, Pos: pos}
		if hit, ok := dkIx.match(keys, team, pos, minRatio); ok {
			row.DKName, row.DKID = hit.Name, hit.ID
		}
		if hit, ok := fdIx.match(keys, team, pos, minRatio); ok {
			row.FDName, row.FDID = hit.Name, hit.ID
		}
		out = append(out, row)
	}
	return out
}
