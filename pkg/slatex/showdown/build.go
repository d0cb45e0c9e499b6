// Package showdown builds the NFL showdown position files from the
// exported showdown and classic JSON.
package showdown

import (
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/players"
)

// Position is a showdown position file.
type Position string

const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
)

// Positions lists the built positions in output order.
var Positions = []Position{QB, RB, WR, TE}

// Field aliases, most specific first.
var (
	playerKeys     = []string{"player", "Player", "name"}
	projPlayerKeys = []string{"player", "Player Name", "name"}
	teamKeys       = []string{"team", "Team"}
	masterTeamKeys = []string{"Team", "team"}

	dkSalKeys  = []string{"DK Sal", "DK Flex Sal", "dk_sal", "dk flex sal", "dk_flex_sal"}
	fdSalKeys  = []string{"FD Sal", "FD Flex Sal", "fd_sal", "fd flex sal", "fd_flex_sal"}
	dkProjKeys = []string{"DK Proj", "dk_proj"}
	fdProjKeys = []string{"FD Proj", "fd_proj"}
)

var nameReplacer = strings.NewReplacer(".", " ", "’", "'", ",", " ", "-", " ")

// NameKey folds a player name for lookups across files: lower case, with
// periods, commas and hyphens treated as spaces.
func NameKey(s string) string {
	return strings.Join(strings.Fields(nameReplacer.Replace(strings.ToLower(s))), " ")
}

// Inputs are the row lists a build reads.
type Inputs struct {
	// Projections is the showdown projections.json master.
	Projections []*models.Record
	// Showdown holds the showdown <pos>_data.json rows.
	Showdown map[Position][]*models.Record
	// Classic holds the classic <pos>_projections.json rows.
	Classic map[Position][]*models.Record
}

// Builder joins position rows to the showdown master and classic stats.
type Builder struct {
	master  map[string]*models.Record
	classic map[Position]map[string]*models.Record
}

// NewBuilder indexes the master and classic rows by NameKey; later rows
// replace earlier ones.
func NewBuilder(in Inputs) *Builder {
	b := &Builder{
		master:  make(map[string]*models.Record, len(in.Projections)),
		classic: make(map[Position]map[string]*models.Record, len(in.Classic)),
	}
	for _, r := range in.Projections {
		b.master[NameKey(text(pick(r, projPlayerKeys...)))] = r
	}
	for pos, rows := range in.Classic {
		idx := make(map[string]*models.Record, len(rows))
		for _, r := range rows {
			v, _ := r.Get("player")
			idx[NameKey(text(v))] = r
		}
		b.classic[pos] = idx
	}
	return b
}

// Build returns the output rows of every position.
func Build(in Inputs) map[Position][]*models.Record {
	b := NewBuilder(in)
	out := make(map[Position][]*models.Record, len(Positions))
	for _, pos := range Positions {
		if pos == QB {
			out[pos] = b.QB(in.Showdown[QB])
			continue
		}
		out[pos] = b.Skill(pos, in.Showdown[pos])
	}
	return out
}

// QB builds quarterback rows: passing stats from the showdown row, patched
// from the classic row when none are present, plus rushing stats.
func (b *Builder) QB(rows []*models.Record) []*models.Record {
	out := make([]*models.Record, 0, len(rows))
	for _, r := range rows {
		player := pick(r, playerKeys...)
		if !truthy(player) {
			continue
		}
		name := text(player)
		paYards := pick(r, "pa_yards", "Pa Yards", "pass yards")
		paAtt := pick(r, "pa_att", "Pa Att", "pass attempts", "Pa Attempts")
		paComp := pick(r, "pa_comp", "Pa Comp")
		paPct := pick(r, "pa_comp_pct", "Comp%", "completion%")
		paTD := pick(r, "pa_td", "Pa TD")
		ints := pick(r, "int", "INT")

		if !anyTruthy(paYards, paAtt, paComp, paPct, paTD) {
			if c := b.classic[QB][NameKey(name)]; c != nil {
				paYards = or(paYards, c, "pa_yards")
				paAtt = or(paAtt, c, "pa_att")
				paComp = or(paComp, c, "pa_comp")
				paPct = or(paPct, c, "pa_comp_pct")
				paTD = or(paTD, c, "pa_td")
				ints = or(ints, c, "int")
			}
		}

		rec := b.base(r, player, false)
		rec.Set("pa_yards", paYards)
		rec.Set("pa_att", paAtt)
		rec.Set("pa_comp", paComp)
		rec.Set("pa_comp_pct", PctString(paPct))
		rec.Set("pa_td", paTD)
		rec.Set("int", ints)
		rec.Set("ru_att", pick(r, "ru_att", "Ru Att", "rush attempts", "carries"))
		rec.Set("ypc", pick(r, "ypc", "YPC"))
		rec.Set("ru_yards", pick(r, "ru_yards", "Ru Yards", "rush yards"))
		rec.Set("ru_td", pick(r, "ru_td", "Ru TD", "rush td"))
		b.projections(rec, name)
		out = append(out, rec)
	}
	return out
}

// Skill builds RB, WR and TE rows. Receiving stats are patched from the
// classic row when the showdown row has none, and so are rushing stats
// for RB and WR. TE rows carry no rushing fields.
func (b *Builder) Skill(pos Position, rows []*models.Record) []*models.Record {
	out := make([]*models.Record, 0, len(rows))
	rushing := pos == RB || pos == WR
	for _, r := range rows {
		player := pick(r, playerKeys...)
		if !truthy(player) {
			continue
		}
		name := text(player)
		classic := b.classic[pos][NameKey(name)]

		ruAtt := pick(r, "ru_att", "Ru Attempts", "ru attempts", "rush attempts", "carries")
		ypc := pick(r, "ypc", "YPC")
		ruYards := pick(r, "ru_yards", "Ru Yards", "rush yards")
		ruTD := pick(r, "ru_td", "Ru TD")

		targets := pick(r, "targets", "Targets")
		share := pick(r, "tgt_share", "Tgt Share", "target share")
		rec := pick(r, "rec", "Rec")
		recYards := pick(r, "rec_yards", "Rec Yards", "receiving yards")
		recTD := pick(r, "rec_td", "Rec TD")

		if classic != nil && !anyTruthy(targets, rec, recYards, recTD) {
			targets = or(targets, classic, "targets")
			share = or(share, classic, "tgt_share")
			rec = or(rec, classic, "rec")
			recYards = or(recYards, classic, "rec_yards")
			recTD = or(recTD, classic, "rec_td")
		}
		if classic != nil && rushing && !anyTruthy(ruAtt, ypc, ruYards, ruTD) {
			ruAtt = or(ruAtt, classic, "ru_att")
			ypc = or(ypc, classic, "ypc")
			ruYards = or(ruYards, classic, "ru_yards")
			ruTD = or(ruTD, classic, "ru_td")
		}

		row := b.base(r, player, true)
		if rushing {
			row.Set("ru_att", ruAtt)
			row.Set("ypc", ypc)
			row.Set("ru_yards", ruYards)
			row.Set("ru_td", ruTD)
		}
		row.Set("targets", targets)
		row.Set("tgt_share", PctString(share))
		row.Set("rec", rec)
		row.Set("rec_yards", recYards)
		row.Set("rec_td", recTD)
		out = append(out, row)
	}
	return out
}

// base starts a row with the player, team and salaries. With withProj the
// projections and values follow the salaries; QB rows add them last.
func (b *Builder) base(r *models.Record, player any, withProj bool) *models.Record {
	name := text(player)
	m := b.master[NameKey(name)]
	team := pick(r, teamKeys...)
	if !truthy(team) {
		team = pick(m, masterTeamKeys...)
	}

	rec := models.NewRecord()
	rec.Set("player", player)
	rec.Set("team", team)
	rec.Set("dk_sal", pick(m, dkSalKeys...))
	rec.Set("fd_sal", pick(m, fdSalKeys...))
	if withProj {
		b.projections(rec, name)
	}
	return rec
}

func (b *Builder) projections(rec *models.Record, name string) {
	m := b.master[NameKey(name)]
	dkp, fdp := pick(m, dkProjKeys...), pick(m, fdProjKeys...)
	dks, _ := rec.Get("dk_sal")
	fds, _ := rec.Get("fd_sal")
	rec.Set("dk_proj", dkp)
	rec.Set("dk_val", ValuePoints(dkp, dks))
	rec.Set("fd_proj", fdp)
	rec.Set("fd_val", ValuePoints(fdp, fds))
}

// pick returns the first non-empty value under keys, or "".
func pick(r *models.Record, keys ...string) any {
	if r == nil {
		return ""
	}
	if v := players.First(r, keys...); v != nil {
		return v
	}
	return ""
}

// or keeps v when it is truthy, else takes key from the classic row.
func or(v any, classic *models.Record, key string) any {
	if truthy(v) {
		return v
	}
	if c, ok := classic.Get(key); ok && c != nil {
		return c
	}
	return ""
}

// truthy reports whether v holds a value: not nil, not "", not zero.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	}
	if f, ok := Num(v); ok {
		return f != 0
	}
	return true
}

func anyTruthy(vals ...any) bool {
	for _, v := range vals {
		if truthy(v) {
			return true
		}
	}
	return false
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	}
	return strings.TrimSpace(toString(v))
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case interface{ String() string }:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

var numReplacer = strings.NewReplacer(",", "", "$", "", "%", "")

// Num reads a number from v, ignoring thousands separators, dollar and
// percent signs.
func Num(v any) (float64, bool) {
	s := strings.TrimSpace(numReplacer.Replace(toString(v)))
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// PctString renders a percentage as "x.x%". Text already ending in "%"
// keeps its digits; fractions in [0, 1] are scaled by 100.
func PctString(v any) string {
	s := strings.TrimSpace(text(v))
	if s == "" {
		return ""
	}
	if strings.HasSuffix(s, "%") {
		return strings.TrimRight(s, "%") + "%"
	}
	n, ok := Num(s)
	if !ok {
		return ""
	}
	if n >= 0 && n <= 1 {
		n *= 100
	}
	return strconv.FormatFloat(n, 'f', 1, 64) + "%"
}

// ValuePoints is points per $1000 of salary with one decimal, or "" when
// either side is missing or the salary is zero.
func ValuePoints(proj, sal any) string {
	p, ok := Num(proj)
	if !ok {
		return ""
	}
	s, ok := Num(sal)
	if !ok || s == 0 {
		return ""
	}
	return strconv.FormatFloat(p/(s/1000), 'f', 1, 64)
}
