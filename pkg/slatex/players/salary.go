package players

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

// Column aliases used across salary files, salary sheets and projections.
var (
	PlayerKeys   = []string{"player", "Player", "name", "Name"}
	TeamKeys     = []string{"team", "Team", "Tm", "TEAM", "TeamAbbrev", "teamabbrev"}
	DKSalaryKeys = []string{"DK Sal", "dk_sal", "DK_Sal", "DKSalary", "DK Salary", "salary_dk", "dk"}
	FDSalaryKeys = []string{"FD Sal", "fd_sal", "FD_Sal", "FDSalary", "FD Salary", "salary_fd", "fd"}
	TimeKeys     = []string{"Time", "Time ET", "TimeET", "StartTime", "Start Time", "Kickoff", "Column1.3"}
	GameInfoKeys = []string{"Game Info", "GameInfo", "Column1", "Column1.1"}
)

var nameWithIDRe = regexp.MustCompile(`^\s*(.+?)\s*\(\d+\)\s*$`)

// First returns the first value in rec under keys that is neither null nor
// an empty string.
func First(rec *models.Record, keys ...string) any {
	for _, k := range keys {
		v, ok := rec.Get(k)
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && s == "" {
			continue
		}
		return v
	}
	return nil
}

// NameFromNameID strips a DraftKings "Name + ID" suffix: "Josh Allen (123)"
// gives "Josh Allen".
func NameFromNameID(s string) string {
	if m := nameWithIDRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(s)
}

// KickoffSheet picks the DraftKings salaries sheet: a wanted name exactly
// or ignoring case, else any sheet named like "DK ... Sal".
func KickoffSheet(wb *parser.Workbook, want []string) (string, bool) {
	if s, ok := wb.PickSheet(want...); ok {
		return s, true
	}
	return wb.FindSheet(func(sheet string) bool {
		s := strings.ToLower(sheet)
		return (strings.Contains(s, "dk") || strings.Contains(s, "draft")) && strings.Contains(s, "sal")
	})
}

// KickoffMap reads "player|TEAM" -> "H:MM AM/PM" from the DraftKings
// salaries sheet, using a time column or the time inside "Game Info". A
// workbook without such a sheet gives an empty map.
func KickoffMap(wb *parser.Workbook, sheets []string) (map[string]string, error) {
	kick := make(map[string]string)
	sheet, ok := KickoffSheet(wb, sheets)
	if !ok {
		return kick, nil
	}
	g, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}
	t := parser.ReadTable(g, parser.DefaultTableOptions())

	col := func(names ...string) string {
		for _, n := range names {
			if c := resolveField(t.Columns, n); c != "" {
				return c
			}
		}
		return ""
	}
	nameCol := col("Name + ID", "Name", "Player")
	teamCol := col("TeamAbbrev", "Team")
	timeCol := col("Time ET", "Time", "StartTime", "Start Time", "Kickoff", "Column1.3")
	infoCol := col(GameInfoKeys...)
	if nameCol == "" || teamCol == "" {
		return kick, nil
	}

	for _, rec := range t.Rows {
		player := NameFromNameID(recordText(rec, nameCol))
		team := strings.ToUpper(recordText(rec, teamCol))
		if player == "" || team == "" {
			continue
		}
		tm, ok := transform.NormalizeTime(recordText(rec, timeCol))
		if !ok {
			tm, ok = transform.TimeFromGameInfo(recordText(rec, infoCol))
		}
		if ok {
			kick[PlayerKey(player, team)] = tm
		}
	}
	return kick, nil
}

// Salary is what the position files say about one player.
type Salary struct {
	DK   *float64
	FD   *float64
	Time string
}

func cleanNumber(v any) *float64 {
	if v == nil {
		return nil
	}
	if n, ok := transform.Number(v); ok {
		return &n
	}
	return nil
}

// SalaryMap reads the position files under dir into a map keyed by
// PlayerKey. Missing files are skipped; seen counts the rows kept.
func SalaryMap(dir string, files []string) (m map[string]Salary, seen int, err error) {
	m = make(map[string]Salary)
	for _, name := range files {
		rows, _, err := output.ReadRows(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", name, err)
		}
		for _, r := range rows {
			player := transform.Text(First(r, PlayerKeys...))
			team := transform.Text(First(r, TeamKeys...))
			if player == "" || team == "" {
				continue
			}
			s := Salary{
				DK: cleanNumber(First(r, DKSalaryKeys...)),
				FD: cleanNumber(First(r, FDSalaryKeys...)),
			}
			if tm, ok := transform.NormalizeTime(transform.Text(First(r, TimeKeys...))); ok {
				s.Time = tm
			} else if tm, ok := transform.TimeFromGameInfo(transform.Text(First(r, GameInfoKeys...))); ok {
				s.Time = tm
			}
			if s.DK == nil && s.FD == nil && s.Time == "" {
				continue
			}
			m[PlayerKey(player, team)] = s
			seen++
		}
	}
	return m, seen, nil
}

// MergeStats counts what MergeSalaries changed.
type MergeStats struct {
	Seen          int
	Updated       int
	DKHits        int
	FDHits        int
	TimeHitsJSON  int
	TimeHitsSheet int
}

// MergeSalaries adds dk_sal, fd_sal, "DK Sal", "FD Sal" and time to every
// projection row of rows. A time from the salary files wins over one from
// the kickoff map, and an existing time is never replaced.
func MergeSalaries(rows []*models.Record, salaries map[string]Salary, kickoff map[string]string) MergeStats {
	var st MergeStats
	for _, r := range rows {
		key := PlayerKey(transform.Text(First(r, PlayerKeys...)), transform.Text(First(r, TeamKeys...)))
		s, hit := salaries[key]
		if hit {
			if s.DK != nil {
				r.Set("dk_sal", *s.DK)
				r.Set("DK Sal", transform.FormatMoney(*s.DK))
				st.DKHits++
			}
			if s.FD != nil {
				r.Set("fd_sal", *s.FD)
				r.Set("FD Sal", transform.FormatMoney(*s.FD))
				st.FDHits++
			}
			if s.Time != "" && First(r, "time") == nil {
				r.Set("time", s.Time)
				st.TimeHitsJSON++
			}
		}
		t2, inSheet := kickoff[key]
		if First(r, "time") == nil && t2 != "" {
			r.Set("time", t2)
			st.TimeHitsSheet++
		}
		if hit || inSheet {
			st.Updated++
		}
	}
	return st
}

// MergeSalariesFile runs MergeSalaries over the projections file at path
// and writes it back in its original container shape.
func MergeSalariesFile(path string, salaries map[string]Salary, kickoff map[string]string, pretty bool) (MergeStats, error) {
	rows, shape, err := output.ReadRows(path)
	if err != nil {
		return MergeStats{}, err
	}
	st := MergeSalaries(rows, salaries, kickoff)
	if err := output.WriteRows(path, rows, shape, pretty); err != nil {
		return st, err
	}
	return st, nil
}

// MergeProjections concatenates the batter and pitcher projection rows
// into outPath. Both inputs must exist.
func MergeProjections(battersPath, pitchersPath, outPath string, pretty bool) (batters, pitchers int, err error) {
	bat, _, err := output.ReadRows(battersPath)
	if err != nil {
		return 0, 0, err
	}
	pit, _, err := output.ReadRows(pitchersPath)
	if err != nil {
		return 0, 0, err
	}
	merged := make([]*models.Record, 0, len(bat)+len(pit))
	merged = append(merged, bat...)
	merged = append(merged, pit...)
	if err := output.WriteJSON(outPath, merged, pretty); err != nil {
		return 0, 0, err
	}
	return len(bat), len(pit), nil
}
