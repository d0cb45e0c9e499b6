package players

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNameFromNameID(t *testing.T) {
	assert.Equal(t, "Josh Allen", NameFromNameID(" Josh Allen (39722112) "))
	assert.Equal(t, "Josh Allen", NameFromNameID("Josh Allen"))
	assert.Equal(t, "D.J. Moore (WR)", NameFromNameID("D.J. Moore (WR)"))
}

func TestKickoffMap(t *testing.T) {
	dk := sheet{"DraftKings Salaries Wk2", [][]any{
		{"Position", "Name + ID", "Name", "ID", "Roster Position", "Salary", "Game Info", "TeamAbbrev"},
		{"QB", "Josh Allen (39722112)", "Josh Allen", 39722112, "QB", 8500, "BUF@MIA 09/18/2025 08:15PM ET", "BUF"},
		{"WR", "Stefon Diggs (39722113)", "Stefon Diggs", 39722113, "WR", 6100, "HOU@TB 09/21/2025 01:00PM ET", "hou"},
		{"WR", "Rhamondre Stevenson (3)", "Rhamondre Stevenson", 3, "RB", 5500, "Postponed", "NE"},
	}}
	wb := fixture(t, dk)

	kick, err := KickoffMap(wb, config.DefaultKickoffSheets)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"josh allen|BUF":   "8:15 PM",
		"stefon diggs|HOU": "1:00 PM",
	}, kick)
}

func TestKickoffMapTimeColumnAndMissingSheet(t *testing.T) {
	wb := fixture(t, sheet{"Salaries", [][]any{
		{"Name", "Team", "Time ET"},
		{"Josh Allen", "BUF", "8:15 p.m."},
	}})
	kick, err := KickoffMap(wb, config.DefaultKickoffSheets)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"josh allen|BUF": "8:15 PM"}, kick)

	empty := fixture(t, sheet{"Projections", [][]any{{"Player"}}})
	kick, err = KickoffMap(empty, config.DefaultKickoffSheets)
	require.NoError(t, err)
	assert.Empty(t, kick)
}

func salaryDir(t *testing.T) string {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "qb_data.json"), `[
		{"player": "Josh Allen", "team": "buf", "DK Sal": "$8,500", "FD Sal": "9,000"},
		{"player": "", "team": "BUF", "DK Sal": "1"},
		{"player": "Mac Jones", "team": "SF"}
	]`)
	writeFile(t, filepath.Join(dir, "rb_data.json"), `{"rows": [
		{"Player": "Saquon Barkley", "Team": "PHI", "dk_sal": 7000, "Time": "1:00pm"}
	]}`)
	writeFile(t, filepath.Join(dir, "wr_data.json"), `[
		{"name": "Stefon Diggs", "Tm": "HOU", "Game Info": "HOU@TB 09/21/2025 01:00PM ET"}
	]`)
	return dir
}

func TestSalaryMap(t *testing.T) {
	m, seen, err := SalaryMap(salaryDir(t), config.DefaultSalarySources)
	require.NoError(t, err)
	assert.Equal(t, 3, seen)

	allen := m["josh allen|BUF"]
	require.NotNil(t, allen.DK)
	require.NotNil(t, allen.FD)
	assert.Equal(t, 8500.0, *allen.DK)
	assert.Equal(t, 9000.0, *allen.FD)
	assert.Empty(t, allen.Time)

	barkley := m["saquon barkley|PHI"]
	require.NotNil(t, barkley.DK)
	assert.Equal(t, 7000.0, *barkley.DK)
	assert.Nil(t, barkley.FD)
	assert.Equal(t, "1:00 PM", barkley.Time)

	assert.Equal(t, Salary{Time: "1:00 PM"}, m["stefon diggs|HOU"])
	_, ok := m["mac jones|SF"]
	assert.False(t, ok)
}

func TestSalaryMapBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "qb_data.json"), `{not json`)
	_, _, err := SalaryMap(dir, []string{"qb_data.json"})
	assert.Error(t, err)
}

func TestMergeSalariesFile(t *testing.T) {
	dir := salaryDir(t)
	proj := filepath.Join(dir, "projections.json")
	writeFile(t, proj, `{"meta": {"week": 2}, "players": [
		{"player": "Josh Allen", "team": "BUF", "proj": 24.5},
		{"Player": "Saquon Barkley", "Team": "PHI", "time": "4:25 PM"},
		{"name": "Stefon Diggs", "Tm": "HOU"},
		{"player": "Nobody", "team": "SEA"}
	]}`)

	sal, seen, err := SalaryMap(dir, config.DefaultSalarySources)
	require.NoError(t, err)
	kick := map[string]string{"josh allen|BUF": "8:15 PM", "saquon barkley|PHI": "1:00 PM"}

	st, err := MergeSalariesFile(proj, sal, kick, true)
	require.NoError(t, err)
	st.Seen = seen
	assert.Equal(t, MergeStats{Seen: 3, Updated: 3, DKHits: 2, FDHits: 1, TimeHitsJSON: 1, TimeHitsSheet: 1}, st)

	rows, shape, err := output.ReadRows(proj)
	require.NoError(t, err)
	assert.Equal(t, "players", shape.Kind)
	require.Len(t, rows, 4)

	get := func(r *models.Record, key string) any {
		v, _ := r.Get(key)
		return v
	}
	assert.Equal(t, json.Number("8500"), get(rows[0], "dk_sal"))
	assert.Equal(t, "8,500", get(rows[0], "DK Sal"))
	assert.Equal(t, "9,000", get(rows[0], "FD Sal"))
	assert.Equal(t, "8:15 PM", get(rows[0], "time"))
	assert.Equal(t, "7,000", get(rows[1], "DK Sal"))
	assert.Equal(t, "4:25 PM", get(rows[1], "time"))
	assert.Equal(t, "1:00 PM", get(rows[2], "time"))
	assert.Equal(t, []string{"player", "team"}, rows[3].Keys())

	data, err := os.ReadFile(proj)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"meta": {`)
}

func TestMergeSalariesFileMissing(t *testing.T) {
	_, err := MergeSalariesFile(filepath.Join(t.TempDir(), "projections.json"), nil, nil, false)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMergeProjections(t *testing.T) {
	dir := t.TempDir()
	bat := filepath.Join(dir, "batters_projections.json")
	pit := filepath.Join(dir, "pitchers_projections.json")
	out := filepath.Join(dir, "merged", "projections.json")
	writeFile(t, bat, `[{"Player": "Ronald Acuna Jr.", "Proj": 9.1}, {"Player": "Will Smith", "Proj": 7.2}]`)
	writeFile(t, pit, `{"data": [{"Player": "Spencer Strider", "Proj": 18.4}]}`)

	nb, np, err := MergeProjections(bat, pit, out, false)
	require.NoError(t, err)
	assert.Equal(t, 2, nb)
	assert.Equal(t, 1, np)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"Player":"Ronald Acuna Jr.","Proj":9.1},{"Player":"Will Smith","Proj":7.2},{"Player":"Spencer Strider","Proj":18.4}]`+"\n",
		string(data))

	_, _, err = MergeProjections(bat, filepath.Join(dir, "missing.json"), out, false)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
