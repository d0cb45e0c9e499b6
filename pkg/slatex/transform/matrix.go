package transform

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// DriverColumn is the key column of the NASCAR matrix exports.
const DriverColumn = "Driver"

// ErrNoColumns is returned when a matrix sheet has no data columns.
var ErrNoColumns = errors.New("no columns detected")

var positionRe = regexp.MustCompile(`(?i)^P?(\d+)$`)

// H2HMatrix reshapes a driver-versus-driver sheet: the first column becomes
// Driver, rows without a driver are dropped, the other cells are cleaned to
// numbers (fractions up to 1.5 are read as percentages) and a driver's own
// column is cleared.
func H2HMatrix(t *models.Table) (*models.Table, error) {
	t, err := driverRows(t)
	if err != nil {
		return nil, err
	}
	for _, rec := range t.Rows {
		d, _ := rec.Get(DriverColumn)
		self := d.(string)
		for _, col := range t.Columns[1:] {
			if col == self {
				rec.Set(col, nil)
				continue
			}
			v, _ := rec.Get(col)
			rec.Set(col, h2hValue(v))
		}
	}
	return t, nil
}

func h2hValue(v any) any {
	f, ok := matrixNumber(v)
	if !ok {
		return nil
	}
	if f <= 1.5 {
		f *= 100
	}
	return f
}

// FinishDistribution reshapes a finish-position sheet: positional columns
// ("1", "P1" ...) are renamed P<n> and ordered numerically, values are
// cleaned, scaled by 100 when the median row sum is at most 2, and rounded
// to one decimal. Only Driver and the position columns are kept.
func FinishDistribution(t *models.Table) (*models.Table, error) {
	t, err := driverRows(t)
	if err != nil {
		return nil, err
	}

	type position struct {
		n   int
		src string
	}
	var positions []position
	for _, col := range t.Columns[1:] {
		m := positionRe.FindStringSubmatch(strings.TrimSpace(col))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		positions = append(positions, position{n, col})
	}
	sort.SliceStable(positions, func(i, j int) bool { return positions[i].n < positions[j].n })

	sums := make([]float64, len(t.Rows))
	values := make([]map[string]*float64, len(t.Rows))
	for i, rec := range t.Rows {
		values[i] = make(map[string]*float64, len(positions))
		for _, p := range positions {
			v, _ := rec.Get(p.src)
			if f, ok := matrixNumber(v); ok {
				values[i][p.src] = &f
				sums[i] += f
			}
		}
	}
	scale := 1.0
	if med, ok := median(sums); ok && med != 0 && med <= 2 {
		scale = 100
	}

	out := &models.Table{Columns: []string{DriverColumn}}
	seen := map[string]bool{DriverColumn: true}
	var keep []position
	for _, p := range positions {
		name := "P" + strconv.Itoa(p.n)
		if seen[name] {
			continue
		}
		seen[name] = true
		keep = append(keep, p)
		out.Columns = append(out.Columns, name)
	}
	for i, rec := range t.Rows {
		d, _ := rec.Get(DriverColumn)
		row := models.NewRecord()
		row.Set(DriverColumn, d)
		for _, p := range keep {
			var v any
			if f := values[i][p.src]; f != nil {
				v = Round(*f*scale, 1)
			}
			row.Set("P"+strconv.Itoa(p.n), v)
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// driverRows renames the first column to Driver and keeps the rows with a
// driver name, stored as trimmed text.
func driverRows(t *models.Table) (*models.Table, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if first := t.Columns[0]; first != DriverColumn {
		t = Rename(t, map[string]string{first: DriverColumn})
		if t.Columns[0] != DriverColumn {
			return nil, ErrNoColumns
		}
	}
	rows := t.Rows[:0]
	for _, rec := range t.Rows {
		v, _ := rec.Get(DriverColumn)
		name := Text(v)
		if name == "" {
			continue
		}
		rec.Set(DriverColumn, name)
		rows = append(rows, rec)
	}
	t.Rows = rows
	return t, nil
}

// matrixNumber reads a probability cell: stored numbers, or text with
// thousands separators and a percent sign removed.
func matrixNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case string:
		s := strings.TrimSpace(strings.NewReplacer(",", "", "%", "").Replace(n))
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return Number(v)
}

func median(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid], true
	}
	return (s[mid-1] + s[mid]) / 2, true
}
