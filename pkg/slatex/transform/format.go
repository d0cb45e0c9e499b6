package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// PercentColumns returns, in table order, the columns named in explicit
// (case-insensitively) or whose name contains one of the fragments.
func PercentColumns(columns, explicit, contains []string) []string {
	want := make(map[string]bool, len(explicit))
	for _, e := range explicit {
		want[strings.ToLower(e)] = true
	}
	var out []string
	for _, c := range columns {
		low := strings.ToLower(c)
		hit := want[low]
		for _, frag := range contains {
			if frag != "" && strings.Contains(low, strings.ToLower(frag)) {
				hit = true
				break
			}
		}
		if hit {
			out = append(out, c)
		}
	}
	return out
}

// numbers coerces one column. ok is false when no cell is numeric.
func numbers(t *models.Table, col string) (vals []float64, has []bool, ok bool) {
	vals = make([]float64, len(t.Rows))
	has = make([]bool, len(t.Rows))
	for i, rec := range t.Rows {
		v, _ := rec.Get(col)
		if n, isNum := Number(v); isNum {
			vals[i], has[i], ok = n, true, true
		}
	}
	return vals, has, ok
}

// FormatPercents rewrites each column as percentages. Columns whose largest
// magnitude is at most 1 are treated as fractions and scaled by 100. With
// asString the cells become "12.5%" (blank when not numeric); otherwise
// they are rounded numbers (nil when not numeric).
func FormatPercents(t *models.Table, cols []string, decimals int, asString bool) {
	for _, col := range cols {
		if t.ColumnIndex(col) < 0 {
			continue
		}
		vals, has, ok := numbers(t, col)
		if !ok {
			continue
		}
		maxAbs := 0.0
		for i, v := range vals {
			if has[i] && abs(v) > maxAbs {
				maxAbs = abs(v)
			}
		}
		scale := 1.0
		if maxAbs <= 1+1e-12 {
			scale = 100
		}
		for i, rec := range t.Rows {
			switch {
			case !has[i] && asString:
				rec.Set(col, "")
			case !has[i]:
				rec.Set(col, nil)
			case asString:
				rec.Set(col, strconv.FormatFloat(vals[i]*scale, 'f', decimals, 64)+"%")
			default:
				rec.Set(col, Round(vals[i]*scale, decimals))
			}
		}
	}
}

// RoundNumeric rounds every column holding numbers, except those in skip.
// Columns whose numbers are all whole become integers. Non-numeric cells in
// such columns become nil.
func RoundNumeric(t *models.Table, decimals int, skip map[string]bool) {
	for _, col := range t.Columns {
		if skip[col] {
			continue
		}
		vals, has, ok := numbers(t, col)
		if !ok {
			continue
		}
		whole := true
		for i, v := range vals {
			if has[i] && !isIntegral(v) {
				whole = false
				break
			}
		}
		for i, rec := range t.Rows {
			switch {
			case !has[i]:
				rec.Set(col, nil)
			case whole:
				rec.Set(col, RoundInt(vals[i]))
			default:
				rec.Set(col, Round(vals[i], decimals))
			}
		}
	}
}

// IntegerColumns rounds the named columns to integers.
func IntegerColumns(t *models.Table, cols []string) {
	for _, col := range cols {
		if t.ColumnIndex(col) < 0 {
			continue
		}
		vals, has, ok := numbers(t, col)
		if !ok {
			continue
		}
		for i, rec := range t.Rows {
			if has[i] {
				rec.Set(col, RoundInt(vals[i]))
			} else {
				rec.Set(col, nil)
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatMoney renders a whole-dollar amount with thousands separators,
// e.g. 8500 -> "8,500".
func FormatMoney(v float64) string {
	n := RoundInt(v)
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}

var (
	timeRe     = regexp.MustCompile(`(?i)(\d{1,2})\s*:\s*(\d{2})(?::\d{2})?\s*([ap])\s*\.?\s*m`)
	gameTimeRe = regexp.MustCompile(`(?i)(\d{1,2}\s*:\s*\d{2}\s*[ap]\s*\.?\s*m)`)
	numRe      = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
)

// NormalizeTime finds a clock time such as "1:00pm" or "8:15 P.M." in s
// and returns it as "1:00 PM".
func NormalizeTime(s string) (string, bool) {
	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	h, _ := strconv.Atoi(m[1])
	ampm := "PM"
	if strings.EqualFold(m[3], "a") {
		ampm = "AM"
	}
	return strconv.Itoa(h) + ":" + m[2] + " " + ampm, true
}

// TimeFromGameInfo extracts the kickoff from a game info string such as
// "CIN@CLE 09/07/2025 01:00PM ET".
func TimeFromGameInfo(gi string) (string, bool) {
	m := gameTimeRe.FindString(gi)
	if m == "" {
		return "", false
	}
	return NormalizeTime(m)
}

// ParseFloat returns the first number found in v.
func ParseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int, int64, float64:
		return Number(n)
	}
	m := numRe.FindString(Text(v))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	return f, err == nil
}

// ParseInt returns the first number found in v, truncated.
func ParseInt(v any) (int64, bool) {
	f, ok := ParseFloat(v)
	return int64(f), ok
}

// PctToFloat reads "102%" as 102 and a bare fraction in [0, 1] as a
// percentage; other numbers are returned as they are.
func PctToFloat(v any) (float64, bool) {
	s := Text(v)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "%") {
		return ParseFloat(strings.TrimSuffix(s, "%"))
	}
	n, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	if n >= 0 && n <= 1 {
		return n * 100, true
	}
	return n, true
}
