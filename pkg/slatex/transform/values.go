// Package transform reshapes tables read from slate workbooks: column
// selection and renaming, row filters, and number formatting.
package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// Number coerces a cell value to a float. Display strings such as
// "$8,500", "25.0%" or "(3)" are accepted; blanks and text are not.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float32:
		return finite(float64(n))
	case float64:
		return finite(n)
	case uint64:
		return float64(n), true
	case bool:
		return 0, false
	case fmt.Stringer:
		return parser.CleanNumber(n.String())
	case string:
		return parser.CleanNumber(n)
	}
	return 0, false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Text renders a cell value as trimmed text; nil is "".
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		if math.IsNaN(s) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Round rounds half to even at the given number of decimals.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// RoundInt rounds half to even to the nearest integer.
func RoundInt(v float64) int64 {
	return int64(Round(v, 0))
}

func isIntegral(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}
