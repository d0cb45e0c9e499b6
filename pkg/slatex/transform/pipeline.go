package transform

import (
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
)

// Steps is the ordered set of reshaping steps applied to a task table.
type Steps struct {
	Spans          []Span
	KeepColumns    []string
	Mapping        map[string]string
	Order          []string
	Filters        Filters
	Select         []string
	Percent        []string
	PercentContain []string
	PercentString  bool
	// Round enables RoundNumeric with Decimals.
	Round    bool
	Decimals int
	Integer  []string
}

// Apply runs the steps in order: column spans, kept columns, renames,
// reorder, filters, selected columns, percents, rounding, integer columns.
func (s Steps) Apply(t *models.Table) *models.Table {
	t = KeepSpans(t, s.Spans)
	t = KeepColumns(t, s.KeepColumns)
	t = Rename(t, s.Mapping)
	t = Reorder(t, s.Order)
	t = Apply(t, s.Filters)
	t = Select(t, s.Select)

	pct := PercentColumns(t.Columns, s.Percent, s.PercentContain)
	FormatPercents(t, pct, s.Decimals, s.PercentString)
	if s.Round {
		skip := make(map[string]bool, len(pct))
		for _, c := range pct {
			skip[c] = true
		}
		RoundNumeric(t, s.Decimals, skip)
	}
	IntegerColumns(t, s.Integer)
	return t
}
