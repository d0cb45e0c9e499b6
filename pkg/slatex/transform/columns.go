package transform

import (
	"fmt"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
)

// Span is an inclusive range of 1-based sheet columns.
type Span struct {
	From, To int
}

// NameResolver looks up a workbook defined name.
type NameResolver func(name string) ([]models.Area, error)

// ResolveSpans turns "A:F"/"A-F" specs, or defined names when names is
// set, into column spans.
func ResolveSpans(specs []string, names NameResolver) ([]Span, error) {
	spans := make([]Span, 0, len(specs))
	for _, spec := range specs {
		if a, b, err := parser.ColumnSpan(spec); err == nil {
			spans = append(spans, Span{From: a, To: b})
			continue
		}
		if names == nil {
			return nil, fmt.Errorf("bad keep range %q", spec)
		}
		areas, err := names(spec)
		if err != nil {
			return nil, fmt.Errorf("keep range %q: %w", spec, err)
		}
		for _, a := range areas {
			spans = append(spans, Span{From: a.C1, To: a.C2})
		}
	}
	return spans, nil
}

// KeepSpans keeps the columns whose sheet column falls in one of spans.
// Columns are ordered span by span, each column kept once.
func KeepSpans(t *models.Table, spans []Span) *models.Table {
	if len(spans) == 0 {
		return t
	}
	var keep []int
	seen := make(map[int]bool)
	for _, sp := range spans {
		for i := range t.Columns {
			src := t.Source(i)
			if src == 0 {
				src = i + 1
			}
			if src >= sp.From && src <= sp.To && !seen[i] {
				seen[i] = true
				keep = append(keep, i)
			}
		}
	}
	return project(t, keep)
}

// KeepColumns keeps the named columns in their table order.
func KeepColumns(t *models.Table, names []string) *models.Table {
	if len(names) == 0 {
		return t
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var keep []int
	for i, c := range t.Columns {
		if want[c] {
			keep = append(keep, i)
		}
	}
	return project(t, keep)
}

// Select keeps the listed columns that exist, in the listed order. When
// none exist the table is returned unchanged.
func Select(t *models.Table, names []string) *models.Table {
	var keep []int
	for _, n := range names {
		if i := t.ColumnIndex(n); i >= 0 {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return t
	}
	return project(t, keep)
}

// Rename applies mapping to the column names. Sources missing from the
// table are ignored.
func Rename(t *models.Table, mapping map[string]string) *models.Table {
	if len(mapping) == 0 {
		return t
	}
	renamed := false
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c
		if to, ok := mapping[c]; ok && to != c {
			cols[i] = to
			renamed = true
		}
	}
	if !renamed {
		return t
	}
	out := &models.Table{ID: t.ID, Label: t.Label, Columns: cols, Sources: t.Sources}
	out.Rows = make([]*models.Record, len(t.Rows))
	for r, rec := range t.Rows {
		nr := models.NewRecord()
		for i, c := range t.Columns {
			v, _ := rec.Get(c)
			nr.Set(cols[i], v)
		}
		out.Rows[r] = nr
	}
	return out
}

// Reorder selects exactly order when every listed column is present and
// returns t unchanged otherwise.
func Reorder(t *models.Table, order []string) *models.Table {
	if len(order) == 0 {
		return t
	}
	keep := make([]int, 0, len(order))
	for _, name := range order {
		i := t.ColumnIndex(name)
		if i < 0 {
			return t
		}
		keep = append(keep, i)
	}
	return project(t, keep)
}

func project(t *models.Table, idx []int) *models.Table {
	out := &models.Table{ID: t.ID, Label: t.Label}
	out.Columns = make([]string, len(idx))
	for j, i := range idx {
		out.Columns[j] = t.Columns[i]
		if i < len(t.Sources) {
			out.Sources = append(out.Sources, t.Sources[i])
		}
	}
	out.Rows = make([]*models.Record, len(t.Rows))
	for r, rec := range t.Rows {
		out.Rows[r] = rec.Select(out.Columns)
	}
	return out
}
