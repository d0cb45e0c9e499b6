package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"gopkg.in/yaml.v3"
)

// Filter operators.
const (
	OpNonEmpty    = "nonempty"
	OpNonZero     = "nonzero"
	OpEquals      = "equals"
	OpNotEquals   = "not_equals"
	OpContains    = "contains"
	OpNotContains = "not_contains"
	OpStartsWith  = "startswith"
	OpEndsWith    = "endswith"
	OpRegex       = "regex"
	OpGT          = "gt"
	OpGTE         = "gte"
	OpLT          = "lt"
	OpLTE         = "lte"
	OpIn          = "in"
	OpNotIn       = "not_in"
)

// Filter is either a leaf test on one column or an any_of/all_of group.
type Filter struct {
	Column        string   `yaml:"column" json:"column,omitempty"`
	Op            string   `yaml:"op" json:"op,omitempty" validate:"omitempty,oneof=nonempty nonzero equals not_equals contains not_contains startswith endswith regex gt gte lt lte in not_in"`
	Value         any      `yaml:"value" json:"value,omitempty"`
	Values        []any    `yaml:"values" json:"values,omitempty"`
	CaseSensitive bool     `yaml:"case_sensitive" json:"case_sensitive,omitempty"`
	AnyOf         []Filter `yaml:"any_of" json:"any_of,omitempty" validate:"omitempty,dive"`
	AllOf         []Filter `yaml:"all_of" json:"all_of,omitempty" validate:"omitempty,dive"`
}

// Filters is the filter list of a task. All entries must pass.
type Filters []Filter

// UnmarshalYAML accepts a list of filters or a single filter/group mapping.
func (fs *Filters) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var list []Filter
		if err := n.Decode(&list); err != nil {
			return err
		}
		*fs = list
	case yaml.MappingNode:
		var one Filter
		if err := n.Decode(&one); err != nil {
			return err
		}
		*fs = Filters{one}
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			*fs = nil
			return nil
		}
		return fmt.Errorf("filters: line %d: expected a list or a mapping", n.Line)
	default:
		return fmt.Errorf("filters: line %d: expected a list or a mapping", n.Line)
	}
	return nil
}

// IsGroup reports whether f combines other filters.
func (f Filter) IsGroup() bool {
	return f.AnyOf != nil || f.AllOf != nil
}

// Apply keeps the rows of t that pass every filter.
// A filter on a column the table does not have passes.
func Apply(t *models.Table, fs Filters) *models.Table {
	if len(fs) == 0 {
		return t
	}
	out := &models.Table{ID: t.ID, Label: t.Label, Columns: t.Columns, Sources: t.Sources}
	out.Rows = make([]*models.Record, 0, len(t.Rows))
	for _, rec := range t.Rows {
		if fs.Match(t.Columns, rec) {
			out.Rows = append(out.Rows, rec)
		}
	}
	return out
}

// Match reports whether rec passes every filter.
func (fs Filters) Match(columns []string, rec *models.Record) bool {
	for _, f := range fs {
		if !f.Match(columns, rec) {
			return false
		}
	}
	return true
}

// Match evaluates f against one record. For a group, any_of wins over
// all_of when both are set; an empty group passes.
func (f Filter) Match(columns []string, rec *models.Record) bool {
	switch {
	case f.AnyOf != nil:
		if len(f.AnyOf) == 0 {
			return true
		}
		for _, sub := range f.AnyOf {
			if sub.Match(columns, rec) {
				return true
			}
		}
		return false
	case f.AllOf != nil:
		return Filters(f.AllOf).Match(columns, rec)
	}

	col, ok := resolveColumn(columns, f.Column)
	if !ok {
		return true
	}
	v, _ := rec.Get(col)
	return f.leaf(v)
}

func resolveColumn(columns []string, name string) (string, bool) {
	for _, c := range columns {
		if c == name {
			return c, true
		}
	}
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func (f Filter) fold(s string) string {
	s = strings.TrimSpace(s)
	if f.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}

func (f Filter) leaf(v any) bool {
	op := strings.ToLower(strings.TrimSpace(f.Op))
	if op == "" {
		op = OpContains
	}

	switch op {
	case OpNonEmpty:
		return Text(v) != ""
	case OpNonZero:
		n, ok := Number(v)
		return ok && n != 0
	case OpEquals, OpNotEquals, OpContains, OpNotContains, OpStartsWith, OpEndsWith, OpRegex:
		s := f.fold(Text(v))
		want := f.fold(Text(f.Value))
		switch op {
		case OpEquals:
			return s == want
		case OpNotEquals:
			return s != want
		case OpContains:
			return strings.Contains(s, want)
		case OpNotContains:
			return !strings.Contains(s, want)
		case OpStartsWith:
			return strings.HasPrefix(s, want)
		case OpEndsWith:
			return strings.HasSuffix(s, want)
		default:
			re, err := f.compile(Text(f.Value))
			if err != nil {
				return true
			}
			return re.MatchString(s)
		}
	case OpGT, OpGTE, OpLT, OpLTE:
		want, ok := Number(f.Value)
		if !ok {
			return true
		}
		n, ok := Number(v)
		if !ok {
			return false
		}
		switch op {
		case OpGT:
			return n > want
		case OpGTE:
			return n >= want
		case OpLT:
			return n < want
		default:
			return n <= want
		}
	case OpIn, OpNotIn:
		in := f.member(v)
		if op == OpNotIn {
			return !in
		}
		return in
	}
	return true
}

// compile anchors the pattern at the start of the text.
func (f Filter) compile(pattern string) (*regexp.Regexp, error) {
	prefix := "(?i)"
	if f.CaseSensitive {
		prefix = ""
	}
	return regexp.Compile(prefix + `^(?:` + pattern + `)`)
}

// member compares numerically when every listed value is a number and as
// folded text otherwise.
func (f Filter) member(v any) bool {
	numeric := true
	nums := make([]float64, 0, len(f.Values))
	for _, x := range f.Values {
		n, ok := Number(x)
		if !ok {
			numeric = false
			break
		}
		nums = append(nums, n)
	}
	if numeric {
		n, ok := Number(v)
		if !ok {
			return false
		}
		for _, x := range nums {
			if x == n {
				return true
			}
		}
		return false
	}
	s := f.fold(Text(v))
	for _, x := range f.Values {
		if f.fold(Text(x)) == s {
			return true
		}
	}
	return false
}
