package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// HeaderAliases maps lower-cased, whitespace-collapsed header labels to
// their canonical spelling.
var HeaderAliases = map[string]string{
	// passing
	"pa attempts":   "Pa Att",
	"pass attempts": "Pa Att",
	"pa yards":      "Pa Yards",
	"pa comp":       "Pa Comp",
	"comp %":        "Comp%",
	// rushing
	"ru attempts":   "Ru Att",
	"rush attempts": "Ru Att",
	"ru yards":      "Ru Yards",
	"rush yards":    "Ru Yards",
	"ru td":         "Ru TD",
	// receiving
	"targets":      "Targets",
	"tgt share":    "Tgt Share",
	"target share": "Tgt Share",
	"rec yards":    "Rec Yards",
	// ownership and ratings
	"dk own%":   "DK pOWN%",
	"fd own%":   "FD pOWN%",
	"dk pown %": "DK pOWN%",
	"fd pown %": "FD pOWN%",
	"dk opt%":   "DK Opt%",
	"fd opt%":   "FD Opt%",
	"dk lev%":   "DK Lev%",
	"fd lev%":   "FD Lev%",
	"dk rtg":    "DK Rtg",
	"fd rtg":    "FD Rtg",
	// salary and team
	"dk sal":     "DK Sal",
	"fd sal":     "FD Sal",
	"teamabbrev": "Team",
	"teamabbr":   "Team",
	"pos":        "Pos",
}

// CleanLabel replaces non-breaking spaces, collapses whitespace and trims.
func CleanLabel(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// NormalizeHeader returns the canonical spelling of a header label.
func NormalizeHeader(s string) string {
	t := CleanLabel(s)
	if alias, ok := HeaderAliases[strings.ToLower(t)]; ok {
		return alias
	}
	return t
}

// DedupStyle selects how repeated header labels are suffixed.
type DedupStyle int

const (
	// DedupIndexed renames repeats to name_1, name_2, ...
	DedupIndexed DedupStyle = iota
	// DedupOrdinal renames repeats to name__2, name__3, ...
	DedupOrdinal
)

// headerLabel cleans one raw label; pos is its 1-based column, used to name
// blank labels.
func headerLabel(raw string, pos int) string {
	s := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(f-math.Round(f)) < 1e-9 && !math.IsInf(f, 0) {
		s = strconv.FormatInt(int64(math.Round(f)), 10)
	}
	low := strings.ToLower(s)
	if s == "" || low == "nan" || low == "nat" || strings.HasPrefix(low, "unnamed") {
		return "col_" + strconv.Itoa(pos)
	}
	return s
}

// DedupHeaders makes header labels unique and usable as record keys.
// Blank, "nan", "nat" and "unnamed..." labels become col_<n> (1-based
// position); whole-number labels such as "3.0" become "3". A generated name
// never takes a label used elsewhere in names.
func DedupHeaders(names []string, style DedupStyle) []string {
	used := make(map[string]bool, len(names))
	for _, raw := range names {
		used[headerLabel(raw, 0)] = true
	}
	next := make(map[string]int, len(names))
	emitted := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for i, raw := range names {
		s := headerLabel(raw, i+1)
		key := s
		if emitted[s] {
			n := next[s]
			for {
				n++
				switch style {
				case DedupOrdinal:
					key = s + "__" + strconv.Itoa(n+1)
				default:
					key = s + "_" + strconv.Itoa(n)
				}
				if !emitted[key] && !used[key] {
					break
				}
			}
			next[s] = n
		}
		emitted[key] = true
		out = append(out, key)
	}
	return out
}
