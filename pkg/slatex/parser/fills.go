package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultHeaderColors are the yellow fills used for panel title bars.
var DefaultHeaderColors = []string{"FFFFE699", "FFFFF2CC", "FFFFFF00"}

// ColorSet matches solid fill colors by their RGB part, so "FFFFE699",
// "FFE699" and "#ffe699" are the same color. A "*" entry matches any
// solid fill.
type ColorSet struct {
	colors map[string]struct{}
	any    bool
}

// NewColorSet builds a set from hex color strings.
func NewColorSet(colors ...string) ColorSet {
	cs := ColorSet{colors: make(map[string]struct{}, len(colors))}
	for _, c := range colors {
		if strings.TrimSpace(c) == "*" {
			cs.any = true
			continue
		}
		if n := NormalizeColor(c); n != "" {
			cs.colors[n] = struct{}{}
		}
	}
	return cs
}

// Match reports whether color belongs to the set.
func (cs ColorSet) Match(color string) bool {
	n := NormalizeColor(color)
	if n == "" {
		return false
	}
	if cs.any {
		return true
	}
	_, ok := cs.colors[n]
	return ok
}

// Len returns the number of explicit colors.
func (cs ColorSet) Len() int {
	return len(cs.colors)
}

// NormalizeColor upper-cases a hex color and keeps its last six digits.
func NormalizeColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
	if len(c) > 6 {
		c = c[len(c)-6:]
	}
	if len(c) != 6 {
		return ""
	}
	return c
}

// Fill returns the normalized solid fill color at (r, c), or "" when the
// cell has no solid fill. Lookups are cached per style.
func (g *Grid) Fill(r, c int) string {
	if g.f == nil || r < 1 || c < 1 {
		return ""
	}
	cell, err := excelize.CoordinatesToCellName(c, r)
	if err != nil {
		return ""
	}
	idx, err := g.f.GetCellStyle(g.Sheet, cell)
	if err != nil || idx == 0 {
		return ""
	}
	if color, ok := g.fills[idx]; ok {
		return color
	}
	color := ""
	if style, err := g.f.GetStyle(idx); err == nil && style != nil {
		color = solidFillColor(style.Fill)
	}
	g.fills[idx] = color
	return color
}

func solidFillColor(fill excelize.Fill) string {
	if fill.Type != "pattern" || fill.Pattern != 1 || len(fill.Color) == 0 {
		return ""
	}
	return NormalizeColor(fill.Color[0])
}
