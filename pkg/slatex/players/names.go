// Package players reads DraftKings and FanDuel player ids from salary
// sheets, matches projection names to them and merges salaries and kickoff
// times into exported projections.
package players

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRe  = regexp.MustCompile(`[^\w\s-]`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
	spacesRe   = regexp.MustCompile(`\s+`)
)

var nameSuffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// StripAccents decomposes s and drops everything outside ASCII, so
// "Acuña" becomes "Acuna".
func StripAccents(s string) string {
	d := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(d))
	for _, r := range d {
		if r < unicode.MaxASCII+1 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormName lower-cases a player name, strips accents and punctuation
// (hyphens survive) and collapses whitespace.
func NormName(s string) string {
	s = strings.ToLower(StripAccents(strings.TrimSpace(s)))
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// BaseKey is NormName without a generational suffix such as "Jr." or "III".
func BaseKey(s string) string {
	parts := strings.Fields(NormName(s))
	if n := len(parts); n > 0 && nameSuffixes[strings.Trim(parts[n-1], ".")] {
		parts = parts[:n-1]
	}
	return strings.Join(parts, " ")
}

// FiLast returns the first initial and last name: "Ronald Acuna Jr." gives
// "r acuna".
func FiLast(s string) string {
	parts := strings.Fields(BaseKey(s))
	if len(parts) == 0 {
		return ""
	}
	return parts[0][:1] + " " + parts[len(parts)-1]
}

// Last returns the last word of BaseKey.
func Last(s string) string {
	parts := strings.Fields(BaseKey(s))
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// Keyify reduces s to lower-case alphanumeric words, for matching titles
// and driver names across spelling variants.
func Keyify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, " "))
}

// PlayerKey is the join key used between salary files, the salary sheet and
// projections: "lower(player)|UPPER(team)".
func PlayerKey(player, team string) string {
	return strings.ToLower(strings.TrimSpace(player)) + "|" + strings.ToUpper(strings.TrimSpace(team))
}
