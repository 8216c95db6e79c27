package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Pre-compiled regular expressions for header normalization.
var (
	camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	separatorRe     = regexp.MustCompile(`[\s\-./]+`)
	disallowedRe    = regexp.MustCompile(`[^a-z0-9_]`)
	underscoreRunRe = regexp.MustCompile(`_{2,}`)
)

// NormalizeHeader rewrites a raw column name to its canonical lower-case,
// underscore-separated form:
//  1. TrimSpace, strip diacritics (Unicode NFD decompose, remove combining marks)
//  2. Insert underscores at camelCase boundaries ("experienceYears" -> "experience_years")
//  3. Lowercase, map whitespace and separator runs to single underscores
//  4. Strip disallowed characters, collapse underscore runs, trim edge underscores
//
// Values are never touched; this is a purely syntactic transform.
func NormalizeHeader(name string) string {
	s := stripDiacritics(strings.TrimSpace(name))
	s = camelBoundaryRe.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(s)
	s = separatorRe.ReplaceAllString(s, "_")
	s = disallowedRe.ReplaceAllString(s, "")
	s = underscoreRunRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// NormalizeHeaders applies NormalizeHeader to every column of a table and
// returns the renames that occurred (old name -> new name).
func NormalizeHeaders(t *Table) (*Table, map[string]string) {
	out := t.Clone()
	renames := make(map[string]string)
	for i, col := range out.Columns {
		normalized := NormalizeHeader(col)
		if normalized != col {
			renames[col] = normalized
		}
		out.Columns[i] = normalized
	}
	return out, renames
}

// stripDiacritics removes diacritical marks (accents) from a string.
// It decomposes the string into NFD form and removes combining marks (unicode.Mn).
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}
