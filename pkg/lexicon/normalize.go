package lexicon

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// A token is a maximal run of Unicode letters; digits, marks and
	// punctuation all separate tokens.
	wordPattern = regexp.MustCompile(`\p{L}+`)

	// Parenthesised annotations such as "(noe)" or "(adj.)". Not nested.
	parenPattern = regexp.MustCompile(`\([^)]*\)`)

	// Separators between alternative forms: ASCII and fullwidth comma and
	// semicolon, and slash. Runs of them count as one separator.
	variantSeparators = regexp.MustCompile(`[,;，；/]+`)
)

// Normalize returns the canonical phrase for raw: lowercased, with every
// "(...)" replaced by a space, reduced to its letter runs joined by single
// spaces. It returns "" when raw holds no letters.
//
// Normalize is idempotent and is the only definition of phrase identity in
// this package.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := parenPattern.ReplaceAllString(toLower(raw), " ")
	runs := wordPattern.FindAllString(cleaned, -1)
	if len(runs) == 0 {
		return ""
	}
	return strings.Join(runs, " ")
}

// toLower applies full Unicode lowercasing (including context rules such
// as Greek final sigma). A cases.Caser keeps state, so one is made per call.
func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// SplitVariants splits a list of alternative forms ("huset, husene / hus")
// into its trimmed, non-empty parts.
func SplitVariants(s string) []string {
	parts := variantSeparators.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func hasVariantSeparator(s string) bool {
	return variantSeparators.MatchString(s)
}
