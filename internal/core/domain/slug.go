package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9_\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	dashes     = regexp.MustCompile(`-{2,}`)
)

// Slugify turns a title into a URL slug: accents are folded to their base
// letter, anything that is not a word character, space or hyphen is
// dropped, whitespace becomes a hyphen and hyphen runs collapse to one.
func Slugify(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(fold, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = dashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
