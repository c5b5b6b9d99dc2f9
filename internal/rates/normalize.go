package rates

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize turns a country or currency token into a table key: accents are
// stripped, spaces, dots and hyphens removed and the rest lower-cased.
// "España", "espana" and "ESPAÑA " all yield "espana".
func Normalize(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, text)
	if err != nil {
		s = text
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r == '.' || r == '-' || unicode.IsSpace(r):
			return -1
		default:
			return unicode.ToLower(r)
		}
	}, s)
	return s
}
