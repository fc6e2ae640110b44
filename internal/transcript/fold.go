package transcript

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks left behind by NFD decomposition,
// turning "café" into "cafe" and "años" into "anos".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold reduces text to a canonical comparison key: lowercase, diacritics
// stripped, punctuation removed, whitespace collapsed. Folded equality is
// the fuzzy-match rule used everywhere in the engine ("Café" == "cafe").
func Fold(text string) string {
	lower := strings.ToLower(text)

	stripped, _, err := transform.String(stripMarks, lower)
	if err != nil {
		// Transform failure means malformed UTF-8; fall back to the
		// lowercased input so Fold stays total.
		stripped = lower
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// foldTokens splits text into folded word tokens. Empty tokens are never
// produced.
func foldTokens(text string) []string {
	folded := Fold(text)
	if folded == "" {
		return nil
	}
	return strings.Split(folded, " ")
}
