package arxiv

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Anything that is not a word character, whitespace, or hyphen.
	nonWordChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// NormalizeAuthorName converts a display name into the slug used as the
// author's secondary identity key. "José García" and "Jose Garcia" both
// normalize to "jose_garcia"; hyphens are kept ("Mary-Jane" stays one
// hyphenated token). Idempotent.
func NormalizeAuthorName(name string) string {
	// Decompose accented characters and drop the combining marks.
	decomposed := norm.NFD.String(name)
	ascii := strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, decomposed)

	ascii = strings.ToLower(ascii)
	slug := nonWordChars.ReplaceAllString(ascii, "")
	slug = whitespace.ReplaceAllString(strings.TrimSpace(slug), "_")

	return slug
}
