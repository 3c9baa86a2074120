package format

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slug делает из заголовка адрес страницы: "Obchodné podmienky" -> "obchodne-podmienky".
func Slug(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(title))
	if err != nil {
		stripped = strings.ToLower(title)
	}

	return strings.Trim(nonSlugChars.ReplaceAllString(stripped, "-"), "-")
}
