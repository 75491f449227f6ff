package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCategory upper-cases a category name and strips diacritics
// ("Alimentação" → "ALIMENTACAO"). Every category string is stored in this
// form so string-equality grouping works across input sources.
func NormalizeCategory(name string) string {
	normalized, _, err := transform.String(stripMarks, name)
	if err != nil {
		normalized = name
	}
	return strings.ToUpper(strings.TrimSpace(normalized))
}
