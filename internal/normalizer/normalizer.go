// Package normalizer turns catalog text into the uppercase ASCII tokens used in
// call numbers, and extracts name and title tokens from main entry and subject
// fields.
package normalizer

import (
	"strings"
	"unicode/utf8"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

const trailingPunctuation = ".,:;-() "

// Romanization modifiers are deleted outright: the soft and hard sign primes,
// the ayn/alif half rings, the turned comma and every single quote form.
var romanizationMarks = strings.NewReplacer(
	"ʹ", "", "ʺ", "",
	"ʻ", "", "ʼ", "",
	"ʾ", "", "ʿ", "",
	"'", "", "‘", "", "’", "", "‛", "",
)

// Normalizer normalizes text with an injected Transliterator.
type Normalizer struct {
	translit Transliterator
}

// New creates a Normalizer. A nil Transliterator selects TextTransliterator.
func New(t Transliterator) *Normalizer {
	if t == nil {
		t = TextTransliterator{}
	}
	return &Normalizer{translit: t}
}

var defaultNormalizer = New(nil)

// Default returns the Normalizer backed by TextTransliterator.
func Default() *Normalizer {
	return defaultNormalizer
}

// RemoveTrailingPunctuation strips any of . , : ; - ( ) and space from the
// end of value.
func RemoveTrailingPunctuation(value string) string {
	return strings.TrimRight(value, trailingPunctuation)
}

// Normalize uses the default Normalizer.
func Normalize(value string) (string, error) {
	return defaultNormalizer.Normalize(value)
}

// Normalize removes romanization marks, transliterates to ASCII, removes
// trailing punctuation and uppercases. The steps run in that order: the
// transliterator would otherwise turn the marks into letters or fail on them.
func (n *Normalizer) Normalize(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if !utf8.ValidString(value) {
		return "", errs.Invalid("normalize", "text is not valid UTF-8")
	}

	value = romanizationMarks.Replace(value)
	value, err := n.translit.Transliterate(value)
	if err != nil {
		return "", err
	}
	value = RemoveTrailingPunctuation(value)
	return strings.ToUpper(value), nil
}
