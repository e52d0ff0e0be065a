package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

// Transliterator maps text onto ASCII. It fails with
// errors.ErrUnsupportedCharacter when a code point has no mapping.
type Transliterator interface {
	Transliterate(text string) (string, error)
}

// TransliteratorFunc adapts a function to the Transliterator interface.
type TransliteratorFunc func(string) (string, error)

func (f TransliteratorFunc) Transliterate(text string) (string, error) {
	return f(text)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// letters without a canonical decomposition
var asciiFold = map[rune]string{
	'Ł': "L", 'ł': "l",
	'Ø': "O", 'ø': "o",
	'Đ': "D", 'đ': "d",
	'Ð': "D", 'ð': "d",
	'Ħ': "H", 'ħ': "h",
	'ı': "i",
	'Ŀ': "L", 'ŀ': "l",
	'Æ': "AE", 'æ': "ae",
	'Œ': "OE", 'œ': "oe",
	'ß': "ss",
	'Þ': "TH", 'þ': "th",
	'ſ': "s",
	'“': `"`, '”': `"`, '«': `"`, '»': `"`,
	'–': "-", '—': "-",
	'…': "...",
}

// TextTransliterator removes diacritics by canonical decomposition and drops
// the combining marks, then folds the remaining Latin letters that have no
// decomposition. Anything else outside ASCII is unsupported.
type TextTransliterator struct{}

func (TextTransliterator) Transliterate(text string) (string, error) {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		return "", errs.Invalid("transliterate", "%v", err)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r == utf8.RuneError:
			return "", errs.Invalid("transliterate", "text is not valid UTF-8")
		case r < utf8.RuneSelf:
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		default:
			folded, ok := asciiFold[r]
			if !ok {
				return "", errs.Unsupported("transliterate", r)
			}
			b.WriteString(folded)
		}
	}
	return b.String(), nil
}
