// Package parser reads the classificatory facts a call number is built from
// out of a MARC record: leader codes, 008 positions, the main entry and the
// subject headings.
//
// Missing or malformed data is reported as an absent value ("" or false),
// never as an error, except where noted.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// Audience is the intended audience derived from 008/22.
type Audience string

const (
	AudienceNone          Audience = ""
	AudienceEarlyJuvenile Audience = "early-juvenile"
	AudienceJuvenile      Audience = "juvenile"
	AudienceYoungAdult    Audience = "young-adult"
	AudienceAdult         Audience = "adult"
)

// 008 character positions
const (
	posAudience     = 22
	posForm         = 23
	posVisualForm   = 29
	posSoundLitText = 30
	posLiteraryForm = 33
	posBiography    = 34
	posLanguage     = 35
)

// MainEntryTags lists main entry tags by priority.
var MainEntryTags = []string{"100", "110", "111", "245"}

var deweyPattern = regexp.MustCompile(`^[0-9]{3}(\.[0-9]+)?`)

func leaderByte(rec marc.Record, pos int) string {
	if rec == nil {
		return ""
	}
	leader := rec.Leader()
	if len(leader) <= pos {
		return ""
	}
	return leader[pos : pos+1]
}

func fixedData(rec marc.Record) string {
	if f := marc.First(rec, "008"); f != nil {
		return f.Value()
	}
	return ""
}

func fixedByte(rec marc.Record, pos int) string {
	data := fixedData(rec)
	if len(data) <= pos {
		return ""
	}
	return data[pos : pos+1]
}

// RecordTypeCode returns leader/06.
func RecordTypeCode(rec marc.Record) string {
	return leaderByte(rec, 6)
}

// BibLevelCode returns leader/07.
func BibLevelCode(rec marc.Record) string {
	return leaderByte(rec, 7)
}

// HasAudienceCode reports whether records with this leader carry a target
// audience code in 008/22: record type a c d g i j k m t at bibliographic
// level a or m. A leader shorter than 8 characters is an invalid argument.
func HasAudienceCode(leader string) (bool, error) {
	if len(leader) < 8 {
		return false, errs.Invalid("has audience code", "leader %q is shorter than 8 characters", leader)
	}
	return strings.Contains("acdgijkmt", leader[6:7]) && strings.Contains("am", leader[7:8]), nil
}

// AudienceOf maps 008/22 to an Audience. Code j (juvenile, unspecified) counts
// as early juvenile for short items.
func AudienceOf(rec marc.Record) Audience {
	if rec == nil {
		return AudienceNone
	}
	if ok, err := HasAudienceCode(rec.Leader()); err != nil || !ok {
		return AudienceNone
	}

	code := fixedByte(rec, posAudience)
	switch code {
	case "":
		return AudienceNone
	case "a", "b":
		return AudienceEarlyJuvenile
	case "c":
		return AudienceJuvenile
	case "j":
		if short, _ := IsShort(rec); short {
			return AudienceEarlyJuvenile
		}
		return AudienceJuvenile
	case "d":
		return AudienceYoungAdult
	default:
		return AudienceAdult
	}
}

// IsShort guesses from the 300 $a extent whether an item is a short picture
// book or early reader. ok is false when the record has no 300 $a.
func IsShort(rec marc.Record) (short bool, ok bool) {
	extent, found := marc.SubfieldValue(marc.First(rec, "300"), "a")
	if !found {
		return false, false
	}
	if strings.Contains(extent, "1 volume") || strings.Contains(extent, "1 v.") {
		return true, true
	}
	for _, token := range strings.Fields(extent) {
		n, err := strconv.Atoi(strings.Trim(token, "[](),;:"))
		if err != nil {
			continue
		}
		if n < 50 {
			return true, true
		}
	}
	return false, true
}

// LanguageCode returns the lower-case language code at 008/35-37, or "".
func LanguageCode(rec marc.Record) string {
	data := fixedData(rec)
	if len(data) < posLanguage+3 {
		return ""
	}
	code := strings.TrimSpace(data[posLanguage : posLanguage+3])
	if len(code) != 3 {
		return ""
	}
	return strings.ToLower(code)
}

// FormOfItemCode returns 008/23 for books, music, sound recordings and
// computer files, 008/29 for visual materials, and "" otherwise. A blank
// position is reported as "".
func FormOfItemCode(rec marc.Record) string {
	var code string
	switch RecordTypeCode(rec) {
	case "a", "c", "d", "i", "j", "m", "t":
		code = fixedByte(rec, posForm)
	case "g":
		code = fixedByte(rec, posVisualForm)
	}
	return strings.TrimSpace(code)
}

// PhysicalDescription returns the 300 field value.
func PhysicalDescription(rec marc.Record) string {
	if f := marc.First(rec, "300"); f != nil {
		return f.Value()
	}
	return ""
}

// MainEntry returns the first field present among MainEntryTags, in priority
// order, or nil.
func MainEntry(rec marc.Record) marc.Field {
	for _, tag := range MainEntryTags {
		if f := marc.First(rec, tag); f != nil {
			return f
		}
	}
	return nil
}

// MainEntryTag returns the tag of MainEntry, or "".
func MainEntryTag(rec marc.Record) string {
	if f := MainEntry(rec); f != nil {
		return f.Tag()
	}
	return ""
}

// IsLCSubject reports whether field is a Library of Congress subject heading.
func IsLCSubject(field marc.Field) bool {
	if field == nil {
		return false
	}
	switch field.Tag() {
	case "600", "610", "611", "630", "650", "651", "655":
		return field.Indicator2() == "0"
	}
	return false
}

// CallNumberSubjects returns the LC subject headings used by call numbers:
// 600 and 610 in document order, then 650.
func CallNumberSubjects(rec marc.Record) []marc.Field {
	subjects := []marc.Field{}
	if rec == nil {
		return subjects
	}
	for _, f := range rec.Fields("600", "610") {
		if IsLCSubject(f) {
			subjects = append(subjects, f)
		}
	}
	for _, f := range rec.Fields("650") {
		if IsLCSubject(f) {
			subjects = append(subjects, f)
		}
	}
	return subjects
}

// IsLibretto reports whether any subject carries the form subdivision
// "Librettos."
func IsLibretto(subjects []marc.Field) bool {
	for _, f := range subjects {
		for _, sf := range f.Subfields() {
			if sf.Code == "v" && strings.TrimSpace(sf.Value) == "Librettos." {
				return true
			}
		}
	}
	return false
}

// DeweyNumber returns the classification number from the first 082 $a with
// segmentation marks removed, or "" when it does not start with three digits.
func DeweyNumber(rec marc.Record) string {
	number, ok := marc.SubfieldValue(marc.First(rec, "082"), "a")
	if !ok {
		return ""
	}
	number = strings.NewReplacer("/", "", "'", "").Replace(strings.TrimSpace(number))
	return deweyPattern.FindString(number)
}
