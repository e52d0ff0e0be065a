package normalizer

import (
	"strconv"
	"strings"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// Every extractor below returns "" when field is nil or carries a tag the
// extractor does not handle. A field whose tag is not three characters long is
// an invalid argument.

func checkField(op string, field marc.Field, tags ...string) (bool, error) {
	if field == nil {
		return false, nil
	}
	if len(field.Tag()) != 3 {
		return false, errs.Invalid(op, "field tag %q is not a MARC tag", field.Tag())
	}
	for _, t := range tags {
		if field.Tag() == t {
			return true, nil
		}
	}
	return false, nil
}

func subfieldA(field marc.Field) string {
	v, _ := marc.SubfieldValue(field, "a")
	return v
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}

// CorporateNameFirstWord returns the first word of the 110 $a.
func (n *Normalizer) CorporateNameFirstWord(field marc.Field) (string, error) {
	ok, err := checkField("corporate name first word", field, "110")
	if !ok {
		return "", err
	}
	words := strings.Fields(subfieldA(field))
	if len(words) == 0 {
		return "", nil
	}
	return n.Normalize(words[0])
}

// CorporateNameFull returns the 110 or 610 $a up to any parenthetical
// qualifier.
func (n *Normalizer) CorporateNameFull(field marc.Field) (string, error) {
	ok, err := checkField("corporate name", field, "110", "610")
	if !ok {
		return "", err
	}
	name := subfieldA(field)
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return n.Normalize(name)
}

// CorporateNameInitial returns the first letter of the 110 $a.
func (n *Normalizer) CorporateNameInitial(field marc.Field) (string, error) {
	ok, err := checkField("corporate name initial", field, "110")
	if !ok {
		return "", err
	}
	name, err := n.Normalize(subfieldA(field))
	if err != nil {
		return "", err
	}
	return firstRune(name), nil
}

// PersonalNameInitial returns the first letter of the 100 $a.
func (n *Normalizer) PersonalNameInitial(field marc.Field) (string, error) {
	ok, err := checkField("personal name initial", field, "100")
	if !ok {
		return "", err
	}
	name, err := n.Normalize(subfieldA(field))
	if err != nil {
		return "", err
	}
	return firstRune(name), nil
}

// PersonalNameSurname returns the surname of a 100 or 600 heading entered
// under forename (first indicator 0) or surname (first indicator 1). $b
// numeration is kept, so Louis XIV stays LOUIS XIV.
func (n *Normalizer) PersonalNameSurname(field marc.Field) (string, error) {
	ok, err := checkField("personal name surname", field, "100", "600")
	if !ok {
		return "", err
	}
	if ind := field.Indicator1(); ind != "0" && ind != "1" {
		return "", nil
	}

	name := subfieldA(field)
	if b, ok := marc.SubfieldValue(field, "b"); ok {
		name = name + " " + b
	}

	name, err = n.Normalize(name)
	if err != nil {
		return "", err
	}
	if i := strings.Index(name, ","); i >= 0 {
		name = RemoveTrailingPunctuation(name[:i])
	}
	return name, nil
}

// SubjectCorporateName returns the corporate name of a 610 subject.
func (n *Normalizer) SubjectCorporateName(field marc.Field) (string, error) {
	ok, err := checkField("subject corporate name", field, "610")
	if !ok {
		return "", err
	}
	return n.CorporateNameFull(field)
}

// SubjectFamilyName returns the family name of a 600 family heading
// (first indicator 3), e.g. Kennedy family. -> KENNEDY.
func (n *Normalizer) SubjectFamilyName(field marc.Field) (string, error) {
	ok, err := checkField("subject family name", field, "600")
	if !ok {
		return "", err
	}
	if field.Indicator1() != "3" {
		return "", nil
	}
	name := subfieldA(field)
	i := strings.Index(name, "family")
	if i < 0 {
		return "", nil
	}
	return n.Normalize(name[:i])
}

// SubjectPersonalName returns the surname of a 600 personal name subject. Used
// for biographies (B LOUIS XIV C) and criticism of an author (813 ADAMS C).
func (n *Normalizer) SubjectPersonalName(field marc.Field) (string, error) {
	ok, err := checkField("subject personal name", field, "600")
	if !ok {
		return "", err
	}
	return n.PersonalNameSurname(field)
}

// SubjectTopic returns the 650 $a topic without qualifiers, e.g. a programming
// language or operating system name.
func (n *Normalizer) SubjectTopic(field marc.Field) (string, error) {
	ok, err := checkField("subject topic", field, "650")
	if !ok {
		return "", err
	}
	topic := subfieldA(field)
	if i := strings.Index(topic, "("); i >= 0 {
		topic = topic[:i]
	}
	return n.Normalize(topic)
}

// TitleFirstWord returns the first word of the 245 $a after the nonfiling
// characters counted by the second indicator.
func (n *Normalizer) TitleFirstWord(field marc.Field) (string, error) {
	title, err := n.filingTitle("title first word", field)
	if err != nil || title == "" {
		return "", err
	}
	words := strings.Fields(title)
	if len(words) == 0 {
		return "", nil
	}
	return RemoveTrailingPunctuation(words[0]), nil
}

// TitleInitial returns the first letter of the 245 $a after the nonfiling
// characters counted by the second indicator.
func (n *Normalizer) TitleInitial(field marc.Field) (string, error) {
	title, err := n.filingTitle("title initial", field)
	if err != nil {
		return "", err
	}
	return firstRune(strings.TrimSpace(title)), nil
}

func (n *Normalizer) filingTitle(op string, field marc.Field) (string, error) {
	ok, err := checkField(op, field, "245")
	if !ok {
		return "", err
	}
	skip, err := strconv.Atoi(field.Indicator2())
	if err != nil || skip < 0 {
		return "", nil
	}
	title := []rune(subfieldA(field))
	if skip >= len(title) {
		return "", nil
	}
	return n.Normalize(string(title[skip:]))
}
