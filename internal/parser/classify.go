package parser

import (
	"fmt"
	"slices"
	"strconv"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// SubjectKind names which subject heading supplies the subject segment of a
// Dewey plus subject call number.
type SubjectKind string

const (
	SubjectPersonal  SubjectKind = "personal"
	SubjectCorporate SubjectKind = "corporate"
	SubjectName      SubjectKind = "name"
	SubjectTopic     SubjectKind = "topic"
)

// SubjectRange assigns a SubjectKind to Dewey numbers From through To.
type SubjectRange struct {
	From    float64
	To      float64
	Subject SubjectKind
}

// Contains reports whether number falls inside the range.
func (r SubjectRange) Contains(number float64) bool {
	return number >= r.From && number <= r.To
}

// Rules holds the code lists the classifier tests against.
type Rules struct {
	// FictionForms are 008/33 literary form codes of fiction in books.
	FictionForms []string
	// SoundFictionCodes are 008/30-31 literary text codes of fiction in
	// nonmusical sound recordings.
	SoundFictionCodes []string
	// DeweySubjectRanges are the classes shelved by Dewey number plus subject.
	DeweySubjectRanges []SubjectRange
}

// DefaultRules returns the classification rules both libraries start from.
func DefaultRules() Rules {
	return Rules{
		FictionForms:      []string{"1", "f", "j"},
		SoundFictionCodes: []string{"f"},
		DeweySubjectRanges: []SubjectRange{
			{From: 4, To: 6.999999, Subject: SubjectTopic},
			{From: 780, To: 789.999999, Subject: SubjectName},
			{From: 800, To: 899.999999, Subject: SubjectPersonal},
		},
	}
}

// Validate checks that the rules are usable.
func (r Rules) Validate() error {
	for i, sr := range r.DeweySubjectRanges {
		if sr.From > sr.To {
			return errs.InvalidConfig("dewey subject ranges", fmt.Errorf("range %d: from %g is after to %g", i, sr.From, sr.To))
		}
		switch sr.Subject {
		case SubjectPersonal, SubjectCorporate, SubjectName, SubjectTopic:
		default:
			return errs.InvalidConfig("dewey subject ranges", fmt.Errorf("range %d: unknown subject %q", i, sr.Subject))
		}
	}
	return nil
}

// Classifier answers the content questions of the category table.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a Classifier.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Rules returns the classifier's rules.
func (c *Classifier) Rules() Rules {
	return c.rules
}

// IsFiction reports whether a book's literary form, or a nonmusical sound
// recording's literary text, is fiction.
func (c *Classifier) IsFiction(rec marc.Record) bool {
	switch RecordTypeCode(rec) {
	case "a", "t":
		return slices.Contains(c.rules.FictionForms, fixedByte(rec, posLiteraryForm))
	case "i":
		for _, pos := range []int{posSoundLitText, posSoundLitText + 1} {
			if slices.Contains(c.rules.SoundFictionCodes, fixedByte(rec, pos)) {
				return true
			}
		}
	}
	return false
}

// IsBiography reports whether the record is a biography or autobiography.
func (c *Classifier) IsBiography(rec marc.Record) bool {
	return IsBiography(rec)
}

// IsDewey reports whether the record carries a usable Dewey number.
func (c *Classifier) IsDewey(rec marc.Record) bool {
	return DeweyNumber(rec) != ""
}

// DeweySubjectRange returns the subject range the record's Dewey number falls
// in. Whether the subject token can be derived is up to the caller.
func (c *Classifier) DeweySubjectRange(rec marc.Record) (SubjectRange, bool) {
	number := DeweyNumber(rec)
	if number == "" {
		return SubjectRange{}, false
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return SubjectRange{}, false
	}
	for _, r := range c.rules.DeweySubjectRanges {
		if r.Contains(value) {
			return r, true
		}
	}
	return SubjectRange{}, false
}

// IsBiography checks 008/34 for books and 008/30 for nonmusical sound
// recordings; a (autobiography) and b (individual biography) qualify.
func IsBiography(rec marc.Record) bool {
	var code string
	switch RecordTypeCode(rec) {
	case "a", "t":
		code = fixedByte(rec, posBiography)
	case "i":
		code = fixedByte(rec, posSoundLitText)
	default:
		return false
	}
	return code == "a" || code == "b"
}
