package callno

import (
	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/parser"
	"github.com/lehigh-university-libraries/callno/internal/rules"
)

// Profile is what one record says about itself, extracted once. It is passed
// by value and not modified after construction leaves StateProfiled.
type Profile struct {
	Audience            parser.Audience
	Language            string
	RecordType          string
	BibLevel            string
	FormOfItem          string
	PhysicalDescription string
	MainEntry           marc.Field
	Subjects            []marc.Field
	Libretto            bool
	Dewey               string

	// SubjectToken is the subject segment for a Dewey plus subject call
	// number. Profiling fills it only when the content category needs it;
	// assembly computes it from SubjectKind otherwise.
	SubjectToken   string
	SubjectKind    parser.SubjectKind
	InSubjectRange bool
	Biography      bool
	Fiction        bool
	FormatPrefix   string
	Category       rules.Category
}

// MainEntryTag returns the tag of the main entry, or "".
func (p Profile) MainEntryTag() string {
	if p.MainEntry == nil {
		return ""
	}
	return p.MainEntry.Tag()
}

// Electronic reports whether the item is online or direct electronic.
func (p Profile) Electronic() bool {
	return rules.IsElectronic(p.FormOfItem)
}

func (p Profile) facts() rules.Facts {
	return rules.Facts{
		RecordType:       p.RecordType,
		Audience:         p.Audience,
		Fiction:          p.Fiction,
		DeweyPlusSubject: p.InSubjectRange && p.Dewey != "",
		Biography:        p.Biography,
		Dewey:            p.Dewey != "",
	}
}

// ExtractProfile runs every extractor and classifier over rec. The format
// prefix is library specific and left empty.
//
// The subject token is computed only when the content category reaches the
// Dewey plus subject rule. A heading that cannot be normalized there counts
// as no token and the category falls through to the next rule.
func ExtractProfile(rec marc.Record, classifier *parser.Classifier, n *normalizer.Normalizer) Profile {
	subjects := parser.CallNumberSubjects(rec)
	p := Profile{
		Audience:            parser.AudienceOf(rec),
		Language:            parser.LanguageCode(rec),
		RecordType:          parser.RecordTypeCode(rec),
		BibLevel:            parser.BibLevelCode(rec),
		FormOfItem:          parser.FormOfItemCode(rec),
		PhysicalDescription: parser.PhysicalDescription(rec),
		MainEntry:           parser.MainEntry(rec),
		Subjects:            subjects,
		Libretto:            parser.IsLibretto(subjects),
		Dewey:               parser.DeweyNumber(rec),
		Biography:           classifier.IsBiography(rec),
		Fiction:             classifier.IsFiction(rec),
		SubjectKind:         parser.SubjectName,
	}
	if r, ok := classifier.DeweySubjectRange(rec); ok {
		p.SubjectKind = r.Subject
		p.InSubjectRange = true
	}

	facts := p.facts()
	p.Category = rules.ContentCategory(facts)
	if p.Category == rules.CategoryDeweySubject {
		token, err := rules.SubjectToken(n, p.Subjects, p.SubjectKind)
		if err == nil && token != "" {
			p.SubjectToken = token
		} else {
			facts.DeweyPlusSubject = false
			p.Category = rules.ContentCategory(facts)
		}
	}
	return p
}

// subjectToken returns the profiled token, or computes it for an explicit
// Dewey plus subject request. Normalization errors are returned.
func (p Profile) subjectToken(n *normalizer.Normalizer) (string, error) {
	if p.SubjectToken != "" {
		return p.SubjectToken, nil
	}
	return rules.SubjectToken(n, p.Subjects, p.SubjectKind)
}
