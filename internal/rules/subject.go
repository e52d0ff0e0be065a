package rules

import (
	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/parser"
)

// Biographee returns the name of the person a biography is about, taken from
// the first 600 subject. Family headings (first indicator 3) give the family
// name.
func Biographee(n *normalizer.Normalizer, subjects []marc.Field) (string, error) {
	for _, f := range subjects {
		if f.Tag() != "600" {
			continue
		}
		if f.Indicator1() == "3" {
			return n.SubjectFamilyName(f)
		}
		return n.SubjectPersonalName(f)
	}
	return "", nil
}

// SubjectToken returns the subject segment of a Dewey plus subject call
// number: the first subject of the given kind that yields a token.
func SubjectToken(n *normalizer.Normalizer, subjects []marc.Field, kind parser.SubjectKind) (string, error) {
	for _, f := range subjects {
		var (
			token string
			err   error
		)
		switch {
		case f.Tag() == "600" && (kind == parser.SubjectPersonal || kind == parser.SubjectName):
			if f.Indicator1() == "3" {
				token, err = n.SubjectFamilyName(f)
			} else {
				token, err = n.SubjectPersonalName(f)
			}
		case f.Tag() == "610" && (kind == parser.SubjectCorporate || kind == parser.SubjectName):
			token, err = n.SubjectCorporateName(f)
		case f.Tag() == "650" && kind == parser.SubjectTopic:
			token, err = n.SubjectTopic(f)
		default:
			continue
		}
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", nil
}
