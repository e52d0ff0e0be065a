package callno

import (
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/parser"
	"github.com/lehigh-university-libraries/callno/internal/rules"
)

// nypl lays out New York Public Library call numbers in 091 $a:
//
//	FIC ADAMS
//	J SPA FIC ADAMS
//	YA FIC ADAMS
//	J E ADAMS
//	B ADAMS G
//	J 947.084 B
//
// Audience precedes language, and young adult material is marked YA.
type nypl struct {
	n *normalizer.Normalizer
}

func (nypl) library() Library { return LibraryNYPL }

func (nypl) field() (string, string, string, string) { return "091", " ", " ", "a" }

func (nypl) formatPrefix(p Profile) string {
	return rules.NYPLFormatPrefix(p.RecordType, p.FormOfItem)
}

func (nypl) audience(p Profile) string {
	switch p.Audience {
	case parser.AudienceEarlyJuvenile, parser.AudienceJuvenile:
		return "J"
	case parser.AudienceYoungAdult:
		return "YA"
	}
	return ""
}

func (y nypl) assemble(p Profile, ct CallType) ([]string, string, error) {
	if literal, ok := electronicLiterals[ct]; ok {
		return []string{literal}, "", nil
	}

	lead := []string{p.FormatPrefix, y.audience(p), languageSegment(p.Language)}

	switch ct {
	case CallTypeFiction:
		c, reason, err := cutter(y.n, rules.CutterFiction, p)
		if c == "" {
			return nil, reason, err
		}
		return append(lead, "FIC", c), "", nil

	case CallTypePicture:
		c, reason, err := cutter(y.n, rules.CutterPictureTitleWord, p)
		if c == "" {
			return nil, reason, err
		}
		return []string{"J", languageSegment(p.Language), "E", c}, "", nil

	case CallTypeBiography:
		biographee, err := rules.Biographee(y.n, p.Subjects)
		if err != nil {
			return nil, "", err
		}
		if biographee == "" {
			return nil, ReasonNoBiographee, nil
		}
		c, reason, err := cutter(y.n, rules.CutterInitial, p)
		if c == "" {
			return nil, reason, err
		}
		return append(lead, "B", biographee, c), "", nil

	case CallTypeDewey, CallTypeDeweySubject:
		if p.Dewey == "" {
			return nil, ReasonNoDewey, nil
		}
		elements := append(lead, rules.ShortenDewey(p.Dewey, rules.NYPLDeweyDecimals))
		if ct == CallTypeDeweySubject {
			token, err := p.subjectToken(y.n)
			if err != nil {
				return nil, "", err
			}
			if token == "" {
				return nil, ReasonNoSubject, nil
			}
			elements = append(elements, token)
		}
		c, reason, err := cutter(y.n, rules.CutterInitial, p)
		if c == "" {
			return nil, reason, err
		}
		return append(elements, c), "", nil
	}

	return nil, ReasonUndetermined, nil
}
