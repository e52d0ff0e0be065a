package callno

import (
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/parser"
	"github.com/lehigh-university-libraries/callno/internal/rules"
)

// bpl lays out Brooklyn Public Library call numbers in 099 $a:
//
//	FIC ADAMS
//	AUDIO SPA J FIC ADAMS
//	CHI J-E ADAMS
//	B ADAMS G
//	POL J 947.0842 B
//	eBOOK
//
// Language precedes audience. Only juvenile material gets an audience
// segment; early juvenile material outside the picture pattern has none.
type bpl struct {
	n *normalizer.Normalizer
}

func (bpl) library() Library { return LibraryBPL }

func (bpl) field() (string, string, string, string) { return "099", " ", " ", "a" }

func (bpl) formatPrefix(p Profile) string {
	return rules.BPLFormatPrefix(p.RecordType, p.FormOfItem, p.Libretto)
}

func (bpl) audience(p Profile) string {
	if p.Audience == parser.AudienceJuvenile {
		return "J"
	}
	return ""
}

func (b bpl) assemble(p Profile, ct CallType) ([]string, string, error) {
	if literal, ok := electronicLiterals[ct]; ok {
		return []string{literal}, "", nil
	}

	lead := []string{p.FormatPrefix, languageSegment(p.Language), b.audience(p)}

	switch ct {
	case CallTypeFiction:
		c, reason, err := cutter(b.n, rules.CutterFiction, p)
		if c == "" {
			return nil, reason, err
		}
		return append(lead, "FIC", c), "", nil

	case CallTypePicture:
		c, reason, err := cutter(b.n, rules.CutterPicture, p)
		if c == "" {
			return nil, reason, err
		}
		return []string{languageSegment(p.Language), "J-E", c}, "", nil

	case CallTypeBiography:
		biographee, err := rules.Biographee(b.n, p.Subjects)
		if err != nil {
			return nil, "", err
		}
		if biographee == "" {
			return nil, ReasonNoBiographee, nil
		}
		c, reason, err := cutter(b.n, rules.CutterInitial, p)
		if c == "" {
			return nil, reason, err
		}
		return append(lead, "B", biographee, c), "", nil

	case CallTypeDewey, CallTypeDeweySubject:
		if p.Dewey == "" {
			return nil, ReasonNoDewey, nil
		}
		elements := append(lead, rules.ShortenDewey(p.Dewey, rules.BPLDeweyDecimals))
		if ct == CallTypeDeweySubject {
			token, err := p.subjectToken(b.n)
			if err != nil {
				return nil, "", err
			}
			if token == "" {
				return nil, ReasonNoSubject, nil
			}
			elements = append(elements, token)
		}
		c, reason, err := cutter(b.n, rules.CutterInitial, p)
		if c == "" {
			return nil, reason, err
		}
		return append(elements, c), "", nil
	}

	return nil, ReasonUndetermined, nil
}
