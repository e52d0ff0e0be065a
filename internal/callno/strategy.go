package callno

import (
	"strings"

	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/rules"
)

// Failure reasons.
const (
	ReasonUndetermined = "content category undetermined"
	ReasonNoCutter     = "no cutter"
	ReasonNoBiographee = "no biographee"
	ReasonNoDewey      = "no dewey number"
	ReasonNoSubject    = "no subject"
	ReasonNoMainEntry  = "no main entry"
)

// strategy is one library's way of laying out a call number.
type strategy interface {
	library() Library
	// field returns the tag, indicators and subfield code of the call number.
	field() (tag, ind1, ind2, code string)
	formatPrefix(p Profile) string
	// assemble returns the ordered elements, or nil and a reason when the
	// pattern cannot be built from p.
	assemble(p Profile, ct CallType) ([]string, string, error)
}

// electronic literal patterns shared by both libraries
var electronicLiterals = map[CallType]string{
	CallTypeEBook:  rules.FormatEBook,
	CallTypeEAudio: rules.FormatEAudio,
	CallTypeEVideo: rules.FormatEVideo,
}

// languages that never get a language segment
var unmarkedLanguages = map[string]bool{
	"eng": true,
	"und": true,
	"zxx": true,
	"mul": true,
}

func languageSegment(code string) string {
	if code == "" || unmarkedLanguages[code] {
		return ""
	}
	return strings.ToUpper(code)
}

func cutter(n *normalizer.Normalizer, rule rules.CutterRule, p Profile) (string, string, error) {
	if p.MainEntry == nil {
		return "", ReasonNoMainEntry, nil
	}
	c, err := rule(n, p.MainEntry)
	if err != nil {
		return "", "", err
	}
	if c == "" {
		return "", ReasonNoCutter, nil
	}
	return c, "", nil
}
