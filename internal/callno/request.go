// Package callno builds BPL and NYPL call numbers from MARC records.
//
// Construction runs in four steps. An immutable Profile is extracted from the
// record once. The requested call type is resolved, with auto deferring to the
// record's content category. A library strategy then assembles the ordered
// elements. The elements become a CallNumber.
//
// A record that cannot produce a call number is not an error: Construct
// returns a Result in StateFailed with a nil CallNumber and a Reason.
package callno

import (
	"strings"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

// Library selects the assembly strategy.
type Library string

const (
	LibraryBPL  Library = "bpl"
	LibraryNYPL Library = "nypl"
)

// ParseLibrary parses a library name, case-insensitively.
func ParseLibrary(s string) (Library, error) {
	switch l := Library(strings.ToLower(strings.TrimSpace(s))); l {
	case LibraryBPL, LibraryNYPL:
		return l, nil
	}
	return "", errs.Invalid("parse library", "unknown library %q", s)
}

// CallType is the requested call number pattern.
type CallType string

const (
	CallTypeAuto         CallType = "auto"
	CallTypeFiction      CallType = "fic"
	CallTypeBiography    CallType = "bio"
	CallTypePicture      CallType = "pic"
	CallTypeDewey        CallType = "dewey"
	CallTypeDeweySubject CallType = "dewey-subject"
	CallTypeEBook        CallType = "ebook"
	CallTypeEAudio       CallType = "eaudio"
	CallTypeEVideo       CallType = "evideo"
)

// CallTypes lists every call type Construct accepts.
var CallTypes = []CallType{
	CallTypeAuto,
	CallTypeFiction,
	CallTypeBiography,
	CallTypePicture,
	CallTypeDewey,
	CallTypeDeweySubject,
	CallTypeEBook,
	CallTypeEAudio,
	CallTypeEVideo,
}

// ParseCallType parses a call type. An empty string is auto.
func ParseCallType(s string) (CallType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CallTypeAuto, nil
	}
	for _, ct := range CallTypes {
		if CallType(s) == ct {
			return ct, nil
		}
	}
	return "", errs.Invalid("parse call type", "unknown call type %q", s)
}

// Order is the acquisitions order data that came with the record. It is
// carried through construction untouched.
type Order struct {
	Audience string `json:"order_audience,omitempty" yaml:"order_audience,omitempty"`
	Language string `json:"order_language,omitempty" yaml:"order_language,omitempty"`
	Note     string `json:"order_note,omitempty" yaml:"order_note,omitempty"`
	Shelf    string `json:"order_shelf,omitempty" yaml:"order_shelf,omitempty"`
}

// Request configures a single construction.
type Request struct {
	Library  Library
	CallType CallType
	Order    Order
}

// Validate checks the library and call type.
func (r Request) Validate() error {
	if _, err := ParseLibrary(string(r.Library)); err != nil {
		return err
	}
	if r.CallType == "" {
		return nil
	}
	_, err := ParseCallType(string(r.CallType))
	return err
}

func (r Request) callType() CallType {
	if r.CallType == "" {
		return CallTypeAuto
	}
	return CallType(strings.ToLower(string(r.CallType)))
}
