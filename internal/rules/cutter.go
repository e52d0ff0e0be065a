// Package rules holds the cataloging rules that turn extracted record facts
// into call number segments.
package rules

import (
	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
)

// CutterRule derives the cutter segment from a main entry field. It returns ""
// when the main entry has no rule, e.g. a 111 meeting name.
type CutterRule func(n *normalizer.Normalizer, mainEntry marc.Field) (string, error)

// CutterFiction: personal surname, corporate initial, or title initial.
func CutterFiction(n *normalizer.Normalizer, mainEntry marc.Field) (string, error) {
	if mainEntry == nil {
		return "", nil
	}
	switch mainEntry.Tag() {
	case "100":
		return n.PersonalNameSurname(mainEntry)
	case "110":
		return n.CorporateNameInitial(mainEntry)
	case "245":
		return n.TitleInitial(mainEntry)
	}
	return "", nil
}

// CutterInitial uses the first letter of the main entry.
func CutterInitial(n *normalizer.Normalizer, mainEntry marc.Field) (string, error) {
	if mainEntry == nil {
		return "", nil
	}
	switch mainEntry.Tag() {
	case "100":
		return n.PersonalNameInitial(mainEntry)
	case "110":
		return n.CorporateNameInitial(mainEntry)
	case "245":
		return n.TitleInitial(mainEntry)
	}
	return "", nil
}

// CutterPicture is the picture book and easy reader cutter: personal surname,
// first word of a corporate name, or title initial.
func CutterPicture(n *normalizer.Normalizer, mainEntry marc.Field) (string, error) {
	if mainEntry == nil {
		return "", nil
	}
	switch mainEntry.Tag() {
	case "100":
		return n.PersonalNameSurname(mainEntry)
	case "110":
		return n.CorporateNameFirstWord(mainEntry)
	case "245":
		return n.TitleInitial(mainEntry)
	}
	return "", nil
}

// CutterPictureTitleWord is CutterPicture with titles cut by their first
// filing word instead of the initial.
func CutterPictureTitleWord(n *normalizer.Normalizer, mainEntry marc.Field) (string, error) {
	if mainEntry != nil && mainEntry.Tag() == "245" {
		return n.TitleFirstWord(mainEntry)
	}
	return CutterPicture(n, mainEntry)
}
