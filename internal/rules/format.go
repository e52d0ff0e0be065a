package rules

// Format prefixes.
const (
	FormatEBook    = "eBOOK"
	FormatEAudio   = "eAUDIO"
	FormatEMusic   = "eMUSIC"
	FormatEVideo   = "eVIDEO"
	FormatAudio    = "AUDIO"
	FormatCD       = "CD"
	FormatDVD      = "DVD"
	FormatMusic    = "Mu"
	FormatNM       = "NM"
	FormatLibretto = "LIB"
)

// IsElectronic reports whether a form of item code is online or direct
// electronic.
func IsElectronic(form string) bool {
	return form == "o" || form == "s"
}

// BPLFormatPrefix returns the BPL material format prefix for a record type
// and form of item, or "" for regular print and unhandled types.
func BPLFormatPrefix(recordType, form string, libretto bool) string {
	electronic := IsElectronic(form)
	switch recordType {
	case "a", "t":
		switch {
		case electronic:
			return FormatEBook
		case form == "a" || form == "b":
			return FormatNM
		case libretto:
			return FormatLibretto
		}
		return ""
	case "c", "d":
		return FormatMusic
	case "i":
		if electronic {
			return FormatEAudio
		}
		return FormatAudio
	case "j":
		if electronic {
			return FormatEMusic
		}
		return FormatCD
	case "g":
		if electronic {
			return FormatEVideo
		}
		return FormatDVD
	}
	return ""
}

// NYPLFormatPrefix returns the NYPL material format prefix. Print has none.
func NYPLFormatPrefix(recordType, form string) string {
	electronic := IsElectronic(form)
	switch recordType {
	case "a", "t":
		if electronic {
			return FormatEBook
		}
	case "i":
		if electronic {
			return FormatEAudio
		}
		return FormatAudio
	case "j":
		if electronic {
			return FormatEMusic
		}
		return FormatCD
	case "g":
		if electronic {
			return FormatEVideo
		}
		return FormatDVD
	}
	return ""
}
