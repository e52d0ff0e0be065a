package marc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

// Mnemonic MARC is the line oriented text form produced by MarcEdit:
//
//	=LDR  00000nam  2200000   4500
//	=008  210315s2021    nyu           000 1 eng d
//	=100  1\$aAdams, John,$eauthor.
//	=245  14$aThe foo /$cJohn Adams.
//
// A backslash stands for a blank in indicators, the leader and control fields.
// A literal dollar sign inside a value is written as {dollar}.

const (
	blankMark  = `\`
	dollarMark = "{dollar}"
)

// ParseMnemonic parses a single record in mnemonic form.
func ParseMnemonic(text string) (*BibRecord, error) {
	records, err := ReadMnemonic(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	switch len(records) {
	case 0:
		return nil, fmt.Errorf("%w: no record found", errs.ErrParsingFailed)
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("%w: expected one record, found %d", errs.ErrParsingFailed, len(records))
	}
}

// ReadMnemonic reads every record from r. Records are separated by one or more
// blank lines.
func ReadMnemonic(r io.Reader) ([]*BibRecord, error) {
	var records []*BibRecord
	var current *BibRecord

	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			current = nil
			continue
		}

		if current == nil {
			current = NewRecord("")
			records = append(records, current)
		}

		tag, rest, err := splitMnemonicLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch {
		case tag == "LDR":
			current.SetLeader(strings.ReplaceAll(rest, blankMark, " "))
		case IsControlTag(tag):
			current.AddField(NewControlField(tag, strings.ReplaceAll(rest, blankMark, " ")))
		default:
			f, err := parseMnemonicDataField(tag, rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current.AddField(f)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading mnemonic MARC: %w", err)
	}

	return records, nil
}

func splitMnemonicLine(line string) (tag, rest string, err error) {
	if !strings.HasPrefix(line, "=") || len(line) < 4 {
		return "", "", fmt.Errorf("%w: malformed line %q", errs.ErrParsingFailed, line)
	}
	tag = line[1:4]
	rest = strings.TrimPrefix(line[4:], "  ")
	return tag, rest, nil
}

func parseMnemonicDataField(tag, rest string) (*BibField, error) {
	if len(rest) < 2 {
		return nil, fmt.Errorf("%w: field %s has no indicators", errs.ErrParsingFailed, tag)
	}
	ind1 := strings.ReplaceAll(rest[0:1], blankMark, " ")
	ind2 := strings.ReplaceAll(rest[1:2], blankMark, " ")
	f := NewDataField(tag, ind1, ind2)

	body := rest[2:]
	if body == "" {
		return f, nil
	}
	if !strings.HasPrefix(body, "$") {
		return nil, fmt.Errorf("%w: field %s does not start with a subfield", errs.ErrParsingFailed, tag)
	}

	for _, part := range strings.Split(body[1:], "$") {
		if part == "" {
			continue
		}
		f.AddSubfield(part[:1], strings.ReplaceAll(part[1:], dollarMark, "$"))
	}
	return f, nil
}

// FormatField renders f in mnemonic form, e.g. =099  \\$aFIC$aADAMS.
func FormatField(f Field) string {
	var b strings.Builder
	b.WriteString("=")
	b.WriteString(f.Tag())
	b.WriteString("  ")

	if IsControlTag(f.Tag()) {
		b.WriteString(strings.ReplaceAll(f.Value(), " ", blankMark))
		return b.String()
	}

	b.WriteString(mnemonicIndicator(f.Indicator1()))
	b.WriteString(mnemonicIndicator(f.Indicator2()))
	for _, sf := range f.Subfields() {
		b.WriteString("$")
		b.WriteString(sf.Code)
		b.WriteString(strings.ReplaceAll(sf.Value, "$", dollarMark))
	}
	return b.String()
}

// FormatRecord renders the leader and every field of rec in mnemonic form.
func FormatRecord(rec *BibRecord) string {
	var b strings.Builder
	b.WriteString("=LDR  ")
	b.WriteString(strings.ReplaceAll(rec.Leader(), " ", blankMark))
	b.WriteString("\n")
	for _, f := range rec.All() {
		b.WriteString(FormatField(f))
		b.WriteString("\n")
	}
	return b.String()
}

func mnemonicIndicator(ind string) string {
	if ind == "" || ind == " " {
		return blankMark
	}
	return ind[:1]
}
