package callno

import (
	"strings"

	"github.com/lehigh-university-libraries/callno/internal/marc"
)

// CallNumber is an assembled call number field. Every element is written to
// the same subfield code, in order.
type CallNumber struct {
	tag      string
	ind1     string
	ind2     string
	code     string
	elements []string
}

func newCallNumber(tag, ind1, ind2, code string, elements []string) *CallNumber {
	kept := make([]string, 0, len(elements))
	for _, e := range elements {
		if e != "" {
			kept = append(kept, e)
		}
	}
	return &CallNumber{tag: tag, ind1: ind1, ind2: ind2, code: code, elements: kept}
}

func (c *CallNumber) Tag() string { return c.tag }

// Indicators returns the first and second indicator.
func (c *CallNumber) Indicators() (string, string) { return c.ind1, c.ind2 }

// Elements returns a copy of the element list.
func (c *CallNumber) Elements() []string {
	out := make([]string, len(c.elements))
	copy(out, c.elements)
	return out
}

func (c *CallNumber) Subfields() []marc.Subfield {
	out := make([]marc.Subfield, 0, len(c.elements))
	for _, e := range c.elements {
		out = append(out, marc.Subfield{Code: c.code, Value: e})
	}
	return out
}

// String joins the elements with a space: "SPA J FIC ADAMS".
func (c *CallNumber) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.elements, " ")
}

// Field returns the call number as a MARC data field.
func (c *CallNumber) Field() *marc.BibField {
	f := marc.NewDataField(c.tag, c.ind1, c.ind2)
	for _, e := range c.elements {
		f.AddSubfield(c.code, e)
	}
	return f
}

// Mnemonic renders the field in MarcEdit form, e.g. =099  \\$aFIC$aADAMS.
func (c *CallNumber) Mnemonic() string {
	if c == nil {
		return ""
	}
	return marc.FormatField(c.Field())
}

// Assigned returns the call number a cataloger already gave rec in lib's call
// number field, its subfields joined by spaces. It returns "" when the field
// is absent.
func Assigned(rec marc.Record, lib Library) string {
	tag, _, _, code := strategyFor(lib, nil).field()
	f := marc.First(rec, tag)
	if f == nil {
		return ""
	}
	var parts []string
	for _, sf := range f.Subfields() {
		if sf.Code == code && strings.TrimSpace(sf.Value) != "" {
			parts = append(parts, strings.TrimSpace(sf.Value))
		}
	}
	return strings.Join(parts, " ")
}
