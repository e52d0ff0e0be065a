// Package marc defines the minimal view of a MARC 21 bibliographic record that
// call number construction depends on, plus an in-memory implementation and
// readers for the mnemonic (MarcEdit) and ISO 2709 serializations.
//
// Any MARC library can be adapted to Record and Field; the rest of the module
// only talks to these interfaces.
package marc

import (
	"strings"
)

// Record is a bibliographic record: a leader and fields in document order.
type Record interface {
	// Leader returns the 24 character leader. It may be shorter or empty on
	// malformed input.
	Leader() string
	// Fields returns every field whose tag is one of tags, in document order.
	Fields(tags ...string) []Field
}

// Field is a control or data field.
type Field interface {
	Tag() string
	Indicator1() string
	Indicator2() string
	Subfields() []Subfield
	// Value returns the raw data of a control field, or the subfield values of a
	// data field joined with a space.
	Value() string
}

// Subfield contains a Code and a Value.
type Subfield struct {
	Code  string
	Value string
}

// First returns the first field with the given tag, or nil.
func First(rec Record, tag string) Field {
	if rec == nil {
		return nil
	}
	fields := rec.Fields(tag)
	if len(fields) == 0 {
		return nil
	}
	return fields[0]
}

// Has checks if tag exists in record
func Has(rec Record, tag string) bool {
	return First(rec, tag) != nil
}

// SubfieldValue returns the first subfield with the given code.
func SubfieldValue(f Field, code string) (string, bool) {
	if f == nil {
		return "", false
	}
	for _, sf := range f.Subfields() {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// IsControlTag reports whether tag names a control field (001-009).
func IsControlTag(tag string) bool {
	return len(tag) == 3 && strings.HasPrefix(tag, "00")
}

// BibField is the in-memory Field implementation.
type BibField struct {
	tag        string
	ind1, ind2 string
	data       string
	subfields  []Subfield
}

// NewControlField creates a control field such as 001 or 008.
func NewControlField(tag, data string) *BibField {
	return &BibField{tag: tag, data: data}
}

// NewDataField creates a data field. Codes and values alternate in
// codeValues, the way they are written on a cataloging worksheet:
//
//	NewDataField("100", "1", " ", "a", "Adams, John,", "e", "author.")
//
// A trailing code without a value is ignored.
func NewDataField(tag, ind1, ind2 string, codeValues ...string) *BibField {
	f := &BibField{tag: tag, ind1: ind1, ind2: ind2}
	for i := 0; i+1 < len(codeValues); i += 2 {
		f.subfields = append(f.subfields, Subfield{Code: codeValues[i], Value: codeValues[i+1]})
	}
	return f
}

// AddSubfield appends a subfield and returns the field for chaining.
func (f *BibField) AddSubfield(code, value string) *BibField {
	f.subfields = append(f.subfields, Subfield{Code: code, Value: value})
	return f
}

func (f *BibField) Tag() string        { return f.tag }
func (f *BibField) Indicator1() string { return f.ind1 }
func (f *BibField) Indicator2() string { return f.ind2 }

func (f *BibField) Subfields() []Subfield {
	out := make([]Subfield, len(f.subfields))
	copy(out, f.subfields)
	return out
}

func (f *BibField) Value() string {
	if IsControlTag(f.tag) {
		return f.data
	}
	values := make([]string, 0, len(f.subfields))
	for _, sf := range f.subfields {
		values = append(values, sf.Value)
	}
	return strings.Join(values, " ")
}

// String renders the field in mnemonic form.
func (f *BibField) String() string {
	return FormatField(f)
}

// BibRecord is the in-memory Record implementation.
type BibRecord struct {
	leader string
	fields []Field
}

// NewRecord creates an empty record with the given leader.
func NewRecord(leader string) *BibRecord {
	return &BibRecord{leader: leader}
}

// SetLeader replaces the leader.
func (r *BibRecord) SetLeader(leader string) {
	r.leader = leader
}

// AddField appends fields in document order.
func (r *BibRecord) AddField(fields ...Field) *BibRecord {
	r.fields = append(r.fields, fields...)
	return r
}

func (r *BibRecord) Leader() string { return r.leader }

func (r *BibRecord) Fields(tags ...string) []Field {
	var out []Field
	for _, f := range r.fields {
		for _, t := range tags {
			if f.Tag() == t {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// All returns every field in document order.
func (r *BibRecord) All() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// ControlNumber returns the trimmed 001 value, or "".
func (r *BibRecord) ControlNumber() string {
	if f := First(r, "001"); f != nil {
		return strings.TrimSpace(f.Value())
	}
	return ""
}
