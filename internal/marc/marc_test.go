package marc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
)

const sampleMnemonic = `=LDR  00000nam\\2200000\i\4500
=001  ocm12345
=008  210315s2021\\\\nyu\\\\\\\\\\\\00\1\eng\d
=100  1\$aAdams, John,$eauthor.
=245  14$aThe foo /$cJohn Adams.
=300  \\$a245 pages ;$c22 cm
=650  \0$aPrice {dollar}5.$vFiction.
`

func TestBibRecordFields(t *testing.T) {
	rec := NewRecord("00000nam  2200000   4500")
	rec.AddField(
		NewDataField("600", "1", "0", "a", "Foo."),
		NewDataField("650", " ", "0", "a", "Bar."),
		NewDataField("610", "2", "0", "a", "Baz."),
	)

	fields := rec.Fields("600", "610")
	require.Len(t, fields, 2)
	assert.Equal(t, "600", fields[0].Tag())
	assert.Equal(t, "610", fields[1].Tag())

	assert.True(t, Has(rec, "650"))
	assert.False(t, Has(rec, "100"))
	assert.Nil(t, First(rec, "245"))
	assert.Nil(t, First(nil, "245"))
}

func TestBibFieldValue(t *testing.T) {
	f := NewDataField("300", " ", " ", "a", "foo:", "b", "bar;", "c", "spam")
	assert.Equal(t, "foo: bar; spam", f.Value())

	cf := NewControlField("008", "  raw  ")
	assert.Equal(t, "  raw  ", cf.Value())
}

func TestNewDataFieldIgnoresDanglingCode(t *testing.T) {
	f := NewDataField("245", "0", "0", "a", "Foo", "c")
	require.Len(t, f.Subfields(), 1)
}

func TestSubfieldValue(t *testing.T) {
	f := NewDataField("100", "1", " ", "a", "Adams, John,", "e", "author.", "e", "narrator.")

	v, ok := SubfieldValue(f, "e")
	assert.True(t, ok)
	assert.Equal(t, "author.", v)

	_, ok = SubfieldValue(f, "b")
	assert.False(t, ok)

	_, ok = SubfieldValue(nil, "a")
	assert.False(t, ok)
}

func TestParseMnemonic(t *testing.T) {
	rec, err := ParseMnemonic(sampleMnemonic)
	require.NoError(t, err)

	assert.Equal(t, "00000nam  2200000 i 4500", rec.Leader())
	assert.Equal(t, "ocm12345", rec.ControlNumber())

	f008 := First(rec, "008")
	require.NotNil(t, f008)
	assert.Equal(t, "eng", f008.Value()[35:38])

	f245 := First(rec, "245")
	require.NotNil(t, f245)
	assert.Equal(t, "1", f245.Indicator1())
	assert.Equal(t, "4", f245.Indicator2())
	v, _ := SubfieldValue(f245, "a")
	assert.Equal(t, "The foo /", v)

	f100 := First(rec, "100")
	assert.Equal(t, " ", f100.Indicator2())

	f650 := First(rec, "650")
	v, _ = SubfieldValue(f650, "a")
	assert.Equal(t, "Price $5.", v)
}

func TestParseMnemonicErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no equals sign", "245  10$aFoo"},
		{"missing indicators", "=245  1"},
		{"no subfield marker", "=245  10Foo"},
		{"two records", "=LDR  00000nam\n\n=LDR  00000nam\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMnemonic(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrParsingFailed)
		})
	}
}

func TestReadMnemonicMultipleRecords(t *testing.T) {
	input := sampleMnemonic + "\n\n=LDR  00000ngm  2200000   4500\n=245  00$aMovie.\n"
	records, err := ReadMnemonic(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "00000ngm  2200000   4500", records[1].Leader())
}

func TestFormatField(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		expected string
	}{
		{
			name:     "blank indicators",
			field:    NewDataField("099", " ", " ", "a", "FIC", "a", "ADAMS"),
			expected: `=099  \\$aFIC$aADAMS`,
		},
		{
			name:     "empty indicators",
			field:    NewDataField("091", "", "", "a", "J"),
			expected: `=091  \\$aJ`,
		},
		{
			name:     "control field",
			field:    NewControlField("008", "abc  def"),
			expected: `=008  abc\\def`,
		},
		{
			name:     "dollar sign",
			field:    NewDataField("500", " ", " ", "a", "Costs $5"),
			expected: `=500  \\$aCosts {dollar}5`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatField(tt.field))
		})
	}
}

func TestFormatRecordParsesBack(t *testing.T) {
	rec, err := ParseMnemonic(sampleMnemonic)
	require.NoError(t, err)

	again, err := ParseMnemonic(FormatRecord(rec))
	require.NoError(t, err)
	assert.Equal(t, rec.Leader(), again.Leader())
	assert.Equal(t, len(rec.All()), len(again.All()))
	assert.Equal(t, First(rec, "650").Value(), First(again, "650").Value())
}

func TestISO2709EncodeDecode(t *testing.T) {
	rec, err := ParseMnemonic(sampleMnemonic)
	require.NoError(t, err)

	raw := EncodeISO2709(rec)
	assert.Equal(t, byte(recordTerminator), raw[len(raw)-1])

	var buf bytes.Buffer
	buf.Write(raw)
	buf.Write(raw)

	records, err := ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, records, 2)

	got := records[0]
	assert.Equal(t, rec.Leader()[5:12], got.Leader()[5:12])
	assert.Equal(t, "ocm12345", got.ControlNumber())

	f100 := First(got, "100")
	require.NotNil(t, f100)
	assert.Equal(t, "1", f100.Indicator1())
	assert.Equal(t, "Adams, John, author.", f100.Value())
}

func TestReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"bad length", []byte("abcde")},
		{"too short", []byte("00010abcde")},
		{"truncated body", []byte("00100nam  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.input))
			assert.False(t, r.Next())
			assert.ErrorIs(t, r.Err(), errs.ErrParsingFailed)
		})
	}
}

func TestReaderRejectsMalformedDirectory(t *testing.T) {
	rec := NewRecord("00000nam a2200000 a 4500").
		AddField(NewDataField("245", "1", "0", "a", "The foo."))
	valid := EncodeISO2709(rec)

	tests := []struct {
		name  string
		entry string
	}{
		{"negative length", "245-00100000"},
		{"negative start", "2450013-0001"},
		{"start past data", "245001399999"},
		{"length past data", "245999900000"},
		{"zero length", "245000000000"},
		{"spaces", "245 013 0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := append([]byte(nil), valid...)
			copy(raw[leaderSize:leaderSize+directoryEntrySize], tt.entry)

			var records []*BibRecord
			var err error
			require.NotPanics(t, func() {
				records, err = DecodeISO2709(raw)
			})
			assert.ErrorIs(t, err, errs.ErrParsingFailed)
			assert.Empty(t, records)
		})
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	assert.False(t, r.Next())
	assert.NoError(t, r.Err())
}

func TestDecodeRecordsDetectsFormat(t *testing.T) {
	rec, err := ParseMnemonic(sampleMnemonic)
	require.NoError(t, err)

	raw := EncodeISO2709(rec)
	assert.True(t, IsISO2709(raw))
	assert.False(t, IsISO2709([]byte(sampleMnemonic)))

	fromBinary, err := DecodeRecords(raw)
	require.NoError(t, err)
	require.Len(t, fromBinary, 1)

	fromText, err := ReadRecords(strings.NewReader(sampleMnemonic))
	require.NoError(t, err)
	require.Len(t, fromText, 1)

	assert.Equal(t, fromText[0].ControlNumber(), fromBinary[0].ControlNumber())
}
