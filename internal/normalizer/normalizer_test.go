package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/lehigh-university-libraries/callno/internal/errors"
	"github.com/lehigh-university-libraries/callno/internal/marc"
)

func TestRemoveTrailingPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Foo.", "Foo"},
		{"Foo :", "Foo"},
		{"Foo, ", "Foo"},
		{"Foo (", "Foo"},
		{"Foo-)", "Foo"},
		{"Foo;", "Foo"},
		{"Foo?", "Foo?"},
		{"F.oo", "F.oo"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveTrailingPunctuation(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"ascii", "Adams, John.", "ADAMS, JOHN"},
		{"polish", "ĄąĆćĘęŁłŃńÓóŚśŹźŻż", "AACCEELLNNOOSSZZZZ"},
		{"ligature halves", "Metlit︠s︡kai︠a︡, Marii︠a︡.", "METLITSKAIA, MARIIA"},
		{"soft sign", "Bilʹzho, Andreĭ", "BILZHO, ANDREI"},
		{"turned comma", "ʻAlam", "ALAM"},
		{"apostrophe", "O'Brian", "OBRIAN"},
		{"left single quote", "‘Abd al-Rahman", "ABD AL-RAHMAN"},
		{"double quotes", "“Foo”", `"FOO"`},
		{"german", "Straße Ärger", "STRASSE ARGER"},
		{"danish", "Søren Kierkegaard", "SOREN KIERKEGAARD"},
		{"french", "Élodie Gâteau :", "ELODIE GATEAU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, input := range []string{"Bilʹzho, Andreĭ.", "O'Brian, Tim,", "Łowca", "‘Abd al-Rahman", "‛Umar", "“Quoted” title"} {
		once, err := Normalize(input)
		require.NoError(t, err)
		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeErrors(t *testing.T) {
	_, err := Normalize("\ue000")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnsupportedCharacter)
	assert.True(t, errs.IsUnsupported(err))

	_, err = Normalize("Foo \xff")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestNormalizerUsesInjectedTransliterator(t *testing.T) {
	n := New(TransliteratorFunc(func(s string) (string, error) {
		return "x" + s, nil
	}))
	got, err := n.Normalize("y.")
	require.NoError(t, err)
	assert.Equal(t, "XY", got)
}

type extractor func(*Normalizer, marc.Field) (string, error)

func TestFieldExtractors(t *testing.T) {
	n := Default()

	tests := []struct {
		name     string
		fn       extractor
		field    marc.Field
		expected string
	}{
		{
			name:     "corporate first word",
			fn:       (*Normalizer).CorporateNameFirstWord,
			field:    marc.NewDataField("110", "2", " ", "a", "Green Day (Musical group)"),
			expected: "GREEN",
		},
		{
			name:     "corporate first word single",
			fn:       (*Normalizer).CorporateNameFirstWord,
			field:    marc.NewDataField("110", "1", " ", "a", "Poland."),
			expected: "POLAND",
		},
		{
			name:     "corporate first word wrong tag",
			fn:       (*Normalizer).CorporateNameFirstWord,
			field:    marc.NewDataField("610", "1", "0", "a", "Poland."),
			expected: "",
		},
		{
			name:     "corporate full",
			fn:       (*Normalizer).CorporateNameFull,
			field:    marc.NewDataField("110", "1", " ", "a", "United States."),
			expected: "UNITED STATES",
		},
		{
			name:     "corporate full drops qualifier",
			fn:       (*Normalizer).CorporateNameFull,
			field:    marc.NewDataField("610", "2", "0", "a", "Green Day (Musical group)"),
			expected: "GREEN DAY",
		},
		{
			name:     "corporate initial",
			fn:       (*Normalizer).CorporateNameInitial,
			field:    marc.NewDataField("110", "2", " ", "a", "Äu Foo."),
			expected: "A",
		},
		{
			name:     "personal initial",
			fn:       (*Normalizer).PersonalNameInitial,
			field:    marc.NewDataField("100", "1", " ", "a", "Łowca, Jan,", "e", "author."),
			expected: "L",
		},
		{
			name:     "personal initial wrong tag",
			fn:       (*Normalizer).PersonalNameInitial,
			field:    marc.NewDataField("600", "1", "0", "a", "Adams, John."),
			expected: "",
		},
		{
			name:     "surname with relator",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "1", " ", "a", "O'Brian, Tim,", "e", "author."),
			expected: "OBRIAN",
		},
		{
			name:     "surname with numeration",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "0", " ", "a", "Louis", "b", "XIV,", "c", "King of France."),
			expected: "LOUIS XIV",
		},
		{
			name:     "hyphenated surname",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "1", " ", "a", "Aksakova-Sivers, T. A."),
			expected: "AKSAKOVA-SIVERS",
		},
		{
			name:     "compound surname",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "1", " ", "a", "Pasero de Corneliano, Charles,"),
			expected: "PASERO DE CORNELIANO",
		},
		{
			name:     "forename entry",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "0", " ", "a", "Aesop."),
			expected: "AESOP",
		},
		{
			name:     "family name heading is not a surname",
			fn:       (*Normalizer).PersonalNameSurname,
			field:    marc.NewDataField("100", "3", " ", "a", "Adams family."),
			expected: "",
		},
		{
			name:     "subject family",
			fn:       (*Normalizer).SubjectFamilyName,
			field:    marc.NewDataField("600", "3", "0", "a", "Kennedy family."),
			expected: "KENNEDY",
		},
		{
			name:     "subject family romanized",
			fn:       (*Normalizer).SubjectFamilyName,
			field:    marc.NewDataField("600", "3", "0", "a", "ʻAlam family."),
			expected: "ALAM",
		},
		{
			name:     "subject family without family",
			fn:       (*Normalizer).SubjectFamilyName,
			field:    marc.NewDataField("600", "3", "0", "a", "Adams."),
			expected: "",
		},
		{
			name:     "subject corporate",
			fn:       (*Normalizer).SubjectCorporateName,
			field:    marc.NewDataField("610", "1", "0", "a", "United States."),
			expected: "UNITED STATES",
		},
		{
			name:     "subject corporate wrong tag",
			fn:       (*Normalizer).SubjectCorporateName,
			field:    marc.NewDataField("110", "1", " ", "a", "United States."),
			expected: "",
		},
		{
			name:     "subject personal",
			fn:       (*Normalizer).SubjectPersonalName,
			field:    marc.NewDataField("600", "1", "0", "a", "Adams, John,", "d", "1735-1826."),
			expected: "ADAMS",
		},
		{
			name:     "subject personal blank indicator",
			fn:       (*Normalizer).SubjectPersonalName,
			field:    marc.NewDataField("600", " ", "0", "a", "Adams, John."),
			expected: "",
		},
		{
			name:     "subject topic",
			fn:       (*Normalizer).SubjectTopic,
			field:    marc.NewDataField("650", " ", "0", "a", "Python (Computer program language)"),
			expected: "PYTHON",
		},
		{
			name:     "title initial skips nonfiling",
			fn:       (*Normalizer).TitleInitial,
			field:    marc.NewDataField("245", "1", "4", "a", "The foo."),
			expected: "F",
		},
		{
			name:     "title initial blank indicator",
			fn:       (*Normalizer).TitleInitial,
			field:    marc.NewDataField("245", "1", " ", "a", "The foo."),
			expected: "",
		},
		{
			name:     "title initial no nonfiling",
			fn:       (*Normalizer).TitleInitial,
			field:    marc.NewDataField("245", "0", "0", "a", "Ósmy dzień."),
			expected: "O",
		},
		{
			name:     "title first word",
			fn:       (*Normalizer).TitleFirstWord,
			field:    marc.NewDataField("245", "1", "4", "a", "The foo bar /"),
			expected: "FOO",
		},
		{
			name:     "title first word with punctuation",
			fn:       (*Normalizer).TitleFirstWord,
			field:    marc.NewDataField("245", "1", "0", "a", "Spam, eggs :"),
			expected: "SPAM",
		},
		{
			name:     "nil field",
			fn:       (*Normalizer).TitleInitial,
			field:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(n, tt.field)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFieldExtractorRejectsBadTag(t *testing.T) {
	_, err := Default().PersonalNameSurname(marc.NewDataField("10", "1", " ", "a", "Adams, John."))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestFieldExtractorPropagatesUnsupported(t *testing.T) {
	_, err := Default().PersonalNameSurname(marc.NewDataField("100", "1", " ", "a", "\ue000, John."))
	assert.ErrorIs(t, err, errs.ErrUnsupportedCharacter)
}
