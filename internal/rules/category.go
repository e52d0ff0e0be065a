package rules

import "github.com/lehigh-university-libraries/callno/internal/parser"

// Category is the broad content bucket that selects a call number pattern.
type Category string

const (
	CategoryPicture      Category = "picture"
	CategoryFiction      Category = "fiction"
	CategoryDeweySubject Category = "dewey+subject"
	CategoryBiography    Category = "biography"
	CategoryDewey        Category = "dewey"
	CategoryUndetermined Category = "undetermined"
)

// Facts are the classifier answers for one record.
type Facts struct {
	RecordType       string
	Audience         parser.Audience
	Fiction          bool
	DeweyPlusSubject bool
	Biography        bool
	Dewey            bool
}

// CategoryRule pairs a predicate with the category it selects.
type CategoryRule struct {
	Category Category
	Applies  func(Facts) bool
}

// CategoryPriority is evaluated top to bottom; the first rule that applies
// wins. A picture book that is also fiction is a picture book.
var CategoryPriority = []CategoryRule{
	{CategoryPicture, func(f Facts) bool { return f.isPrint() && f.Audience == parser.AudienceEarlyJuvenile }},
	{CategoryFiction, func(f Facts) bool { return f.Fiction }},
	{CategoryDeweySubject, func(f Facts) bool { return f.DeweyPlusSubject }},
	{CategoryBiography, func(f Facts) bool { return f.Biography }},
	{CategoryDewey, func(f Facts) bool { return f.Dewey }},
}

func (f Facts) isPrint() bool {
	return f.RecordType == "a" || f.RecordType == "t"
}

// ContentCategory resolves the category of print and text material (record
// types a and t) and of nonmusical sound recordings (i), which are shelved
// like the books they read. Picture books are print only. Other record types,
// visual material included, are undetermined.
func ContentCategory(f Facts) Category {
	if !f.isPrint() && f.RecordType != "i" {
		return CategoryUndetermined
	}
	for _, rule := range CategoryPriority {
		if rule.Applies(f) {
			return rule.Category
		}
	}
	return CategoryUndetermined
}
