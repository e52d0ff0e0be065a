package callno

import (
	"log/slog"

	"github.com/lehigh-university-libraries/callno/internal/marc"
	"github.com/lehigh-university-libraries/callno/internal/normalizer"
	"github.com/lehigh-university-libraries/callno/internal/parser"
	"github.com/lehigh-university-libraries/callno/internal/rules"
)

// State is the construction state a Result ended in.
type State string

const (
	StateInitialized     State = "initialized"
	StateProfiled        State = "profiled"
	StatePatternSelected State = "pattern-selected"
	StateAssembled       State = "assembled"
	StateFailed          State = "failed"
)

// Result is the outcome of one construction.
type Result struct {
	Request Request
	State   State
	// CallType is the resolved pattern; for an auto request it is the one
	// the content category selected.
	CallType   CallType
	Profile    Profile
	CallNumber *CallNumber
	Reason     string
}

// OK reports whether a call number was assembled.
func (r *Result) OK() bool {
	return r != nil && r.State == StateAssembled && r.CallNumber != nil
}

func (r *Result) fail(reason string) *Result {
	r.State = StateFailed
	r.Reason = reason
	r.CallNumber = nil
	return r
}

// Option configures a Constructor.
type Option func(*Constructor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Constructor) {
		c.logger = logger
	}
}

// WithTransliterator replaces the transliterator used to normalize names and
// titles.
func WithTransliterator(t normalizer.Transliterator) Option {
	return func(c *Constructor) {
		c.normalizer = normalizer.New(t)
	}
}

// WithClassifier replaces the default classification rules.
func WithClassifier(classifier *parser.Classifier) Option {
	return func(c *Constructor) {
		c.classifier = classifier
	}
}

// Constructor builds call numbers. It holds no per-record state and is safe
// for concurrent use.
type Constructor struct {
	logger     *slog.Logger
	normalizer *normalizer.Normalizer
	classifier *parser.Classifier
}

// New creates a Constructor.
func New(opts ...Option) *Constructor {
	c := &Constructor{
		normalizer: normalizer.Default(),
		classifier: parser.NewClassifier(parser.DefaultRules()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Construct builds a call number with a Constructor made from opts.
func Construct(rec marc.Record, req Request, opts ...Option) (*Result, error) {
	return New(opts...).Construct(rec, req)
}

func (c *Constructor) strategy(lib Library) strategy {
	return strategyFor(lib, c.normalizer)
}

func strategyFor(lib Library, n *normalizer.Normalizer) strategy {
	if lib == LibraryNYPL {
		return nypl{n: n}
	}
	return bpl{n: n}
}

// Construct builds the call number for rec. An invalid request is an error, as
// is text the normalizer cannot transliterate; the returned Result is then in
// StateFailed. A record that does not support the requested pattern yields a
// failed Result and a nil error.
func (c *Constructor) Construct(rec marc.Record, req Request) (*Result, error) {
	res := &Result{Request: req, State: StateInitialized}
	if err := req.Validate(); err != nil {
		return res.fail(err.Error()), err
	}
	lib, _ := ParseLibrary(string(req.Library))
	s := c.strategy(lib)

	profile := ExtractProfile(rec, c.classifier, c.normalizer)
	profile.FormatPrefix = s.formatPrefix(profile)
	res.Profile = profile
	res.State = StateProfiled

	res.CallType = ResolveCallType(req.callType(), profile)
	res.State = StatePatternSelected
	if res.CallType == "" {
		c.logger.Debug("call number undetermined",
			"library", s.library(),
			"control_number", controlNumber(rec),
			"record_type", profile.RecordType,
			"category", profile.Category)
		return res.fail(ReasonUndetermined), nil
	}

	elements, reason, err := s.assemble(profile, res.CallType)
	if err != nil {
		return res.fail(err.Error()), err
	}
	if elements == nil {
		c.logger.Debug("call number not constructed",
			"library", s.library(),
			"control_number", controlNumber(rec),
			"call_type", res.CallType,
			"reason", reason)
		return res.fail(reason), nil
	}

	tag, ind1, ind2, code := s.field()
	res.CallNumber = newCallNumber(tag, ind1, ind2, code, elements)
	res.State = StateAssembled
	c.logger.Debug("call number constructed",
		"library", s.library(),
		"control_number", controlNumber(rec),
		"call_type", res.CallType,
		"call_number", res.CallNumber.String())
	return res, nil
}

// ResolveCallType turns auto into a concrete call type. Electronic books,
// audiobooks and video get their bare literal; everything else follows the
// content category. It returns "" when nothing applies.
func ResolveCallType(requested CallType, p Profile) CallType {
	if requested != CallTypeAuto {
		return requested
	}

	if p.Electronic() {
		switch p.RecordType {
		case "a", "t":
			return CallTypeEBook
		case "i":
			return CallTypeEAudio
		case "g":
			return CallTypeEVideo
		}
	}

	switch p.Category {
	case rules.CategoryPicture:
		return CallTypePicture
	case rules.CategoryFiction:
		return CallTypeFiction
	case rules.CategoryDeweySubject:
		return CallTypeDeweySubject
	case rules.CategoryBiography:
		return CallTypeBiography
	case rules.CategoryDewey:
		return CallTypeDewey
	}
	return ""
}

func controlNumber(rec marc.Record) string {
	if f := marc.First(rec, "001"); f != nil {
		return f.Value()
	}
	return ""
}
