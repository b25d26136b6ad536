// Package cierr defines the structured diagnostic taxonomy the CI
// scanner and parser raise (spec §7). Rendering/formatting is an external
// collaborator; this package only carries the kind, location, message and
// optional help notes, plus the Sink interface the core pushes
// diagnostics through and the error-count gate spec §6 "Exit behavior"
// describes.
package cierr

import "github.com/thelilylang/lily/loc"

// Kind is one entry from spec §7's error taxonomy.
type Kind int

const (
	RequiredCxxOrLater Kind = iota
	FeatureRemovedInCxx
	UnclosedCommentBlock
	UnclosedCommentDoc
	UnclosedCharLiteral
	UnclosedStringLiteral
	InvalidEscape
	InvalidFloatLiteral
	ExpectedToken
	ExpectedIdentifier
	ExpectedDataType
	IncompatibleDataTypeContext
	DuplicateField
	DuplicateStorageClass
	VariableInLabel
	UnexpectedBreak
	UnexpectedContinue
	UnexpectedCase
	UnexpectedDefault
	GenericParamsNotExpected
	RedefinedBuiltin
)

func (k Kind) String() string {
	switch k {
	case RequiredCxxOrLater:
		return "REQUIRED_Cxx_OR_LATER"
	case FeatureRemovedInCxx:
		return "FEATURE_REMOVED_IN_Cxx"
	case UnclosedCommentBlock:
		return "UNCLOSED_COMMENT_BLOCK"
	case UnclosedCommentDoc:
		return "UNCLOSED_COMMENT_DOC"
	case UnclosedCharLiteral:
		return "UNCLOSED_CHAR_LITERAL"
	case UnclosedStringLiteral:
		return "UNCLOSED_STRING_LITERAL"
	case InvalidEscape:
		return "INVALID_ESCAPE"
	case InvalidFloatLiteral:
		return "INVALID_FLOAT_LITERAL"
	case ExpectedToken:
		return "EXPECTED_TOKEN"
	case ExpectedIdentifier:
		return "EXPECTED_IDENTIFIER"
	case ExpectedDataType:
		return "EXPECTED_DATA_TYPE"
	case IncompatibleDataTypeContext:
		return "INCOMPATIBLE_DATA_TYPE_CONTEXT"
	case DuplicateField:
		return "DUPLICATE_FIELD"
	case DuplicateStorageClass:
		return "DUPLICATE_STORAGE_CLASS"
	case VariableInLabel:
		return "VARIABLE_IN_LABEL"
	case UnexpectedBreak:
		return "UNEXPECTED_BREAK"
	case UnexpectedContinue:
		return "UNEXPECTED_CONTINUE"
	case UnexpectedCase:
		return "UNEXPECTED_CASE"
	case UnexpectedDefault:
		return "UNEXPECTED_DEFAULT"
	case GenericParamsNotExpected:
		return "GENERIC_PARAMS_NOT_EXPECTED"
	case RedefinedBuiltin:
		return "REDEFINED_BUILTIN"
	default:
		return "UNKNOWN"
	}
}

// Severity distinguishes errors (gate process exit, spec §6) from
// advisory warnings (count_warning).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one structured finding. Formatting into human-readable
// text is the renderer's job, not this package's.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Location loc.Range
	Message  string
	Notes    []string
}

func (d Diagnostic) Error() string {
	return d.Message
}

// Sink is the external collaborator the scanner and parser report
// diagnostics through (spec §4.1 "appends diagnostics to an external
// counter"). A production Sink renders and stores diagnostics; Counter
// below is a minimal in-core implementation good enough for tests and the
// cic CLI.
type Sink interface {
	Emit(Diagnostic)
	CountErrors() int
	CountWarnings() int
}

// Counter is a minimal Sink that only tallies diagnostics, keeping the
// emitted slice for callers that want to inspect it (tests, cic -dump).
// It is not a renderer: spec §1 explicitly keeps diagnostic formatting
// external to the core.
type Counter struct {
	Diagnostics []Diagnostic
	errors      int
	warnings    int
}

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Emit(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
	switch d.Severity {
	case SeverityError:
		c.errors++
	case SeverityWarning:
		c.warnings++
	}
}

func (c *Counter) CountErrors() int   { return c.errors }
func (c *Counter) CountWarnings() int { return c.warnings }

// Errorf is a small helper for constructing an error-severity diagnostic.
func Errorf(kind Kind, r loc.Range, msg string, notes ...string) Diagnostic {
	return Diagnostic{Kind: kind, Severity: SeverityError, Location: r, Message: msg, Notes: notes}
}

// Warningf is a small helper for constructing a warning-severity diagnostic.
func Warningf(kind Kind, r loc.Range, msg string, notes ...string) Diagnostic {
	return Diagnostic{Kind: kind, Severity: SeverityWarning, Location: r, Message: msg, Notes: notes}
}
