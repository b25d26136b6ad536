package token

// Payload is the kind-specific data a Token carries beyond its Kind and
// Location (spec §3 "Payloads by kind"). Punctuation, operator and
// unfused/fused keyword tokens carry a nil Payload.
type Payload interface {
	isPayload()
}

// Identifier payload (spec: "carries a shared-immutable interned name string").
type Identifier struct {
	Name *Interned
}

func (Identifier) isPayload() {}

// IntBase is the radix an integer literal was written in, preserved
// alongside its source text (spec §4.1 "Literals").
type IntBase int

const (
	Decimal IntBase = iota
	Hex
	Octal
	Binary
)

// IntLiteral payload preserves the literal's exact source text and base.
type IntLiteral struct {
	Text string
	Base IntBase
}

func (IntLiteral) isPayload() {}

// FloatLiteral payload preserves the literal's exact source text.
type FloatLiteral struct {
	Text string
}

func (FloatLiteral) isPayload() {}

// CharLiteral payload carries the resolved code point.
type CharLiteral struct {
	Value rune
}

func (CharLiteral) isPayload() {}

// StringLiteral payload carries the interned, escape-resolved value.
type StringLiteral struct {
	Value *Interned
}

func (StringLiteral) isPayload() {}

// AttributeArg payload carries an attribute's optional reason string
// (spec §6: deprecated/nodiscard accept a string argument).
type AttributeArg struct {
	Reason    *Interned
	HasReason bool
}

func (AttributeArg) isPayload() {}

// DefinePayload is #define name(params?) body? (spec §3).
type DefinePayload struct {
	Name      *Interned
	Params    []*Interned
	HasParams bool // true even for an empty () parameter list
	Body      []Token
	HasBody   bool
}

func (DefinePayload) isPayload() {}

// IncludePayload is #include "…" or #include <…>.
type IncludePayload struct {
	Path   string
	Angled bool
}

func (IncludePayload) isPayload() {}

// IfPayload is #if cond / #elif cond, body captured up to the matching
// closer (spec §4.1).
type IfPayload struct {
	Cond []Token
	Body []Token
}

func (IfPayload) isPayload() {}

// IfdefPayload is #ifdef/#ifndef/#elifdef/#elifndef name, body.
type IfdefPayload struct {
	Name     *Interned
	Negated  bool // true for #ifndef / #elifndef
	Body     []Token
}

func (IfdefPayload) isPayload() {}

// ElsePayload is #else, body up to #endif.
type ElsePayload struct {
	Body []Token
}

func (ElsePayload) isPayload() {}

// EndifPayload is #endif; it carries nothing but closes the group.
type EndifPayload struct{}

func (EndifPayload) isPayload() {}

// EmbedPayload is #embed "…" with its deferred parameter list (spec §4.1
// "parameter list (limit, prefix, suffix, if_empty) deferred").
type EmbedPayload struct {
	Path    string
	Angled  bool
	Limit   *int
	Prefix  []Token
	Suffix  []Token
	IfEmpty []Token
}

func (EmbedPayload) isPayload() {}

// MessagePayload is #error msg / #warning msg (remainder-of-line).
type MessagePayload struct {
	Message string
}

func (MessagePayload) isPayload() {}

// UndefPayload is #undef name.
type UndefPayload struct {
	Name *Interned
}

func (UndefPayload) isPayload() {}

// LinePayload is #line lineno file?.
type LinePayload struct {
	LineNo int
	File   *string
}

func (LinePayload) isPayload() {}

// PragmaPayload is #pragma …, consumed to end of logical line into an
// opaque token (spec §9 open question: "treat it as consume to end of
// line into an opaque token until defined").
type PragmaPayload struct {
	Text string
}

func (PragmaPayload) isPayload() {}

// MacroParamPayload replaces an identifier matching a macro parameter
// name inside a #define body (spec §4.1).
type MacroParamPayload struct {
	Index int
}

func (MacroParamPayload) isPayload() {}

// MacroDefinedPayload is produced for `defined(name)` / `defined name`
// inside a PREPROCESSOR_COND context (spec §4.1).
type MacroDefinedPayload struct {
	Name *Interned
}

func (MacroDefinedPayload) isPayload() {}
