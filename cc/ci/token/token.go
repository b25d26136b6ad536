package token

import "github.com/thelilylang/lily/loc"

// Token is a single lexeme in the stream produced by the scanner (spec §3
// "Token"). Every token carries its Kind, the Range it spans, and a
// kind-specific Payload (nil for punctuation, operators and plain
// keywords).
type Token struct {
	Kind    Kind
	Loc     loc.Range
	Payload Payload
}

// New builds a plain token with no payload (punctuation, operators, and
// unfused/fused keywords).
func New(kind Kind, r loc.Range) Token {
	return Token{Kind: kind, Loc: r}
}

// WithPayload builds a token carrying a kind-specific payload.
func WithPayload(kind Kind, r loc.Range, p Payload) Token {
	return Token{Kind: kind, Loc: r, Payload: p}
}

// IsKeyword reports whether k names one of the (possibly fused) C
// keywords.
func (t Token) IsKeyword() bool {
	_, ok := keywordSpellings[t.Kind]
	return ok || t.Kind == KEYWORD_NULLPTR_T
}

// IsPreprocessor reports whether t is one of the structured preprocessor
// token kinds (spec §3 "Preprocessor tokens").
func (t Token) IsPreprocessor() bool {
	switch t.Kind {
	case PP_DEFINE, PP_UNDEF, PP_INCLUDE, PP_EMBED, PP_IF, PP_IFDEF, PP_IFNDEF,
		PP_ELIF, PP_ELIFDEF, PP_ELIFNDEF, PP_ELSE, PP_ENDIF, PP_ERROR, PP_WARNING,
		PP_LINE, PP_PRAGMA, PP_MACRO_PARAM, PP_MACRO_DEFINED:
		return true
	default:
		return false
	}
}

// IsAttribute reports whether t names a recognized standard attribute.
func (t Token) IsAttribute() bool {
	switch t.Kind {
	case ATTRIBUTE_DEPRECATED, ATTRIBUTE_FALLTHROUGH, ATTRIBUTE_MAYBE_UNUSED,
		ATTRIBUTE_NODISCARD, ATTRIBUTE_NORETURN, ATTRIBUTE__NORETURN,
		ATTRIBUTE_UNSEQUENCED, ATTRIBUTE_REPRODUCIBLE:
		return true
	default:
		return false
	}
}

// Identifier returns the interned name carried by a token whose payload is
// an Identifier (an IDENTIFIER, or the AT token of an `@name` reference),
// or (nil, false) for any other token.
func (t Token) Identifier() (*Interned, bool) {
	if id, ok := t.Payload.(Identifier); ok {
		return id.Name, true
	}
	return nil, false
}

func (t Token) String() string {
	switch p := t.Payload.(type) {
	case Identifier:
		return p.Name.String()
	case IntLiteral:
		return p.Text
	case FloatLiteral:
		return p.Text
	case StringLiteral:
		return p.Value.String()
	default:
		return t.Kind.String()
	}
}
