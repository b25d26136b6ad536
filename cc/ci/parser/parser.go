// Package parser implements the CI front end's recursive-descent parser
// (spec §4.2): it consumes a resolved token stream (preprocessor expansion
// and conditional selection already performed upstream) and produces a
// declaration tree plus a scope tree for the translation unit.
package parser

import (
	"fmt"

	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
	"github.com/thelilylang/lily/standard"
)

// Parser holds the recursive-descent state spec §4.2's "Parser state"
// paragraph names one-to-one, generalizing the teacher's mutable
// BaseParser/Parser struct shape (legacy/base_parser.go, legacy/parser.go)
// from PEG backtracking over runes to token-stream recursive descent.
type Parser struct {
	tokens []token.Token
	cursor int
	prev   int

	std  standard.Standard
	sink cierr.Sink

	storageClassFlag       ast.StorageClass
	dataTypeQualifierFlag  ast.Qualifier

	inLabel             bool
	inFunctionBody      bool
	eatSemicolon        bool
	allowInitialization bool

	loopDepth   int
	switchDepth int

	scope       *ast.Scope
	funcBody    *ast.FunctionDecl

	interner      *token.Interner
	errorNamePool int

	constEval ConstEvaluator
	typeInfer TypeInferrer
}

// New builds a Parser over a resolved token stream. root is the
// translation unit's root scope (spec §6 "ResultFile... holds the scope
// tree").
func New(tokens []token.Token, std standard.Standard, sink cierr.Sink, root *ast.Scope, interner *token.Interner) *Parser {
	return &Parser{
		tokens:    tokens,
		std:       std,
		sink:      sink,
		scope:     root,
		interner:  interner,
		constEval: FailingConstEvaluator{},
		typeInfer: FailingTypeInferrer{},
	}
}

// SetConstEvaluator/SetTypeInferrer inject the external collaborators spec
// §1 scopes out of this module (constant-expression arithmetic,
// typeof/typeof_unqual inference). Defaults fail loudly rather than
// silently miscompiling, matching spec §9.
func (p *Parser) SetConstEvaluator(e ConstEvaluator) { p.constEval = e }
func (p *Parser) SetTypeInferrer(t TypeInferrer)     { p.typeInfer = t }

func (p *Parser) CountErrors() int   { return p.sink.CountErrors() }
func (p *Parser) CountWarnings() int { return p.sink.CountWarnings() }

// --- token cursor primitives ---

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) peek() token.Token {
	if p.cursor >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.cursor]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.cursor + offset
	if i < 0 || i >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	p.prev = p.cursor
	if p.cursor < len(p.tokens) {
		p.cursor++
	}
	return t
}

// match consumes and returns the current token if it has kind, reporting
// nothing and returning false otherwise.
func (p *Parser) match(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind, or reports cierr.ExpectedToken and
// returns the current token unconsumed (spec §4.2 "Failure model":
// unrecoverable shapes are reported and parsing usually continues after
// advancing one token).
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if t, ok := p.match(kind); ok {
		return t, true
	}
	got := p.peek()
	p.errorf(cierr.ExpectedToken, got.Loc, "expected %s, found %s", kind, got.Kind)
	return got, false
}

// expectIdentifier consumes an IDENTIFIER, or reports
// cierr.ExpectedIdentifier and synthesizes a unique `__error__{n}` name
// (spec §4.2 "error-name pool") so later analysis still has a name to key
// on.
func (p *Parser) expectIdentifier() *token.Interned {
	if t, ok := p.match(token.IDENTIFIER); ok {
		name, _ := t.Identifier()
		return name
	}
	got := p.peek()
	p.errorf(cierr.ExpectedIdentifier, got.Loc, "expected identifier, found %s", got.Kind)
	return p.syntheticName()
}

// expectGenericName consumes an `@name` token (scanned as a single AT
// token carrying the name in its Identifier payload, spec §4.1) and
// returns the name, synthesizing one on failure like expectIdentifier.
func (p *Parser) expectGenericName() *token.Interned {
	if t, ok := p.match(token.AT); ok {
		if name, ok2 := t.Identifier(); ok2 {
			return name
		}
	}
	got := p.peek()
	p.errorf(cierr.ExpectedIdentifier, got.Loc, "expected @name, found %s", got.Kind)
	return p.syntheticName()
}

func (p *Parser) syntheticName() *token.Interned {
	n := p.errorNamePool
	p.errorNamePool++
	return p.interner.Intern(fmt.Sprintf("__error__%d", n))
}

func (p *Parser) errorf(kind cierr.Kind, r loc.Range, format string, args ...interface{}) {
	p.sink.Emit(cierr.Errorf(kind, r, fmt.Sprintf(format, args...)))
}

// checkStandard reports cierr.RequiredCxxOrLater / cierr.FeatureRemovedInCxx
// for a declarator-level feature gated against the configured standard
// (token-level gating already happened in the scanner; this is for
// syntax the parser itself recognizes, e.g. a C99-only for-loop init
// declaration).
func (p *Parser) checkStandard(since, until standard.Standard, r loc.Range, feature string) bool {
	fd := standard.FeatureDescriptor{Since: since, Until: until}
	if fd.TooNew(p.std) {
		p.errorf(cierr.RequiredCxxOrLater, r, "%s requires %s or later", feature, since)
		return false
	}
	if fd.Removed(p.std) {
		p.errorf(cierr.FeatureRemovedInCxx, r, "%s was removed in %s", feature, until)
		return false
	}
	return true
}

func (p *Parser) here() loc.Range { return p.peek().Loc }

func (p *Parser) rangeFrom(start loc.Range) loc.Range {
	end := p.tokens[p.prev].Loc
	return start.Join(end)
}

// --- scoped-guard helpers (spec §9: "the asymmetric set/unset macros
// become scoped-guard objects that restore the prior value on drop") ---

func (p *Parser) enterScope(isFunctionBody bool) (restore func()) {
	prevScope := p.scope
	p.scope = ast.NewScope(prevScope)
	p.scope.IsFunctionBody = isFunctionBody
	return func() { p.scope = prevScope }
}

func (p *Parser) enterFunctionBody(fn *ast.FunctionDecl) (restore func()) {
	prevBody, prevFlag := p.funcBody, p.inFunctionBody
	p.funcBody, p.inFunctionBody = fn, true
	return func() { p.funcBody, p.inFunctionBody = prevBody, prevFlag }
}

func (p *Parser) enterLoop() (restore func()) {
	p.loopDepth++
	return func() { p.loopDepth-- }
}

func (p *Parser) enterSwitch() (restore func()) {
	p.switchDepth++
	return func() { p.switchDepth-- }
}

func (p *Parser) enableAllowInitialization() (restore func()) {
	prev := p.allowInitialization
	p.allowInitialization = true
	return func() { p.allowInitialization = prev }
}

func (p *Parser) disableAllowInitialization() (restore func()) {
	prev := p.allowInitialization
	p.allowInitialization = false
	return func() { p.allowInitialization = prev }
}
