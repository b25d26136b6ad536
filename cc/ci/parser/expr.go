package parser

import (
	"strconv"
	"strings"

	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// Expr is the parser's expression tree (spec §4.2 "Expressions"). CI only
// needs enough shape to feed the external ConstEvaluator/TypeInferrer and
// to drive the precedence-climbing parser itself; arithmetic and
// type-checking are both out of this package's scope (spec §1).
type Expr interface {
	Range() loc.Range
}

type base struct{ Rg loc.Range }

func (b base) Range() loc.Range { return b.Rg }

// IntLit/FloatLit/CharLit/StringLit mirror the scanner's literal payloads.
type IntLit struct {
	base
	Value int64
	Base  token.IntBase
}

type FloatLit struct {
	base
	Text string
}

type CharLit struct {
	base
	Value rune
}

type StringLit struct {
	base
	Value *token.Interned
}

// NullptrLit is the `nullptr` literal (spec §4.2 "Primary expressions").
type NullptrLit struct{ base }

// BoolLit is `true`/`false` (C23).
type BoolLit struct {
	base
	Value bool
}

// Ident is a bare name reference, with optional generic arguments (spec:
// "identifier + optional generic args + optional call parens").
type Ident struct {
	base
	Name     *token.Interned
	Generics []ast.DataType
}

// Call is a function call, `callee(args...)`. A callee matching a known
// intrinsic name is still represented as Call; classifying it as a
// built-in call is left to the checker (spec §1 scope).
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

// Cast is `(type) expr`.
type Cast struct {
	base
	To   ast.DataType
	Expr Expr
}

// Sizeof takes either an expression or a bare type name; Alignof takes a
// type name only.
type Sizeof struct {
	base
	Expr     Expr
	Type     ast.DataType
	IsType   bool
}

type Alignof struct {
	base
	Type ast.DataType
}

// HasFeature is `__has_feature(name)` (spec: "compile-time boolean based
// on configured standard/compiler").
type HasFeature struct {
	base
	Name string
}

// PredefinedMacro is one of `__DATE__ __FILE__ __LINE__ __TIME__`.
type PredefinedMacro struct {
	base
	Name string
}

// Unary is a prefix operator: `! & - + ~ * ++ --`.
type Unary struct {
	base
	Op      token.Kind
	Operand Expr
}

// Postfix is a suffix operator: `++ --`.
type Postfix struct {
	base
	Op      token.Kind
	Operand Expr
}

// Index is `base[index]`.
type Index struct {
	base
	Base  Expr
	Index Expr
}

// Member is `base.field` or `base->field`.
type Member struct {
	base
	Base    Expr
	Field   *token.Interned
	Arrow   bool
}

// Binary is a binary operator application, built by the precedence
// stack (spec: "classic operator-precedence stack").
type Binary struct {
	base
	Op    token.Kind
	Left  Expr
	Right Expr
}

// Assign is a compound or plain assignment.
type Assign struct {
	base
	Op    token.Kind
	Left  Expr
	Right Expr
}

// Ternary is `cond ? then : else`, right-associative (spec §4.2).
type Ternary struct {
	base
	Cond, Then, Else Expr
}

// InitItem is one entry of a brace-enclosed initializer list, with an
// optional designator (`.field =` / `[idx] =`).
type InitItem struct {
	Designator *token.Interned
	Index      Expr
	Value      Expr
}

// InitList is `{ item, item, ... }`, parsed only when allow_initialization
// is set (spec §4.2).
type InitList struct {
	base
	Items []InitItem
}

// binaryPrecedence implements the classic C operator-precedence table.
// Higher binds tighter. Assignment operators are handled separately
// (right-associative, lowest but for comma, which this grammar doesn't
// surface at the expression level since declarator lists use COMMA
// themselves).
var binaryPrecedence = map[token.Kind]int{
	token.PIPE_PIPE: 1,
	token.AMP_AMP:   2,
	token.PIPE:      3,
	token.CARET:     4,
	token.AMP:       5,
	token.EQ_EQ:     6, token.BANG_EQ: 6,
	token.LT: 7, token.GT: 7, token.LT_EQ: 7, token.GT_EQ: 7,
	token.LSHIFT: 8, token.RSHIFT: 8,
	token.PLUS: 9, token.MINUS: 9,
	token.STAR: 10, token.SLASH: 10, token.PERCENT: 10,
}

var assignOps = map[token.Kind]bool{
	token.EQ: true, token.PLUS_EQ: true, token.MINUS_EQ: true, token.STAR_EQ: true,
	token.SLASH_EQ: true, token.PERCENT_EQ: true, token.AMP_EQ: true, token.PIPE_EQ: true,
	token.CARET_EQ: true, token.LSHIFT_EQ: true, token.RSHIFT_EQ: true,
}

// parseExpr parses a full expression: assignment-level, which in turn
// recurses through the ternary and binary levels (spec: "the conditional
// ?: operator is... parsed at the outer expression level").
func (p *Parser) parseExpr() Expr {
	left := p.parseTernary()
	if assignOps[p.peek().Kind] {
		op := p.advance().Kind
		right := p.parseExpr()
		return &Assign{base: base{p.rangeFrom(left.Range())}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseTernary() Expr {
	start := p.here()
	cond := p.parseBinary(0)
	if _, ok := p.match(token.QUESTION); !ok {
		return cond
	}
	then := p.parseExpr()
	p.expect(token.COLON)
	els := p.parseExpr()
	return &Ternary{base: base{p.rangeFrom(start)}, Cond: cond, Then: then, Else: els}
}

// parseBinary is the precedence-climbing loop (spec: "each push re-reduces
// while top_op_precedence >= incoming_precedence").
func (p *Parser) parseBinary(minPrec int) Expr {
	left := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.advance().Kind
		right := p.parseBinary(prec + 1)
		left = &Binary{base: base{p.rangeFrom(left.Range())}, Op: op, Left: left, Right: right}
	}
}

var unaryOps = map[token.Kind]bool{
	token.BANG: true, token.AMP: true, token.MINUS: true, token.PLUS: true,
	token.TILDE: true, token.STAR: true, token.PLUS_PLUS: true, token.MINUS_MINUS: true,
}

func (p *Parser) parseUnary() Expr {
	start := p.here()
	if unaryOps[p.peek().Kind] {
		op := p.advance().Kind
		operand := p.parseUnary()
		return &Unary{base: base{p.rangeFrom(start)}, Op: op, Operand: operand}
	}
	if p.at(token.KEYWORD_SIZEOF) {
		return p.parseSizeof()
	}
	if _, ok := p.match(token.KEYWORD__ALIGNOF); ok {
		return p.parseAlignofBody(start)
	}
	if _, ok := p.match(token.KEYWORD_ALIGNOF); ok {
		return p.parseAlignofBody(start)
	}
	return p.parsePostfix()
}

func (p *Parser) parseSizeof() Expr {
	start := p.here()
	p.advance()
	if _, ok := p.match(token.LPAREN); ok {
		if p.looksLikeDataType() {
			dt := p.parsePreDataType()
			p.expect(token.RPAREN)
			return &Sizeof{base: base{p.rangeFrom(start)}, Type: dt, IsType: true}
		}
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return &Sizeof{base: base{p.rangeFrom(start)}, Expr: expr}
	}
	operand := p.parseUnary()
	return &Sizeof{base: base{p.rangeFrom(start)}, Expr: operand}
}

func (p *Parser) parseAlignofBody(start loc.Range) Expr {
	p.expect(token.LPAREN)
	dt := p.parsePreDataType()
	p.expect(token.RPAREN)
	return &Alignof{base: base{p.rangeFrom(start)}, Type: dt}
}

// parsePostfix handles `++ -- [idx] . ->` suffixes plus call parens on a
// primary expression (spec §4.2).
func (p *Parser) parsePostfix() Expr {
	start := p.here()
	e := p.parsePrimary()
	for {
		switch {
		case p.at(token.LBRACKET):
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACKET)
			e = &Index{base: base{p.rangeFrom(start)}, Base: e, Index: idx}
		case p.at(token.DOT) || p.at(token.ARROW):
			arrow := p.advance().Kind == token.ARROW
			field := p.expectIdentifier()
			e = &Member{base: base{p.rangeFrom(start)}, Base: e, Field: field, Arrow: arrow}
		case p.at(token.PLUS_PLUS) || p.at(token.MINUS_MINUS):
			op := p.advance().Kind
			e = &Postfix{base: base{p.rangeFrom(start)}, Op: op, Operand: e}
		case p.at(token.LPAREN):
			e = p.parseCallArgs(start, e)
		default:
			return e
		}
	}
}

func (p *Parser) parseCallArgs(start loc.Range, callee Expr) Expr {
	p.advance()
	var args []Expr
	if !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		for {
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
			args = append(args, p.parseExpr())
		}
	}
	p.expect(token.RPAREN)
	return &Call{base: base{p.rangeFrom(start)}, Callee: callee, Args: args}
}

func (p *Parser) parsePrimary() Expr {
	start := p.here()
	t := p.peek()

	switch t.Kind {
	case token.INT_LITERAL:
		p.advance()
		lit := t.Payload.(token.IntLiteral)
		digits := strings.NewReplacer("_", "", "'", "").Replace(lit.Text)
		v, _ := strconv.ParseInt(digits, 0, 64)
		return &IntLit{base: base{t.Loc}, Value: v, Base: lit.Base}
	case token.FLOAT_LITERAL:
		p.advance()
		lit := t.Payload.(token.FloatLiteral)
		if !isValidFloatText(lit.Text) {
			p.errorf(cierr.InvalidFloatLiteral, t.Loc, "invalid float literal %q", lit.Text)
		}
		return &FloatLit{base: base{t.Loc}, Text: lit.Text}
	case token.CHAR_LITERAL:
		p.advance()
		lit := t.Payload.(token.CharLiteral)
		return &CharLit{base: base{t.Loc}, Value: lit.Value}
	case token.STRING_LITERAL:
		p.advance()
		lit := t.Payload.(token.StringLiteral)
		return &StringLit{base: base{t.Loc}, Value: lit.Value}
	case token.KEYWORD_TRUE:
		p.advance()
		return &BoolLit{base: base{t.Loc}, Value: true}
	case token.KEYWORD_FALSE:
		p.advance()
		return &BoolLit{base: base{t.Loc}, Value: false}
	case token.KEYWORD_NULLPTR:
		p.advance()
		return &NullptrLit{base{t.Loc}}
	case token.LPAREN:
		return p.parseParenOrCast(start)
	case token.IDENTIFIER:
		switch name := identLikeName(t); name {
		case "__has_feature":
			return p.parseHasFeature(start)
		case "__DATE__", "__FILE__", "__LINE__", "__TIME__":
			p.advance()
			return &PredefinedMacro{base: base{t.Loc}, Name: name}
		default:
			return p.parseIdentExpr()
		}
	case token.LBRACE:
		if p.allowInitialization {
			return p.parseInitList()
		}
	}

	p.errorf(cierr.ExpectedToken, t.Loc, "unexpected token %s in expression", t.Kind)
	p.advance()
	return &IntLit{base: base{t.Loc}}
}

// identLikeName lets __has_feature and the predefined macros be
// recognized as identifiers without the scanner needing dedicated
// keyword kinds for them (spec lists them among primary expressions, not
// among the keyword table).
func identLikeName(t token.Token) string {
	if name, ok := t.Identifier(); ok {
		return name.String()
	}
	return ""
}

func (p *Parser) parseHasFeature(start loc.Range) Expr {
	p.advance()
	p.expect(token.LPAREN)
	name := ""
	if n, ok := p.match(token.IDENTIFIER); ok {
		if id, ok2 := n.Identifier(); ok2 {
			name = id.String()
		}
	}
	p.expect(token.RPAREN)
	return &HasFeature{base: base{p.rangeFrom(start)}, Name: name}
}

// parseParenOrCast disambiguates `(expr)` from `(type)expr` by checking
// whether what follows `(` looks like a data type (spec: "parenthesized
// expressions or cast-expressions when (type) is followed by an
// expression").
func (p *Parser) parseParenOrCast(start loc.Range) Expr {
	p.advance()
	if p.looksLikeDataType() {
		dt := p.parsePreDataType()
		p.expect(token.RPAREN)
		operand := p.parseUnary()
		return &Cast{base: base{p.rangeFrom(start)}, To: dt, Expr: operand}
	}
	e := p.parseExpr()
	p.expect(token.RPAREN)
	return e
}

func (p *Parser) parseIdentExpr() Expr {
	start := p.here()
	t := p.advance()
	name, _ := t.Identifier()

	var generics []ast.DataType
	if p.at(token.DOT) && p.peekAt(1).Kind == token.LBRACKET {
		p.advance()
		p.advance()
		for !p.at(token.RBRACKET) && !p.at(token.EOF) {
			generics = append(generics, p.parsePreDataType())
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RBRACKET)
	}

	ident := &Ident{base: base{p.rangeFrom(start)}, Name: name, Generics: generics}
	if !p.at(token.LPAREN) {
		return ident
	}
	return p.parseCallArgs(start, ident)
}

func (p *Parser) parseInitList() Expr {
	start := p.here()
	p.advance()
	var items []InitItem
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		items = append(items, p.parseInitItem())
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RBRACE)
	return &InitList{base: base{p.rangeFrom(start)}, Items: items}
}

func (p *Parser) parseInitItem() InitItem {
	var item InitItem
	if _, ok := p.match(token.DOT); ok {
		item.Designator = p.expectIdentifier()
		p.expect(token.EQ)
	} else if _, ok := p.match(token.LBRACKET); ok {
		item.Index = p.parseExpr()
		p.expect(token.RBRACKET)
		p.expect(token.EQ)
	}
	item.Value = p.parseExpr()
	return item
}

// isValidFloatText enforces spec's "at most one `.`" float validity check
// at the parser level (the scanner itself reports a second `.` or a second
// exponent marker; an exponent with no digits, such as `1e`, is reported
// by neither; this is the `..`-style shape check the spec explicitly
// calls out under primary expressions rather than lexing).
func isValidFloatText(s string) bool {
	dots := 0
	for _, r := range s {
		if r == '.' {
			dots++
		}
	}
	return dots <= 1
}
