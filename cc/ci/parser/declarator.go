package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// Declarator is the name, the fully-assembled type and any generic
// parameter names parseDeclarator produces for one comma-separated
// declarator (spec §4.2 "Declarator production").
type Declarator struct {
	Name     *token.Interned
	DataType ast.DataType
	Generics []*token.Interned
}

// parseDeclarator implements spec §4.2's four-step declarator grammar:
// pointer prefix, parenthesized sub-declarator (two-pass), name, and
// post-declarator (array/function suffixes).
func (p *Parser) parseDeclarator(base ast.DataType) Declarator {
	dt, ptrApplied := p.parsePointerPrefix(base)
	_ = ptrApplied

	if p.at(token.LPAREN) && !p.nextLooksLikeDataTypeOrClose() {
		return p.parseParenDeclarator(dt)
	}

	var name *token.Interned
	var generics []*token.Interned
	if t, ok := p.match(token.IDENTIFIER); ok {
		name, _ = t.Identifier()
		generics = p.parseOptionalGenericParamNames()
		if len(generics) > 0 && !p.storageClassFlag.IsTypedef() {
			p.errorf(cierr.GenericParamsNotExpected, p.here(), "generic parameters only allowed on typedef declarators")
		}
	}

	dt = p.parsePostDeclarator(dt)
	return Declarator{Name: name, DataType: dt, Generics: generics}
}

// nextLooksLikeDataTypeOrClose reports whether the token just inside a
// `(` is a data type or `)`, which rules out the parenthesized
// sub-declarator reading (spec: "if the next token is `(` and the
// following token is not a data type or `)`").
func (p *Parser) nextLooksLikeDataTypeOrClose() bool {
	save := p.cursor
	p.advance()
	looksType := p.looksLikeDataType() || p.at(token.RPAREN)
	p.cursor = save
	return looksType
}

// parsePointerPrefix consumes `* (qualifiers and contexts)*`, possibly
// repeated for multiple levels of pointer, wrapping base once per `*`.
// Contexts (`!name`) are accepted both before and after the qualifier run
// at each level (spec: "order-tolerant").
func (p *Parser) parsePointerPrefix(base ast.DataType) (ast.DataType, bool) {
	dt := base
	applied := false
	for {
		if _, ok := p.match(token.STAR); !ok {
			return dt, applied
		}
		applied = true
		ptr := ast.NewPointer(dt, p.here())
		p.consumePointerQualsAndContexts(ptr)
		dt = ptr
	}
}

func (p *Parser) consumePointerQualsAndContexts(ptr *ast.Pointer) {
	for {
		if q, ok := qualifierKeywords[p.peek().Kind]; ok {
			ptr.Quals.Add(q)
			p.advance()
			continue
		}
		if p.at(token.BANG) {
			p.parseContext(&ptr.Ctx)
			continue
		}
		return
	}
}

// parseContext consumes one `!identifier` context annotation, validating
// it against the recognized set and the mutual-exclusion rules (spec §3,
// §6 "Data-type contexts").
func (p *Parser) parseContext(ctx *ast.Context) {
	start := p.here()
	p.advance()
	name := p.expectIdentifier()
	c, ok := ast.LookupContext(name.String())
	if !ok {
		p.errorf(cierr.ExpectedToken, start, "unrecognized data-type context !%s", name.String())
		return
	}
	if !ctx.AddContext(c) {
		p.errorf(cierr.IncompatibleDataTypeContext, start, "context !%s is incompatible with an already-set context", name.String())
	}
}

// parseParenDeclarator implements the two-pass parenthesized
// sub-declarator scheme (spec §4.2 step 2): record the position after
// `(`, skip to the matching `)`, parse the post-declarator there against
// the outer base type, then rewind and recursively parse the declarator
// inside the parens using that post-declarator-wrapped type as the new
// base. This produces the correct outer-first nesting for shapes like
// "pointer to function returning array".
func (p *Parser) parseParenDeclarator(base ast.DataType) Declarator {
	p.expect(token.LPAREN)
	innerStart := p.cursor

	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		if depth > 0 {
			p.advance()
		}
	}
	p.expect(token.RPAREN)

	outer := p.parsePostDeclarator(base)

	afterClose := p.cursor
	p.cursor = innerStart
	inner := p.parseDeclarator(outer)
	p.cursor = afterClose

	return inner
}

// parsePostDeclarator parses zero or more array-bracket suffixes or a
// single function parameter list (spec §4.2 step 4). Multiple `[…][…]`
// suffixes recurse right-to-left so that `T[A][B]` nests as
// array-of-A-of-array-of-B-of-T.
func (p *Parser) parsePostDeclarator(base ast.DataType) ast.DataType {
	if p.at(token.LBRACKET) {
		return p.parseArrayDeclarator(base)
	}
	if p.at(token.LPAREN) {
		return p.parseFunctionDeclarator(base)
	}
	return base
}

// parseArrayDeclarator parses `[ static? qualifiers? expr? ]`, recursing
// for any further bracket suffix (spec §4.2 "Array declarator").
func (p *Parser) parseArrayDeclarator(elem ast.DataType) ast.DataType {
	start := p.here()
	p.expect(token.LBRACKET)

	static := false
	var quals ast.Qualifier
	for {
		if _, ok := p.match(token.KEYWORD_STATIC); ok {
			static = true
			continue
		}
		if q, ok := qualifierKeywords[p.peek().Kind]; ok {
			quals.Add(q)
			p.advance()
			continue
		}
		break
	}

	var arr *ast.Array
	if p.at(token.RBRACKET) {
		arr = ast.NewArray(elem, ast.ArrayUnsized, 0, loc.Range{})
	} else {
		expr := p.parseExpr()
		size, ok := p.constEval.EvalInt(expr)
		if !ok || size < 0 {
			p.errorf(cierr.ExpectedToken, start, "array size must be a non-negative constant expression")
			arr = ast.NewArray(elem, ast.ArrayUnsized, 0, loc.Range{})
		} else {
			arr = ast.NewArray(elem, ast.ArraySized, size, loc.Range{})
		}
	}
	arr.Static = static
	arr.Quals.Add(quals)
	p.expect(token.RBRACKET)
	arr.Rg = p.rangeFrom(start)

	arr.Element = p.parsePostDeclarator(elem)
	return arr
}

// parseFunctionDeclarator opens a new child scope and parses the
// parameter list; parameters with names are registered as variables in
// that scope so they're visible in the body (spec §4.2 "Function
// declarator").
func (p *Parser) parseFunctionDeclarator(ret ast.DataType) ast.DataType {
	start := p.here()
	p.expect(token.LPAREN)

	restore := p.enterScope(false)
	fnScope := p.scope
	defer restore()

	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		if _, ok := p.match(token.DOT_DOT_DOT); ok {
			params = append(params, ast.Param{Variadic: true})
			break
		}
		paramType := p.parsePreDataType()
		decl := p.parseDeclarator(paramType)
		params = append(params, ast.Param{Type: decl.DataType, Name: decl.Name})
		if decl.Name != nil {
			fnScope.AddVariable(&ast.VariableDecl{Rg: p.here(), Name: decl.Name, DataType: decl.DataType})
		}
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RPAREN)

	fn := ast.NewFunction(nil, params, ret, p.rangeFrom(start))
	fn.Scope = fnScope
	return fn
}
