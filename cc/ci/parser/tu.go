package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// Run parses the whole token stream as a sequence of top-level
// declarations, populating the scope passed to New and returning them in
// source order (spec §6 "Parser::run(resolved_tokens) -> populates
// ResultFile scope tree"). A function declarator immediately followed by
// `{` gets its body parsed; otherwise it's left as a prototype.
func (p *Parser) Run() []ast.Decl {
	var decls []ast.Decl
	for !p.at(token.EOF) {
		if d := p.parseExternalDecl(); d != nil {
			decls = append(decls, d...)
		}
	}
	return decls
}

func (p *Parser) parseExternalDecl() []ast.Decl {
	start := p.here()
	if _, ok := p.match(token.SEMICOLON); ok {
		return nil
	}
	if !p.looksLikeDataType() {
		// Not a recognizable top-level declaration starter; report and
		// skip one token to make forward progress (spec §4.2 "Failure
		// model": continue after advancing one token).
		p.errorf(cierr.ExpectedDataType, start, "expected a declaration, found %s", p.peek().Kind)
		p.advance()
		return nil
	}

	base := p.parsePreDataType()
	storage := p.storageClassFlag

	if p.at(token.SEMICOLON) {
		p.advance()
		if d := forwardDeclFor(base, p.rangeFrom(start)); d != nil {
			p.registerForwardDecl(d)
			return []ast.Decl{d}
		}
		return nil
	}

	var out []ast.Decl
	for {
		decl := p.parseDeclarator(base)
		r := p.rangeFrom(start)

		if storage.IsTypedef() {
			out = append(out, p.parseTypedef(decl, storage, false, r))
			if _, ok := p.match(token.COMMA); ok {
				continue
			}
			break
		}

		if fn, ok := decl.DataType.(*ast.Function); ok {
			fn.Name = decl.Name
			fd := &ast.FunctionDecl{Rg: r, Name: decl.Name, DataType: fn}
			p.scope.AddFunction(fd)
			if p.at(token.LBRACE) {
				restoreBody := p.enterFunctionBodyWithScope(fd, fn.Scope)
				p.parseBlock()
				restoreBody()
				fd.HasBody = true
				out = append(out, fd)
				return out
			}
			p.expect(token.SEMICOLON)
			out = append(out, fd)
			return out
		}

		hasInit := false
		if _, ok := p.match(token.EQ); ok {
			hasInit = true
			restore := p.enableAllowInitialization()
			p.parseExpr()
			restore()
		}
		vd := &ast.VariableDecl{Rg: r, Name: decl.Name, DataType: decl.DataType, Storage: storage, HasInit: hasInit}
		p.scope.AddVariable(vd)
		out = append(out, vd)

		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.SEMICOLON)
	return out
}

// enterFunctionBodyWithScope resumes parsing inside a function's own
// parameter scope (already created by parseFunctionDeclarator) rather
// than opening a fresh one, so parameters stay visible in the body (spec
// §4.2 "Function declarator... registered as variables in the function's
// child scope so they're visible in the body").
func (p *Parser) enterFunctionBodyWithScope(fd *ast.FunctionDecl, fnScope *ast.Scope) (restore func()) {
	prevBody, prevFlag, prevScope := p.funcBody, p.inFunctionBody, p.scope
	p.funcBody, p.inFunctionBody = fd, true
	fnScope.IsFunctionBody = true
	p.scope = fnScope
	return func() {
		p.funcBody, p.inFunctionBody, p.scope = prevBody, prevFlag, prevScope
	}
}

func (p *Parser) registerForwardDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.StructDecl:
		p.scope.AddStruct(n)
	case *ast.UnionDecl:
		p.scope.AddUnion(n)
	case *ast.EnumDecl:
		p.scope.AddEnum(n)
	}
}

// forwardDeclFor wraps a bare `struct S;` / `union U;` / `enum E;`
// forward declaration (no declarator followed) into its Decl form. Other
// base-type forms reaching a bare `;` (e.g. a stray `int;`) produce no
// declaration.
func forwardDeclFor(base ast.DataType, r loc.Range) ast.Decl {
	switch n := base.(type) {
	case *ast.Struct:
		return &ast.StructDecl{Rg: r, Name: n.Name, DataType: n}
	case *ast.Union:
		return &ast.UnionDecl{Rg: r, Name: n.Name, DataType: n}
	case *ast.Enum:
		return &ast.EnumDecl{Rg: r, Name: n.Name, DataType: n}
	default:
		return nil
	}
}
