package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
	"github.com/thelilylang/lily/standard"
)

// Stmt is the parser's statement tree (spec §4.2 "Statements and function
// bodies").
type Stmt interface {
	Range() loc.Range
}

type stmtBase struct{ Rg loc.Range }

func (b stmtBase) Range() loc.Range { return b.Rg }

type BlockStmt struct {
	stmtBase
	Body []Stmt
}

type ExprStmt struct {
	stmtBase
	Expr Expr
}

type EmptyStmt struct{ stmtBase }

type DeclStmt struct {
	stmtBase
	Decls []ast.Decl
}

type IfStmt struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil, a BlockStmt/IfStmt ("else if"), or another statement
}

type WhileStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	stmtBase
	Body Stmt
	Cond Expr
}

type ForStmt struct {
	stmtBase
	Init Stmt // DeclStmt, ExprStmt, or nil
	Cond Expr
	Step Expr
	Body Stmt
}

type SwitchStmt struct {
	stmtBase
	Cond Expr
	Body Stmt
}

type CaseStmt struct {
	stmtBase
	Value Expr
}

type DefaultStmt struct{ stmtBase }

type BreakStmt struct{ stmtBase }

type ContinueStmt struct{ stmtBase }

type GotoStmt struct {
	stmtBase
	Label *token.Interned
}

type LabelStmt struct {
	stmtBase
	Name *token.Interned
}

type ReturnStmt struct {
	stmtBase
	Value Expr // nil for a bare `return;`
}

// ParseFunctionBody parses `{ item* }` where each item is a statement, a
// declaration, an expression, or an empty `;` (spec §4.2 "A function body
// parses items in a loop"). Label-then-declaration is rejected: in_label
// is set after a label's `:` and cleared after the next item that is not
// itself a label.
func (p *Parser) ParseFunctionBody(fn *ast.FunctionDecl) *BlockStmt {
	restoreBody := p.enterFunctionBody(fn)
	defer restoreBody()
	restoreScope := p.enterScope(true)
	defer restoreScope()

	return p.parseBlock()
}

func (p *Parser) parseBlock() *BlockStmt {
	start := p.here()
	p.expect(token.LBRACE)

	var items []Stmt
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		items = append(items, p.parseBlockItem())
	}
	p.expect(token.RBRACE)
	return &BlockStmt{stmtBase{p.rangeFrom(start)}, items}
}

func (p *Parser) parseBlockItem() Stmt {
	wasInLabel := p.inLabel
	s := p.parseStatementOrDecl()
	if wasInLabel {
		if _, isDecl := s.(*DeclStmt); isDecl {
			p.errorf(cierr.VariableInLabel, s.Range(), "a declaration cannot immediately follow a label")
		}
	}
	if _, isLabel := s.(*LabelStmt); !isLabel {
		p.inLabel = false
	}
	return s
}

func (p *Parser) parseStatementOrDecl() Stmt {
	start := p.here()

	if _, ok := p.match(token.SEMICOLON); ok {
		return &EmptyStmt{stmtBase{p.rangeFrom(start)}}
	}
	if p.at(token.LBRACE) {
		return p.parseBlock()
	}
	if p.looksLikeDataType() {
		return p.parseDeclStmt()
	}

	switch p.peek().Kind {
	case token.KEYWORD_BREAK:
		return p.parseBreak()
	case token.KEYWORD_CONTINUE:
		return p.parseContinue()
	case token.KEYWORD_CASE:
		return p.parseCase()
	case token.KEYWORD_DEFAULT:
		return p.parseDefault()
	case token.KEYWORD_DO:
		return p.parseDoWhile()
	case token.KEYWORD_FOR:
		return p.parseFor()
	case token.KEYWORD_GOTO:
		return p.parseGoto()
	case token.KEYWORD_IF:
		return p.parseIf()
	case token.KEYWORD_RETURN:
		return p.parseReturn()
	case token.KEYWORD_SWITCH:
		return p.parseSwitch()
	case token.KEYWORD_WHILE:
		return p.parseWhile()
	}

	if p.at(token.IDENTIFIER) && p.peekAt(1).Kind == token.COLON {
		name, _ := p.advance().Identifier()
		p.advance()
		p.inLabel = true
		p.scope.AddLabel(&ast.LabelDecl{Rg: p.rangeFrom(start), Name: name})
		return &LabelStmt{stmtBase{p.rangeFrom(start)}, name}
	}

	restore := p.enableAllowInitialization()
	defer restore()
	expr := p.parseExpr()
	p.expect(token.SEMICOLON)
	return &ExprStmt{stmtBase{p.rangeFrom(start)}, expr}
}

func (p *Parser) parseDeclStmt() Stmt {
	start := p.here()
	base := p.parsePreDataType()
	storage := p.storageClassFlag

	var decls []ast.Decl
	for {
		decl := p.parseDeclarator(base)

		hasInit := false
		var restore func()
		if p.at(token.EQ) {
			restore = p.enableAllowInitialization()
		}
		if _, ok := p.match(token.EQ); ok {
			hasInit = true
			p.parseExpr()
		}
		if restore != nil {
			restore()
		}

		r := p.rangeFrom(start)
		if storage.IsTypedef() {
			decls = append(decls, p.parseTypedef(decl, storage, hasInit, r))
		} else if fn, ok := decl.DataType.(*ast.Function); ok {
			fd := &ast.FunctionDecl{Rg: r, Name: decl.Name, DataType: fn}
			p.scope.AddFunction(fd)
			decls = append(decls, fd)
		} else {
			vd := &ast.VariableDecl{Rg: r, Name: decl.Name, DataType: decl.DataType, Storage: storage, HasInit: hasInit}
			p.scope.AddVariable(vd)
			decls = append(decls, vd)
		}

		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.SEMICOLON)
	return &DeclStmt{stmtBase{p.rangeFrom(start)}, decls}
}

func (p *Parser) parseBreak() Stmt {
	start := p.here()
	p.advance()
	if p.loopDepth == 0 && p.switchDepth == 0 {
		p.errorf(cierr.UnexpectedBreak, start, "break outside of a loop or switch")
	}
	p.expect(token.SEMICOLON)
	return &BreakStmt{stmtBase{p.rangeFrom(start)}}
}

func (p *Parser) parseContinue() Stmt {
	start := p.here()
	p.advance()
	if p.loopDepth == 0 {
		p.errorf(cierr.UnexpectedContinue, start, "continue outside of a loop")
	}
	p.expect(token.SEMICOLON)
	return &ContinueStmt{stmtBase{p.rangeFrom(start)}}
}

func (p *Parser) parseCase() Stmt {
	start := p.here()
	p.advance()
	if p.switchDepth == 0 {
		p.errorf(cierr.UnexpectedCase, start, "case outside of a switch")
	}
	val := p.parseExpr()
	p.expect(token.COLON)
	p.inLabel = true
	return &CaseStmt{stmtBase{p.rangeFrom(start)}, val}
}

func (p *Parser) parseDefault() Stmt {
	start := p.here()
	p.advance()
	if p.switchDepth == 0 {
		p.errorf(cierr.UnexpectedDefault, start, "default outside of a switch")
	}
	p.expect(token.COLON)
	p.inLabel = true
	return &DefaultStmt{stmtBase{p.rangeFrom(start)}}
}

func (p *Parser) parseDoWhile() Stmt {
	start := p.here()
	p.advance()
	restore := p.enterLoop()
	body := p.parseStatementOrDecl()
	restore()
	p.expect(token.KEYWORD_WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return &DoWhileStmt{stmtBase{p.rangeFrom(start)}, body, cond}
}

func (p *Parser) parseWhile() Stmt {
	start := p.here()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	restore := p.enterLoop()
	body := p.parseStatementOrDecl()
	restore()
	return &WhileStmt{stmtBase{p.rangeFrom(start)}, cond, body}
}

// parseFor parses `for (init_clauses ; cond? ; steps) body`; a variable
// declaration init clause is only permitted at C99 or later (spec §4.2).
func (p *Parser) parseFor() Stmt {
	start := p.here()
	p.advance()
	p.expect(token.LPAREN)

	restoreScope := p.enterScope(false)
	defer restoreScope()

	var init Stmt
	if !p.at(token.SEMICOLON) {
		if p.looksLikeDataType() {
			p.checkStandard(standard.C99, standard.None, p.here(), "a for-loop init declaration")
			init = p.parseDeclStmt()
		} else {
			s := p.here()
			expr := p.parseExpr()
			p.expect(token.SEMICOLON)
			init = &ExprStmt{stmtBase{p.rangeFrom(s)}, expr}
		}
	} else {
		p.advance()
	}

	var cond Expr
	if !p.at(token.SEMICOLON) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMICOLON)

	var step Expr
	if !p.at(token.RPAREN) {
		step = p.parseExpr()
	}
	p.expect(token.RPAREN)

	restoreLoop := p.enterLoop()
	body := p.parseStatementOrDecl()
	restoreLoop()

	return &ForStmt{stmtBase{p.rangeFrom(start)}, init, cond, step, body}
}

func (p *Parser) parseGoto() Stmt {
	start := p.here()
	p.advance()
	name := p.expectIdentifier()
	p.expect(token.SEMICOLON)
	return &GotoStmt{stmtBase{p.rangeFrom(start)}, name}
}

// parseIf parses `if (...) body {else if} {else}`; `else if` chains
// through KEYWORD_ELSE_IF when the scanner fused it, or through a nested
// if-statement when it didn't (spec §4.1's fusion is opportunistic, not
// mandatory grammar).
func (p *Parser) parseIf() Stmt {
	start := p.here()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseStatementOrDecl()

	var els Stmt
	if _, ok := p.match(token.KEYWORD_ELSE); ok {
		els = p.parseStatementOrDecl()
	} else if p.at(token.KEYWORD_ELSE_IF) {
		// parseIf skips its leading keyword unexamined, so the fused
		// token starts a nested if that takes any further else-if/else.
		els = p.parseIf()
	}
	return &IfStmt{stmtBase{p.rangeFrom(start)}, cond, then, els}
}

func (p *Parser) parseReturn() Stmt {
	start := p.here()
	p.advance()
	var value Expr
	if !p.at(token.SEMICOLON) {
		value = p.parseExpr()
	}
	p.expect(token.SEMICOLON)
	return &ReturnStmt{stmtBase{p.rangeFrom(start)}, value}
}

func (p *Parser) parseSwitch() Stmt {
	start := p.here()
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	restore := p.enterSwitch()
	body := p.parseStatementOrDecl()
	restore()
	return &SwitchStmt{stmtBase{p.rangeFrom(start)}, cond, body}
}
