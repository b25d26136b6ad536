package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
)

// parseFields implements spec §4.2 "Fields": `field-declaration ;` until
// `}`. Each declaration is `pre_data_type declarator (: bit_width)? (,
// declarator (: bit_width)?)* ;`. Nested anonymous/named struct and union
// types embed their sub-graph directly into the containing graph.
func (p *Parser) parseFields() *ast.FieldGraph {
	p.expect(token.LBRACE)
	graph := ast.NewFieldGraph()

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		p.parseFieldDecl(graph, ast.FieldID(-1))
		p.expect(token.SEMICOLON)
	}
	p.expect(token.RBRACE)
	return graph
}

func (p *Parser) parseFieldDecl(graph *ast.FieldGraph, parent ast.FieldID) {
	base := p.parsePreDataType()

	if sub := nestedFieldGraph(base); sub != nil && p.at(token.SEMICOLON) {
		name := nestedFieldGraphName(base)
		if _, ok := graph.AddGroup(name, sub, parent); !ok {
			p.errorf(cierr.DuplicateField, p.here(), "duplicate field name %q", name.String())
		}
		return
	}

	for {
		decl := p.parseDeclarator(base)

		var bitWidth *int64
		if _, ok := p.match(token.COLON); ok {
			expr := p.parseExpr()
			if w, ok := p.constEval.EvalInt(expr); ok && w >= 0 {
				bitWidth = &w
			} else {
				p.errorf(cierr.ExpectedToken, p.here(), "bit-field width must be a non-negative constant expression")
			}
		}

		if _, ok := graph.AddField(decl.Name, decl.DataType, bitWidth, parent); !ok {
			p.errorf(cierr.DuplicateField, p.here(), "duplicate field name %q", decl.Name.String())
		}

		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
}

// nestedFieldGraph/nestedFieldGraphName recognize an anonymous or named
// struct/union embedded directly as a field (no declarator following it
// before the `;`), per spec §4.2's "nested anonymous and named struct/
// union types embed their sub-graph into the containing graph".
func nestedFieldGraph(dt ast.DataType) *ast.FieldGraph {
	switch n := dt.(type) {
	case *ast.Struct:
		return n.Fields
	case *ast.Union:
		return n.Fields
	}
	return nil
}

func nestedFieldGraphName(dt ast.DataType) *token.Interned {
	switch n := dt.(type) {
	case *ast.Struct:
		return n.Name
	case *ast.Union:
		return n.Name
	}
	return nil
}
