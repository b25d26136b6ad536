package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// storageClassKeywords/qualifierKeywords classify the tokens
// parsePreDataType's leading loop consumes (spec §4.2 "consumes
// optionally-repeated storage classes/qualifiers").
var storageClassKeywords = map[token.Kind]ast.StorageClass{
	token.KEYWORD_AUTO:          ast.StorageAuto,
	token.KEYWORD_CONSTEXPR:     ast.StorageConstexpr,
	token.KEYWORD_EXTERN:        ast.StorageExtern,
	token.KEYWORD_INLINE:        ast.StorageInline,
	token.KEYWORD_REGISTER:      ast.StorageRegister,
	token.KEYWORD_STATIC:        ast.StorageStatic,
	token.KEYWORD_THREAD_LOCAL:  ast.StorageThreadLocal,
	token.KEYWORD__THREAD_LOCAL: ast.StorageThreadLocal,
	token.KEYWORD_TYPEDEF:       ast.StorageTypedef,
}

var qualifierKeywords = map[token.Kind]ast.Qualifier{
	token.KEYWORD_CONST:     ast.QualifierConst,
	token.KEYWORD_VOLATILE:  ast.QualifierVolatile,
	token.KEYWORD_RESTRICT:  ast.QualifierRestrict,
	token.KEYWORD__ATOMIC:   ast.QualifierAtomic,
	token.KEYWORD__NORETURN: ast.QualifierNoreturn,
}

// builtinKeywords is the set of (possibly fused) keyword kinds that denote
// a builtin scalar, covering both bare and fused forms from the scanner's
// fusion output; the resulting ast.Builtin keeps the token kind itself.
var builtinKeywords = map[token.Kind]bool{
	token.KEYWORD_CHAR: true, token.KEYWORD_INT: true, token.KEYWORD_FLOAT: true,
	token.KEYWORD_DOUBLE: true, token.KEYWORD__BOOL: true, token.KEYWORD_BOOL: true,
	token.KEYWORD_LONG_INT: true, token.KEYWORD_LONG_LONG_INT: true, token.KEYWORD_SHORT_INT: true,
	token.KEYWORD_SIGNED_CHAR: true, token.KEYWORD_SIGNED_SHORT_INT: true, token.KEYWORD_SIGNED_INT: true,
	token.KEYWORD_SIGNED_LONG_INT: true, token.KEYWORD_SIGNED_LONG_LONG_INT: true,
	token.KEYWORD_UNSIGNED_CHAR: true, token.KEYWORD_UNSIGNED_SHORT_INT: true,
	token.KEYWORD_UNSIGNED_INT: true, token.KEYWORD_UNSIGNED_LONG_INT: true,
	token.KEYWORD_UNSIGNED_LONG_LONG_INT: true, token.KEYWORD_LONG_DOUBLE: true,
	token.KEYWORD_LONG_DOUBLE_COMPLEX: true, token.KEYWORD_LONG_DOUBLE_IMAGINARY: true,
	token.KEYWORD_FLOAT_COMPLEX: true, token.KEYWORD_FLOAT_IMAGINARY: true,
	token.KEYWORD_DOUBLE_COMPLEX: true, token.KEYWORD_DOUBLE_IMAGINARY: true,
	token.KEYWORD_SHORT: true, token.KEYWORD_LONG: true, token.KEYWORD_SIGNED: true,
	token.KEYWORD_UNSIGNED: true, token.KEYWORD__COMPLEX: true, token.KEYWORD__IMAGINARY: true,
}

// looksLikeDataType reports whether the current token can start a
// pre-data-type production, used to disambiguate `(type)` casts from
// parenthesized expressions (spec §4.2 "Primary expressions").
func (p *Parser) looksLikeDataType() bool {
	t := p.peek()
	if _, ok := storageClassKeywords[t.Kind]; ok {
		return true
	}
	if _, ok := qualifierKeywords[t.Kind]; ok {
		return true
	}
	if builtinKeywords[t.Kind] {
		return true
	}
	switch t.Kind {
	case token.AT, token.KEYWORD_STRUCT, token.KEYWORD_UNION, token.KEYWORD_ENUM,
		token.KEYWORD_TYPEOF, token.KEYWORD_TYPEOF_UNQUAL, token.KEYWORD_VOID,
		token.KEYWORD_NULLPTR_T:
		return true
	case token.IDENTIFIER:
		if name, ok := t.Identifier(); ok {
			_, isTypedef := p.scope.LookupTypedef(name.String())
			return isTypedef
		}
	}
	return false
}

// parsePreDataType implements spec §4.2's pre-data-type production: a
// leading run of storage classes/qualifiers, one base-type form, then a
// trailing run of qualifiers/storage classes (C allows both `const int`
// and `int const`).
func (p *Parser) parsePreDataType() ast.DataType {
	start := p.here()
	storage, quals := p.consumeFlags()

	dt := p.parseBaseTypeForm(start)

	trailingStorage, trailingQuals := p.consumeFlags()
	storage |= trailingStorage
	quals |= trailingQuals

	p.storageClassFlag = storage
	p.dataTypeQualifierFlag = quals
	applyQualifiers(dt, quals)
	return dt
}

func (p *Parser) consumeFlags() (ast.StorageClass, ast.Qualifier) {
	var storage ast.StorageClass
	var quals ast.Qualifier
	for {
		if sc, ok := storageClassKeywords[p.peek().Kind]; ok {
			if storage.Has(sc) {
				p.errorf(cierr.DuplicateStorageClass, p.here(), "duplicate storage class %s", p.peek().Kind)
			}
			storage.Add(sc)
			p.advance()
			continue
		}
		if q, ok := qualifierKeywords[p.peek().Kind]; ok {
			quals.Add(q)
			p.advance()
			continue
		}
		return storage, quals
	}
}

func (p *Parser) parseBaseTypeForm(start loc.Range) ast.DataType {
	t := p.peek()

	switch {
	case builtinKeywords[t.Kind]:
		p.advance()
		return ast.NewBuiltin(t.Kind, t.Loc)
	case t.Kind == token.KEYWORD_VOID:
		p.advance()
		return ast.NewVoid(t.Loc)
	case t.Kind == token.KEYWORD_NULLPTR_T:
		p.advance()
		return ast.NewNullptrT(t.Loc)
	case t.Kind == token.AT:
		name := p.expectGenericName()
		return ast.NewGeneric(name, p.rangeFrom(start))
	case t.Kind == token.KEYWORD_STRUCT:
		return p.parseStructOrUnion(start, false)
	case t.Kind == token.KEYWORD_UNION:
		return p.parseStructOrUnion(start, true)
	case t.Kind == token.KEYWORD_ENUM:
		return p.parseEnum(start)
	case t.Kind == token.KEYWORD_TYPEOF || t.Kind == token.KEYWORD_TYPEOF_UNQUAL:
		return p.parseTypeof(start)
	case t.Kind == token.IDENTIFIER:
		return p.parseTypedefRef(start)
	default:
		p.errorf(cierr.ExpectedDataType, t.Loc, "expected a data type, found %s", t.Kind)
		p.advance()
		return ast.NewBuiltin(token.KEYWORD_INT, t.Loc)
	}
}

func (p *Parser) parseTypeof(start loc.Range) ast.DataType {
	unqual := p.advance().Kind == token.KEYWORD_TYPEOF_UNQUAL
	p.expect(token.LPAREN)
	expr := p.parseExpr()
	p.expect(token.RPAREN)
	if dt, ok := p.typeInfer.InferType(expr, unqual); ok {
		return dt
	}
	return ast.NewVoid(p.rangeFrom(start))
}

func (p *Parser) parseTypedefRef(start loc.Range) ast.DataType {
	name := p.expectIdentifier()
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
	return ast.NewTypedefRef(name, generics, p.rangeFrom(start))
}

// parseStructOrUnion handles `struct`/`union` with optional name, optional
// generic parameter list, and optional `{ fields }` (spec §4.2). When
// fields are present, the declaration is registered in the current scope.
func (p *Parser) parseStructOrUnion(start loc.Range, isUnion bool) ast.DataType {
	p.advance()

	var name *token.Interned
	if t, ok := p.match(token.IDENTIFIER); ok {
		name, _ = t.Identifier()
	}

	generics := p.parseOptionalGenericParamNames()

	var fields *ast.FieldGraph
	if p.at(token.LBRACE) {
		fields = p.parseFields()
	}

	r := p.rangeFrom(start)
	if isUnion {
		u := ast.NewUnion(name, generics, fields, r)
		if fields != nil {
			p.scope.AddUnion(&ast.UnionDecl{Rg: r, Name: name, DataType: u})
		}
		return u
	}
	s := ast.NewStruct(name, generics, fields, r)
	if fields != nil {
		p.scope.AddStruct(&ast.StructDecl{Rg: r, Name: name, DataType: s})
	}
	return s
}

// parseOptionalGenericParamNames parses the dialect's `.[ @a, @b ]`
// generic-parameter-name list used on struct/union/function declarators
// (spec §4.2 "Name: ... an optional .[…] generic-parameter list").
func (p *Parser) parseOptionalGenericParamNames() []*token.Interned {
	if !(p.at(token.DOT) && p.peekAt(1).Kind == token.LBRACKET) {
		return nil
	}
	p.advance()
	p.advance()
	var names []*token.Interned
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		names = append(names, p.expectGenericName())
		if _, ok := p.match(token.COMMA); !ok {
			break
		}
	}
	p.expect(token.RBRACKET)
	return names
}

func (p *Parser) parseEnum(start loc.Range) ast.DataType {
	p.advance()

	var name *token.Interned
	if t, ok := p.match(token.IDENTIFIER); ok {
		name, _ = t.Identifier()
	}

	var underlying ast.DataType
	if _, ok := p.match(token.COLON); ok {
		underlying = p.parsePreDataType()
	}

	var variants []ast.EnumVariant
	if _, ok := p.match(token.LBRACE); ok {
		next := int64(0)
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			vname := p.expectIdentifier()
			v := ast.EnumVariant{Name: vname}
			if _, ok := p.match(token.EQ); ok {
				expr := p.parseExpr()
				if val, ok := p.constEval.EvalInt(expr); ok {
					v.Value, v.HasValue = val, true
					next = val + 1
				}
			} else {
				v.Value, v.HasValue = next, true
				next++
			}
			variants = append(variants, v)
			if _, ok := p.match(token.COMMA); !ok {
				break
			}
		}
		p.expect(token.RBRACE)
	}

	r := p.rangeFrom(start)
	e := ast.NewEnum(name, variants, underlying, r)
	if len(variants) > 0 {
		decl := &ast.EnumDecl{Rg: r, Name: name, DataType: e}
		p.scope.AddEnum(decl)
		for _, v := range variants {
			p.scope.AddEnumVariant(&ast.EnumVariantDecl{Rg: r, Name: v.Name, Owner: e, Variant: v})
		}
	}
	return e
}

// applyQualifiers writes the accumulated qualifier bitset onto whichever
// concrete kind dt is, via a type switch since Quals is a plain field,
// not part of the DataType interface (see ast.DataType's doc comment).
func applyQualifiers(dt ast.DataType, q ast.Qualifier) {
	switch n := dt.(type) {
	case *ast.Builtin:
		n.Quals.Add(q)
	case *ast.Void:
		n.Quals.Add(q)
	case *ast.NullptrT:
		n.Quals.Add(q)
	case *ast.TypedefRef:
		n.Quals.Add(q)
	case *ast.Struct:
		n.Quals.Add(q)
	case *ast.Union:
		n.Quals.Add(q)
	case *ast.Enum:
		n.Quals.Add(q)
	case *ast.Pointer:
		n.Quals.Add(q)
	case *ast.Array:
		n.Quals.Add(q)
	case *ast.Function:
		n.Quals.Add(q)
	case *ast.Generic:
		n.Quals.Add(q)
	}
}
