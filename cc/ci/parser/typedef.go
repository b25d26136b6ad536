package parser

import (
	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// parseTypedef rewrites an in-progress declaration into a typedef
// declaration once storage class includes `typedef` (spec §4.2
// "Typedef"). Typedef combined with any other storage class, or carrying
// an initializer, is rejected.
func (p *Parser) parseTypedef(decl Declarator, storage ast.StorageClass, hasInit bool, r loc.Range) *ast.TypedefDecl {
	if hasInit {
		p.errorf(cierr.ExpectedToken, r, "typedef declaration cannot have an initializer")
	}
	if storage&^ast.StorageTypedef != 0 {
		p.errorf(cierr.DuplicateStorageClass, r, "typedef cannot be combined with another storage class")
	}

	td := &ast.TypedefDecl{Rg: r, Name: decl.Name, DataType: cloneDataType(decl.DataType)}
	if ok := p.scope.AddTypedef(td); !ok {
		p.errorf(cierr.RedefinedBuiltin, r, "typedef %q redeclared in this scope", decl.Name.String())
	}
	return td
}

// cloneDataType performs the shallow-to-deep clone spec §4.2 implies by
// "carrying a cloned type": since every concrete ast.DataType kind here is
// an immutable-after-construction value once produced by the parser (the
// parser never mutates a DataType after returning it from a production),
// a clone recreates the outer node (and, for pointers and arrays, the
// chain of pointee/element nodes beneath it) so a later qualifier change
// (e.g. from a subsequent use-site `const`) never aliases back into the
// typedef's own stored type.
func cloneDataType(dt ast.DataType) ast.DataType {
	switch n := dt.(type) {
	case *ast.Builtin:
		c := *n
		return &c
	case *ast.Void:
		c := *n
		return &c
	case *ast.NullptrT:
		c := *n
		return &c
	case *ast.TypedefRef:
		c := *n
		return &c
	case *ast.Struct:
		c := *n
		return &c
	case *ast.Union:
		c := *n
		return &c
	case *ast.Enum:
		c := *n
		return &c
	case *ast.Pointer:
		c := *n
		c.Pointee = cloneDataType(n.Pointee)
		return &c
	case *ast.Array:
		c := *n
		c.Element = cloneDataType(n.Element)
		return &c
	case *ast.Function:
		c := *n
		c.Params = append([]ast.Param(nil), n.Params...)
		return &c
	case *ast.Generic:
		c := *n
		return &c
	default:
		return dt
	}
}
