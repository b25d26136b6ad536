package parser

import "github.com/thelilylang/lily/cc/ci/ast"

// SubstituteDataType implements spec §4.2 "Generic substitution": given a
// type containing generic(name) nodes and two parallel generic-parameter
// lists (declared, called), it replaces each generic by the i-th called
// argument, where i is the index of name in declared. Struct/union field
// sub-graphs are rewritten too. If no generic appears anywhere in dt, dt
// is returned unchanged by shared reference (no copy), exactly as spec
// requires.
func SubstituteDataType(dt ast.DataType, declared []string, called []ast.DataType) ast.DataType {
	if !containsGeneric(dt, declared) {
		return dt
	}
	return substitute(dt, declared, called)
}

func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func containsGeneric(dt ast.DataType, declared []string) bool {
	switch n := dt.(type) {
	case *ast.Generic:
		_, ok := indexOf(declared, n.Name.String())
		return ok
	case *ast.Pointer:
		return containsGeneric(n.Pointee, declared)
	case *ast.Array:
		return containsGeneric(n.Element, declared)
	case *ast.Function:
		if containsGeneric(n.Return, declared) {
			return true
		}
		for _, param := range n.Params {
			if param.Type != nil && containsGeneric(param.Type, declared) {
				return true
			}
		}
		return false
	case *ast.TypedefRef:
		for _, g := range n.Generics {
			if containsGeneric(g, declared) {
				return true
			}
		}
		return false
	case *ast.Struct:
		return fieldGraphContainsGeneric(n.Fields, declared)
	case *ast.Union:
		return fieldGraphContainsGeneric(n.Fields, declared)
	default:
		return false
	}
}

func fieldGraphContainsGeneric(g *ast.FieldGraph, declared []string) bool {
	if g == nil {
		return false
	}
	for _, id := range g.Roots() {
		_, dt, kind, ok := g.Get(id)
		if !ok {
			continue
		}
		if kind == ast.FieldGroup {
			if sub, ok := g.Group(id); ok && fieldGraphContainsGeneric(sub, declared) {
				return true
			}
			continue
		}
		if dt != nil && containsGeneric(dt, declared) {
			return true
		}
	}
	return false
}

func substitute(dt ast.DataType, declared []string, called []ast.DataType) ast.DataType {
	switch n := dt.(type) {
	case *ast.Generic:
		if i, ok := indexOf(declared, n.Name.String()); ok && i < len(called) {
			return called[i]
		}
		return n
	case *ast.Pointer:
		c := *n
		c.Pointee = substitute(n.Pointee, declared, called)
		return &c
	case *ast.Array:
		c := *n
		c.Element = substitute(n.Element, declared, called)
		return &c
	case *ast.Function:
		c := *n
		c.Return = substitute(n.Return, declared, called)
		c.Params = make([]ast.Param, len(n.Params))
		for i, param := range n.Params {
			c.Params[i] = param
			if param.Type != nil {
				c.Params[i].Type = substitute(param.Type, declared, called)
			}
		}
		return &c
	case *ast.TypedefRef:
		c := *n
		c.Generics = make([]ast.DataType, len(n.Generics))
		for i, g := range n.Generics {
			c.Generics[i] = substitute(g, declared, called)
		}
		return &c
	case *ast.Struct:
		c := *n
		c.Fields = substituteFieldGraph(n.Fields, declared, called)
		return &c
	case *ast.Union:
		c := *n
		c.Fields = substituteFieldGraph(n.Fields, declared, called)
		return &c
	default:
		return dt
	}
}

func substituteFieldGraph(g *ast.FieldGraph, declared []string, called []ast.DataType) *ast.FieldGraph {
	if g == nil {
		return nil
	}
	out := ast.NewFieldGraph()
	copyFieldsInto(out, g, ast.FieldID(-1), declared, called)
	return out
}

func copyFieldsInto(dst, src *ast.FieldGraph, parent ast.FieldID, declared []string, called []ast.DataType) {
	for _, id := range src.Roots() {
		name, dt, kind, ok := src.Get(id)
		if !ok {
			continue
		}
		if kind == ast.FieldGroup {
			sub, _ := src.Group(id)
			dst.AddGroup(name, substituteFieldGraph(sub, declared, called), parent)
			continue
		}
		var bitWidth *int64
		if w, ok := src.BitWidth(id); ok {
			bitWidth = &w
		}
		dst.AddField(name, substitute(dt, declared, called), bitWidth, parent)
	}
}
