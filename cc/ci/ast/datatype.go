// Package ast implements the CI front end's syntactic data model (spec
// §3): the data-type lattice the parser builds declarators into, flag
// bitsets, the struct/union field graph, declarations, and scopes.
package ast

import (
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/loc"
)

// DataType is the tagged variant spec §3 "Data type (syntactic, CI)"
// describes, generalizing the teacher's AstNode interface
// (legacy/grammar_ast.go) from a half-dozen grammar node kinds to the C
// dialect's full type lattice. Every concrete kind carries its own Quals
// and Ctx bitset fields; they aren't part of the interface and are
// reached via a type switch instead, matching how the teacher leaves
// node-specific fields off AstNode.
type DataType interface {
	Range() loc.Range
	Accept(Visitor) error
	Equal(DataType) bool
}

// Visitor lets callers traverse a DataType tree without a type switch at
// every call site, mirroring legacy/grammar_ast_visitor.go's AstNodeVisitor.
type Visitor interface {
	VisitBuiltin(*Builtin) error
	VisitVoid(*Void) error
	VisitNullptrT(*NullptrT) error
	VisitTypedefRef(*TypedefRef) error
	VisitStruct(*Struct) error
	VisitUnion(*Union) error
	VisitEnum(*Enum) error
	VisitPointer(*Pointer) error
	VisitArray(*Array) error
	VisitFunction(*Function) error
	VisitGeneric(*Generic) error
}

// Builtin is a scalar kind (spec §3: "one tag per C scalar width/sign,
// including complex/imaginary/decimal"). Kind is the scanner's token.Kind
// for the (already-fused) keyword, e.g. token.KEYWORD_UNSIGNED_LONG_INT.
type Builtin struct {
	Rg    loc.Range
	Quals Qualifier
	Ctx   Context
	Kind  token.Kind
}

func NewBuiltin(kind token.Kind, r loc.Range) *Builtin { return &Builtin{Rg: r, Kind: kind} }

func (n *Builtin) Range() loc.Range       { return n.Rg }
func (n *Builtin) Accept(v Visitor) error { return v.VisitBuiltin(n) }

func (n *Builtin) Equal(o DataType) bool {
	other, ok := o.(*Builtin)
	return ok && other.Kind == n.Kind
}

// Void is the `void` builtin (spec §3).
type Void struct {
	Rg    loc.Range
	Quals Qualifier
	Ctx   Context
}

func NewVoid(r loc.Range) *Void           { return &Void{Rg: r} }
func (n *Void) Range() loc.Range          { return n.Rg }
func (n *Void) Accept(v Visitor) error    { return v.VisitVoid(n) }
func (n *Void) Equal(o DataType) bool     { _, ok := o.(*Void); return ok }

// NullptrT is the `nullptr_t` builtin (spec §3).
type NullptrT struct {
	Rg    loc.Range
	Quals Qualifier
	Ctx   Context
}

func NewNullptrT(r loc.Range) *NullptrT    { return &NullptrT{Rg: r} }
func (n *NullptrT) Range() loc.Range       { return n.Rg }
func (n *NullptrT) Accept(v Visitor) error { return v.VisitNullptrT(n) }
func (n *NullptrT) Equal(o DataType) bool  { _, ok := o.(*NullptrT); return ok }

// TypedefRef is a reference to a previously declared typedef name, with
// optional generic arguments (spec §3 `typedef(name, generic_args?)`).
type TypedefRef struct {
	Rg       loc.Range
	Quals    Qualifier
	Ctx      Context
	Name     *token.Interned
	Generics []DataType
}

func NewTypedefRef(name *token.Interned, generics []DataType, r loc.Range) *TypedefRef {
	return &TypedefRef{Rg: r, Name: name, Generics: generics}
}

func (n *TypedefRef) Range() loc.Range       { return n.Rg }
func (n *TypedefRef) Accept(v Visitor) error { return v.VisitTypedefRef(n) }

func (n *TypedefRef) Equal(o DataType) bool {
	other, ok := o.(*TypedefRef)
	if !ok || other.Name.String() != n.Name.String() || len(other.Generics) != len(n.Generics) {
		return false
	}
	for i, g := range n.Generics {
		if !g.Equal(other.Generics[i]) {
			return false
		}
	}
	return true
}

// Struct is `struct(name?, generic_params?, fields?)` (spec §3). Fields
// is nil for a forward declaration / field-less use.
type Struct struct {
	Rg       loc.Range
	Quals    Qualifier
	Ctx      Context
	Name     *token.Interned // nil: anonymous
	Generics []*token.Interned
	Fields   *FieldGraph
}

func NewStruct(name *token.Interned, generics []*token.Interned, fields *FieldGraph, r loc.Range) *Struct {
	return &Struct{Rg: r, Name: name, Generics: generics, Fields: fields}
}

func (n *Struct) Range() loc.Range       { return n.Rg }
func (n *Struct) Accept(v Visitor) error { return v.VisitStruct(n) }

func (n *Struct) Equal(o DataType) bool {
	other, ok := o.(*Struct)
	if !ok {
		return false
	}
	if n.Name == nil || other.Name == nil {
		return n == other
	}
	return n.Name.String() == other.Name.String()
}

// Union is `union(name?, generic_params?, fields?)`, structurally the
// same shape as Struct (spec §3).
type Union struct {
	Rg       loc.Range
	Quals    Qualifier
	Ctx      Context
	Name     *token.Interned
	Generics []*token.Interned
	Fields   *FieldGraph
}

func NewUnion(name *token.Interned, generics []*token.Interned, fields *FieldGraph, r loc.Range) *Union {
	return &Union{Rg: r, Name: name, Generics: generics, Fields: fields}
}

func (n *Union) Range() loc.Range       { return n.Rg }
func (n *Union) Accept(v Visitor) error { return v.VisitUnion(n) }

func (n *Union) Equal(o DataType) bool {
	other, ok := o.(*Union)
	if !ok {
		return false
	}
	if n.Name == nil || other.Name == nil {
		return n == other
	}
	return n.Name.String() == other.Name.String()
}

// EnumVariant is one `name = value?` entry of an Enum.
type EnumVariant struct {
	Name     *token.Interned
	Value    int64
	HasValue bool
}

// Enum is `enum(name?, variants?, underlying?)` (spec §3).
type Enum struct {
	Rg         loc.Range
	Quals      Qualifier
	Ctx        Context
	Name       *token.Interned
	Variants   []EnumVariant
	Underlying DataType
}

func NewEnum(name *token.Interned, variants []EnumVariant, underlying DataType, r loc.Range) *Enum {
	return &Enum{Rg: r, Name: name, Variants: variants, Underlying: underlying}
}

func (n *Enum) Range() loc.Range       { return n.Rg }
func (n *Enum) Accept(v Visitor) error { return v.VisitEnum(n) }

func (n *Enum) Equal(o DataType) bool {
	other, ok := o.(*Enum)
	if !ok {
		return false
	}
	if n.Name == nil || other.Name == nil {
		return n == other
	}
	return n.Name.String() == other.Name.String()
}

// Pointer is `pointer(pointee, qualifier, context)` (spec §3).
type Pointer struct {
	Rg      loc.Range
	Quals   Qualifier
	Ctx     Context
	Pointee DataType
}

func NewPointer(pointee DataType, r loc.Range) *Pointer { return &Pointer{Rg: r, Pointee: pointee} }

func (n *Pointer) Range() loc.Range       { return n.Rg }
func (n *Pointer) Accept(v Visitor) error { return v.VisitPointer(n) }

func (n *Pointer) Equal(o DataType) bool {
	other, ok := o.(*Pointer)
	return ok && n.Pointee.Equal(other.Pointee)
}

// ArraySizeKind distinguishes a sized array (with an optional constant
// expression, evaluated externally per spec §1 scope) from an unsized
// (flexible) one.
type ArraySizeKind int

const (
	ArraySized ArraySizeKind = iota
	ArrayUnsized
)

// Array is `array(element, kind, name?, static_flag, qualifier)` (spec
// §3).
type Array struct {
	Rg       loc.Range
	Quals    Qualifier
	Ctx      Context
	Element  DataType
	SizeKind ArraySizeKind
	Size     int64
	Name     *token.Interned
	Static   bool
}

func NewArray(elem DataType, sk ArraySizeKind, size int64, r loc.Range) *Array {
	return &Array{Rg: r, Element: elem, SizeKind: sk, Size: size}
}

func (n *Array) Range() loc.Range       { return n.Rg }
func (n *Array) Accept(v Visitor) error { return v.VisitArray(n) }

func (n *Array) Equal(o DataType) bool {
	other, ok := o.(*Array)
	if !ok || n.SizeKind != other.SizeKind {
		return false
	}
	if n.SizeKind == ArraySized && n.Size != other.Size {
		return false
	}
	return n.Element.Equal(other.Element)
}

// Param is one function-declarator parameter.
type Param struct {
	Type     DataType
	Name     *token.Interned // nil for an unnamed parameter
	Variadic bool
}

// Function is `function(name?, params, return, generic_params?,
// parent_scope)` (spec §3).
type Function struct {
	Rg       loc.Range
	Quals    Qualifier
	Ctx      Context
	Name     *token.Interned
	Params   []Param
	Return   DataType
	Generics []*token.Interned
	Scope    *Scope
}

func NewFunction(name *token.Interned, params []Param, ret DataType, r loc.Range) *Function {
	return &Function{Rg: r, Name: name, Params: params, Return: ret}
}

func (n *Function) Range() loc.Range       { return n.Rg }
func (n *Function) Accept(v Visitor) error { return v.VisitFunction(n) }

func (n *Function) Equal(o DataType) bool {
	other, ok := o.(*Function)
	if !ok || len(n.Params) != len(other.Params) || !n.Return.Equal(other.Return) {
		return false
	}
	for i, p := range n.Params {
		if !p.Type.Equal(other.Params[i].Type) {
			return false
		}
	}
	return true
}

// Generic is `generic(name)`, a reference to a declared generic-parameter
// name (spec §3, §4.2 "a generic type parameter reference").
type Generic struct {
	Rg    loc.Range
	Quals Qualifier
	Ctx   Context
	Name  *token.Interned
}

func NewGeneric(name *token.Interned, r loc.Range) *Generic { return &Generic{Rg: r, Name: name} }

func (n *Generic) Range() loc.Range       { return n.Rg }
func (n *Generic) Accept(v Visitor) error { return v.VisitGeneric(n) }

func (n *Generic) Equal(o DataType) bool {
	other, ok := o.(*Generic)
	return ok && n.Name.String() == other.Name.String()
}
