package ast

import (
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/loc"
)

// Decl is the tagged variant spec §3 "Declaration (CI)" describes: a
// name bound in a Scope, together with whatever syntactic shape
// produced it. IsPrototype distinguishes a forward/extern declaration
// (no body, no initializer) from a definition, which the checker
// needs to decide whether a later definition is allowed to follow it.
type Decl interface {
	Range() loc.Range
	IsPrototype() bool
}

// VariableDecl is `name, data_type, storage_class, initializer?` (spec
// §3). Initializer is an opaque expression handle owned by the parser
// package; ast only needs to know whether one is present.
type VariableDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType DataType
	Storage  StorageClass
	HasInit  bool
}

func (d *VariableDecl) Range() loc.Range   { return d.Rg }
func (d *VariableDecl) IsPrototype() bool  { return d.Storage.Has(StorageExtern) && !d.HasInit }

// FunctionDecl is `name, data_type (a Function), body?` (spec §3).
// HasBody is false for a prototype.
type FunctionDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType *Function
	HasBody  bool
}

func (d *FunctionDecl) Range() loc.Range  { return d.Rg }
func (d *FunctionDecl) IsPrototype() bool { return !d.HasBody }

// StructDecl is `name?, data_type (a Struct)` (spec §3). A struct
// declaration with no Fields on its DataType is itself a forward
// declaration.
type StructDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType *Struct
}

func (d *StructDecl) Range() loc.Range  { return d.Rg }
func (d *StructDecl) IsPrototype() bool { return d.DataType.Fields == nil }

// UnionDecl mirrors StructDecl for `union` (spec §3).
type UnionDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType *Union
}

func (d *UnionDecl) Range() loc.Range  { return d.Rg }
func (d *UnionDecl) IsPrototype() bool { return d.DataType.Fields == nil }

// EnumDecl is `name?, data_type (an Enum)` (spec §3).
type EnumDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType *Enum
}

func (d *EnumDecl) Range() loc.Range  { return d.Rg }
func (d *EnumDecl) IsPrototype() bool { return len(d.DataType.Variants) == 0 }

// EnumVariantDecl binds one enum member's name inside the enclosing
// scope's enum-variant table (spec §3's scope description lists enum
// variants as their own flat symbol table, distinct from the Enum
// type itself).
type EnumVariantDecl struct {
	Rg      loc.Range
	Name    *token.Interned
	Owner   *Enum
	Variant EnumVariant
}

func (d *EnumVariantDecl) Range() loc.Range  { return d.Rg }
func (d *EnumVariantDecl) IsPrototype() bool { return false }

// TypedefDecl is `name, data_type (the aliased type)` (spec §3).
type TypedefDecl struct {
	Rg       loc.Range
	Name     *token.Interned
	DataType DataType
}

func (d *TypedefDecl) Range() loc.Range  { return d.Rg }
func (d *TypedefDecl) IsPrototype() bool { return false }

// LabelDecl is a `goto` target (spec §3's scope description lists
// labels as their own flat table, function-body scoped).
type LabelDecl struct {
	Rg   loc.Range
	Name *token.Interned
}

func (d *LabelDecl) Range() loc.Range  { return d.Rg }
func (d *LabelDecl) IsPrototype() bool { return false }
