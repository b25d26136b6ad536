package checked

import "github.com/thelilylang/lily/loc"

// DataType is the tagged variant spec §3 "Checked data type (Lily)"
// describes, generalizing cc/ci/ast.DataType's own tagged-interface
// shape (ast/datatype.go) from CI's syntactic lattice to Lily's checked
// one. Every kind carries a location and an is_lock flag (§4.3): once
// locked, a type's shape is immutable except through the narrow
// Update/refinement paths this package exposes.
type DataType interface {
	Range() loc.Range
	Accept(Visitor) error
	Equal(DataType) bool
	KindOf() Kind
	Locked() bool
	Lock()
}

// Visitor traverses a DataType tree without a type switch at every call
// site, mirroring ast.Visitor.
type Visitor interface {
	VisitScalar(*Scalar) error
	VisitLenType(*LenType) error
	VisitArrayType(*ArrayType) error
	VisitWrapper(*Wrapper) error
	VisitCustom(*CustomType) error
	VisitLambda(*LambdaType) error
	VisitResult(*ResultType) error
	VisitTuple(*TupleType) error
	VisitCompilerChoice(*CompilerChoiceType) error
	VisitConditionalChoice(*ConditionalChoiceType) error
	VisitCompilerGeneric(*CompilerGenericType) error
}

// lockable is embedded by every concrete kind for the shared is_lock
// bookkeeping (spec §4.3's "once locked, a type's shape is immutable").
type lockable struct {
	Rg   loc.Range
	lock bool
}

func (l *lockable) Range() loc.Range { return l.Rg }
func (l *lockable) Locked() bool     { return l.lock }
func (l *lockable) Lock()            { l.lock = true }

// Scalar covers every payload-free kind: any, bool, byte, char, the c*
// family, cstr, cvoid, float32/64, the sized int/uint family, isize,
// never, unit, usize, unknown (spec §3's flat scalar list). The original
// C switches on these without ever attaching fields, so one struct
// parameterized by Kind stands in for what would otherwise be two dozen
// near-identical types.
type Scalar struct {
	lockable
	K Kind
}

// NewScalar builds a Scalar. unknown is the one scalar kind that starts
// unlocked (spec §3 invariant: "unknown... the only 'updatable' kinds").
func NewScalar(k Kind, r loc.Range) *Scalar {
	return &Scalar{lockable{Rg: r, lock: k != Unknown}, k}
}

func (n *Scalar) KindOf() Kind           { return n.K }
func (n *Scalar) Accept(v Visitor) error { return v.VisitScalar(n) }
func (n *Scalar) Equal(o DataType) bool  { return Equal(n, o) }

// LenType covers `bytes(len?)` and `str(len?)`: a length that is either
// concrete or "undef" (spec §3 invariant: "carry either a concrete
// length or an 'undef' marker").
type LenType struct {
	lockable
	K     Kind // Bytes or Str
	Len   int64
	Undef bool
}

func NewLenType(k Kind, length int64, undef bool, r loc.Range) *LenType {
	return &LenType{lockable{Rg: r, lock: true}, k, length, undef}
}

func (n *LenType) KindOf() Kind           { return n.K }
func (n *LenType) Accept(v Visitor) error { return v.VisitLenType(n) }
func (n *LenType) Equal(o DataType) bool  { return Equal(n, o) }

// LenOf reports the concrete length, or ok=false when undef (supplemental
// helper pulled from original_source's `is_undef` convenience, per
// SPEC_FULL's elaboration of this module).
func (n *LenType) LenOf() (length int64, ok bool) {
	if n.Undef {
		return 0, false
	}
	return n.Len, true
}

// ArrayType is the supplemental `array(element, shape, size?)` kind
// (see kind.go's ArrayShape doc comment for why it's present despite not
// appearing in spec §3's variant list).
type ArrayType struct {
	lockable
	Element DataType
	Shape   ArrayShape
	Size    int64
}

func NewArrayType(elem DataType, shape ArrayShape, size int64, r loc.Range) *ArrayType {
	return &ArrayType{lockable{Rg: r, lock: shape != ArrayUnknown}, elem, shape, size}
}

func (n *ArrayType) KindOf() Kind           { return Array }
func (n *ArrayType) Accept(v Visitor) error { return v.VisitArrayType(n) }
func (n *ArrayType) Equal(o DataType) bool  { return Equal(n, o) }

// Wrapper covers every single-child kind: list(t), mut(t), optional(t),
// ptr(t), ptr_mut(t), ref(t), ref_mut(t), trace(t), trace_mut(t) (spec
// §3). Invariant: Inner is never itself a Mut wrapper (mutability is
// carried by the outer wrapper, not stacked).
type Wrapper struct {
	lockable
	K     Kind
	Inner DataType
}

func NewWrapper(k Kind, inner DataType, r loc.Range) *Wrapper {
	return &Wrapper{lockable{Rg: r, lock: true}, k, inner}
}

func (n *Wrapper) KindOf() Kind           { return n.K }
func (n *Wrapper) Accept(v Visitor) error { return v.VisitWrapper(n) }
func (n *Wrapper) Equal(o DataType) bool  { return Equal(n, o) }

// CustomType is `custom(scope_id, name, global_name, generics?, kind,
// is_recursive)` (spec §3), naming a user-declared
// class/enum/record/trait/error/generic.
type CustomType struct {
	lockable
	ScopeID     int
	Name        string
	GlobalName  string
	Generics    []DataType
	CustomKind  CustomKind
	IsRecursive bool
}

func NewCustom(scopeID int, name, globalName string, generics []DataType, ck CustomKind, recursive bool, r loc.Range) *CustomType {
	return &CustomType{lockable{Rg: r, lock: true}, scopeID, name, globalName, generics, ck, recursive}
}

func (n *CustomType) KindOf() Kind           { return Custom }
func (n *CustomType) Accept(v Visitor) error { return v.VisitCustom(n) }
func (n *CustomType) Equal(o DataType) bool  { return Equal(n, o) }

// LambdaType is `lambda(params?, return)` (spec §3).
type LambdaType struct {
	lockable
	Params []DataType
	Return DataType
}

func NewLambda(params []DataType, ret DataType, r loc.Range) *LambdaType {
	return &LambdaType{lockable{Rg: r, lock: true}, params, ret}
}

func (n *LambdaType) KindOf() Kind           { return Lambda }
func (n *LambdaType) Accept(v Visitor) error { return v.VisitLambda(n) }
func (n *LambdaType) Equal(o DataType) bool  { return Equal(n, o) }

// ResultType is `result(ok, errs?)` (spec §3).
type ResultType struct {
	lockable
	Ok   DataType
	Errs []DataType
}

func NewResult(ok DataType, errs []DataType, r loc.Range) *ResultType {
	return &ResultType{lockable{Rg: r, lock: true}, ok, errs}
}

func (n *ResultType) KindOf() Kind           { return Result }
func (n *ResultType) Accept(v Visitor) error { return v.VisitResult(n) }
func (n *ResultType) Equal(o DataType) bool  { return Equal(n, o) }

// TupleType is `tuple(ts)` (spec §3).
type TupleType struct {
	lockable
	Elems []DataType
}

func NewTuple(elems []DataType, r loc.Range) *TupleType {
	return &TupleType{lockable{Rg: r, lock: true}, elems}
}

func (n *TupleType) KindOf() Kind           { return Tuple }
func (n *TupleType) Accept(v Visitor) error { return v.VisitTuple(n) }
func (n *TupleType) Equal(o DataType) bool  { return Equal(n, o) }

// CompilerChoiceType is `compiler_choice(choices)` (spec §3): an
// unresolved overload set the checker narrows via Equal's refinement
// rule (spec §4.3 "Choice/conditional-choice equality").
type CompilerChoiceType struct {
	lockable
	Choices []DataType
}

func NewCompilerChoice(choices []DataType, r loc.Range) *CompilerChoiceType {
	return &CompilerChoiceType{lockable{Rg: r, lock: false}, choices}
}

func (n *CompilerChoiceType) KindOf() Kind           { return CompilerChoice }
func (n *CompilerChoiceType) Accept(v Visitor) error { return v.VisitCompilerChoice(n) }
func (n *CompilerChoiceType) Equal(o DataType) bool  { return Equal(n, o) }

// Condition is one `conds[i]` entry of a ConditionalChoiceType: the
// parameter types that select ReturnDataTypeID as the resolved choice
// (spec §3 invariant "conds[i].return_data_type_id < choices.len").
type Condition struct {
	ReturnDataTypeID int
	Params           []DataType
}

// ConditionalChoiceType is `conditional_compiler_choice(choices, conds)`
// (spec §3): like CompilerChoiceType, but each choice is additionally
// gated by a parameter-type condition.
type ConditionalChoiceType struct {
	lockable
	Choices []DataType
	Conds   []Condition
}

func NewConditionalChoice(choices []DataType, conds []Condition, r loc.Range) *ConditionalChoiceType {
	return &ConditionalChoiceType{lockable{Rg: r, lock: false}, choices, conds}
}

func (n *ConditionalChoiceType) KindOf() Kind           { return ConditionalCompilerChoice }
func (n *ConditionalChoiceType) Accept(v Visitor) error { return v.VisitConditionalChoice(n) }
func (n *ConditionalChoiceType) Equal(o DataType) bool  { return Equal(n, o) }

// CompilerGenericType is `compiler_generic(name)` (spec §3): an
// as-yet-unresolved generic parameter reference on the checked side,
// distinct from cc/ci/ast.Generic which is CI's syntactic counterpart.
type CompilerGenericType struct {
	lockable
	Name string
}

func NewCompilerGeneric(name string, r loc.Range) *CompilerGenericType {
	return &CompilerGenericType{lockable{Rg: r, lock: true}, name}
}

func (n *CompilerGenericType) KindOf() Kind           { return CompilerGeneric }
func (n *CompilerGenericType) Accept(v Visitor) error { return v.VisitCompilerGeneric(n) }
func (n *CompilerGenericType) Equal(o DataType) bool  { return Equal(n, o) }
