// Package checked implements the Lily side's checked data-type lattice
// (spec §3 "Checked data type (Lily)", §4.3): a distinct type from
// cc/ci/ast.DataType, disambiguated by import path exactly as the
// original keeps CI's syntactic types and Lily's checked types in
// separate translation units.
package checked

// Kind tags a DataType's variant. Scalar kinds with no payload beyond
// their tag (spec §3's flat `any, bool, byte, char, c*, float32, ...`
// list) all share the Scalar struct rather than one empty struct per
// kind, since the original's own switch statements never attach fields
// to them either.
type Kind int

const (
	Any Kind = iota
	Bool
	Byte
	Bytes
	Char
	CShort
	CUShort
	CInt
	CUInt
	CLong
	CULong
	CLongLong
	CULongLong
	CFloat
	CDouble
	CStr
	CVoid
	Float32
	Float64
	Int8
	Int16
	Int32
	Int64
	Isize
	Never
	Str
	Uint8
	Uint16
	Uint32
	Uint64
	Unit
	Usize
	Unknown

	Array
	Custom
	Lambda
	List
	Mut
	Optional
	Ptr
	PtrMut
	Ref
	RefMut
	Result
	Trace
	TraceMut
	Tuple

	CompilerChoice
	ConditionalCompilerChoice
	CompilerGeneric
)

var kindNames = map[Kind]string{
	Any: "Any", Bool: "Bool", Byte: "Byte", Bytes: "Bytes", Char: "Char",
	CShort: "CShort", CUShort: "CUShort", CInt: "CInt", CUInt: "CUInt",
	CLong: "CLong", CULong: "CULong", CLongLong: "CLongLong", CULongLong: "CULongLong",
	CFloat: "CFloat", CDouble: "CDouble", CStr: "CStr", CVoid: "CVoid",
	Float32: "Float32", Float64: "Float64",
	Int8: "Int8", Int16: "Int16", Int32: "Int32", Int64: "Int64", Isize: "Isize",
	Never: "Never", Str: "Str",
	Uint8: "Uint8", Uint16: "Uint16", Uint32: "Uint32", Uint64: "Uint64",
	Unit: "Unit", Usize: "Usize", Unknown: "Unknown",
	Array: "Array", Custom: "Custom", Lambda: "Lambda", List: "List",
	Mut: "Mut", Optional: "Optional", Ptr: "Ptr", PtrMut: "PtrMut",
	Ref: "Ref", RefMut: "RefMut", Result: "Result", Trace: "Trace",
	TraceMut: "TraceMut", Tuple: "Tuple",
	CompilerChoice: "CompilerChoice", ConditionalCompilerChoice: "ConditionalCompilerChoice",
	CompilerGeneric: "CompilerGeneric",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown(Kind)"
}

// CustomKind distinguishes what nominal shape a Custom data type names
// (spec §3 `custom(... kind∈{class,enum,enum_object,error,generic,
// record,record_object,trait} ...)`).
type CustomKind int

const (
	CustomClass CustomKind = iota
	CustomEnum
	CustomEnumObject
	CustomError
	CustomGeneric
	CustomRecord
	CustomRecordObject
	CustomTrait
)

// ArrayShape distinguishes a sized array from an unsized one, with
// Unknown standing in until inference resolves which (spec's invariants
// text calls this out directly: "array-unknown" is updatable alongside
// unknown/compiler_generic even though `array` isn't itself in spec §3's
// variant list — kept as a supplemental kind pulled from
// original_source's LilyCheckedDataTypeArrayKind since the spec's own
// invariants depend on it existing).
type ArrayShape int

const (
	ArrayUnknown ArrayShape = iota
	ArraySized
	ArrayUnsized
)
