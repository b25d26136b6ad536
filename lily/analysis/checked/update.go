package checked

// Update copies other's payload into self in place, permitted only when
// self.KindOf() is unknown/compiler_generic, or self is an array with an
// unknown shape (spec §4.3 "Updating": "this is how type inference
// writes back inferred types to placeholders left by the parser").
// Returns the node callers should keep using afterward: normally self
// itself (mutated), except when self was a bare Scalar(unknown) being
// updated into a compound shape (array/wrapper/tuple/...), which cannot
// be represented by relabeling a Scalar in place and so returns a fresh
// replacement node instead, and except when self is a compiler_generic,
// which is replaced by other itself.
func Update(self, other DataType) DataType {
	if other == nil || other.KindOf() == Unknown {
		return self
	}

	if arr, ok := self.(*ArrayType); ok && arr.Shape == ArrayUnknown {
		if oa, ok := other.(*ArrayType); ok {
			arr.Shape, arr.Size = oa.Shape, oa.Size
		}
		return self
	}

	if !canUpdate(self) {
		return self
	}

	if s, ok := self.(*Scalar); ok {
		switch o := other.(type) {
		case *Scalar:
			s.K = o.K
			s.lock = true
			return s
		case *LenType:
			return NewLenType(o.K, o.Len, o.Undef, self.Range())
		case *ArrayType:
			return NewArrayType(o.Element, o.Shape, o.Size, self.Range())
		case *Wrapper:
			return NewWrapper(o.K, o.Inner, self.Range())
		case *TupleType:
			return NewTuple(append([]DataType(nil), o.Elems...), self.Range())
		case *LambdaType:
			return NewLambda(append([]DataType(nil), o.Params...), o.Return, self.Range())
		case *ResultType:
			return NewResult(o.Ok, append([]DataType(nil), o.Errs...), self.Range())
		case *CustomType:
			return NewCustom(o.ScopeID, o.Name, o.GlobalName, append([]DataType(nil), o.Generics...), o.CustomKind, o.IsRecursive, self.Range())
		case *CompilerChoiceType:
			return NewCompilerChoice(append([]DataType(nil), o.Choices...), self.Range())
		case *ConditionalChoiceType:
			return NewConditionalChoice(append([]DataType(nil), o.Choices...), append([]Condition(nil), o.Conds...), self.Range())
		case *CompilerGenericType:
			return NewCompilerGeneric(o.Name, self.Range())
		}
	}

	if g, ok := self.(*CompilerGenericType); ok {
		_ = g
		return other
	}

	return self
}

// canUpdate reports whether self's shape is still open (spec §4.3:
// "permitted only when self.kind ∈ {unknown, compiler_generic}").
func canUpdate(dt DataType) bool {
	switch n := dt.(type) {
	case *Scalar:
		return n.K == Unknown
	case *CompilerGenericType:
		return true
	default:
		return false
	}
}
