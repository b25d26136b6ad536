package checked

// Choices returns the internal choice vector for a compiler_choice /
// conditional_compiler_choice variant, or ok=false otherwise (spec §4.3
// "get_choices returns the internal choice vector... or none").
func Choices(dt DataType) (choices []DataType, ok bool) {
	switch n := dt.(type) {
	case *CompilerChoiceType:
		return n.Choices, true
	case *ConditionalChoiceType:
		return n.Choices, true
	default:
		return nil, false
	}
}

// removeChoice deletes the element of dt's choice set that is identical
// (by reference) to choice. For a conditional choice, every condition
// whose ReturnDataTypeID names the removed slot is dropped and the
// remaining ids are shifted down, per spec §4.3 "When a choice is
// removed from a conditional choice, every condition whose
// return_data_type_id equals the removed id is deleted and ids greater
// than the removed one are decremented."
func removeChoice(dt DataType, choice DataType) {
	switch n := dt.(type) {
	case *CompilerChoiceType:
		n.Choices = removeAt(n.Choices, indexOfChoice(n.Choices, choice))
	case *ConditionalChoiceType:
		idx := indexOfChoice(n.Choices, choice)
		if idx < 0 {
			return
		}
		n.Choices = removeAt(n.Choices, idx)
		kept := n.Conds[:0]
		for _, c := range n.Conds {
			switch {
			case c.ReturnDataTypeID == idx:
				continue
			case c.ReturnDataTypeID > idx:
				c.ReturnDataTypeID--
				kept = append(kept, c)
			default:
				kept = append(kept, c)
			}
		}
		n.Conds = kept
	}
}

func indexOfChoice(choices []DataType, target DataType) int {
	for i, c := range choices {
		if c == target {
			return i
		}
	}
	return -1
}

func removeAt(choices []DataType, idx int) []DataType {
	if idx < 0 || idx >= len(choices) {
		return choices
	}
	return append(choices[:idx:idx], choices[idx+1:]...)
}

// IsGuarantee reports whether dt, or every branch of its choice set, is
// already of kind, returning the type to use afterward (itself when it
// already matched, a relabeled or wrapped replacement when it was still
// open) or nil when the guarantee does not hold. An open type (unknown /
// compiler_generic) is rewritten to kind and counted as satisfying it;
// the rewrite is destructive and must only be called on an owned,
// non-aliased type (spec §4.3 "Guarantees & helpers"). Unlike the
// original's `self = update` (a local reassignment the caller never
// observes), the replacement is returned rather than silently dropped.
func IsGuarantee(dt DataType, kind Kind) DataType {
	switch n := dt.(type) {
	case *ConditionalChoiceType:
		for _, c := range n.Choices {
			if IsGuarantee(c, kind) == nil {
				return nil
			}
		}
		return dt
	case *CompilerChoiceType:
		for _, c := range n.Choices {
			if IsGuarantee(c, kind) == nil {
				return nil
			}
		}
		return dt
	case *Scalar:
		if n.K == Unknown {
			return wrapGuarantee(dt, kind)
		}
		if n.K == kind {
			return dt
		}
		return nil
	case *CompilerGenericType:
		return wrapGuarantee(dt, kind)
	default:
		if dt.KindOf() == kind {
			return dt
		}
		return nil
	}
}

// wrapGuarantee wraps an open placeholder in the single-child wrapper
// kind denotes; when kind carries no wrapper shape of its own it relabels
// an unknown Scalar in place, and replaces a compiler_generic with a new
// Scalar of that kind (mirrors the original's `update = NEW_VARIANT(...)`
// / `self->kind = guarantee` split).
func wrapGuarantee(self DataType, kind Kind) DataType {
	switch kind {
	case Result:
		return NewResult(self, nil, self.Range())
	case List, Mut, Optional, Ptr, PtrMut, Ref, RefMut, Trace, TraceMut:
		return NewWrapper(kind, self, self.Range())
	default:
		if s, ok := self.(*Scalar); ok {
			s.K = kind
			s.lock = true
			return s
		}
		return NewScalar(kind, self.Range())
	}
}

// ContainsDirectCustomDataType/GetDirectCustomDataType peel through
// mut/optional/ptr*/ref*/trace*/result wrappers to find the underlying
// nominal type (spec §4.3).
func GetDirectCustomDataType(dt DataType) *CustomType {
	switch n := dt.(type) {
	case *CustomType:
		return n
	case *ResultType:
		return GetDirectCustomDataType(n.Ok)
	case *Wrapper:
		switch n.K {
		case Mut, Optional, Ptr, PtrMut, Ref, RefMut, Trace, TraceMut:
			return GetDirectCustomDataType(n.Inner)
		}
	}
	return nil
}

func ContainsDirectCustomDataType(dt DataType) bool {
	return GetDirectCustomDataType(dt) != nil
}

// GenericParam names one generic parameter of a declared custom type,
// mirroring the external LilyCheckedGenericParam collaborator spec §1
// scopes out of this package (generic-parameter declarations and
// constraints live in the declaration-checking module, not here).
type GenericParam struct {
	Name string
}

// GenerateGenericParamsFromResolved produces, for each declared generic
// name, the structurally-matching subterm of resolved against original's
// shape, or unknown when no match is found (spec §4.3 "Choice
// inference").
func GenerateGenericParamsFromResolved(resolved DataType, params []GenericParam, original DataType) map[string]DataType {
	out := make(map[string]DataType, len(params))
	for _, p := range params {
		if found := matchGenericParam(resolved, p.Name, original); found != nil {
			out[p.Name] = found
		} else {
			out[p.Name] = NewScalar(Unknown, resolved.Range())
		}
	}
	return out
}

// GenerateGenericParamsFromResolvedFields does the same for record-literal
// field lists by unifying positional fields (spec §4.3).
func GenerateGenericParamsFromResolvedFields(resolvedFields, originalFields []DataType, params []GenericParam) map[string]DataType {
	out := make(map[string]DataType, len(params))
	for i := range originalFields {
		if i >= len(resolvedFields) {
			break
		}
		for _, p := range params {
			if existing, ok := out[p.Name]; ok && existing.KindOf() != Unknown {
				continue
			}
			if found := matchGenericParam(resolvedFields[i], p.Name, originalFields[i]); found != nil {
				out[p.Name] = found
			} else if _, ok := out[p.Name]; !ok {
				out[p.Name] = NewScalar(Unknown, resolvedFields[i].Range())
			}
		}
	}
	return out
}

// matchGenericParam walks resolved and original in lockstep; wherever
// original is a compiler_generic matching name, the corresponding
// position in resolved is the answer.
func matchGenericParam(resolved DataType, name string, original DataType) DataType {
	if g, ok := original.(*CompilerGenericType); ok {
		if g.Name == name {
			return resolved
		}
		return nil
	}

	ow, oIsWrapper := original.(*Wrapper)
	rw, rIsWrapper := resolved.(*Wrapper)
	if oIsWrapper && rIsWrapper && ow.K == rw.K {
		return matchGenericParam(rw.Inner, name, ow.Inner)
	}

	if ot, ok := original.(*TupleType); ok {
		if rt, ok := resolved.(*TupleType); ok && len(rt.Elems) == len(ot.Elems) {
			for i, oe := range ot.Elems {
				if found := matchGenericParam(rt.Elems[i], name, oe); found != nil {
					return found
				}
			}
		}
	}

	if ol, ok := original.(*LambdaType); ok {
		if rl, ok := resolved.(*LambdaType); ok {
			for i, op := range ol.Params {
				if i >= len(rl.Params) {
					break
				}
				if found := matchGenericParam(rl.Params[i], name, op); found != nil {
					return found
				}
			}
			return matchGenericParam(rl.Return, name, ol.Return)
		}
	}

	if oc, ok := original.(*CustomType); ok {
		if rc, ok := resolved.(*CustomType); ok {
			for i, og := range oc.Generics {
				if i >= len(rc.Generics) {
					break
				}
				if found := matchGenericParam(rc.Generics[i], name, og); found != nil {
					return found
				}
			}
		}
	}

	return nil
}
