package checked

// Equal implements spec §4.3 "Equality": structural equality with three
// refinements (mut promotion, optional promotion, and choice/
// conditional-choice refinement). It is the single entry point every
// concrete kind's Equal method forwards to, grounded on
// eq__LilyCheckedDataType in original_source's data_type.c.
func Equal(a, b DataType) bool {
	aIsChoice := a.KindOf() == CompilerChoice || a.KindOf() == ConditionalCompilerChoice
	bIsChoice := b.KindOf() == CompilerChoice || b.KindOf() == ConditionalCompilerChoice
	if a.KindOf() != b.KindOf() && !aIsChoice && bIsChoice {
		return Equal(b, a)
	}
	if b.KindOf() == Mut && a.KindOf() != Mut {
		return Equal(b, a)
	}

	switch n := a.(type) {
	case *Scalar:
		if n.K == Unknown {
			return true
		}
		o, ok := b.(*Scalar)
		return ok && o.K == n.K
	case *LenType:
		o, ok := b.(*LenType)
		return ok && o.K == n.K
	case *ArrayType:
		o, ok := b.(*ArrayType)
		if !ok {
			return false
		}
		if n.Shape == o.Shape {
			if n.Shape == ArraySized && n.Size != o.Size {
				return false
			}
			return Equal(n.Element, o.Element)
		}
		if n.Shape == ArrayUnknown {
			n.Shape, n.Size = o.Shape, o.Size
			return true
		}
		if o.Shape == ArrayUnknown {
			o.Shape, o.Size = n.Shape, n.Size
			return true
		}
		return false
	case *CustomType:
		o, ok := b.(*CustomType)
		if !ok {
			return false
		}
		if n.CustomKind == CustomGeneric && o.CustomKind == CustomGeneric {
			return true
		}
		return n.GlobalName == o.GlobalName && n.CustomKind == o.CustomKind
	case *ResultType:
		o, ok := b.(*ResultType)
		if !ok {
			return false
		}
		if n.Errs != nil && o.Errs != nil {
			if len(n.Errs) != len(o.Errs) {
				return false
			}
			for i := range n.Errs {
				if !Equal(n.Errs[i], o.Errs[i]) {
					return false
				}
			}
		}
		return Equal(n.Ok, o.Ok)
	case *LambdaType:
		o, ok := b.(*LambdaType)
		if !ok || len(n.Params) != len(o.Params) {
			return false
		}
		for i := range n.Params {
			if !Equal(n.Params[i], o.Params[i]) {
				return false
			}
		}
		return Equal(n.Return, o.Return)
	case *Wrapper:
		switch n.K {
		case List:
			o, ok := b.(*Wrapper)
			return ok && o.K == List && Equal(n.Inner, o.Inner)
		case Mut:
			if o, ok := b.(*Wrapper); ok && o.K == Mut {
				return Equal(n.Inner, o.Inner)
			}
			return Equal(n.Inner, b)
		case Optional:
			if o, ok := b.(*Wrapper); ok && o.K == Optional {
				return Equal(n.Inner, o.Inner)
			}
			return Equal(n.Inner, b)
		default: // Ptr, PtrMut, Ref, RefMut, Trace, TraceMut: exact-kind, no promotion
			o, ok := b.(*Wrapper)
			return ok && o.K == n.K && Equal(n.Inner, o.Inner)
		}
	case *TupleType:
		o, ok := b.(*TupleType)
		if !ok || len(n.Elems) != len(o.Elems) {
			return false
		}
		for i := range n.Elems {
			if !Equal(n.Elems[i], o.Elems[i]) {
				return false
			}
		}
		return true
	case *CompilerChoiceType, *ConditionalChoiceType:
		return equalChoice(a, b)
	case *CompilerGenericType:
		if o, ok := b.(*CompilerGenericType); ok {
			return n.Name == o.Name
		}
		return true
	}

	// Fallback for kinds reached only as `b` above (Optional/Mut already
	// handled through the Wrapper case when n is the wrapper).
	if o, ok := b.(*Wrapper); ok {
		return Equal(o, a)
	}
	return false
}

// equalChoice implements spec §4.3's choice/conditional-choice
// refinement rule. When a side is unlocked, equality narrows its choice
// set down to the intersection before deciding.
func equalChoice(a, b DataType) bool {
	aIsChoice := a.KindOf() == CompilerChoice || a.KindOf() == ConditionalCompilerChoice
	bIsChoice := b.KindOf() == CompilerChoice || b.KindOf() == ConditionalCompilerChoice

	if !bIsChoice {
		aChoices, _ := Choices(a)
		if a.Locked() {
			for _, c := range aChoices {
				if Equal(c, b) {
					return true
				}
			}
			return false
		}
		survivors := 0
		for _, c := range append([]DataType(nil), aChoices...) {
			if Equal(c, b) {
				survivors++
			} else {
				removeChoice(a, c)
			}
		}
		return survivors > 0
	}

	if !aIsChoice {
		return equalChoice(b, a)
	}

	aChoices, _ := Choices(a)
	bChoices, _ := Choices(b)

	if a.Locked() && b.Locked() {
		if len(aChoices) != len(bChoices) {
			return false
		}
		for _, ac := range aChoices {
			match := false
			for _, bc := range bChoices {
				if Equal(ac, bc) {
					match = true
					break
				}
			}
			if !match {
				return false
			}
		}
		return true
	}

	if !a.Locked() && !b.Locked() {
		refineToSubset(a, bChoices)
		refineToSubset(b, aChoices)
		aChoices, _ = Choices(a)
		bChoices, _ = Choices(b)
		return len(aChoices) != 0 && len(aChoices) == len(bChoices)
	}

	if !a.Locked() {
		refineToSubset(a, bChoices)
		aChoices, _ = Choices(a)
		return len(aChoices) == len(bChoices) && len(bChoices) != 0
	}

	refineToSubset(b, aChoices)
	bChoices, _ = Choices(b)
	return len(aChoices) == len(bChoices) && len(aChoices) != 0
}

// refineToSubset removes every choice from self not structurally present
// in against, in place.
func refineToSubset(self DataType, against []DataType) {
	choices, _ := Choices(self)
	for _, c := range append([]DataType(nil), choices...) {
		found := false
		for _, o := range against {
			if Equal(c, o) {
				found = true
				break
			}
		}
		if !found {
			removeChoice(self, c)
		}
	}
}
