package checked

// SubstituteOrdered replaces every compiler_generic(name) reachable in
// dt using the explicit names/args pairing (used when generic parameters
// are explicitly ordered, spec §4.3 "Substitution"). Wrappers clone
// their children and preserve location; a subtree with no reachable
// generic is returned unchanged by reference.
func SubstituteOrdered(dt DataType, names []string, args []DataType) DataType {
	m := make(map[string]DataType, len(names))
	for i, n := range names {
		if i < len(args) {
			m[n] = args[i]
		}
	}
	return SubstituteMap(dt, m)
}

// SubstituteMap is SubstituteOrdered's unordered-map counterpart (used
// after unification, spec §4.3).
func SubstituteMap(dt DataType, m map[string]DataType) DataType {
	if dt == nil || !containsGeneric(dt, m) {
		return dt
	}
	return substitute(dt, m)
}

func containsGeneric(dt DataType, m map[string]DataType) bool {
	switch n := dt.(type) {
	case *CompilerGenericType:
		_, ok := m[n.Name]
		return ok
	case *Wrapper:
		return containsGeneric(n.Inner, m)
	case *ArrayType:
		return containsGeneric(n.Element, m)
	case *LenType, *Scalar:
		return false
	case *TupleType:
		for _, e := range n.Elems {
			if containsGeneric(e, m) {
				return true
			}
		}
		return false
	case *ResultType:
		if containsGeneric(n.Ok, m) {
			return true
		}
		for _, e := range n.Errs {
			if containsGeneric(e, m) {
				return true
			}
		}
		return false
	case *LambdaType:
		for _, p := range n.Params {
			if containsGeneric(p, m) {
				return true
			}
		}
		return containsGeneric(n.Return, m)
	case *CustomType:
		for _, g := range n.Generics {
			if containsGeneric(g, m) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func substitute(dt DataType, m map[string]DataType) DataType {
	if !containsGeneric(dt, m) {
		return dt
	}
	switch n := dt.(type) {
	case *CompilerGenericType:
		if repl, ok := m[n.Name]; ok {
			return repl
		}
		return n
	case *Wrapper:
		return NewWrapper(n.K, substitute(n.Inner, m), n.Rg)
	case *ArrayType:
		return NewArrayType(substitute(n.Element, m), n.Shape, n.Size, n.Rg)
	case *TupleType:
		elems := make([]DataType, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = substitute(e, m)
		}
		return NewTuple(elems, n.Rg)
	case *ResultType:
		var errs []DataType
		if n.Errs != nil {
			errs = make([]DataType, len(n.Errs))
			for i, e := range n.Errs {
				errs[i] = substitute(e, m)
			}
		}
		return NewResult(substitute(n.Ok, m), errs, n.Rg)
	case *LambdaType:
		var params []DataType
		if n.Params != nil {
			params = make([]DataType, len(n.Params))
			for i, p := range n.Params {
				params[i] = substitute(p, m)
			}
		}
		return NewLambda(params, substitute(n.Return, m), n.Rg)
	case *CustomType:
		var generics []DataType
		if n.Generics != nil {
			generics = make([]DataType, len(n.Generics))
			for i, g := range n.Generics {
				generics[i] = substitute(g, m)
			}
		}
		return NewCustom(n.ScopeID, n.Name, n.GlobalName, generics, n.CustomKind, n.IsRecursive, n.Rg)
	default:
		return dt
	}
}
