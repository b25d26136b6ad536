package checked

// Len reports a bytes/str type's concrete length, with undef=true when
// the length is not yet known (spec §3 invariant on LenType, supplemental
// `is_undef` convenience pulled from original_source's data_type.c since
// the distilled spec mentions the marker but not a named accessor).
func Len(dt DataType) (n int64, undef bool) {
	lt, ok := dt.(*LenType)
	if !ok {
		return 0, true
	}
	return lt.Len, lt.Undef
}

// FreeGenerics walks dt and returns the names of every reachable
// compiler_generic(name) not already bound, in first-encountered order
// with duplicates removed (supplemental introspection helper pulled from
// original_source's `data_type_get_generic_params`, used there to build
// a monomorphization cache key; the cache itself is out of scope per
// NON-GOALS, but the pure walk is cheap and useful on its own for tests
// and diagnostics).
func FreeGenerics(dt DataType) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(DataType)
	walk = func(d DataType) {
		switch n := d.(type) {
		case *CompilerGenericType:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *Wrapper:
			walk(n.Inner)
		case *ArrayType:
			walk(n.Element)
		case *TupleType:
			for _, e := range n.Elems {
				walk(e)
			}
		case *ResultType:
			walk(n.Ok)
			for _, e := range n.Errs {
				walk(e)
			}
		case *LambdaType:
			for _, p := range n.Params {
				walk(p)
			}
			walk(n.Return)
		case *CustomType:
			for _, g := range n.Generics {
				walk(g)
			}
		case *CompilerChoiceType:
			for _, c := range n.Choices {
				walk(c)
			}
		case *ConditionalChoiceType:
			for _, c := range n.Choices {
				walk(c)
			}
		}
	}
	walk(dt)
	return out
}
