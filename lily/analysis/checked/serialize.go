package checked

import (
	"fmt"
	"strings"
)

// Serialize emits a flat textual encoding that uniquely identifies a
// monomorphized type: a leading kind tag, then wrapper-specific payload
// (fixed-width identifiers for nominal types, recursive serialization of
// children, ordered traversal of choice sets). Used to key the
// monomorphization cache (spec §4.3 "Serialization"), grounded on
// serialize__LilyCheckedDataType in original_source's data_type.c.
func Serialize(dt DataType, out *strings.Builder) {
	switch n := dt.(type) {
	case *Scalar:
		if n.K == Unknown {
			return
		}
		fmt.Fprintf(out, "%d", int(n.K))
	case *LenType:
		fmt.Fprintf(out, "%d", int(n.K))
	case *ArrayType:
		fmt.Fprintf(out, "%d%d", int(Array), int(n.Shape))
		Serialize(n.Element, out)
	case *CustomType:
		fmt.Fprintf(out, "%d%s%d", int(Custom), n.GlobalName, n.ScopeID)
		for _, g := range n.Generics {
			Serialize(g, out)
		}
	case *LambdaType:
		fmt.Fprintf(out, "%d", int(Lambda))
		for _, p := range n.Params {
			Serialize(p, out)
		}
		Serialize(n.Return, out)
	case *Wrapper:
		fmt.Fprintf(out, "%d", int(n.K))
		Serialize(n.Inner, out)
	case *ResultType:
		fmt.Fprintf(out, "%d", int(Result))
		for _, e := range n.Errs {
			Serialize(e, out)
		}
		Serialize(n.Ok, out)
	case *TupleType:
		fmt.Fprintf(out, "%d", int(Tuple))
		for _, e := range n.Elems {
			Serialize(e, out)
		}
	case *ConditionalChoiceType:
		for i, choice := range n.Choices {
			for _, cond := range n.Conds {
				for _, p := range cond.Params {
					Serialize(p, out)
				}
			}
			_ = i
			Serialize(choice, out)
		}
	case *CompilerChoiceType:
		for _, c := range n.Choices {
			Serialize(c, out)
		}
	case *CompilerGenericType:
		fmt.Fprintf(out, "%d%s", int(CompilerGeneric), n.Name)
	}
}

// SerializeString is a convenience wrapper returning Serialize's output
// directly.
func SerializeString(dt DataType) string {
	var b strings.Builder
	Serialize(dt, &b)
	return b.String()
}
