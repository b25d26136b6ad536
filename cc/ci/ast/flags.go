package ast

// Qualifier is the CV-qualifier bitset (spec §3 "Qualifier / storage-class
// / context flag-sets").
type Qualifier uint

const (
	QualifierConst Qualifier = 1 << iota
	QualifierVolatile
	QualifierRestrict
	QualifierAtomic
	QualifierNoreturn
)

func (q Qualifier) Has(f Qualifier) bool { return q&f != 0 }
func (q *Qualifier) Add(f Qualifier)     { *q |= f }

// StorageClass is the storage-class bitset. The typedef bit gates "this
// declaration is a type alias" rather than naming a real C storage class.
type StorageClass uint

const (
	StorageAuto StorageClass = 1 << iota
	StorageConstexpr
	StorageExtern
	StorageInline
	StorageRegister
	StorageStatic
	StorageThreadLocal
	StorageTypedef
)

func (s StorageClass) Has(f StorageClass) bool { return s&f != 0 }
func (s *StorageClass) Add(f StorageClass)     { *s |= f }

// IsTypedef reports whether the typedef storage class bit is set.
func (s StorageClass) IsTypedef() bool { return s.Has(StorageTypedef) }

// Context is the data-type context bitset: the dialect's `!identifier`
// syntactic extension (spec §6 "Data-type contexts").
type Context uint

const (
	ContextHeap Context = 1 << iota
	ContextNonNull
	ContextStack
	ContextTrace
	ContextIndex
	ContextRealloc
	ContextDrop
	ContextStatic
	ContextFree
)

var contextNames = map[string]Context{
	"heap": ContextHeap, "non_null": ContextNonNull, "stack": ContextStack,
	"trace": ContextTrace, "index": ContextIndex, "realloc": ContextRealloc,
	"drop": ContextDrop, "static": ContextStatic, "free": ContextFree,
}

// LookupContext resolves a `!name` spelling to its Context bit.
func LookupContext(name string) (Context, bool) {
	c, ok := contextNames[name]
	return c, ok
}

// mutuallyExclusive lists the context pairs spec §3 forbids combining:
// heap⊕stack, drop⊕free, free⊕trace.
var mutuallyExclusive = [][2]Context{
	{ContextHeap, ContextStack},
	{ContextDrop, ContextFree},
	{ContextFree, ContextTrace},
}

// AddContext adds f to the set. ok is false when f conflicts with a bit
// already present (heap⊕stack, drop⊕free, free⊕trace); the caller reports
// cierr.IncompatibleDataTypeContext at the offending token's location.
func (c *Context) AddContext(f Context) (ok bool) {
	for _, pair := range mutuallyExclusive {
		a, b := pair[0], pair[1]
		if (*c&a != 0 && f == b) || (*c&b != 0 && f == a) {
			return false
		}
	}
	*c |= f
	return true
}

func (c Context) Has(f Context) bool { return c&f != 0 }
