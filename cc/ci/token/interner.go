package token

import "sync"

// Interned is a reference-counted immutable string (spec §5 "Identifier
// strings are reference-counted immutable"). Any node holding an
// *Interned owns a share, not an alias into the scanner's input buffer.
//
// No library in the retrieval pack offers string interning with
// refcounting (the closest candidates, go-spew/go-difflib, are testify's
// diff helpers, unrelated to this concern); the teacher's own
// config.go/value.go show the same trade of hand-rolling small lookup
// tables rather than reaching for a library, so this stays on a
// mutex-guarded map, the idiom this codebase already uses elsewhere.
type Interned struct {
	s    string
	refs int32
}

// String returns the interned text.
func (i *Interned) String() string { return i.s }

// Interner deduplicates identifier and string-literal text within one
// translation unit.
type Interner struct {
	mu    sync.Mutex
	table map[string]*Interned
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{table: make(map[string]*Interned)}
}

// Intern returns the shared *Interned for s, creating it on first use and
// incrementing its refcount on every call (each caller owns a share).
func (in *Interner) Intern(s string) *Interned {
	in.mu.Lock()
	defer in.mu.Unlock()

	if v, ok := in.table[s]; ok {
		v.refs++
		return v
	}
	v := &Interned{s: s, refs: 1}
	in.table[s] = v
	return v
}

// Release decrements i's refcount. It does not evict from the table: a
// translation unit's interner lives exactly as long as the unit itself,
// so eviction would only save memory we free in bulk anyway by dropping
// the whole Interner at end of unit.
func (i *Interned) Release() {
	if i.refs > 0 {
		i.refs--
	}
}

// Share returns i with its refcount incremented, for callers that want a
// second independent owner of the same interned value.
func (i *Interned) Share() *Interned {
	i.refs++
	return i
}
