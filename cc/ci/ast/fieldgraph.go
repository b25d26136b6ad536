package ast

import (
	"strconv"

	"github.com/thelilylang/lily/cc/ci/token"
)

// FieldID indexes a fieldNode inside a FieldGraph's arena. Spec §9's
// translation note calls for "index-addressed arena ... deletion never
// dangles" in place of the original's raw pointer graph, so FieldGraph is
// built the same way cc/ci/ast's other owning collections would be if
// they needed mid-life removal — which fields do (spec §4.2 "Fields" can
// embed and later walk nested anonymous sub-graphs).
type FieldID int

// FieldKind distinguishes a plain data member from a nested (possibly
// anonymous) struct/union grouping (spec §3).
type FieldKind int

const (
	FieldMember FieldKind = iota
	FieldGroup
)

type fieldNode struct {
	kind FieldKind

	name     *token.Interned // nil for anonymous members/groups
	dataType DataType
	bitWidth *int64

	group *FieldGraph // non-nil when kind == FieldGroup

	parent FieldID
	prev   FieldID
	next   FieldID
	valid  bool
}

const noField FieldID = -1

// FieldGraph is an ordered doubly-linked structure of field nodes (spec
// §3 "Struct/union field graph"): the graph preserves source order and
// supports flat or parent-scoped traversal.
type FieldGraph struct {
	arena []fieldNode
	head  FieldID
	tail  FieldID
	names map[string]FieldID
}

func NewFieldGraph() *FieldGraph {
	return &FieldGraph{head: noField, tail: noField, names: make(map[string]FieldID)}
}

// AddField appends a plain member, failing (spec invariant #6) if a
// sibling at the same nesting level already uses name.
func (g *FieldGraph) AddField(name *token.Interned, dt DataType, bitWidth *int64, parent FieldID) (FieldID, bool) {
	return g.add(fieldNode{kind: FieldMember, name: name, dataType: dt, bitWidth: bitWidth}, parent)
}

// AddGroup embeds a nested anonymous/named struct/union sub-graph (spec
// §4.2 "Nested anonymous and named struct/union types embed their
// sub-graph into the containing graph").
func (g *FieldGraph) AddGroup(name *token.Interned, sub *FieldGraph, parent FieldID) (FieldID, bool) {
	return g.add(fieldNode{kind: FieldGroup, name: name, group: sub}, parent)
}

func (g *FieldGraph) add(n fieldNode, parent FieldID) (FieldID, bool) {
	if n.name != nil {
		if _, dup := g.siblingNamed(n.name.String(), parent); dup {
			return noField, false
		}
	}
	n.parent = parent
	n.prev = g.lastSibling(parent)
	n.next = noField
	n.valid = true

	id := FieldID(len(g.arena))
	g.arena = append(g.arena, n)

	if n.prev == noField {
		if parent == noField {
			g.head = id
		}
	} else {
		g.arena[n.prev].next = id
	}
	if parent == noField {
		g.tail = id
	}
	if n.name != nil {
		g.names[key(parent, n.name.String())] = id
	}
	return id, true
}

func key(parent FieldID, name string) string {
	return strconv.Itoa(int(parent)) + "\x00" + name
}

func (g *FieldGraph) siblingNamed(name string, parent FieldID) (FieldID, bool) {
	id, ok := g.names[key(parent, name)]
	return id, ok
}

// lastSibling scans the arena in insertion order for the most recently
// added valid node under parent. The arena only ever grows by append, so
// a linear scan keeps this correct without needing per-parent chain
// pointers to stay in sync across Remove.
func (g *FieldGraph) lastSibling(parent FieldID) FieldID {
	last := noField
	for id := FieldID(0); int(id) < len(g.arena); id++ {
		n := g.arena[id]
		if n.parent == parent && n.valid {
			last = id
		}
	}
	return last
}

// Get returns the node at id, or (zero, false) if it was removed or never
// valid.
func (g *FieldGraph) Get(id FieldID) (name *token.Interned, dt DataType, kind FieldKind, ok bool) {
	if int(id) < 0 || int(id) >= len(g.arena) || !g.arena[id].valid {
		return nil, nil, 0, false
	}
	n := g.arena[id]
	return n.name, n.dataType, n.kind, true
}

// BitWidth returns the bit-field width recorded for a member field, if
// any (spec §4.2 "Fields": "bit-widths must evaluate to a non-negative
// integer").
func (g *FieldGraph) BitWidth(id FieldID) (width int64, ok bool) {
	if int(id) < 0 || int(id) >= len(g.arena) || !g.arena[id].valid || g.arena[id].bitWidth == nil {
		return 0, false
	}
	return *g.arena[id].bitWidth, true
}

// Children returns the (ordered) direct children of parent; pass noField
// conceptually via Roots for the top level.
func (g *FieldGraph) Children(parent FieldID) []FieldID {
	var out []FieldID
	for id := FieldID(0); int(id) < len(g.arena); id++ {
		n := g.arena[id]
		if n.valid && n.parent == parent {
			out = append(out, id)
		}
	}
	return out
}

// Roots returns the top-level fields in source order.
func (g *FieldGraph) Roots() []FieldID { return g.Children(noField) }

// Group returns the nested sub-graph for a FieldGroup node.
func (g *FieldGraph) Group(id FieldID) (*FieldGraph, bool) {
	if int(id) < 0 || int(id) >= len(g.arena) || !g.arena[id].valid || g.arena[id].kind != FieldGroup {
		return nil, false
	}
	return g.arena[id].group, true
}

// Prev/Next walk the sibling chain at id's nesting level.
func (g *FieldGraph) Prev(id FieldID) (FieldID, bool) { return g.neighbor(id, true) }
func (g *FieldGraph) Next(id FieldID) (FieldID, bool) { return g.neighbor(id, false) }

func (g *FieldGraph) neighbor(id FieldID, prev bool) (FieldID, bool) {
	if int(id) < 0 || int(id) >= len(g.arena) || !g.arena[id].valid {
		return noField, false
	}
	n := g.arena[id].prev
	if !prev {
		n = g.arena[id].next
	}
	if n == noField || !g.arena[n].valid {
		return noField, false
	}
	return n, true
}

// Remove invalidates id without shifting the arena (spec §9's
// "deletion never dangles"): surviving siblings are relinked around it
// and any FieldID a caller is still holding simply reports not-ok from
// Get/Children/Prev/Next instead of resolving to a reused slot.
func (g *FieldGraph) Remove(id FieldID) {
	if int(id) < 0 || int(id) >= len(g.arena) || !g.arena[id].valid {
		return
	}
	n := g.arena[id]
	if n.prev != noField {
		g.arena[n.prev].next = n.next
	} else if n.parent == noField {
		g.head = n.next
	}
	if n.next != noField {
		g.arena[n.next].prev = n.prev
	} else if n.parent == noField {
		g.tail = n.prev
	}
	if n.name != nil {
		delete(g.names, key(n.parent, n.name.String()))
	}
	g.arena[id].valid = false
}
