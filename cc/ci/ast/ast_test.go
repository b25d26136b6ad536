package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily/cc/ci/token"
)

func internName(t *testing.T, s string) *token.Interned {
	t.Helper()
	return token.NewInterner().Intern(s)
}

func TestScopeAddAndLookupWalksParent(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)
	require.Len(t, root.Children, 1)
	assert.Same(t, child, root.Children[0])

	v := &VariableDecl{Name: internName(t, "x")}
	ok := root.AddVariable(v)
	require.True(t, ok)

	got, found := child.LookupVariable("x")
	require.True(t, found)
	assert.Same(t, v, got)
}

func TestScopeAddVariableRejectsDuplicate(t *testing.T) {
	s := NewScope(nil)
	name := internName(t, "x")
	assert.True(t, s.AddVariable(&VariableDecl{Name: name}))
	assert.False(t, s.AddVariable(&VariableDecl{Name: name}))
}

func TestScopeLookupLabelStopsAtFunctionBody(t *testing.T) {
	root := NewScope(nil)
	fn := NewScope(root)
	fn.IsFunctionBody = true
	block := NewScope(fn)

	lbl := &LabelDecl{Name: internName(t, "done")}
	require.True(t, root.AddLabel(lbl))

	_, found := block.LookupLabel("done")
	assert.False(t, found, "goto targets must not resolve past the enclosing function body")
}

func TestVariableDeclIsPrototype(t *testing.T) {
	d := &VariableDecl{Storage: StorageExtern, HasInit: false}
	assert.True(t, d.IsPrototype())

	d2 := &VariableDecl{Storage: StorageExtern, HasInit: true}
	assert.False(t, d2.IsPrototype())
}

func TestQualifierBitset(t *testing.T) {
	var q Qualifier
	q.Add(QualifierConst)
	q.Add(QualifierAtomic)
	assert.True(t, q.Has(QualifierConst))
	assert.True(t, q.Has(QualifierAtomic))
	assert.False(t, q.Has(QualifierVolatile))
}

func TestContextAddRejectsMutuallyExclusivePairs(t *testing.T) {
	var c Context
	require.True(t, c.AddContext(ContextHeap))
	assert.False(t, c.AddContext(ContextStack))
	assert.True(t, c.Has(ContextHeap))
	assert.False(t, c.Has(ContextStack))
}

func TestLookupContextKnownAndUnknown(t *testing.T) {
	c, ok := LookupContext("heap")
	require.True(t, ok)
	assert.Equal(t, ContextHeap, c)

	_, ok = LookupContext("bogus")
	assert.False(t, ok)
}

func TestFieldGraphOrderingAndLookup(t *testing.T) {
	g := NewFieldGraph()
	first, ok := g.AddField(internName(t, "a"), nil, nil, noField)
	require.True(t, ok)
	second, ok := g.AddField(internName(t, "b"), nil, nil, noField)
	require.True(t, ok)

	roots := g.Roots()
	require.Equal(t, []FieldID{first, second}, roots)

	next, ok := g.Next(first)
	require.True(t, ok)
	assert.Equal(t, second, next)
}

func TestFieldGraphRejectsDuplicateSiblingName(t *testing.T) {
	g := NewFieldGraph()
	name := internName(t, "x")
	_, ok := g.AddField(name, nil, nil, noField)
	require.True(t, ok)
	_, ok = g.AddField(name, nil, nil, noField)
	assert.False(t, ok)
}

func TestFieldGraphRemoveRelinksSiblings(t *testing.T) {
	g := NewFieldGraph()
	a, _ := g.AddField(internName(t, "a"), nil, nil, noField)
	b, _ := g.AddField(internName(t, "b"), nil, nil, noField)
	c, _ := g.AddField(internName(t, "c"), nil, nil, noField)

	g.Remove(b)

	_, _, _, ok := g.Get(b)
	assert.False(t, ok)

	next, ok := g.Next(a)
	require.True(t, ok)
	assert.Equal(t, c, next)

	prev, ok := g.Prev(c)
	require.True(t, ok)
	assert.Equal(t, a, prev)
}

func TestFieldGraphBitWidth(t *testing.T) {
	g := NewFieldGraph()
	w := int64(3)
	id, ok := g.AddField(internName(t, "flag"), nil, &w, noField)
	require.True(t, ok)

	got, ok := g.BitWidth(id)
	require.True(t, ok)
	assert.EqualValues(t, 3, got)
}
