package checked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily/loc"
)

func noRange() loc.Range { return loc.Range{} }

func TestEqualScalarSameKind(t *testing.T) {
	a := NewScalar(Int32, noRange())
	b := NewScalar(Int32, noRange())
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, NewScalar(Int64, noRange())))
}

func TestEqualUnknownMatchesAnything(t *testing.T) {
	u := NewScalar(Unknown, noRange())
	assert.True(t, Equal(u, NewScalar(Str, noRange())))
}

func TestEqualMutPromotion(t *testing.T) {
	inner := NewScalar(Int32, noRange())
	mut := NewWrapper(Mut, inner, noRange())
	assert.True(t, Equal(mut, NewScalar(Int32, noRange())))
	assert.True(t, Equal(NewScalar(Int32, noRange()), mut))
}

func TestEqualOptionalPromotion(t *testing.T) {
	inner := NewScalar(Bool, noRange())
	opt := NewWrapper(Optional, inner, noRange())
	assert.True(t, Equal(opt, NewScalar(Bool, noRange())))
}

func TestEqualCompilerChoiceRefinesUnlocked(t *testing.T) {
	choice := NewCompilerChoice([]DataType{
		NewScalar(Int32, noRange()),
		NewScalar(Str, noRange()),
	}, noRange())
	require.False(t, choice.Locked())

	ok := Equal(choice, NewScalar(Int32, noRange()))
	assert.True(t, ok)

	remaining, _ := Choices(choice)
	require.Len(t, remaining, 1)
	assert.Equal(t, Int32, remaining[0].KindOf())
}

func TestEqualCompilerChoiceLockedRequiresExactSet(t *testing.T) {
	a := NewCompilerChoice([]DataType{NewScalar(Int32, noRange()), NewScalar(Str, noRange())}, noRange())
	a.Lock()
	b := NewCompilerChoice([]DataType{NewScalar(Str, noRange()), NewScalar(Int32, noRange())}, noRange())
	b.Lock()
	assert.True(t, Equal(a, b))

	c := NewCompilerChoice([]DataType{NewScalar(Int32, noRange())}, noRange())
	c.Lock()
	assert.False(t, Equal(a, c))
}

func TestEqualTwoUnlockedChoicesRefineToCommonSubset(t *testing.T) {
	a := NewCompilerChoice([]DataType{
		NewScalar(Int32, noRange()),
		NewScalar(Int64, noRange()),
		NewScalar(Float64, noRange()),
	}, noRange())
	b := NewCompilerChoice([]DataType{
		NewScalar(Int64, noRange()),
		NewScalar(Float64, noRange()),
		NewScalar(Str, noRange()),
	}, noRange())

	assert.True(t, Equal(a, b))

	aChoices, _ := Choices(a)
	bChoices, _ := Choices(b)
	require.Len(t, aChoices, 2)
	require.Len(t, bChoices, 2)
	for _, c := range aChoices {
		assert.Contains(t, []Kind{Int64, Float64}, c.KindOf())
	}
	for _, c := range bChoices {
		assert.Contains(t, []Kind{Int64, Float64}, c.KindOf())
	}
}

func TestEqualTwoUnlockedChoicesEmptyIntersectionFails(t *testing.T) {
	a := NewCompilerChoice([]DataType{NewScalar(Int32, noRange())}, noRange())
	b := NewCompilerChoice([]DataType{NewScalar(Str, noRange())}, noRange())
	assert.False(t, Equal(a, b))
}

func TestEqualArrayUnknownShapeCoalesces(t *testing.T) {
	unknown := NewArrayType(NewScalar(Int8, noRange()), ArrayUnknown, 0, noRange())
	sized := NewArrayType(NewScalar(Int8, noRange()), ArraySized, 4, noRange())
	assert.True(t, Equal(unknown, sized))
	assert.Equal(t, ArraySized, unknown.Shape)
	assert.EqualValues(t, 4, unknown.Size)
}

func TestUpdateRewritesUnknownScalar(t *testing.T) {
	self := NewScalar(Unknown, noRange())
	out := Update(self, NewScalar(Bool, noRange()))
	s, ok := out.(*Scalar)
	require.True(t, ok)
	assert.Equal(t, Bool, s.K)
	assert.True(t, s.Locked())
}

func TestUpdateRejectsLockedSelf(t *testing.T) {
	self := NewScalar(Int32, noRange())
	out := Update(self, NewScalar(Bool, noRange()))
	assert.Same(t, self, out)
	assert.Equal(t, Int32, self.K)
}

func TestSubstituteMapReplacesGeneric(t *testing.T) {
	g := NewCompilerGeneric("T", noRange())
	ptr := NewWrapper(Ptr, g, noRange())
	out := SubstituteMap(ptr, map[string]DataType{"T": NewScalar(Int32, noRange())})
	w, ok := out.(*Wrapper)
	require.True(t, ok)
	assert.True(t, Equal(w.Inner, NewScalar(Int32, noRange())))
}

func TestSubstituteMapNoGenericReturnsSameReference(t *testing.T) {
	dt := NewScalar(Int32, noRange())
	out := SubstituteMap(dt, map[string]DataType{"T": NewScalar(Bool, noRange())})
	assert.Same(t, dt, out)
}

func TestIsGuaranteeWrapsOpenType(t *testing.T) {
	g := NewCompilerGeneric("T", noRange())
	out := IsGuarantee(g, Ptr)
	require.NotNil(t, out)
	w, ok := out.(*Wrapper)
	require.True(t, ok)
	assert.Equal(t, Ptr, w.K)
}

func TestIsGuaranteeRejectsMismatch(t *testing.T) {
	dt := NewScalar(Int32, noRange())
	assert.Nil(t, IsGuarantee(dt, Bool))
}

func TestGetDirectCustomDataTypePeelsWrappers(t *testing.T) {
	custom := NewCustom(0, "Point", "main.Point", nil, CustomRecord, false, noRange())
	wrapped := NewWrapper(Ref, NewWrapper(Optional, custom, noRange()), noRange())
	got := GetDirectCustomDataType(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "Point", got.Name)
}

func TestSerializeDistinguishesShapes(t *testing.T) {
	a := SerializeString(NewWrapper(Ptr, NewScalar(Int32, noRange()), noRange()))
	b := SerializeString(NewWrapper(Ref, NewScalar(Int32, noRange()), noRange()))
	assert.NotEqual(t, a, b)
}

func TestFreeGenericsDeduplicates(t *testing.T) {
	g := NewCompilerGeneric("T", noRange())
	tup := NewTuple([]DataType{g, g, NewCompilerGeneric("U", noRange())}, noRange())
	names := FreeGenerics(tup)
	assert.Equal(t, []string{"T", "U"}, names)
}

func TestGenerateGenericParamsFromResolved(t *testing.T) {
	original := NewWrapper(Ptr, NewCompilerGeneric("T", noRange()), noRange())
	resolved := NewWrapper(Ptr, NewScalar(Int32, noRange()), noRange())
	params := GenerateGenericParamsFromResolved(resolved, []GenericParam{{Name: "T"}}, original)
	require.Contains(t, params, "T")
	assert.Equal(t, Int32, params["T"].KindOf())
}
