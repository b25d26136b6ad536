package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily/cc/ci/ast"
	"github.com/thelilylang/lily/cc/ci/scanner"
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/standard"
)

func newParser(t *testing.T, src string, std standard.Standard) (*Parser, *cierr.Counter) {
	t.Helper()
	scanCounter := cierr.NewCounter()
	s := scanner.New("test.c", []byte(src), std, scanCounter)
	toks, _ := s.Run(false)
	require.Equal(t, 0, scanCounter.CountErrors(), "scan phase must be clean for a parser test fixture")

	counter := cierr.NewCounter()
	root := ast.NewScope(nil)
	p := New(toks, std, counter, root, s.Interner())
	p.SetConstEvaluator(LiteralConstEvaluator{})
	return p, counter
}

func TestParseVariableDeclaration(t *testing.T) {
	p, counter := newParser(t, "int x = 1;", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	require.Len(t, decls, 1)
	vd, ok := decls[0].(*ast.VariableDecl)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name.String())
	assert.True(t, vd.HasInit)
	assert.False(t, vd.IsPrototype())
}

func TestParseFunctionPrototypeVsDefinition(t *testing.T) {
	p, counter := newParser(t, "int add(int a, int b);", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	require.Len(t, decls, 1)
	fd := decls[0].(*ast.FunctionDecl)
	assert.True(t, fd.IsPrototype())
	assert.Len(t, fd.DataType.Params, 2)

	p2, counter2 := newParser(t, "int add(int a, int b) { return a + b; }", standard.C17)
	decls2 := p2.Run()
	require.Equal(t, 0, counter2.CountErrors())
	fd2 := decls2[0].(*ast.FunctionDecl)
	assert.False(t, fd2.IsPrototype())
}

func TestParsePointerToArray(t *testing.T) {
	// int (*fp)(int)[3] isn't legal C (functions can't return arrays), but
	// "pointer to array of int" exercises the two-pass parenthesized
	// sub-declarator scheme cleanly: int (*p)[3].
	p, counter := newParser(t, "int (*p)[3];", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	require.Len(t, decls, 1)
	vd := decls[0].(*ast.VariableDecl)
	ptr, ok := vd.DataType.(*ast.Pointer)
	require.True(t, ok)
	arr, ok := ptr.Pointee.(*ast.Array)
	require.True(t, ok)
	assert.Equal(t, ast.ArraySized, arr.SizeKind)
	assert.EqualValues(t, 3, arr.Size)
}

func TestParseStructWithFieldsRegistersScope(t *testing.T) {
	p, counter := newParser(t, "struct point { int x; int y; };", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	require.Len(t, decls, 1)
	sd := decls[0].(*ast.StructDecl)
	require.NotNil(t, sd.DataType.Fields)
	roots := sd.DataType.Fields.Roots()
	assert.Len(t, roots, 2)

	_, found := p.scope.LookupStruct("point")
	assert.True(t, found)
}

func TestParseDuplicateFieldNameReportsDiagnostic(t *testing.T) {
	p, counter := newParser(t, "struct s { int x; int x; };", standard.C17)
	p.Run()
	require.Equal(t, 1, counter.CountErrors())
	assert.Equal(t, cierr.DuplicateField, counter.Diagnostics[0].Kind)
}

func TestParseEnumAutoIncrement(t *testing.T) {
	p, counter := newParser(t, "enum color { RED, GREEN = 5, BLUE };", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	ed := decls[0].(*ast.EnumDecl)
	require.Len(t, ed.DataType.Variants, 3)
	assert.EqualValues(t, 0, ed.DataType.Variants[0].Value)
	assert.EqualValues(t, 5, ed.DataType.Variants[1].Value)
	assert.EqualValues(t, 6, ed.DataType.Variants[2].Value)
}

func TestParseTypedef(t *testing.T) {
	p, counter := newParser(t, "typedef unsigned long int u64;", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	td := decls[0].(*ast.TypedefDecl)
	assert.Equal(t, "u64", td.Name.String())
	b, ok := td.DataType.(*ast.Builtin)
	require.True(t, ok)
	assert.Equal(t, token.KEYWORD_UNSIGNED_LONG_INT, b.Kind)
}

func TestParseTypedefWithInitializerRejected(t *testing.T) {
	p, counter := newParser(t, "typedef int x = 1;", standard.C17)
	p.Run()
	assert.GreaterOrEqual(t, counter.CountErrors(), 1)
}

func TestParseForLoopInitDeclRequiresC99(t *testing.T) {
	p, counter := newParser(t, "void f(void) { for (int i = 0; i < 10; i++) {} }", standard.C89)
	p.Run()
	require.GreaterOrEqual(t, len(counter.Diagnostics), 1)
	assert.Equal(t, cierr.RequiredCxxOrLater, counter.Diagnostics[0].Kind)
}

func TestParseForLoopInitDeclAllowedUnderC99(t *testing.T) {
	p, counter := newParser(t, "void f(void) { for (int i = 0; i < 10; i++) {} }", standard.C99)
	p.Run()
	assert.Equal(t, 0, counter.CountErrors())
}

func TestParseBreakOutsideLoopReportsDiagnostic(t *testing.T) {
	p, counter := newParser(t, "void f(void) { break; }", standard.C17)
	p.Run()
	require.Equal(t, 1, counter.CountErrors())
	assert.Equal(t, cierr.UnexpectedBreak, counter.Diagnostics[0].Kind)
}

func TestParseLabelThenDeclarationRejected(t *testing.T) {
	p, counter := newParser(t, "void f(void) { done: int x; }", standard.C17)
	p.Run()
	require.Equal(t, 1, counter.CountErrors())
	assert.Equal(t, cierr.VariableInLabel, counter.Diagnostics[0].Kind)
}

func TestParsePointerContextMutualExclusion(t *testing.T) {
	p, counter := newParser(t, "int *!heap !stack p;", standard.C17)
	p.Run()
	require.Equal(t, 1, counter.CountErrors())
	assert.Equal(t, cierr.IncompatibleDataTypeContext, counter.Diagnostics[0].Kind)
}

func TestParseGenericStructDeclaration(t *testing.T) {
	p, counter := newParser(t, "struct pair.[@T, @U] { @T first; @U second; };", standard.C17)
	decls := p.Run()
	require.Equal(t, 0, counter.CountErrors())
	sd := decls[0].(*ast.StructDecl)
	require.Len(t, sd.DataType.Generics, 2)
	assert.Equal(t, "T", sd.DataType.Generics[0].String())
}

func TestSubstituteDataTypeReplacesGeneric(t *testing.T) {
	interner := token.NewInterner()
	tName := interner.Intern("T")
	g := ast.NewGeneric(tName, ast.Struct{}.Rg)
	intType := ast.NewBuiltin(token.KEYWORD_INT, g.Rg)

	ptr := ast.NewPointer(g, g.Rg)
	out := SubstituteDataType(ptr, []string{"T"}, []ast.DataType{intType})

	outPtr, ok := out.(*ast.Pointer)
	require.True(t, ok)
	assert.True(t, outPtr.Pointee.Equal(intType))
}

func TestSubstituteDataTypeNoGenericReturnsSameReference(t *testing.T) {
	b := ast.NewBuiltin(token.KEYWORD_INT, ast.Struct{}.Rg)
	out := SubstituteDataType(b, []string{"T"}, nil)
	assert.Same(t, b, out)
}
