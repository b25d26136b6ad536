package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/standard"
)

func scan(t *testing.T, src string, std standard.Standard) ([]token.Token, *cierr.Counter) {
	t.Helper()
	sink := cierr.NewCounter()
	s := New("test.c", []byte(src), std, sink)
	toks, _ := s.Run(false)
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

// Scenario S1: `unsigned long long int x;` under C89 fuses greedily,
// rejects the C99-only double `long`, and re-attempts fusion on the
// unconsumed remainder, which yields no further fusion.
func TestKeywordFusionRollbackUnderC89(t *testing.T) {
	toks, sink := scan(t, "unsigned long long int x;", standard.C89)

	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.RequiredCxxOrLater, sink.Diagnostics[0].Kind)

	got := kinds(toks)
	want := []token.Kind{
		token.KEYWORD_UNSIGNED, token.KEYWORD_LONG, token.KEYWORD_LONG, token.KEYWORD_INT,
		token.IDENTIFIER, token.SEMICOLON, token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestKeywordFusionUnderC99(t *testing.T) {
	toks, sink := scan(t, "unsigned long long int x;", standard.C99)
	assert.Equal(t, 0, sink.CountErrors())

	got := kinds(toks)
	want := []token.Kind{token.KEYWORD_UNSIGNED_LONG_LONG_INT, token.IDENTIFIER, token.SEMICOLON, token.EOF}
	assert.Equal(t, want, got)
}

func TestKeywordFusionBareForms(t *testing.T) {
	toks, sink := scan(t, "signed x; long y; short z;", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())

	var got []token.Kind
	for _, tok := range toks {
		if tok.Kind != token.IDENTIFIER && tok.Kind != token.SEMICOLON && tok.Kind != token.EOF {
			got = append(got, tok.Kind)
		}
	}
	want := []token.Kind{token.KEYWORD_INT, token.KEYWORD_LONG_INT, token.KEYWORD_SHORT_INT}
	assert.Equal(t, want, got)
}

func TestElseIfFusion(t *testing.T) {
	toks, sink := scan(t, "else if (x) {}", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())
	require.NotEmpty(t, toks)
	assert.Equal(t, token.KEYWORD_ELSE_IF, toks[0].Kind)
}

// Scenario S2: nested #if/#elif/#endif groups surface as flat sibling
// tokens, not nested inside one another.
func TestPreprocessorNestedIfElifEndif(t *testing.T) {
	src := "#if A\n" +
		"#if B\n" +
		"#endif\n" +
		"#elif C\n" +
		"#else\n" +
		"#endif\n"
	toks, sink := scan(t, src, standard.C17)
	assert.Equal(t, 0, sink.CountErrors())

	got := kinds(toks)
	want := []token.Kind{token.PP_IF, token.PP_ELIF, token.PP_ELSE, token.PP_ENDIF, token.EOF}
	require.Equal(t, want, got)

	outerIf, ok := toks[0].Payload.(token.IfPayload)
	require.True(t, ok)
	require.Len(t, outerIf.Body, 1)
	assert.Equal(t, token.PP_IF, outerIf.Body[0].Kind)
}

func TestPreprocessorOrphanedElifIsError(t *testing.T) {
	_, sink := scan(t, "#elif X\n", standard.C17)
	assert.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.ExpectedToken, sink.Diagnostics[0].Kind)
}

func TestPreprocessorElseThenElifIsError(t *testing.T) {
	src := "#if A\n#else\n#elif B\n#endif\n"
	_, sink := scan(t, src, standard.C17)
	assert.GreaterOrEqual(t, sink.CountErrors(), 1)
}

func TestPreprocessorDefineWithParamsAndMacroParamSubstitution(t *testing.T) {
	toks, sink := scan(t, "#define MAX(a, b) a\n", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())
	require.Len(t, toks, 2)

	def, ok := toks[0].Payload.(token.DefinePayload)
	require.True(t, ok)
	assert.True(t, def.HasParams)
	require.Len(t, def.Params, 2)
	require.Len(t, def.Body, 1)

	param, ok := def.Body[0].Payload.(token.MacroParamPayload)
	require.True(t, ok)
	assert.Equal(t, 0, param.Index)
}

func TestPreprocessorDefinedOperatorInCondition(t *testing.T) {
	toks, sink := scan(t, "#if defined(FOO)\n#endif\n", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())

	ifTok, ok := toks[0].Payload.(token.IfPayload)
	require.True(t, ok)
	require.Len(t, ifTok.Cond, 1)
	md, ok := ifTok.Cond[0].Payload.(token.MacroDefinedPayload)
	require.True(t, ok)
	assert.Equal(t, "FOO", md.Name.String())
}

func TestPreprocessorIfdefIfndef(t *testing.T) {
	toks, sink := scan(t, "#ifdef FOO\n#endif\n#ifndef BAR\n#endif\n", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())

	got := kinds(toks)
	want := []token.Kind{token.PP_IFDEF, token.PP_ENDIF, token.PP_IFNDEF, token.PP_ENDIF, token.EOF}
	assert.Equal(t, want, got)
}

func TestPreprocessorElifdefGatedToC23(t *testing.T) {
	_, sink := scan(t, "#if A\n#elifdef B\n#endif\n", standard.C17)
	assert.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.RequiredCxxOrLater, sink.Diagnostics[0].Kind)
}

func TestPreprocessorInclude(t *testing.T) {
	toks, sink := scan(t, "#include <stdio.h>\n#include \"local.h\"\n", standard.C17)
	assert.Equal(t, 0, sink.CountErrors())
	require.Len(t, toks, 3)

	inc1, ok := toks[0].Payload.(token.IncludePayload)
	require.True(t, ok)
	assert.Equal(t, "stdio.h", inc1.Path)
	assert.True(t, inc1.Angled)

	inc2, ok := toks[1].Payload.(token.IncludePayload)
	require.True(t, ok)
	assert.Equal(t, "local.h", inc2.Path)
	assert.False(t, inc2.Angled)
}

func TestPreprocessorEmbedWithParams(t *testing.T) {
	toks, sink := scan(t, "#embed \"data.bin\" limit(16)\n", standard.C23)
	assert.Equal(t, 0, sink.CountErrors())
	require.Len(t, toks, 2)

	embed, ok := toks[0].Payload.(token.EmbedPayload)
	require.True(t, ok)
	assert.Equal(t, "data.bin", embed.Path)
	require.NotNil(t, embed.Limit)
	assert.Equal(t, 16, *embed.Limit)
}

func TestPreprocessorEmbedGatedBeforeC23(t *testing.T) {
	_, sink := scan(t, "#embed \"data.bin\"\n", standard.C17)
	assert.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.RequiredCxxOrLater, sink.Diagnostics[0].Kind)
}

func TestPreprocessorErrorWarningLineUndefPragma(t *testing.T) {
	toks, sink := scan(t, "#error boom\n#warning careful\n#line 42 \"f.c\"\n#undef X\n#pragma once\n", standard.C23)
	assert.Equal(t, 0, sink.CountErrors())
	require.Len(t, toks, 6)

	errMsg := toks[0].Payload.(token.MessagePayload)
	assert.Equal(t, "boom", errMsg.Message)

	lineTok := toks[2].Payload.(token.LinePayload)
	assert.Equal(t, 42, lineTok.LineNo)
	require.NotNil(t, lineTok.File)
	assert.Equal(t, "f.c", *lineTok.File)

	pragma := toks[4].Payload.(token.PragmaPayload)
	assert.Equal(t, "once", pragma.Text)
}

func TestNumberLiterals(t *testing.T) {
	toks, sink := scan(t, "0x1F 0b101 0755 123 1_000 1.5 1e10 1.5e-3", standard.C23)
	assert.Equal(t, 0, sink.CountErrors())

	lit := func(i int) token.IntLiteral { return toks[i].Payload.(token.IntLiteral) }
	assert.Equal(t, token.Hex, lit(0).Base)
	assert.Equal(t, "0x1F", lit(0).Text)
	assert.Equal(t, token.Binary, lit(1).Base)
	assert.Equal(t, token.Octal, lit(2).Base)
	assert.Equal(t, token.Decimal, lit(3).Base)
	assert.Equal(t, "1_000", lit(4).Text)

	assert.Equal(t, token.FLOAT_LITERAL, toks[5].Kind)
	assert.Equal(t, token.FLOAT_LITERAL, toks[6].Kind)
	assert.Equal(t, token.FLOAT_LITERAL, toks[7].Kind)
}

func TestInvalidFloatLiteralReportsOnce(t *testing.T) {
	_, sink := scan(t, "1.2.3", standard.C23)
	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.InvalidFloatLiteral, sink.Diagnostics[0].Kind)
}

func TestCharAndStringLiterals(t *testing.T) {
	toks, sink := scan(t, `'a' '\n' "hi\tthere"`, standard.C23)
	assert.Equal(t, 0, sink.CountErrors())

	ch := toks[0].Payload.(token.CharLiteral)
	assert.Equal(t, 'a', ch.Value)
	esc := toks[1].Payload.(token.CharLiteral)
	assert.Equal(t, '\n', esc.Value)
	str := toks[2].Payload.(token.StringLiteral)
	assert.Equal(t, "hi\tthere", str.Value.String())
}

func TestUnclosedStringLiteral(t *testing.T) {
	_, sink := scan(t, "\"abc", standard.C23)
	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.UnclosedStringLiteral, sink.Diagnostics[0].Kind)
}

func TestUnclosedCharLiteral(t *testing.T) {
	_, sink := scan(t, "'a", standard.C23)
	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.UnclosedCharLiteral, sink.Diagnostics[0].Kind)
}

func TestUnclosedBlockComment(t *testing.T) {
	_, sink := scan(t, "/* never closed", standard.C23)
	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.UnclosedCommentBlock, sink.Diagnostics[0].Kind)
}

func TestAttributeWithReason(t *testing.T) {
	toks, sink := scan(t, `[[deprecated("use bar instead")]] void foo();`, standard.C23)
	assert.Equal(t, 0, sink.CountErrors())
	require.Equal(t, token.ATTRIBUTE_DEPRECATED, toks[0].Kind)

	arg := toks[0].Payload.(token.AttributeArg)
	require.True(t, arg.HasReason)
	assert.Equal(t, "use bar instead", arg.Reason.String())
}

func TestAttributeGatedToC23(t *testing.T) {
	_, sink := scan(t, "[[nodiscard]] int f();", standard.C17)
	require.Equal(t, 1, sink.CountErrors())
	assert.Equal(t, cierr.RequiredCxxOrLater, sink.Diagnostics[0].Kind)
}

func TestGenericParamReference(t *testing.T) {
	toks, sink := scan(t, "@T x;", standard.C23)
	assert.Equal(t, 0, sink.CountErrors())
	assert.Equal(t, token.AT, toks[0].Kind)
	id, ok := toks[0].Identifier()
	require.True(t, ok)
	assert.Equal(t, "T", id.String())
}

func TestPunctuationLongestMatch(t *testing.T) {
	toks, sink := scan(t, "<<= >>= ... -> ++ -- && || == != <= >=", standard.C23)
	assert.Equal(t, 0, sink.CountErrors())
	want := []token.Kind{
		token.LSHIFT_EQ, token.RSHIFT_EQ, token.DOT_DOT_DOT, token.ARROW,
		token.PLUS_PLUS, token.MINUS_MINUS, token.AMP_AMP, token.PIPE_PIPE,
		token.EQ_EQ, token.BANG_EQ, token.LT_EQ, token.GT_EQ,
	}
	assert.Equal(t, want, kinds(toks)[:len(want)])
}
