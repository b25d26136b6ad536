package token

import "github.com/thelilylang/lily/standard"

// Kind tags the 159 token variants defined below, grouped by
// category: punctuation/operators, keywords (including fused multi-word
// keywords, spec §4.1), literals, attributes, preprocessor directives, and
// a handful of special sentinels.
type Kind int

const (
	// Special
	EOF Kind = iota
	EOT // end-of-token-stream sentinel between preprocessor groups

	// Identifiers and literals
	IDENTIFIER
	INT_LITERAL
	FLOAT_LITERAL
	CHAR_LITERAL
	STRING_LITERAL

	// Punctuation / operators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	SEMICOLON
	COMMA
	COLON
	DOT
	DOT_DOT_DOT
	ARROW
	QUESTION
	BANG

	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	PLUS_PLUS
	MINUS_MINUS

	AMP
	PIPE
	CARET
	TILDE
	LSHIFT
	RSHIFT

	AMP_AMP
	PIPE_PIPE

	EQ
	EQ_EQ
	BANG_EQ
	LT
	GT
	LT_EQ
	GT_EQ

	PLUS_EQ
	MINUS_EQ
	STAR_EQ
	SLASH_EQ
	PERCENT_EQ
	AMP_EQ
	PIPE_EQ
	CARET_EQ
	LSHIFT_EQ
	RSHIFT_EQ

	AT // @ident generic type parameter reference
	HASH
	HASH_HASH

	// Keywords (unfused)
	KEYWORD_AUTO
	KEYWORD_BREAK
	KEYWORD_CASE
	KEYWORD_CHAR
	KEYWORD_CONST
	KEYWORD_CONTINUE
	KEYWORD_DEFAULT
	KEYWORD_DO
	KEYWORD_DOUBLE
	KEYWORD_ELSE
	KEYWORD_ENUM
	KEYWORD_EXTERN
	KEYWORD_FLOAT
	KEYWORD_FOR
	KEYWORD_GOTO
	KEYWORD_IF
	KEYWORD_INLINE
	KEYWORD_INT
	KEYWORD_LONG
	KEYWORD_REGISTER
	KEYWORD_RESTRICT
	KEYWORD_RETURN
	KEYWORD_SHORT
	KEYWORD_SIGNED
	KEYWORD_SIZEOF
	KEYWORD_STATIC
	KEYWORD_STRUCT
	KEYWORD_SWITCH
	KEYWORD_TYPEDEF
	KEYWORD_UNION
	KEYWORD_UNSIGNED
	KEYWORD_VOID
	KEYWORD_VOLATILE
	KEYWORD_WHILE

	KEYWORD__ALIGNAS
	KEYWORD__ALIGNOF
	KEYWORD__ATOMIC
	KEYWORD__BOOL
	KEYWORD__COMPLEX
	KEYWORD__GENERIC
	KEYWORD__IMAGINARY
	KEYWORD__NORETURN
	KEYWORD__STATIC_ASSERT
	KEYWORD__THREAD_LOCAL

	KEYWORD_ALIGNAS
	KEYWORD_ALIGNOF
	KEYWORD_BOOL
	KEYWORD_CONSTEXPR
	KEYWORD_NULLPTR
	KEYWORD_STATIC_ASSERT
	KEYWORD_THREAD_LOCAL
	KEYWORD_TYPEOF
	KEYWORD_TYPEOF_UNQUAL
	KEYWORD_TRUE
	KEYWORD_FALSE

	// Fused multi-word keywords (spec §4.1 keyword fusion DFA)
	KEYWORD_LONG_INT
	KEYWORD_LONG_LONG_INT
	KEYWORD_SHORT_INT
	KEYWORD_SIGNED_CHAR
	KEYWORD_SIGNED_SHORT_INT
	KEYWORD_SIGNED_INT
	KEYWORD_SIGNED_LONG_INT
	KEYWORD_SIGNED_LONG_LONG_INT
	KEYWORD_UNSIGNED_CHAR
	KEYWORD_UNSIGNED_SHORT_INT
	KEYWORD_UNSIGNED_INT
	KEYWORD_UNSIGNED_LONG_INT
	KEYWORD_UNSIGNED_LONG_LONG_INT
	KEYWORD_LONG_DOUBLE
	KEYWORD_LONG_DOUBLE_COMPLEX
	KEYWORD_LONG_DOUBLE_IMAGINARY
	KEYWORD_FLOAT_COMPLEX
	KEYWORD_FLOAT_IMAGINARY
	KEYWORD_DOUBLE_COMPLEX
	KEYWORD_DOUBLE_IMAGINARY
	KEYWORD_ELSE_IF

	// CI dialect extension keywords (data-type contexts, spec §6)
	KEYWORD_NULLPTR_T

	// Attribute surface (spec §6)
	ATTRIBUTE_DEPRECATED
	ATTRIBUTE_FALLTHROUGH
	ATTRIBUTE_MAYBE_UNUSED
	ATTRIBUTE_NODISCARD
	ATTRIBUTE_NORETURN
	ATTRIBUTE__NORETURN
	ATTRIBUTE_UNSEQUENCED
	ATTRIBUTE_REPRODUCIBLE

	// Preprocessor tokens (spec §3 "Preprocessor tokens")
	PP_DEFINE
	PP_UNDEF
	PP_INCLUDE
	PP_EMBED
	PP_IF
	PP_IFDEF
	PP_IFNDEF
	PP_ELIF
	PP_ELIFDEF
	PP_ELIFNDEF
	PP_ELSE
	PP_ENDIF
	PP_ERROR
	PP_WARNING
	PP_LINE
	PP_PRAGMA
	PP_MACRO_PARAM
	PP_MACRO_DEFINED
)

var names = map[Kind]string{
	EOF: "EOF", EOT: "EOT",
	IDENTIFIER: "IDENTIFIER", INT_LITERAL: "INT_LITERAL", FLOAT_LITERAL: "FLOAT_LITERAL",
	CHAR_LITERAL: "CHAR_LITERAL", STRING_LITERAL: "STRING_LITERAL",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]",
	SEMICOLON: ";", COMMA: ",", COLON: ":", DOT: ".", DOT_DOT_DOT: "...", ARROW: "->",
	QUESTION: "?", BANG: "!",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	PLUS_PLUS: "++", MINUS_MINUS: "--",
	AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", LSHIFT: "<<", RSHIFT: ">>",
	AMP_AMP: "&&", PIPE_PIPE: "||",
	EQ: "=", EQ_EQ: "==", BANG_EQ: "!=", LT: "<", GT: ">", LT_EQ: "<=", GT_EQ: ">=",
	PLUS_EQ: "+=", MINUS_EQ: "-=", STAR_EQ: "*=", SLASH_EQ: "/=", PERCENT_EQ: "%=",
	AMP_EQ: "&=", PIPE_EQ: "|=", CARET_EQ: "^=", LSHIFT_EQ: "<<=", RSHIFT_EQ: ">>=",
	AT: "@", HASH: "#", HASH_HASH: "##",
	PP_DEFINE: "#define", PP_UNDEF: "#undef", PP_INCLUDE: "#include", PP_EMBED: "#embed",
	PP_IF: "#if", PP_IFDEF: "#ifdef", PP_IFNDEF: "#ifndef", PP_ELIF: "#elif",
	PP_ELIFDEF: "#elifdef", PP_ELIFNDEF: "#elifndef", PP_ELSE: "#else", PP_ENDIF: "#endif",
	PP_ERROR: "#error", PP_WARNING: "#warning", PP_LINE: "#line", PP_PRAGMA: "#pragma",
	PP_MACRO_PARAM: "MACRO_PARAM", PP_MACRO_DEFINED: "MACRO_DEFINED",
}

// String renders the token kind's canonical spelling, falling back to the
// keyword/attribute/preprocessor identifying name when not a fixed
// punctuator.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	if s, ok := keywordSpellings[k]; ok {
		return s
	}
	return "<kind>"
}

// FeatureTable maps every gated token kind to its since/until standard
// window (spec §3 "feature descriptor"). Kinds absent from the table are
// implicitly standard.Always (available in every standard, never
// removed) — the common case for punctuation and the core keyword set.
var FeatureTable = map[Kind]standard.FeatureDescriptor{
	KEYWORD_INLINE:         {Since: standard.C99, Until: standard.None},
	KEYWORD_RESTRICT:       {Since: standard.C99, Until: standard.None},
	KEYWORD__BOOL:          {Since: standard.C99, Until: standard.C23},
	KEYWORD__COMPLEX:       {Since: standard.C99, Until: standard.C23},
	KEYWORD__IMAGINARY:     {Since: standard.C99, Until: standard.C23},
	KEYWORD_LONG_LONG_INT:  {Since: standard.C99, Until: standard.None},
	KEYWORD_SIGNED_LONG_LONG_INT:   {Since: standard.C99, Until: standard.None},
	KEYWORD_UNSIGNED_LONG_LONG_INT: {Since: standard.C99, Until: standard.None},
	KEYWORD_LONG_DOUBLE_COMPLEX:    {Since: standard.C99, Until: standard.C23},
	KEYWORD_LONG_DOUBLE_IMAGINARY:  {Since: standard.C99, Until: standard.C23},
	KEYWORD_FLOAT_COMPLEX:          {Since: standard.C99, Until: standard.C23},
	KEYWORD_FLOAT_IMAGINARY:        {Since: standard.C99, Until: standard.C23},
	KEYWORD_DOUBLE_COMPLEX:         {Since: standard.C99, Until: standard.C23},
	KEYWORD_DOUBLE_IMAGINARY:       {Since: standard.C99, Until: standard.C23},

	KEYWORD__ALIGNAS:        {Since: standard.C11, Until: standard.C23},
	KEYWORD__ALIGNOF:        {Since: standard.C11, Until: standard.C23},
	KEYWORD__ATOMIC:         {Since: standard.C11, Until: standard.None},
	KEYWORD__GENERIC:        {Since: standard.C11, Until: standard.None},
	KEYWORD__NORETURN:       {Since: standard.C11, Until: standard.C23},
	KEYWORD__STATIC_ASSERT:  {Since: standard.C11, Until: standard.C23},
	KEYWORD__THREAD_LOCAL:   {Since: standard.C11, Until: standard.C23},

	KEYWORD_ALIGNAS:        {Since: standard.C23, Until: standard.None},
	KEYWORD_ALIGNOF:        {Since: standard.C23, Until: standard.None},
	KEYWORD_BOOL:           {Since: standard.C23, Until: standard.None},
	KEYWORD_CONSTEXPR:      {Since: standard.C23, Until: standard.None},
	KEYWORD_NULLPTR:        {Since: standard.C23, Until: standard.None},
	KEYWORD_STATIC_ASSERT:  {Since: standard.C23, Until: standard.None},
	KEYWORD_THREAD_LOCAL:   {Since: standard.C23, Until: standard.None},
	KEYWORD_TYPEOF:         {Since: standard.C23, Until: standard.None},
	KEYWORD_TYPEOF_UNQUAL:  {Since: standard.C23, Until: standard.None},
	KEYWORD_TRUE:           {Since: standard.C23, Until: standard.None},
	KEYWORD_FALSE:          {Since: standard.C23, Until: standard.None},
	NULLPTR_T:              {Since: standard.C23, Until: standard.None},

	ATTRIBUTE_DEPRECATED:    {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_FALLTHROUGH:   {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_MAYBE_UNUSED:  {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_NODISCARD:     {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_NORETURN:      {Since: standard.C23, Until: standard.None},
	ATTRIBUTE__NORETURN:     {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_UNSEQUENCED:   {Since: standard.C23, Until: standard.None},
	ATTRIBUTE_REPRODUCIBLE:  {Since: standard.C23, Until: standard.None},

	PP_EMBED:    {Since: standard.C23, Until: standard.None},
	PP_ELIFDEF:  {Since: standard.C23, Until: standard.None},
	PP_ELIFNDEF: {Since: standard.C23, Until: standard.None},
	PP_WARNING:  {Since: standard.C23, Until: standard.None},
}

// NULLPTR_T is the nullptr_t literal builtin kind used by parse_pre_data_type
// (spec §4.2). It is declared separately from the Kind block above because
// it names a builtin type rather than an operator/keyword spelling, but it
// shares the Kind numbering space.
const NULLPTR_T = KEYWORD_NULLPTR_T

// Feature returns the gating window for k, defaulting to "always
// available" for ungated kinds.
func Feature(k Kind) standard.FeatureDescriptor {
	if f, ok := FeatureTable[k]; ok {
		return f
	}
	return standard.Always
}

var keywordSpellings = map[Kind]string{
	KEYWORD_AUTO: "auto", KEYWORD_BREAK: "break", KEYWORD_CASE: "case", KEYWORD_CHAR: "char",
	KEYWORD_CONST: "const", KEYWORD_CONTINUE: "continue", KEYWORD_DEFAULT: "default",
	KEYWORD_DO: "do", KEYWORD_DOUBLE: "double", KEYWORD_ELSE: "else", KEYWORD_ENUM: "enum",
	KEYWORD_EXTERN: "extern", KEYWORD_FLOAT: "float", KEYWORD_FOR: "for", KEYWORD_GOTO: "goto",
	KEYWORD_IF: "if", KEYWORD_INLINE: "inline", KEYWORD_INT: "int", KEYWORD_LONG: "long",
	KEYWORD_REGISTER: "register", KEYWORD_RESTRICT: "restrict", KEYWORD_RETURN: "return",
	KEYWORD_SHORT: "short", KEYWORD_SIGNED: "signed", KEYWORD_SIZEOF: "sizeof",
	KEYWORD_STATIC: "static", KEYWORD_STRUCT: "struct", KEYWORD_SWITCH: "switch",
	KEYWORD_TYPEDEF: "typedef", KEYWORD_UNION: "union", KEYWORD_UNSIGNED: "unsigned",
	KEYWORD_VOID: "void", KEYWORD_VOLATILE: "volatile", KEYWORD_WHILE: "while",

	KEYWORD__ALIGNAS: "_Alignas", KEYWORD__ALIGNOF: "_Alignof", KEYWORD__ATOMIC: "_Atomic",
	KEYWORD__BOOL: "_Bool", KEYWORD__COMPLEX: "_Complex", KEYWORD__GENERIC: "_Generic",
	KEYWORD__IMAGINARY: "_Imaginary", KEYWORD__NORETURN: "_Noreturn",
	KEYWORD__STATIC_ASSERT: "_Static_assert", KEYWORD__THREAD_LOCAL: "_Thread_local",

	KEYWORD_ALIGNAS: "alignas", KEYWORD_ALIGNOF: "alignof", KEYWORD_BOOL: "bool",
	KEYWORD_CONSTEXPR: "constexpr", KEYWORD_NULLPTR: "nullptr",
	KEYWORD_STATIC_ASSERT: "static_assert", KEYWORD_THREAD_LOCAL: "thread_local",
	KEYWORD_TYPEOF: "typeof", KEYWORD_TYPEOF_UNQUAL: "typeof_unqual",
	KEYWORD_TRUE: "true", KEYWORD_FALSE: "false",

	KEYWORD_LONG_INT: "long int", KEYWORD_LONG_LONG_INT: "long long int",
	KEYWORD_SHORT_INT: "short int", KEYWORD_SIGNED_CHAR: "signed char",
	KEYWORD_SIGNED_SHORT_INT: "signed short int", KEYWORD_SIGNED_INT: "signed int",
	KEYWORD_SIGNED_LONG_INT: "signed long int", KEYWORD_SIGNED_LONG_LONG_INT: "signed long long int",
	KEYWORD_UNSIGNED_CHAR: "unsigned char", KEYWORD_UNSIGNED_SHORT_INT: "unsigned short int",
	KEYWORD_UNSIGNED_INT: "unsigned int", KEYWORD_UNSIGNED_LONG_INT: "unsigned long int",
	KEYWORD_UNSIGNED_LONG_LONG_INT: "unsigned long long int",
	KEYWORD_LONG_DOUBLE: "long double", KEYWORD_LONG_DOUBLE_COMPLEX: "long double _Complex",
	KEYWORD_LONG_DOUBLE_IMAGINARY: "long double _Imaginary",
	KEYWORD_FLOAT_COMPLEX: "float _Complex", KEYWORD_FLOAT_IMAGINARY: "float _Imaginary",
	KEYWORD_DOUBLE_COMPLEX: "double _Complex", KEYWORD_DOUBLE_IMAGINARY: "double _Imaginary",
	KEYWORD_ELSE_IF: "else if",

	KEYWORD_NULLPTR_T: "nullptr_t",

	ATTRIBUTE_DEPRECATED: "deprecated", ATTRIBUTE_FALLTHROUGH: "fallthrough",
	ATTRIBUTE_MAYBE_UNUSED: "maybe_unused", ATTRIBUTE_NODISCARD: "nodiscard",
	ATTRIBUTE_NORETURN: "noreturn", ATTRIBUTE__NORETURN: "_Noreturn",
	ATTRIBUTE_UNSEQUENCED: "unsequenced", ATTRIBUTE_REPRODUCIBLE: "reproducible",
}

// Keywords maps a keyword's spelling to its unfused Kind, used by the
// scanner's identifier-or-keyword classification step.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(keywordSpellings))
	for k, s := range keywordSpellings {
		// Exclude fused/compound spellings (contain a space): those are
		// only reachable through keyword fusion, never a single
		// identifier scan.
		isFused := false
		for _, r := range s {
			if r == ' ' {
				isFused = true
				break
			}
		}
		if !isFused {
			m[s] = k
		}
	}
	return m
}()

// Attributes maps an attribute name's spelling to its Kind, used by the
// parser's [[ name(args?) ]] production (spec §6 "Attribute surface").
var Attributes = map[string]Kind{
	"deprecated":    ATTRIBUTE_DEPRECATED,
	"fallthrough":   ATTRIBUTE_FALLTHROUGH,
	"maybe_unused":  ATTRIBUTE_MAYBE_UNUSED,
	"nodiscard":     ATTRIBUTE_NODISCARD,
	"noreturn":      ATTRIBUTE_NORETURN,
	"_Noreturn":     ATTRIBUTE__NORETURN,
	"unsequenced":   ATTRIBUTE_UNSEQUENCED,
	"reproducible":  ATTRIBUTE_REPRODUCIBLE,
}

// AttributesWithReason is the subset of attributes that accept a string
// reason argument (spec §6: "deprecated and nodiscard accept a string
// argument").
var AttributesWithReason = map[Kind]bool{
	ATTRIBUTE_DEPRECATED: true,
	ATTRIBUTE_NODISCARD:  true,
}
