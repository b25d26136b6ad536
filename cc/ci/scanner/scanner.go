// Package scanner implements the CI front-end's standard-aware lexer
// (spec §4.1): it turns source bytes into a token stream that already
// understands preprocessor directives, fused multi-word keywords,
// attribute syntax, and per-standard feature gating.
package scanner

import (
	"unicode"
	"unicode/utf8"

	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
	"github.com/thelilylang/lily/standard"
)

const eof = -1

// ContextLocation is the scanning mode a ScannerContext is operating
// under (spec §4.1 "Scanner context").
type ContextLocation int

const (
	CtxNone ContextLocation = iota
	CtxMacro
	CtxPreprocessorCond
	CtxPreprocessorIf
	CtxPreprocessorElse
)

// Context carries the state spec §4.1 assigns to ScannerContext: the
// scanning mode, the output token accumulator, the macro parameter names
// visible while scanning a macro body, and a parent link to the enclosing
// context.
type Context struct {
	Location   ContextLocation
	Tokens     []token.Token
	MacroParam []string
	Parent     *Context
}

func newContext(loc ContextLocation, parent *Context) *Context {
	return &Context{Location: loc, Parent: parent}
}

func (c *Context) paramIndex(name string) (int, bool) {
	for i, p := range c.MacroParam {
		if p == name {
			return i, true
		}
	}
	return -1, false
}

// withinIf reports whether this context or any of its ancestors is a
// PREPROCESSOR_IF group. The scanner does not call it: an #elif/#else
// outside an #if group is rejected by scanDirective.
func (c *Context) withinIf() bool {
	for p := c; p != nil; p = p.Parent {
		if p.Location == CtxPreprocessorIf {
			return true
		}
	}
	return false
}

// Scanner turns one source file into a token stream. It is not safe for
// concurrent use; per spec §5, a driver that fans out translation units
// across threads must give each thread its own Scanner.
type Scanner struct {
	filename string
	input    []rune
	lines    *loc.LineIndex

	cursor int
	line   int32
	col    int32

	std      standard.Standard
	sink     cierr.Sink
	interner *token.Interner

	ctx *Context

	// atLineStart tracks whether the cursor is at the first non-blank
	// column of a logical source line, used to recognize '#' directives
	// (spec §4.1 "a # at start-of-logical-line").
	atLineStart bool

	// elseSeenStack is not read or written anywhere; a second #else is
	// rejected by scanElseDirective when it closes an #else body.
	elseSeenStack []bool

	// pending holds tokens a failed keyword-fusion attempt already lexed
	// but decided not to fuse (spec §4.1 "Keyword fusion" rollback): they
	// are handed out plain, in order, before scanning resumes from the
	// cursor, so the words involved are never re-examined for fusion a
	// second time. The preprocessor's chainCloser also uses it to surface
	// a top-level #elif/#else/#endif chain as flat sibling tokens.
	pending []token.Token

	// groupDepth counts nested scanGroupBody calls. A closer directive
	// (#elif/#else/#endif) only reaches pending when it closes the
	// outermost #if chain (groupDepth == 0); one closing a nested #if is
	// already accounted for by that #if's own token being part of its
	// enclosing group's body, so it is not re-surfaced as a sibling.
	groupDepth int
}

// New builds a Scanner over src, attributed to filename, configured for
// std, reporting through sink. An Interner is created per call, matching
// spec §5's "module-private mutable state ... must be replicated per
// thread" rule: nothing here is package-global.
func New(filename string, src []byte, std standard.Standard, sink cierr.Sink) *Scanner {
	return &Scanner{
		filename:    filename,
		input:       []rune(string(src)),
		lines:       loc.NewLineIndex(filename, src),
		std:         std,
		sink:        sink,
		interner:    token.NewInterner(),
		ctx:         newContext(CtxNone, nil),
		atLineStart: true,
	}
}

// Interner exposes the scanner's string table so the parser (and tests)
// can intern names consistently with scanned identifiers.
func (s *Scanner) Interner() *token.Interner { return s.interner }

func (s *Scanner) location() loc.Location {
	return loc.Location{File: s.filename, Line: s.line + 1, Column: s.col + 1, Pos: int32(s.cursor)}
}

func (s *Scanner) mkRange(start loc.Location) loc.Range {
	return loc.Range{Start: start, End: s.location()}
}

type snapshot struct {
	cursor int
	line   int32
	col    int32
}

func (s *Scanner) snapshot() snapshot {
	return snapshot{cursor: s.cursor, line: s.line, col: s.col}
}

func (s *Scanner) restore(sn snapshot) {
	s.cursor, s.line, s.col = sn.cursor, sn.line, sn.col
}

func (s *Scanner) peek() rune {
	if s.cursor >= len(s.input) {
		return eof
	}
	return s.input[s.cursor]
}

func (s *Scanner) peekAt(off int) rune {
	i := s.cursor + off
	if i < 0 || i >= len(s.input) {
		return eof
	}
	return s.input[i]
}

func (s *Scanner) advance() rune {
	c := s.peek()
	if c == eof {
		return eof
	}
	s.cursor++
	if c == '\n' {
		s.line++
		s.col = 0
		s.atLineStart = true
	} else {
		s.col++
		if !unicode.IsSpace(c) {
			s.atLineStart = false
		}
	}
	return c
}

func (s *Scanner) report(d cierr.Diagnostic) {
	if s.sink != nil {
		s.sink.Emit(d)
	}
}

// checkStandard compares k's feature window against the configured
// standard and reports REQUIRED_Cxx_OR_LATER / FEATURE_REMOVED_IN_Cxx as
// appropriate (spec §4.1 "Standard checking"). It returns true if the
// token is allowed.
func (s *Scanner) checkStandard(k token.Kind, r loc.Range) bool {
	f := token.Feature(k)
	if f.TooNew(s.std) {
		s.report(cierr.Errorf(cierr.RequiredCxxOrLater, r,
			"`"+k.String()+"` requires "+f.Since.String()+" or later"))
		return false
	}
	if f.Removed(s.std) {
		s.report(cierr.Errorf(cierr.FeatureRemovedInCxx, r,
			"`"+k.String()+"` is no longer available in "+s.std.String()))
		return false
	}
	return true
}

// Run scans the whole input and returns the resulting token stream,
// terminated by EOF (spec §4.1 "Responsibility and contract"). dumpTokens,
// when true, additionally returns a line-oriented debug rendering via the
// second result (cmd/cic's -dump=tokens flag).
func (s *Scanner) Run(dumpTokens bool) ([]token.Token, string) {
	var out []token.Token
	var dump string
	for {
		tok, ok := s.Next()
		if !ok {
			continue
		}
		out = append(out, tok)
		if dumpTokens {
			dump += tok.Kind.String() + " " + tok.String() + "\n"
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return out, dump
}

// Next scans and returns the next token. ok is false when the call
// consumed input without producing a token (an unknown or malformed
// directive, or an unexpected character that was reported) — callers
// scanning the top level should simply loop until ok.
func (s *Scanner) Next() (token.Token, bool) {
	if len(s.pending) > 0 {
		tok := s.pending[0]
		s.pending = s.pending[1:]
		return tok, true
	}

	s.skipSpacesAndComments()

	start := s.location()
	c := s.peek()

	switch {
	case c == eof:
		return token.New(token.EOF, s.mkRange(start)), true

	case c == '#' && s.atLineStart:
		return s.scanDirective()

	case isIdentStart(c):
		return s.scanIdentifierOrKeyword()

	case isDigit(c), c == '.' && isDigit(s.peekAt(1)):
		return s.scanNumber()

	case c == '\'':
		return s.scanChar()

	case c == '"':
		return s.scanString()

	default:
		return s.scanPunct()
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || c == '@'
}

func isIdentCont(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// skipSpacesAndComments consumes whitespace, //, /* */ and /** **/
// comments (spec §4.1 "Comments"). Line continuations (`\` + newline) are
// transparent everywhere, not just inside directives, matching how real
// C source is logically joined before tokenization.
func (s *Scanner) skipSpacesAndComments() {
	for {
		c := s.peek()
		switch {
		case c == '\\' && s.peekAt(1) == '\n':
			s.advance()
			s.advance()
		case unicode.IsSpace(c):
			s.advance()
		case c == '/' && s.peekAt(1) == '/':
			for s.peek() != '\n' && s.peek() != eof {
				s.advance()
			}
		case c == '/' && s.peekAt(1) == '*':
			s.scanBlockComment()
		default:
			return
		}
	}
}

func (s *Scanner) scanBlockComment() {
	start := s.location()
	s.advance() // '/'
	s.advance() // '*'
	doc := s.peek() == '*' && s.peekAt(1) == '*'
	for {
		if s.peek() == eof {
			kind := cierr.UnclosedCommentBlock
			if doc {
				kind = cierr.UnclosedCommentDoc
			}
			s.report(cierr.Errorf(kind, s.mkRange(start), "unterminated block comment"))
			return
		}
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			return
		}
		s.advance()
	}
}

func (s *Scanner) takeWhile(pred func(rune) bool) string {
	var rs []rune
	for pred(s.peek()) {
		rs = append(rs, s.advance())
	}
	return string(rs)
}

// runeLen returns the UTF-8 byte width of r. Nothing in the scanner calls
// it at present.
func runeLen(r rune) int { return utf8.RuneLen(r) }
