package scanner

import (
	"strconv"
	"strings"

	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// scanDirective handles a '#' found at start-of-logical-line (spec §4.1
// "Preprocessor directives"): it reads the directive name and produces the
// one structured token the name calls for. #elif/#elifdef/#elifndef/#else
// reaching this entry point directly (rather than through chainCloser, the
// path a legitimate one always takes) means there was no matching opener.
func (s *Scanner) scanDirective() (token.Token, bool) {
	start := s.location()
	s.advance() // '#'
	s.skipLineSpaces()

	if !isIdentStart(s.peek()) {
		s.skipToEOL()
		return token.Token{}, false
	}
	name := s.takeWhile(isIdentCont)

	switch name {
	case "define":
		return s.scanDefine(start)
	case "undef":
		return s.scanUndef(start)
	case "include":
		return s.scanInclude(start)
	case "embed":
		s.checkStandard(token.PP_EMBED, s.mkRange(start))
		return s.scanEmbed(start)
	case "if":
		return s.scanIfOpener(start)
	case "ifdef":
		return s.scanIfdefOpener(start, false)
	case "ifndef":
		return s.scanIfdefOpener(start, true)
	case "elif", "elifdef", "elifndef", "else", "endif":
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedToken, r, "#"+name+" with no matching #if"))
		s.skipToEOL()
		return token.Token{}, false
	case "error":
		return s.scanMessage(start, token.PP_ERROR)
	case "warning":
		s.checkStandard(token.PP_WARNING, s.mkRange(start))
		return s.scanMessage(start, token.PP_WARNING)
	case "line":
		return s.scanLine(start)
	case "pragma":
		return s.scanPragma(start)
	default:
		s.skipToEOL()
		return token.Token{}, false
	}
}

// skipLineSpaces consumes spaces/tabs and backslash-newline continuations,
// stopping at the first real newline or EOF. Used while parsing a
// directive's fixed-shape header (name, macro parameter list, #include
// path) where comments are not expected.
func (s *Scanner) skipLineSpaces() {
	for {
		switch c := s.peek(); {
		case c == '\\' && s.peekAt(1) == '\n':
			s.advance()
			s.advance()
		case c == ' ' || c == '\t' || c == '\r':
			s.advance()
		default:
			return
		}
	}
}

// skipLineSpacesAndComments is skipLineSpaces plus // and /* */ comments,
// still stopping at the first real newline.
func (s *Scanner) skipLineSpacesAndComments() {
	for {
		switch c := s.peek(); {
		case c == '\\' && s.peekAt(1) == '\n':
			s.advance()
			s.advance()
		case c == ' ' || c == '\t' || c == '\r':
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

// skipToEOL consumes the rest of the logical line, honoring
// backslash-continuation, and returns it verbatim (continuations collapse
// to a single space). Used for #error/#warning/#pragma remainder-of-line
// capture (spec §4.1).
func (s *Scanner) skipToEOL() string {
	var sb strings.Builder
	for {
		c := s.peek()
		if c == eof || c == '\n' {
			return sb.String()
		}
		if c == '\\' && s.peekAt(1) == '\n' {
			s.advance()
			s.advance()
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(s.advance())
	}
}

// scanLogicalLineBody scans a token sequence confined to the current
// logical line (backslash-continuation still joins lines), under ctxLoc
// with macroParams visible for macro_param substitution (spec §4.1
// "#define name(params?) body?").
func (s *Scanner) scanLogicalLineBody(ctxLoc ContextLocation, macroParams []string) []token.Token {
	parent := s.ctx
	s.ctx = newContext(ctxLoc, parent)
	s.ctx.MacroParam = macroParams

	var out []token.Token
	for {
		s.skipLineSpacesAndComments()
		if s.peek() == eof || s.peek() == '\n' {
			break
		}
		tok, ok := s.Next()
		if ok {
			out = append(out, tok)
		}
	}

	s.ctx = parent
	return out
}

// scanGroupBody scans an #if/#ifdef/#ifndef/#elif*'s body: everything up
// to (not including) the next #elif/#elifdef/#elifndef/#else/#endif at
// this nesting level, with any nested #if group consumed whole as its own
// structured tokens along the way (spec §4.1: "everything between the
// opening directive and its matching closer, including nested groups, is
// captured as that directive's body").
func (s *Scanner) scanGroupBody() (body []token.Token, closer string) {
	s.groupDepth++
	defer func() { s.groupDepth-- }()

	for {
		s.skipSpacesAndComments()
		if s.peek() == eof {
			return body, "eof"
		}
		if s.peek() == '#' && s.atLineStart {
			mark := s.snapshot()
			s.advance()
			s.skipLineSpaces()
			name := s.takeWhile(isIdentCont)
			s.restore(mark)
			switch name {
			case "elif", "elifdef", "elifndef", "else", "endif":
				return body, name
			}
		}
		tok, ok := s.Next()
		if !ok {
			continue
		}
		if tok.Kind == token.EOF {
			return body, "eof"
		}
		body = append(body, tok)
	}
}

// chainCloser consumes whatever directive ended a group's body and
// dispatches to the matching scan*Directive, which appends its own token
// to pending (when groupDepth == 0, see scanGroupBody) before recursing
// into the next closer in turn. Pushing from each level on the way down,
// rather than from the caller on the way back up the recursion, is what
// keeps #if/#elif/#else/#endif flat and in source order (spec §8
// scenario S2): with the caller pushing post-recursion, the innermost
// closer (#endif) would finish its push first and the queue would come
// out back to front.
func (s *Scanner) chainCloser(closer string) {
	if closer == "eof" {
		return
	}
	start := s.location()
	s.advance() // '#'
	s.skipLineSpaces()
	s.takeWhile(isIdentCont) // re-consumes the name already identified by scanGroupBody

	switch closer {
	case "elif":
		s.scanElifDirective(start)
	case "elifdef":
		s.scanElifdefDirective(start, false)
	case "elifndef":
		s.scanElifdefDirective(start, true)
	case "else":
		s.scanElseDirective(start)
	case "endif":
		s.scanEndifDirective(start)
	}
}

func (s *Scanner) scanIfOpener(start loc.Location) (token.Token, bool) {
	cond := s.scanLogicalLineBody(CtxPreprocessorCond, nil)
	body, closer := s.scanGroupBody()
	if closer == "eof" {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "#if with no matching #endif"))
	}
	r := s.mkRange(start)
	tok := token.WithPayload(token.PP_IF, r, token.IfPayload{Cond: cond, Body: body})
	s.chainCloser(closer)
	return tok, true
}

func (s *Scanner) scanIfdefOpener(start loc.Location, negated bool) (token.Token, bool) {
	s.skipLineSpaces()
	var id *token.Interned
	if isIdentStart(s.peek()) {
		name := s.takeWhile(isIdentCont)
		id = s.interner.Intern(name)
	} else {
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, s.mkRange(start), "expected macro name"))
	}
	s.skipToEOL()

	body, closer := s.scanGroupBody()
	if closer == "eof" {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "#ifdef/#ifndef with no matching #endif"))
	}
	kind := token.PP_IFDEF
	if negated {
		kind = token.PP_IFNDEF
	}
	r := s.mkRange(start)
	tok := token.WithPayload(kind, r, token.IfdefPayload{Name: id, Negated: negated, Body: body})
	s.chainCloser(closer)
	return tok, true
}

func (s *Scanner) scanElifDirective(start loc.Location) (token.Token, bool) {
	cond := s.scanLogicalLineBody(CtxPreprocessorCond, nil)
	body, closer := s.scanGroupBody()
	r := s.mkRange(start)
	tok := token.WithPayload(token.PP_ELIF, r, token.IfPayload{Cond: cond, Body: body})
	if s.groupDepth == 0 {
		s.pending = append(s.pending, tok)
	}
	s.chainCloser(closer)
	return tok, true
}

func (s *Scanner) scanElifdefDirective(start loc.Location, negated bool) (token.Token, bool) {
	kind := token.PP_ELIFDEF
	if negated {
		kind = token.PP_ELIFNDEF
	}
	s.checkStandard(kind, s.mkRange(start))

	s.skipLineSpaces()
	var id *token.Interned
	if isIdentStart(s.peek()) {
		name := s.takeWhile(isIdentCont)
		id = s.interner.Intern(name)
	} else {
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, s.mkRange(start), "expected macro name"))
	}
	s.skipToEOL()

	body, closer := s.scanGroupBody()
	r := s.mkRange(start)
	tok := token.WithPayload(kind, r, token.IfdefPayload{Name: id, Negated: negated, Body: body})
	if s.groupDepth == 0 {
		s.pending = append(s.pending, tok)
	}
	s.chainCloser(closer)
	return tok, true
}

func (s *Scanner) scanElseDirective(start loc.Location) (token.Token, bool) {
	s.skipToEOL()
	body, closer := s.scanGroupBody()
	if closer == "elif" || closer == "elifdef" || closer == "elifndef" || closer == "else" {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "#"+closer+" is not allowed after #else"))
	}
	r := s.mkRange(start)
	tok := token.WithPayload(token.PP_ELSE, r, token.ElsePayload{Body: body})
	if s.groupDepth == 0 {
		s.pending = append(s.pending, tok)
	}
	s.chainCloser(closer)
	return tok, true
}

func (s *Scanner) scanEndifDirective(start loc.Location) (token.Token, bool) {
	s.skipToEOL()
	r := s.mkRange(start)
	tok := token.WithPayload(token.PP_ENDIF, r, token.EndifPayload{})
	if s.groupDepth == 0 {
		s.pending = append(s.pending, tok)
	}
	return tok, true
}

func (s *Scanner) scanDefine(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	if !isIdentStart(s.peek()) {
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, s.mkRange(start), "expected macro name after #define"))
		s.skipToEOL()
		return token.Token{}, false
	}
	name := s.takeWhile(isIdentCont)
	id := s.interner.Intern(name)

	var params []*token.Interned
	hasParams := false
	if s.peek() == '(' {
		hasParams = true
		s.advance()
		s.skipLineSpaces()
		for s.peek() != ')' && s.peek() != eof && s.peek() != '\n' {
			if !isIdentStart(s.peek()) {
				break
			}
			pname := s.takeWhile(isIdentCont)
			params = append(params, s.interner.Intern(pname))
			s.skipLineSpaces()
			if s.peek() == ',' {
				s.advance()
				s.skipLineSpaces()
			}
		}
		if s.peek() == ')' {
			s.advance()
		}
	}

	s.skipLineSpaces()
	hasBody := s.peek() != eof && s.peek() != '\n'
	var body []token.Token
	if hasBody {
		paramNames := make([]string, len(params))
		for i, p := range params {
			paramNames[i] = p.String()
		}
		body = s.scanLogicalLineBody(CtxMacro, paramNames)
	}

	r := s.mkRange(start)
	return token.WithPayload(token.PP_DEFINE, r, token.DefinePayload{
		Name: id, Params: params, HasParams: hasParams, Body: body, HasBody: hasBody,
	}), true
}

func (s *Scanner) scanUndef(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	if !isIdentStart(s.peek()) {
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, s.mkRange(start), "expected macro name after #undef"))
		s.skipToEOL()
		return token.Token{}, false
	}
	name := s.takeWhile(isIdentCont)
	id := s.interner.Intern(name)
	s.skipToEOL()
	r := s.mkRange(start)
	return token.WithPayload(token.PP_UNDEF, r, token.UndefPayload{Name: id}), true
}

func (s *Scanner) scanInclude(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	path, angled, ok := s.scanHeaderName()
	if !ok {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "expected \"path\" or <path> after #include"))
		s.skipToEOL()
		return token.Token{}, false
	}
	s.skipToEOL()
	r := s.mkRange(start)
	return token.WithPayload(token.PP_INCLUDE, r, token.IncludePayload{Path: path, Angled: angled}), true
}

func (s *Scanner) scanHeaderName() (path string, angled bool, ok bool) {
	switch s.peek() {
	case '"':
		s.advance()
		path = s.takeWhile(func(c rune) bool { return c != '"' && c != eof && c != '\n' })
		if s.peek() == '"' {
			s.advance()
		}
		return path, false, true
	case '<':
		s.advance()
		path = s.takeWhile(func(c rune) bool { return c != '>' && c != eof && c != '\n' })
		if s.peek() == '>' {
			s.advance()
		}
		return path, true, true
	default:
		return "", false, false
	}
}

func (s *Scanner) scanEmbed(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	path, angled, ok := s.scanHeaderName()
	if !ok {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "expected \"path\" or <path> after #embed"))
		s.skipToEOL()
		return token.Token{}, false
	}
	payload := token.EmbedPayload{Path: path, Angled: angled}

	for {
		s.skipLineSpaces()
		if !isIdentStart(s.peek()) {
			break
		}
		mark := s.snapshot()
		name := s.takeWhile(isIdentCont)
		s.skipLineSpaces()
		if s.peek() != '(' {
			s.restore(mark)
			break
		}
		s.advance()
		args := s.scanParenthesizedTokens()
		switch name {
		case "limit":
			if n, ok := intLiteralValue(args); ok {
				payload.Limit = &n
			}
		case "prefix":
			payload.Prefix = args
		case "suffix":
			payload.Suffix = args
		case "if_empty":
			payload.IfEmpty = args
		}
	}

	s.skipToEOL()
	r := s.mkRange(start)
	return token.WithPayload(token.PP_EMBED, r, payload), true
}

// scanParenthesizedTokens scans tokens up to (and consuming) the matching
// ')', tracking nested parens so an #embed parameter's argument may itself
// contain a parenthesized sub-expression.
func (s *Scanner) scanParenthesizedTokens() []token.Token {
	depth := 1
	var out []token.Token
	for {
		s.skipLineSpacesAndComments()
		c := s.peek()
		if c == eof || c == '\n' {
			return out
		}
		if c == ')' {
			depth--
			if depth == 0 {
				s.advance()
				return out
			}
		}
		if c == '(' {
			depth++
		}
		tok, ok := s.Next()
		if ok {
			out = append(out, tok)
		}
	}
}

func intLiteralValue(toks []token.Token) (int, bool) {
	if len(toks) != 1 {
		return 0, false
	}
	lit, ok := toks[0].Payload.(token.IntLiteral)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(stripDigitSeparators(lit.Text), 0, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func stripDigitSeparators(s string) string {
	return strings.NewReplacer("_", "", "'", "").Replace(s)
}

func (s *Scanner) scanMessage(start loc.Location, kind token.Kind) (token.Token, bool) {
	s.skipLineSpaces()
	msg := strings.TrimSpace(s.skipToEOL())
	r := s.mkRange(start)
	return token.WithPayload(kind, r, token.MessagePayload{Message: msg}), true
}

func (s *Scanner) scanLine(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	if !isDigit(s.peek()) {
		s.report(cierr.Errorf(cierr.ExpectedToken, s.mkRange(start), "expected line number after #line"))
		s.skipToEOL()
		return token.Token{}, false
	}
	numText := s.takeWhile(isDigit)
	n, _ := strconv.Atoi(numText)

	s.skipLineSpaces()
	var file *string
	if s.peek() == '"' {
		s.advance()
		f := s.takeWhile(func(c rune) bool { return c != '"' && c != eof && c != '\n' })
		if s.peek() == '"' {
			s.advance()
		}
		file = &f
	}
	s.skipToEOL()
	r := s.mkRange(start)
	return token.WithPayload(token.PP_LINE, r, token.LinePayload{LineNo: n, File: file}), true
}

// scanPragma consumes the rest of the line into an opaque token (spec §9
// open question on parse_pragma_preprocessor: "treat it as consume to end
// of line into an opaque token until defined").
func (s *Scanner) scanPragma(start loc.Location) (token.Token, bool) {
	s.skipLineSpaces()
	text := strings.TrimSpace(s.skipToEOL())
	r := s.mkRange(start)
	return token.WithPayload(token.PP_PRAGMA, r, token.PragmaPayload{Text: text}), true
}
