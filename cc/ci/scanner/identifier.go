package scanner

import (
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// scanIdentifierOrKeyword scans one identifier, classifies it against the
// keyword table, and — if it names a fusion-initiating keyword — attempts
// keyword fusion with the following tokens (spec §4.1 "Keyword fusion").
func (s *Scanner) scanIdentifierOrKeyword() (token.Token, bool) {
	start := s.location()
	generic := s.peek() == '@'
	if generic {
		s.advance()
	}
	name := s.takeWhile(isIdentCont)
	r := s.mkRange(start)

	if generic {
		// `@ident` is the dialect's generic type parameter reference
		// (spec §4.2 "parse_pre_data_type"); it is never subject to
		// keyword fusion.
		id := s.interner.Intern(name)
		return token.WithPayload(token.AT, r, token.Identifier{Name: id}), true
	}

	if kind, ok := token.Keywords[name]; ok {
		first := token.New(kind, r)
		if !s.checkStandard(kind, r) {
			return first, true
		}
		return s.tryFuseKeyword(first, name), true
	}

	if s.ctx.Location == CtxMacro {
		if idx, ok := s.ctx.paramIndex(name); ok {
			return token.WithPayload(token.PP_MACRO_PARAM, r, token.MacroParamPayload{Index: idx}), true
		}
	}

	if s.ctx.Location == CtxPreprocessorCond && name == "defined" {
		return s.scanDefinedOperator(start)
	}

	id := s.interner.Intern(name)
	return token.WithPayload(token.IDENTIFIER, r, token.Identifier{Name: id}), true
}

// scanDefinedOperator scans `defined name` / `defined(name)` (spec §4.1:
// "the identifier `defined` followed by an (optionally parenthesized)
// identifier becomes a macro_defined(name) token"), used only while
// scanning a #if/#elif condition.
func (s *Scanner) scanDefinedOperator(start loc.Location) (token.Token, bool) {
	s.skipSpacesAndComments()
	paren := s.peek() == '('
	if paren {
		s.advance()
		s.skipSpacesAndComments()
	}
	if !isIdentStart(s.peek()) {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, r, "expected identifier after `defined`"))
		return token.WithPayload(token.PP_MACRO_DEFINED, r, token.MacroDefinedPayload{}), true
	}
	name := s.takeWhile(isIdentCont)
	id := s.interner.Intern(name)
	if paren {
		s.skipSpacesAndComments()
		if s.peek() == ')' {
			s.advance()
		}
	}
	r := s.mkRange(start)
	return token.WithPayload(token.PP_MACRO_DEFINED, r, token.MacroDefinedPayload{Name: id}), true
}

// peekKeywordSpelling looks past whitespace/comments for the next
// identifier-shaped lexeme and reports its spelling. A keyword is left
// consumed (the caller rewinds with its own snapshot if it declines it);
// anything else restores the position and reports ok=false.
func (s *Scanner) peekKeywordSpelling() (spelling string, tok token.Token, ok bool) {
	sn := s.snapshot()
	s.skipSpacesAndComments()
	start := s.location()
	if !isIdentStart(s.peek()) || s.peek() == '@' {
		s.restore(sn)
		return "", token.Token{}, false
	}
	name := s.takeWhile(isIdentCont)
	r := s.mkRange(start)
	kind, known := token.Keywords[name]
	if !known {
		s.restore(sn)
		return "", token.Token{}, false
	}
	tok = token.New(kind, r)
	return name, tok, true
}
