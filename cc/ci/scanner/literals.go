package scanner

import (
	"strings"

	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// scanNumber scans an integer or float literal (spec §4.1 "Literals").
// Base is prefix-driven: 0x/0X hex, 0b/0B binary (CI dialect extension),
// a leading 0 followed by more digits is octal, anything else decimal.
// Digit separators, written as either `_` or `'` (supplemental, grounded
// on original_source/src/core/cc/ci/scanner.c's digit-separator handling,
// absorbed into the distilled spec's plain "underscores are permitted as
// separators and stripped" note), are accepted in any base. The payload's
// Text keeps them verbatim — spec's "preserves the literal's exact source
// text" — the parser strips them when it turns Text into an integer
// value; the scanner does not.
func (s *Scanner) scanNumber() (token.Token, bool) {
	start := s.location()

	if s.peek() == '0' && (s.peekAt(1) == 'x' || s.peekAt(1) == 'X') {
		s.advance()
		s.advance()
		digits := s.takeWhile(isHexDigitOrSep)
		r := s.mkRange(start)
		return token.WithPayload(token.INT_LITERAL, r,
			token.IntLiteral{Text: "0x" + digits, Base: token.Hex}), true
	}

	if s.peek() == '0' && (s.peekAt(1) == 'b' || s.peekAt(1) == 'B') {
		s.advance()
		s.advance()
		digits := s.takeWhile(isBinaryDigitOrSep)
		r := s.mkRange(start)
		return token.WithPayload(token.INT_LITERAL, r,
			token.IntLiteral{Text: "0b" + digits, Base: token.Binary}), true
	}

	if s.peek() == '0' && isOctalDigitOrSep(s.peekAt(1)) {
		s.advance()
		digits := s.takeWhile(isOctalDigitOrSep)
		r := s.mkRange(start)
		return token.WithPayload(token.INT_LITERAL, r,
			token.IntLiteral{Text: "0" + digits, Base: token.Octal}), true
	}

	intPart := s.takeWhile(isDecimalDigitOrSep)

	dots := 0
	exps := 0
	var frac, exp string
	isFloat := false

	if s.peek() == '.' {
		isFloat = true
		dots++
		s.advance()
		frac = s.takeWhile(isDecimalDigitOrSep)
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		isFloat = true
		exps++
		marker := s.advance()
		sign := rune(0)
		if s.peek() == '+' || s.peek() == '-' {
			sign = s.advance()
		}
		digits := s.takeWhile(isDecimalDigitOrSep)
		exp = string(marker)
		if sign != 0 {
			exp += string(sign)
		}
		exp += digits
	}

	// A second '.' or 'e' immediately following what was just scanned
	// means the literal is malformed; greedily consume the rest of the
	// number-shaped run so the diagnostic covers the whole mess and the
	// scanner doesn't re-enter number scanning one character later.
	for s.peek() == '.' || s.peek() == 'e' || s.peek() == 'E' || isDecimalDigitOrSep(s.peek()) {
		if s.peek() == '.' {
			dots++
		}
		if s.peek() == 'e' || s.peek() == 'E' {
			exps++
		}
		s.advance()
	}

	r := s.mkRange(start)
	text := intPart
	if isFloat {
		if dots > 0 {
			text += "."
		}
		text += frac + exp
	}

	if dots > 1 || exps > 1 {
		s.report(cierr.Errorf(cierr.InvalidFloatLiteral, r,
			"invalid float literal `"+text+"`: at most one `.` and one exponent marker are allowed"))
	}

	if isFloat {
		return token.WithPayload(token.FLOAT_LITERAL, r, token.FloatLiteral{Text: text}), true
	}
	return token.WithPayload(token.INT_LITERAL, r, token.IntLiteral{Text: text, Base: token.Decimal}), true
}

func isDecimalDigitOrSep(c rune) bool { return isDigit(c) || c == '_' || c == '\'' }
func isOctalDigitOrSep(c rune) bool   { return (c >= '0' && c <= '7') || c == '_' || c == '\'' }
func isBinaryDigitOrSep(c rune) bool  { return c == '0' || c == '1' || c == '_' || c == '\'' }
func isHexDigitOrSep(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') || c == '_' || c == '\''
}

// scanChar scans a single-quoted character literal (spec §4.1
// "Characters"). An unclosed literal is reported at the opening quote's
// location, matching spec's "unclosed literals are reported with the
// opening location".
func (s *Scanner) scanChar() (token.Token, bool) {
	start := s.location()
	s.advance() // opening '\''

	if s.peek() == eof || s.peek() == '\n' {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.UnclosedCharLiteral, r, "unterminated character literal"))
		return token.WithPayload(token.CHAR_LITERAL, r, token.CharLiteral{}), true
	}

	value, ok := s.scanEscapedRune(start)
	if !ok {
		r := s.mkRange(start)
		return token.WithPayload(token.CHAR_LITERAL, r, token.CharLiteral{Value: value}), true
	}

	if s.peek() != '\'' {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.UnclosedCharLiteral, r, "unterminated character literal"))
		return token.WithPayload(token.CHAR_LITERAL, r, token.CharLiteral{Value: value}), true
	}
	s.advance() // closing '\''

	r := s.mkRange(start)
	return token.WithPayload(token.CHAR_LITERAL, r, token.CharLiteral{Value: value}), true
}

// scanString scans a double-quoted string literal (spec §4.1 "Strings"):
// escape-processed, with `\` immediately followed by a newline treated as
// a line continuation rather than the string's end.
func (s *Scanner) scanString() (token.Token, bool) {
	start := s.location()
	s.advance() // opening '"'

	var sb strings.Builder
	for {
		c := s.peek()
		if c == eof {
			r := s.mkRange(start)
			s.report(cierr.Errorf(cierr.UnclosedStringLiteral, r, "unterminated string literal"))
			id := s.interner.Intern(sb.String())
			return token.WithPayload(token.STRING_LITERAL, r, token.StringLiteral{Value: id}), true
		}
		if c == '"' {
			s.advance()
			break
		}
		if c == '\\' && s.peekAt(1) == '\n' {
			s.advance()
			s.advance()
			continue
		}
		if c == '\\' {
			v, ok := s.scanEscapedRune(start)
			if ok {
				sb.WriteRune(v)
			}
			continue
		}
		sb.WriteRune(s.advance())
	}

	r := s.mkRange(start)
	id := s.interner.Intern(sb.String())
	return token.WithPayload(token.STRING_LITERAL, r, token.StringLiteral{Value: id}), true
}

// scanEscapedRune resolves one source character into its literal value,
// handling the escapes spec §4.1 lists: \n \t \r \b \\ \' \". ok is false
// when the literal ran out of input before a value could be formed (the
// caller has already decided how to report that).
func (s *Scanner) scanEscapedRune(start loc.Location) (rune, bool) {
	if s.peek() != '\\' {
		return s.advance(), true
	}
	escStart := s.location()
	s.advance() // '\\'
	switch c := s.peek(); c {
	case 'n':
		s.advance()
		return '\n', true
	case 't':
		s.advance()
		return '\t', true
	case 'r':
		s.advance()
		return '\r', true
	case 'b':
		s.advance()
		return '\b', true
	case '\\':
		s.advance()
		return '\\', true
	case '\'':
		s.advance()
		return '\'', true
	case '"':
		s.advance()
		return '"', true
	case eof:
		return 0, false
	default:
		r := s.mkRange(escStart)
		s.report(cierr.Errorf(cierr.InvalidEscape, r, "invalid escape sequence `\\"+string(c)+"`"))
		s.advance()
		return c, true
	}
}
