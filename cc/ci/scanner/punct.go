package scanner

import (
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
)

// scanPunct scans one punctuation or operator token, greedily matching the
// longest spelling available (spec §3 "Punctuation / operators"). A `[[`
// hands off to scanAttribute rather than producing two LBRACKETs.
func (s *Scanner) scanPunct() (token.Token, bool) {
	start := s.location()
	c := s.advance()
	mk := func(k token.Kind) (token.Token, bool) {
		return token.New(k, s.mkRange(start)), true
	}

	switch c {
	case '(':
		return mk(token.LPAREN)
	case ')':
		return mk(token.RPAREN)
	case '{':
		return mk(token.LBRACE)
	case '}':
		return mk(token.RBRACE)
	case '[':
		if s.peek() == '[' {
			s.advance()
			return s.scanAttribute(start)
		}
		return mk(token.LBRACKET)
	case ']':
		return mk(token.RBRACKET)
	case ';':
		return mk(token.SEMICOLON)
	case ',':
		return mk(token.COMMA)
	case ':':
		return mk(token.COLON)
	case '.':
		if s.peek() == '.' && s.peekAt(1) == '.' {
			s.advance()
			s.advance()
			return mk(token.DOT_DOT_DOT)
		}
		return mk(token.DOT)
	case '?':
		return mk(token.QUESTION)
	case '~':
		return mk(token.TILDE)

	case '+':
		if s.peek() == '+' {
			s.advance()
			return mk(token.PLUS_PLUS)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.PLUS_EQ)
		}
		return mk(token.PLUS)
	case '-':
		if s.peek() == '-' {
			s.advance()
			return mk(token.MINUS_MINUS)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.MINUS_EQ)
		}
		if s.peek() == '>' {
			s.advance()
			return mk(token.ARROW)
		}
		return mk(token.MINUS)
	case '*':
		if s.peek() == '=' {
			s.advance()
			return mk(token.STAR_EQ)
		}
		return mk(token.STAR)
	case '/':
		if s.peek() == '=' {
			s.advance()
			return mk(token.SLASH_EQ)
		}
		return mk(token.SLASH)
	case '%':
		if s.peek() == '=' {
			s.advance()
			return mk(token.PERCENT_EQ)
		}
		return mk(token.PERCENT)

	case '&':
		if s.peek() == '&' {
			s.advance()
			return mk(token.AMP_AMP)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.AMP_EQ)
		}
		return mk(token.AMP)
	case '|':
		if s.peek() == '|' {
			s.advance()
			return mk(token.PIPE_PIPE)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.PIPE_EQ)
		}
		return mk(token.PIPE)
	case '^':
		if s.peek() == '=' {
			s.advance()
			return mk(token.CARET_EQ)
		}
		return mk(token.CARET)

	case '<':
		if s.peek() == '<' {
			s.advance()
			if s.peek() == '=' {
				s.advance()
				return mk(token.LSHIFT_EQ)
			}
			return mk(token.LSHIFT)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.LT_EQ)
		}
		return mk(token.LT)
	case '>':
		if s.peek() == '>' {
			s.advance()
			if s.peek() == '=' {
				s.advance()
				return mk(token.RSHIFT_EQ)
			}
			return mk(token.RSHIFT)
		}
		if s.peek() == '=' {
			s.advance()
			return mk(token.GT_EQ)
		}
		return mk(token.GT)

	case '=':
		if s.peek() == '=' {
			s.advance()
			return mk(token.EQ_EQ)
		}
		return mk(token.EQ)
	case '!':
		if s.peek() == '=' {
			s.advance()
			return mk(token.BANG_EQ)
		}
		return mk(token.BANG)

	case '#':
		if s.peek() == '#' {
			s.advance()
			return mk(token.HASH_HASH)
		}
		return mk(token.HASH)

	default:
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedToken, r, "unexpected character `"+string(c)+"`"))
		return token.Token{}, false
	}
}
