package scanner

import (
	"github.com/thelilylang/lily/cc/ci/token"
	"github.com/thelilylang/lily/cierr"
	"github.com/thelilylang/lily/loc"
)

// scanAttribute scans the body of a `[[ name(args?) ]]` attribute (spec §6
// "Attribute surface"), the '[[' already consumed by scanPunct. deprecated
// and nodiscard additionally accept a single string reason argument.
func (s *Scanner) scanAttribute(start loc.Location) (token.Token, bool) {
	s.skipSpacesAndComments()

	if !isIdentStart(s.peek()) {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, r, "expected attribute name after `[[`"))
		s.skipPastAttributeClose()
		return token.Token{}, false
	}

	name := s.takeWhile(isIdentCont)
	kind, known := token.Attributes[name]
	if !known {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedIdentifier, r, "`"+name+"` is not a recognized attribute"))
		s.skipPastAttributeClose()
		return token.Token{}, false
	}
	s.checkStandard(kind, s.mkRange(start))

	payload := token.AttributeArg{}
	s.skipSpacesAndComments()
	if s.peek() == '(' {
		s.advance()
		s.skipSpacesAndComments()
		if token.AttributesWithReason[kind] && s.peek() == '"' {
			tok, _ := s.scanString()
			if lit, ok := tok.Payload.(token.StringLiteral); ok {
				payload.Reason = lit.Value
				payload.HasReason = true
			}
			s.skipSpacesAndComments()
		} else {
			// Unrecognized argument shape for this attribute: consume it
			// unexamined rather than mis-tokenizing the rest of the
			// statement that follows the attribute.
			depth := 1
			for depth > 0 && s.peek() != eof {
				if s.peek() == '(' {
					depth++
				} else if s.peek() == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
				s.advance()
			}
		}
		if s.peek() == ')' {
			s.advance()
		}
	}

	s.skipSpacesAndComments()
	if s.peek() == ']' && s.peekAt(1) == ']' {
		s.advance()
		s.advance()
	} else {
		r := s.mkRange(start)
		s.report(cierr.Errorf(cierr.ExpectedToken, r, "expected `]]` to close attribute"))
		s.skipPastAttributeClose()
	}

	r := s.mkRange(start)
	return token.WithPayload(kind, r, payload), true
}

func (s *Scanner) skipPastAttributeClose() {
	for s.peek() != eof {
		if s.peek() == ']' && s.peekAt(1) == ']' {
			s.advance()
			s.advance()
			return
		}
		if s.peek() == '\n' {
			return
		}
		s.advance()
	}
}
