package scanner

import "github.com/thelilylang/lily/cc/ci/token"

// fusionEdges is the keyword-fusion DFA (spec §4.1 "Keyword fusion"): keyed
// by the space-joined spellings already folded into the current state, it
// lists the spellings that may legally follow next.
var fusionEdges = map[string][]string{
	"unsigned":           {"char", "short", "int", "long"},
	"unsigned short":      {"int"},
	"unsigned long":       {"int", "long"},
	"unsigned long long":  {"int"},
	"signed":              {"char", "short", "int", "long"},
	"signed short":        {"int"},
	"signed long":         {"int", "long"},
	"signed long long":    {"int"},
	"long":                {"int", "long", "double"},
	"long long":           {"int"},
	"long double":         {"_Complex", "_Imaginary"},
	"short":               {"int"},
	"double":              {"_Complex", "_Imaginary"},
	"float":               {"_Complex", "_Imaginary"},
	"else":                {"if"},
}

// terminalKinds maps a fusion state to the semantic Kind it denotes, for
// every fully spelled combination the DFA above can reach plus the bare
// forms the standard treats as shorthand for a fully spelled one: a lone
// "signed" means plain int, a lone "long"/"short" means "long int"/"short
// int", and "signed long long" without a trailing "int" still means "long
// long int".
var terminalKinds = map[string]token.Kind{
	"long int":               token.KEYWORD_LONG_INT,
	"long long int":          token.KEYWORD_LONG_LONG_INT,
	"short int":              token.KEYWORD_SHORT_INT,
	"signed char":            token.KEYWORD_SIGNED_CHAR,
	"signed short int":       token.KEYWORD_SIGNED_SHORT_INT,
	"signed int":             token.KEYWORD_SIGNED_INT,
	"signed long int":        token.KEYWORD_SIGNED_LONG_INT,
	"signed long long int":   token.KEYWORD_SIGNED_LONG_LONG_INT,
	"unsigned char":          token.KEYWORD_UNSIGNED_CHAR,
	"unsigned short int":     token.KEYWORD_UNSIGNED_SHORT_INT,
	"unsigned int":           token.KEYWORD_UNSIGNED_INT,
	"unsigned long int":      token.KEYWORD_UNSIGNED_LONG_INT,
	"unsigned long long int": token.KEYWORD_UNSIGNED_LONG_LONG_INT,
	"long double":            token.KEYWORD_LONG_DOUBLE,
	"long double _Complex":   token.KEYWORD_LONG_DOUBLE_COMPLEX,
	"long double _Imaginary": token.KEYWORD_LONG_DOUBLE_IMAGINARY,
	"float _Complex":         token.KEYWORD_FLOAT_COMPLEX,
	"float _Imaginary":       token.KEYWORD_FLOAT_IMAGINARY,
	"double _Complex":        token.KEYWORD_DOUBLE_COMPLEX,
	"double _Imaginary":      token.KEYWORD_DOUBLE_IMAGINARY,
	"else if":                token.KEYWORD_ELSE_IF,

	"signed":           token.KEYWORD_INT,
	"long":              token.KEYWORD_LONG_INT,
	"short":             token.KEYWORD_SHORT_INT,
	"signed long long":  token.KEYWORD_LONG_LONG_INT,
}

// bigramGate names the standard gating a fusion step introduces before the
// combination it is part of is even complete: a second "long" only ever
// leads to long-long, a C99 feature, regardless of what comes before or
// after it, so that requirement is checked the moment the second "long" is
// considered rather than deferred until "int" completes the spelling.
var bigramGate = map[[2]string]token.Kind{
	{"long", "long"}: token.KEYWORD_LONG_LONG_INT,
}

// tryFuseKeyword extends first — a single keyword token already classified
// and standard-checked on its own — by repeatedly looking one
// identifier-shaped lexeme ahead and folding it into the fusion state while
// the walk stays on fusionEdges.
//
// Two regimes apply depending on whether a fusable terminal has already
// been reached:
//
//   - Before any terminal is found, a gating failure is reported at the
//     exact word that introduced it and the whole run collapses to plain,
//     unfused tokens: first is returned as-is and every word already
//     lexed while walking the DFA is queued on s.pending so it is handed
//     out once, never re-examined for fusion.
//   - Once a terminal has been found, further extension is speculative:
//     an edge miss or a gating failure on the longer spelling just stops
//     the walk and rewinds to the last good terminal, leaving the
//     unconsumed words for their own fresh Next() call (and their own,
//     single, standard check) rather than reporting anything here.
func (s *Scanner) tryFuseKeyword(first token.Token, firstSpelling string) token.Token {
	state := firstSpelling
	prevWord := firstSpelling

	best := first
	bestIsTerminal := false
	bestMark := s.snapshot()
	if kind, ok := terminalKinds[state]; ok {
		best = token.New(kind, first.Loc)
		bestIsTerminal = true
	}

	var consumed []token.Token

	for {
		edges, ok := fusionEdges[state]
		if !ok {
			break
		}

		mark := s.snapshot()
		spelling, next, ok := s.peekKeywordSpelling()
		if !ok {
			break
		}

		allowed := false
		for _, w := range edges {
			if w == spelling {
				allowed = true
				break
			}
		}
		if !allowed {
			s.restore(mark)
			break
		}

		candidate := state + " " + spelling
		candidateKind, candidateIsTerminal := terminalKinds[candidate]

		if bestIsTerminal {
			// Speculative extension past an already-valid terminal: only
			// charge a standard check once the longer spelling is itself
			// complete, and fail silently so the word gets its own,
			// single, fresh check when rescanned.
			if candidateIsTerminal {
				if !s.checkStandard(candidateKind, next.Loc) {
					s.restore(mark)
					break
				}
				best = token.New(candidateKind, s.mkRange(first.Loc.Start))
				bestMark = s.snapshot()
			}
			state = candidate
			prevWord = spelling
			continue
		}

		if gate, gated := bigramGate[[2]string{prevWord, spelling}]; gated {
			if !s.checkStandard(gate, next.Loc) {
				consumed = append(consumed, next)
				state = candidate
				break
			}
		} else if !s.checkStandard(next.Kind, next.Loc) {
			consumed = append(consumed, next)
			state = candidate
			break
		}

		consumed = append(consumed, next)
		state = candidate
		prevWord = spelling
		if candidateIsTerminal {
			best = token.New(candidateKind, s.mkRange(first.Loc.Start))
			bestIsTerminal = true
			bestMark = s.snapshot()
			consumed = nil
		}
	}

	if bestIsTerminal {
		s.restore(bestMark)
		return best
	}

	if len(consumed) > 0 {
		s.pending = append(s.pending, consumed...)
	}
	return first
}
