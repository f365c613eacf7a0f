package mask

import "unicode/utf8"

// patternScanner walks a mask pattern one rune at a time, tracking the
// modifiers that apply to the next emitted token.
type patternScanner struct {
	input    string
	position int
	escaped  bool
	optional bool
	rules    Rules
	tokens   []Token
}

// Tokenize compiles a mask pattern into its ordered token sequence.
//
// '/' makes the next character a literal even when it is a rule key, and
// '?' marks the next token optional. Both modifiers reset once a token is
// emitted; a trailing modifier is dropped. Characters that are not rule keys
// become literal tokens.
func Tokenize(pattern string, rules Rules) []Token {
	if rules == nil {
		rules = DefaultRules()
	}
	s := &patternScanner{
		input:  pattern,
		rules:  rules,
		tokens: make([]Token, 0, utf8.RuneCountInString(pattern)),
	}
	for s.hasMoreInput() {
		s.next(s.consume())
	}
	return s.tokens
}

func (s *patternScanner) next(r rune) {
	if s.escaped {
		s.emit(NewLiteralToken(r, s.optional))
		return
	}

	switch r {
	case escapeChar:
		s.escaped = true
	case optionalChar:
		s.optional = true
	default:
		if rule, ok := s.rules[r]; ok {
			s.emit(newRuleToken(rule, s.optional))
		} else {
			s.emit(NewLiteralToken(r, s.optional))
		}
	}
}

// emit appends a token and resets both modifiers.
func (s *patternScanner) emit(token Token) {
	s.tokens = append(s.tokens, token)
	s.escaped = false
	s.optional = false
}

func (s *patternScanner) hasMoreInput() bool {
	return s.position < len(s.input)
}

// Consume the current rune and advance the position
func (s *patternScanner) consume() rune {
	r, size := utf8.DecodeRuneInString(s.input[s.position:])
	s.position += size
	return r
}
