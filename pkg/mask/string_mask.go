package mask

import (
	"fmt"
	"slices"
)

// Config describes a pattern mask.
type Config struct {
	// Pattern holds literals, placeholders and the '/' and '?' modifiers.
	Pattern string `yaml:"pattern" json:"pattern"`
	// Rules maps placeholders to rules. Nil means DefaultRules.
	Rules Rules `yaml:"-" json:"-"`
	// Reverse matches from the end of the value, for right-anchored masks.
	Reverse bool `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

// StringMask is a compiled pattern mask. It is immutable and safe for
// concurrent use; to reconfigure, compile a new one.
type StringMask struct {
	tokens  []Token
	reverse bool
}

// Compile tokenizes cfg.Pattern into a StringMask.
func Compile(cfg Config) (*StringMask, error) {
	tokens := Tokenize(cfg.Pattern, cfg.Rules)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: %q produces no tokens", ErrInvalidPattern, cfg.Pattern)
	}
	return &StringMask{tokens: tokens, reverse: cfg.Reverse}, nil
}

// MustCompile is like Compile but panics if the pattern is unusable.
func MustCompile(cfg Config) *StringMask {
	m, err := Compile(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

// Tokens returns a copy of the compiled token sequence.
func (m *StringMask) Tokens() []Token {
	return slices.Clone(m.tokens)
}

// Reverse reports whether the mask is anchored to the right.
func (m *StringMask) Reverse() bool {
	return m.reverse
}

// Mask places the characters of value into the mask. Literal tokens are
// always emitted, and consume the input character only when it equals the
// literal. Characters that fail a required class are dropped, and optional
// tokens that do not match are skipped without consuming input.
//
// The result never has more runes than the mask has tokens.
func (m *StringMask) Mask(value string) string {
	if value == "" {
		return ""
	}
	start := 0
	if m.reverse {
		start = len(m.tokens) - 1
	}
	return m.walk([]rune(value), start, true)
}

// Unmask returns the characters of value that fill pattern tokens.
func (m *StringMask) Unmask(value string) string {
	return m.UnmaskFrom(value, 0)
}

// UnmaskFrom unmasks value as if it were the part of a masked string that
// begins at token offset from. The offset counts tokens from the anchored
// end: the left end normally, the right end for reverse masks. This lets a
// caller unmask the text on one side of a caret.
func (m *StringMask) UnmaskFrom(value string, from int) string {
	if value == "" {
		return ""
	}
	from = max(from, 0)
	if from >= len(m.tokens) {
		return ""
	}
	start := from
	if m.reverse {
		start = len(m.tokens) - 1 - from
	}
	return m.walk([]rune(value), start, false)
}

// walk runs the input and the token sequence in lockstep from tokenIdx.
// withLiterals selects masking (literals emitted) over unmasking.
func (m *StringMask) walk(chars []rune, tokenIdx int, withLiterals bool) string {
	idx, step := 0, 1
	if m.reverse {
		idx, step = len(chars)-1, -1
	}

	result := make([]rune, 0, len(m.tokens))
	for idx >= 0 && idx < len(chars) && tokenIdx >= 0 && tokenIdx < len(m.tokens) {
		chr := chars[idx]
		token := m.tokens[tokenIdx]

		if token.IsPattern() {
			switch {
			case token.Check(chr):
				result = append(result, chr)
				tokenIdx += step
				idx += step
			case token.Optional():
				// Offer the same character to the next token.
				tokenIdx += step
			default:
				idx += step
			}
			continue
		}

		if withLiterals {
			result = append(result, token.Value())
		}
		if chr == token.Value() {
			idx += step
		}
		tokenIdx += step
	}

	// Reverse walks collect from the right.
	if m.reverse {
		slices.Reverse(result)
	}
	return string(result)
}
