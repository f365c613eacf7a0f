package mask

import (
	"encoding/json"
	"regexp"
)

// TokenKind tells literal tokens from pattern tokens.
type TokenKind string

const (
	LiteralKind TokenKind = "literal" // Fixed character emitted as-is
	PatternKind TokenKind = "pattern" // Character class the input must satisfy
)

// Token is one compiled position of a mask pattern. It is either a fixed
// literal rune or a character class, and may be optional.
type Token struct {
	literal  rune
	class    *regexp.Regexp
	optional bool
}

// NewLiteralToken creates a token that always emits r.
func NewLiteralToken(r rune, optional bool) Token {
	return Token{literal: r, optional: optional}
}

// NewPatternToken creates a token matching any character accepted by class.
func NewPatternToken(class *regexp.Regexp, optional bool) Token {
	return Token{class: class, optional: optional}
}

// newRuleToken creates the token a rule table entry describes.
func newRuleToken(rule Rule, optional bool) Token {
	if rule.Class != nil {
		return NewPatternToken(rule.Class, optional)
	}
	return NewLiteralToken(rule.Literal, optional)
}

// IsPattern reports whether the token holds a character class.
func (t Token) IsPattern() bool {
	return t.class != nil
}

// Optional reports whether the token may be skipped.
func (t Token) Optional() bool {
	return t.optional
}

// Kind returns the token kind.
func (t Token) Kind() TokenKind {
	if t.IsPattern() {
		return PatternKind
	}
	return LiteralKind
}

// Check tests r against the token: class membership for pattern tokens,
// equality for literal ones.
func (t Token) Check(r rune) bool {
	if t.class != nil {
		return t.class.MatchString(string(r))
	}
	return r == t.literal
}

// Value returns the literal rune. It is zero for pattern tokens.
func (t Token) Value() rune {
	return t.literal
}

// String returns the class expression or the literal character.
func (t Token) String() string {
	if t.class != nil {
		return t.class.String()
	}
	return string(t.literal)
}

// MarshalJSON implements custom JSON marshaling for Token.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     TokenKind `json:"kind"`
		Rule     string    `json:"rule"`
		Optional bool      `json:"optional,omitempty"`
	}{
		Kind:     t.Kind(),
		Rule:     t.String(),
		Optional: t.optional,
	})
}
