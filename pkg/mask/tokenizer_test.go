package mask

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// describe renders tokens compactly: "<class>" for a pattern token, the
// literal rune otherwise, with a "?" prefix for optional tokens.
func describe(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		s := string(token.Value())
		if token.IsPattern() {
			s = "<" + token.String() + ">"
		}
		if token.Optional() {
			s = "?" + s
		}
		out[i] = s
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"Empty pattern", "", []string{}},
		{"Date with escaped slashes", "##//##//####",
			[]string{`<\d>`, `<\d>`, "/", `<\d>`, `<\d>`, "/", `<\d>`, `<\d>`, `<\d>`, `<\d>`}},
		{"Unescaped slash escapes the placeholder", "##/##",
			[]string{`<\d>`, `<\d>`, "#", `<\d>`}},
		{"Optional and escaped question mark", "CC?C-###/?C",
			[]string{"<[a-zA-Z]>", "<[a-zA-Z]>", "?<[a-zA-Z]>", "-", `<\d>`, `<\d>`, `<\d>`, "?", "<[a-zA-Z]>"}},
		{"Literal rule", "+#?0#",
			[]string{"+", `<\d>`, "?0", `<\d>`}},
		{"Optional escaped placeholder", "?/#",
			[]string{"?#"}},
		{"Escaped escape", "//",
			[]string{"/"}},
		{"Trailing escape dropped", "##/",
			[]string{`<\d>`, `<\d>`}},
		{"Trailing optional dropped", "##?",
			[]string{`<\d>`, `<\d>`}},
		{"Multibyte literal", "№ ##",
			[]string{"№", " ", `<\d>`, `<\d>`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(Tokenize(tt.pattern, nil)))
		})
	}
}

func TestTokenizeCustomRules(t *testing.T) {
	rules := Rules{'A': {Class: regexp.MustCompile(`[A-Z]`)}}

	tokens := Tokenize("AA-#", rules)

	// '#' is not in the custom table, so it is a literal
	assert.Equal(t, []string{"<[A-Z]>", "<[A-Z]>", "-", "#"}, describe(tokens))
}
