package mask

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 3)

	digit := newRuleToken(rules['#'], false)
	assert.True(t, digit.Check('5'))
	assert.False(t, digit.Check('a'))

	letter := newRuleToken(rules['C'], false)
	assert.True(t, letter.Check('a'))
	assert.True(t, letter.Check('Z'))
	assert.False(t, letter.Check('1'))

	zero := rules['0']
	assert.Nil(t, zero.Class)
	assert.Equal(t, '0', zero.Literal)
}

func TestLoadRulesFile(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
rules:
  - char: "A"
    class: "[A-Z]"
  - char: "#"
    class: '[0-7]'
  - char: "X"
    literal: "x"
`)

	file, err := LoadRulesFile(path)
	require.NoError(t, err)
	require.Len(t, file.Rules, 3)

	rules, err := ApplyRulesToDefaults(file)
	require.NoError(t, err)
	assert.Len(t, rules, 5)

	octal := newRuleToken(rules['#'], false)
	assert.True(t, octal.Check('7'))
	assert.False(t, octal.Check('8'))
	assert.Equal(t, 'x', rules['X'].Literal)

	// Defaults are not modified
	assert.True(t, newRuleToken(DefaultRules()['#'], false).Check('8'))

	m := MustCompile(Config{Pattern: "AA-##X", Rules: rules})
	assert.Equal(t, "AB-17x", m.Mask("AB1789"))
}

func TestLoadRulesFileErrors(t *testing.T) {
	_, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadRulesFile(writeFile(t, "bad.yaml", "rules: [unterminated"))
	assert.Error(t, err)
}

func TestApplyRulesErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []RuleEntry
	}{
		{"Duplicate character", []RuleEntry{{Char: "A", Class: "[A-Z]"}, {Char: "A", Literal: "a"}}},
		{"Escape modifier", []RuleEntry{{Char: "/", Literal: "-"}}},
		{"Optional modifier", []RuleEntry{{Char: "?", Class: "."}}},
		{"Both class and literal", []RuleEntry{{Char: "A", Class: "[A-Z]", Literal: "a"}}},
		{"Neither class nor literal", []RuleEntry{{Char: "A"}}},
		{"Bad class", []RuleEntry{{Char: "A", Class: "["}}},
		{"Long char", []RuleEntry{{Char: "AB", Class: "."}}},
		{"Empty char", []RuleEntry{{Char: "", Class: "."}}},
		{"Long literal", []RuleEntry{{Char: "A", Literal: "ab"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ApplyRules(DefaultRules(), tt.entries)
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestRulesToFile(t *testing.T) {
	file := RulesToFile(DefaultRules())

	assert.Equal(t, []RuleEntry{
		{Char: "#", Class: `\d`},
		{Char: "0", Literal: "0"},
		{Char: "C", Class: "[a-zA-Z]"},
	}, file.Rules)

	rules, err := ApplyRules(Rules{}, file.Rules)
	require.NoError(t, err)
	m := MustCompile(Config{Pattern: "C0#", Rules: rules})
	assert.Equal(t, "a07", m.Mask("a7"))
}
