package mask

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Modifier characters of the pattern language. They can never be rule keys.
const (
	escapeChar   = '/'
	optionalChar = '?'
)

// Rule is the meaning of one placeholder character: either a character class
// or a literal that is forced at that position.
type Rule struct {
	Class   *regexp.Regexp
	Literal rune
}

// Rules maps placeholder characters to rules.
type Rules map[rune]Rule

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	Rules []RuleEntry `yaml:"rules"`
}

// RuleEntry is one placeholder definition in a rules file. Exactly one of
// Class and Literal must be set.
type RuleEntry struct {
	Char    string `yaml:"char"`
	Class   string `yaml:"class,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

var (
	digitClass  = regexp.MustCompile(`\d`)
	letterClass = regexp.MustCompile(`[a-zA-Z]`)
)

// DefaultRules returns the default rule table:
//
//	'#'  any digit
//	'C'  any ASCII letter
//	'0'  a fixed zero
func DefaultRules() Rules {
	return Rules{
		'#': {Class: digitClass},
		'C': {Class: letterClass},
		'0': {Literal: '0'},
	}
}

// Clone returns a shallow copy of the table.
func (r Rules) Clone() Rules {
	out := make(Rules, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in rules file '%s': %w", filename, err)
	}

	return &rules, nil
}

// ApplyRulesToDefaults merges the entries of a rules file over the default
// table. Entries override defaults with the same character.
// Returns an error if an entry is malformed or a character is defined twice.
func ApplyRulesToDefaults(file *RulesFile) (Rules, error) {
	return ApplyRules(DefaultRules(), file.Rules)
}

// ApplyRules merges entries over a copy of base.
func ApplyRules(base Rules, entries []RuleEntry) (Rules, error) {
	rules := base.Clone()
	seen := make(map[rune]bool, len(entries))

	for i, entry := range entries {
		char, rule, err := entry.compile()
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if seen[char] {
			return nil, fmt.Errorf("%w: character %q is defined more than once", ErrInvalidRule, char)
		}
		seen[char] = true
		rules[char] = rule
	}

	return rules, nil
}

// compile validates a rules file entry and builds its rule.
func (e RuleEntry) compile() (rune, Rule, error) {
	if utf8.RuneCountInString(e.Char) != 1 {
		return 0, Rule{}, fmt.Errorf("%w: char %q must be a single character", ErrInvalidRule, e.Char)
	}
	char, _ := utf8.DecodeRuneInString(e.Char)
	if char == escapeChar || char == optionalChar {
		return 0, Rule{}, fmt.Errorf("%w: %q is a reserved modifier", ErrInvalidRule, char)
	}

	switch {
	case e.Class != "" && e.Literal != "":
		return 0, Rule{}, fmt.Errorf("%w: %q sets both class and literal", ErrInvalidRule, char)
	case e.Class != "":
		re, err := regexp.Compile(e.Class)
		if err != nil {
			return 0, Rule{}, fmt.Errorf("%w: %q has a bad class: %v", ErrInvalidRule, char, err)
		}
		return char, Rule{Class: re}, nil
	case e.Literal != "":
		if utf8.RuneCountInString(e.Literal) != 1 {
			return 0, Rule{}, fmt.Errorf("%w: literal %q must be a single character", ErrInvalidRule, e.Literal)
		}
		lit, _ := utf8.DecodeRuneInString(e.Literal)
		return char, Rule{Literal: lit}, nil
	default:
		return 0, Rule{}, fmt.Errorf("%w: %q needs a class or a literal", ErrInvalidRule, char)
	}
}

// RulesToFile converts a rule table back to its file form, ordered by character.
func RulesToFile(rules Rules) *RulesFile {
	chars := make([]rune, 0, len(rules))
	for char := range rules {
		chars = append(chars, char)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	file := &RulesFile{}
	for _, char := range chars {
		rule := rules[char]
		entry := RuleEntry{Char: string(char)}
		if rule.Class != nil {
			entry.Class = rule.Class.String()
		} else {
			entry.Literal = string(rule.Literal)
		}
		file.Rules = append(file.Rules, entry)
	}
	return file
}
