package mask

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NumberFormat describes how numbers are grouped and delimited.
type NumberFormat struct {
	// Decimals is the number of fraction digits kept.
	Decimals int `yaml:"decimals" json:"decimals"`
	// Group separates digit groups of the integer part.
	Group string `yaml:"group" json:"group"`
	// Decimal separates the integer and fraction parts.
	Decimal string `yaml:"decimal" json:"decimal"`
	// GroupSize has one entry for uniform grouping, or two where the first
	// applies to the group nearest the decimal and the second to the rest.
	GroupSize []int `yaml:"group_size" json:"group_size"`
	// Signed keeps a leading minus sign. Without it, minus signs are dropped
	// like any other non-digit.
	Signed bool `yaml:"signed,omitempty" json:"signed,omitempty"`
}

// DefaultNumberFormat returns two decimals, a space for groups, a comma for
// the decimal point, and groups of three.
func DefaultNumberFormat() NumberFormat {
	return NumberFormat{
		Decimals:  2,
		Group:     " ",
		Decimal:   ",",
		GroupSize: []int{3},
	}
}

// NumberConfig describes a number mask.
type NumberConfig struct {
	Format NumberFormat `yaml:",inline" json:"format"`
	// Max bounds the integer part: its digit count, not its value, caps the
	// number of integer digits. Zero means unbounded.
	Max int64 `yaml:"max,omitempty" json:"max,omitempty"`
	// Placeholder is the display value Pad collapses to empty.
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// NumberMask formats numbers with digit grouping. It is immutable and safe
// for concurrent use.
type NumberMask struct {
	decimals    int
	group       rune
	decimal     rune
	firstGroup  int
	restGroup   int
	signed      bool
	maxInteger  int
	placeholder string
}

// NewNumberMask validates cfg and builds a NumberMask.
func NewNumberMask(cfg NumberConfig) (*NumberMask, error) {
	f := cfg.Format
	if f.Decimals < 0 {
		return nil, fmt.Errorf("%w: decimals must not be negative, got %d", ErrInvalidNumberFormat, f.Decimals)
	}
	group, err := delimiterRune("group", f.Group)
	if err != nil {
		return nil, err
	}
	decimal, err := delimiterRune("decimal", f.Decimal)
	if err != nil {
		return nil, err
	}
	if group == decimal {
		return nil, fmt.Errorf("%w: group and decimal delimiters are both %q", ErrInvalidNumberFormat, group)
	}
	if len(f.GroupSize) < 1 || len(f.GroupSize) > 2 {
		return nil, fmt.Errorf("%w: group size needs 1 or 2 entries, got %d", ErrInvalidNumberFormat, len(f.GroupSize))
	}
	for _, size := range f.GroupSize {
		if size < 1 {
			return nil, fmt.Errorf("%w: group sizes must be positive, got %v", ErrInvalidNumberFormat, f.GroupSize)
		}
	}
	if cfg.Max < 0 {
		return nil, fmt.Errorf("%w: max must not be negative, got %d", ErrInvalidNumberFormat, cfg.Max)
	}

	m := &NumberMask{
		decimals:    f.Decimals,
		group:       group,
		decimal:     decimal,
		firstGroup:  f.GroupSize[0],
		restGroup:   f.GroupSize[len(f.GroupSize)-1],
		signed:      f.Signed,
		maxInteger:  math.MaxInt,
		placeholder: cfg.Placeholder,
	}
	if cfg.Max > 0 {
		m.maxInteger = len(strconv.FormatInt(cfg.Max, 10))
	}
	return m, nil
}

func delimiterRune(name, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %s delimiter %q must be a single character", ErrInvalidNumberFormat, name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if unicode.IsDigit(r) || r == '-' {
		return 0, fmt.Errorf("%w: %s delimiter %q is ambiguous", ErrInvalidNumberFormat, name, s)
	}
	return r, nil
}

// isDelimiter reports whether r separates the integer and fraction chunks
// of an input. The canonical '.', ',' and space are always delimiters so
// that unmasked values and plain number strings split correctly.
func (m *NumberMask) isDelimiter(r rune) bool {
	return r == ',' || r == '.' || r == ' ' || r == m.group || r == m.decimal
}

// Mask formats value: the first chunk before any delimiter is the integer
// part and the remaining chunks together form the fraction. Integer digits
// are capped by Max and grouped from the right; fraction digits are capped
// by Decimals and only rendered when Decimals is positive. No rounding or
// padding takes place.
func (m *NumberMask) Mask(value string) string {
	if value == "" {
		return ""
	}

	chunks := m.splitChunks(value)
	hasFraction := len(chunks) > 1

	integerPart := chunks[0]
	negative := m.signed && strings.HasPrefix(integerPart, "-")
	integer := filterDigits(integerPart, m.maxInteger)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(m.groupDigits(integer))

	if m.decimals > 0 && hasFraction {
		fraction := filterDigits(strings.Join(chunks[1:], ""), m.decimals)
		b.WriteRune(m.decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

// splitChunks splits value on every delimiter, keeping empty chunks.
func (m *NumberMask) splitChunks(value string) []string {
	var chunks []string
	start := 0
	for i, r := range value {
		if m.isDelimiter(r) {
			chunks = append(chunks, value[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(chunks, value[start:])
}

// filterDigits keeps up to limit ASCII digits of s, left to right.
func filterDigits(s string, limit int) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= limit {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

// groupDigits inserts group delimiters into a run of digits, counting from
// the least significant end.
func (m *NumberMask) groupDigits(digits string) string {
	if digits == "" {
		return ""
	}

	var groups []string
	end := len(digits)
	size := m.firstGroup
	for end > 0 {
		start := max(end-size, 0)
		groups = append(groups, digits[start:end])
		end = start
		size = m.restGroup
	}

	var b strings.Builder
	for i := len(groups) - 1; i >= 0; i-- {
		b.WriteString(groups[i])
		if i > 0 {
			b.WriteRune(m.group)
		}
	}
	return b.String()
}

// Unmask turns a formatted number into a canonical decimal string such as
// "-4000.5", suitable for strconv.ParseFloat.
func (m *NumberMask) Unmask(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, string(m.group), "")
	return strings.ReplaceAll(value, string(m.decimal), ".")
}

// Parse unmasks value and parses it. It reports false for empty or
// non-numeric input.
func (m *NumberMask) Parse(value string) (float64, bool) {
	canonical := m.Unmask(value)
	if canonical == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(canonical, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Format renders a number for display: masked, then padded. Zero and NaN
// render as the empty string.
func (m *NumberMask) Format(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return ""
	}
	return m.Display(strconv.FormatFloat(f, 'f', -1, 64))
}

// FormatInt renders an integer for display. Zero renders as the empty string.
func (m *NumberMask) FormatInt(i int64) string {
	if i == 0 {
		return ""
	}
	return m.Display(strconv.FormatInt(i, 10))
}

// Display masks a typed or stored value and pads it, the form shown once
// editing is finished.
func (m *NumberMask) Display(s string) string {
	masked := m.Mask(s)
	if masked == "" {
		return ""
	}
	return m.Pad(masked)
}

// Pad normalizes a masked value for display. Leading zeros and group
// delimiters are stripped unless they directly precede the decimal delimiter
// or the end, and the fraction is zero-filled to Decimals digits. A sign is
// kept only in front of a non-zero value. A value equal to the placeholder
// becomes empty.
func (m *NumberMask) Pad(value string) string {
	sign := ""
	if m.signed && strings.HasPrefix(value, "-") {
		sign, value = "-", value[1:]
	}

	value = m.trimLeadingZeros(value)
	if m.decimals > 0 {
		parts := strings.Split(value, string(m.decimal))
		if parts[0] == "" {
			parts[0] = "0"
		}
		if len(parts) == 1 {
			parts = append(parts, "")
		}
		if n := utf8.RuneCountInString(parts[1]); n < m.decimals {
			parts[1] += strings.Repeat("0", m.decimals-n)
		}
		value = strings.Join(parts, string(m.decimal))
	}

	if !strings.ContainsFunc(value, isNonZeroDigit) {
		sign = ""
	}
	value = sign + value
	if value == m.placeholder {
		return ""
	}
	return value
}

// trimLeadingZeros removes the longest run of leading zeros and group
// delimiters that is not followed by the decimal delimiter or the end.
func (m *NumberMask) trimLeadingZeros(value string) string {
	runes := []rune(value)
	k := 0
	for k < len(runes) && m.isPadding(runes[k]) {
		k++
	}
	if k == 0 {
		return value
	}
	if k == len(runes) || runes[k] == m.decimal {
		// Keep the last padding rune in front of the decimal or end.
		k--
	}
	return string(runes[k:])
}

func isNonZeroDigit(r rune) bool {
	return r >= '1' && r <= '9'
}

func (m *NumberMask) isPadding(r rune) bool {
	if r == '0' {
		return true
	}
	if m.group == ' ' {
		return unicode.IsSpace(r)
	}
	return r == m.group
}
