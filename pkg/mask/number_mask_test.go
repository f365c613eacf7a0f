package mask

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNumberMask(t *testing.T, cfg NumberConfig) *NumberMask {
	t.Helper()
	m, err := NewNumberMask(cfg)
	require.NoError(t, err)
	return m
}

func TestNumberMask(t *testing.T) {
	spaced := NumberConfig{Format: DefaultNumberFormat()}
	western := NumberConfig{Format: NumberFormat{Decimals: 0, Group: ",", Decimal: ".", GroupSize: []int{3}}}
	indian := NumberConfig{Format: NumberFormat{Decimals: 2, Group: ",", Decimal: ".", GroupSize: []int{3, 2}}}
	capped := NumberConfig{Format: DefaultNumberFormat(), Max: 999}

	tests := []struct {
		name  string
		cfg   NumberConfig
		input string
		want  string
	}{
		{"Empty", spaced, "", ""},
		{"Zero string", spaced, "0", "0"},
		{"Grouped", spaced, "4000", "4 000"},
		{"Fraction", spaced, "1234567,891", "1 234 567,89"},
		{"Canonical decimal point", spaced, "1234.5", "1 234,5"},
		{"Trailing decimal kept", spaced, "12,", "12,"},
		{"No digits", spaced, "abc", ""},
		{"Minus dropped when unsigned", spaced, "-1234", "1 234"},
		{"Fraction dropped without decimals", western, "1234567.89", "1,234,567"},
		{"Dual group size", indian, "1234567", "12,34,567"},
		{"Dual group size six digits", indian, "123456", "1,23,456"},
		{"Dual group size first group only", indian, "12", "12"},
		{"Dual group size with fraction", indian, "1234567.5", "12,34,567.5"},
		{"Max caps integer digits", capped, "123456", "123"},
		{"Max counts digits only", capped, "12a3456", "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNumberMask(t, tt.cfg)
			assert.Equal(t, tt.want, m.Mask(tt.input))
		})
	}
}

func TestNumberUnmask(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat()})

	assert.Equal(t, "", m.Unmask(""))
	assert.Equal(t, "", m.Unmask("   "))
	assert.Equal(t, "1234567.89", m.Unmask("1 234 567,89"))
	assert.Equal(t, "4000.00", m.Unmask(" 4 000,00 "))
}

func TestNumberFormatDisplay(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat()})

	assert.Equal(t, "4 000,00", m.Format(4000))
	assert.Equal(t, "4 000,00", m.FormatInt(4000))
	assert.Equal(t, "4000.00", m.Unmask(m.Format(4000)))
	assert.Equal(t, "0,50", m.Format(0.5))
	// Fractions are truncated, never rounded
	assert.Equal(t, "1 234,56", m.Format(1234.567))
	assert.Equal(t, "4 000,00", m.Format(-4000))

	assert.Equal(t, "", m.Format(0))
	assert.Equal(t, "", m.FormatInt(0))
	assert.Equal(t, "", m.Format(math.NaN()))
}

func TestNumberRoundTrip(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat()})

	for _, v := range []string{"4000", "1234,56", "1234.5", "7"} {
		t.Run(v, func(t *testing.T) {
			masked := m.Mask(v)
			assert.Equal(t, masked, m.Mask(m.Unmask(masked)))
		})
	}
}

func TestNumberPad(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat()})

	tests := []struct {
		input string
		want  string
	}{
		{"000 123", "123,00"},
		{"007", "7,00"},
		{"0", "0,00"},
		{"00,5", "0,50"},
		{",5", "0,50"},
		{"12,", "12,00"},
		{"1 234,5", "1 234,50"},
		{"1 234,56", "1 234,56"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Pad(tt.input))
		})
	}
}

func TestNumberPadPlaceholder(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat(), Placeholder: "0,00"})

	assert.Equal(t, "", m.Pad("0"))
	assert.Equal(t, "5,00", m.Pad("5"))
}

func TestNumberPadWithoutDecimals(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: NumberFormat{Decimals: 0, Group: ".", Decimal: ",", GroupSize: []int{3}}})

	assert.Equal(t, "1.000", m.Pad("0.001.000"))
	assert.Equal(t, "1.000", m.Display("1000"))
}

func TestNumberParse(t *testing.T) {
	m := newNumberMask(t, NumberConfig{Format: DefaultNumberFormat()})

	f, ok := m.Parse("4 000,50")
	assert.True(t, ok)
	assert.InDelta(t, 4000.5, f, 1e-9)

	for _, bad := range []string{"", " ", ",", "abc", "NaN"} {
		_, ok := m.Parse(bad)
		assert.False(t, ok, "Parse(%q)", bad)
	}
}

func TestSignedNumbers(t *testing.T) {
	format := DefaultNumberFormat()
	format.Signed = true
	m := newNumberMask(t, NumberConfig{Format: format})

	assert.Equal(t, "-1 234", m.Mask("-1234"))
	assert.Equal(t, "-1 234,5", m.Mask("-1234,5"))
	assert.Equal(t, "-1234.5", m.Unmask("-1 234,5"))
	assert.Equal(t, "-4 000,00", m.Format(-4000))
	assert.Equal(t, "-7,00", m.FormatInt(-7))
	assert.Equal(t, "-12,00", m.Pad("-0012"))

	// No sign in front of zero
	assert.Equal(t, "0,00", m.Display("-"))
	assert.Equal(t, "0,00", m.Display("-0"))
	assert.Equal(t, "0,00", m.Pad("-0,00"))
	assert.Equal(t, "-0,50", m.Display("-0,5"))

	f, ok := m.Parse(m.Format(-4000.25))
	assert.True(t, ok)
	assert.InDelta(t, -4000.25, f, 1e-9)
}

func TestNewNumberMaskValidation(t *testing.T) {
	valid := DefaultNumberFormat()

	tests := []struct {
		name   string
		mutate func(cfg *NumberConfig)
	}{
		{"Negative decimals", func(cfg *NumberConfig) { cfg.Format.Decimals = -1 }},
		{"Empty group", func(cfg *NumberConfig) { cfg.Format.Group = "" }},
		{"Long group", func(cfg *NumberConfig) { cfg.Format.Group = "ab" }},
		{"Digit decimal", func(cfg *NumberConfig) { cfg.Format.Decimal = "5" }},
		{"Same delimiters", func(cfg *NumberConfig) { cfg.Format.Decimal = " " }},
		{"No group size", func(cfg *NumberConfig) { cfg.Format.GroupSize = nil }},
		{"Three group sizes", func(cfg *NumberConfig) { cfg.Format.GroupSize = []int{3, 2, 1} }},
		{"Zero group size", func(cfg *NumberConfig) { cfg.Format.GroupSize = []int{0} }},
		{"Negative max", func(cfg *NumberConfig) { cfg.Max = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NumberConfig{Format: valid}
			cfg.Format.GroupSize = []int{3}
			tt.mutate(&cfg)

			_, err := NewNumberMask(cfg)
			assert.ErrorIs(t, err, ErrInvalidNumberFormat)
		})
	}
}
