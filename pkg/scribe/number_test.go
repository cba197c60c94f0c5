package scribe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRomanNumeral(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{152, "CLII"},
		{400, "CD"},
		{900, "CM"},
		{1987, "MCMLXXXVII"},
		{3999, "MMMCMXCIX"},
	}

	for _, tt := range tests {
		got, err := romanNumeral(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestRomanNumeral_OutOfRange(t *testing.T) {
	for _, n := range []int{0, -1, 4000} {
		_, err := romanNumeral(n)
		assert.Error(t, err, "n=%d", n)
	}
}

func TestAlphaLatin(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		got, err := alphaLatin(tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "n=%d", tt.n)
	}
}

func TestAlphaLatin_NonPositive(t *testing.T) {
	for _, n := range []int{0, -5} {
		_, err := alphaLatin(n)
		assert.Error(t, err, "n=%d", n)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		mode  string
		want  string
	}{
		{"neutral verbatim", "1234567.89", "neutral", "1234567.89"},
		{"english grouping", "1234567", "english", "1,234,567"},
		{"english short", "123", "english", "123"},
		{"english four digits", "1234", "english", "1,234"},
		{"english decimals grouped", "1234.56789", "english", "1,234.567,89"},
		{"english comma decimal kept", "1234,5", "english", "1,234,5"},
		{"french no-break grouping", "1234567", "french", "1 234 567"},
		{"negative uses en dash", "-1000", "english", "–1,000"},
		{"plus sign kept", "+1000", "english", "+1,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatNumber(tt.value, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatNumber_Errors(t *testing.T) {
	_, err := formatNumber("12x", "english")
	assert.Error(t, err)

	_, err = formatNumber("123", "german")
	assert.ErrorContains(t, err, "unknown number mode")
}
