package idnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestValidFormat(t *testing.T) {
	v := New(DefaultMinDigits, DefaultMaxDigits)

	tests := []struct {
		claimed string
		want    bool
	}{
		{"12345678", true},
		{"1234567", true},
		{" 12345678 ", true},
		{"123456", false},
		{"123456789", false},
		{"1234567A", false},
		{"１２３４５６７", false},
		{"", false},
		{"1234 567", false},
	}
	for _, tt := range tests {
		t.Run(tt.claimed, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidFormat(tt.claimed))
		})
	}
}

func TestValidFormat_ConfiguredBounds(t *testing.T) {
	v := New(6, 9)
	assert.True(t, v.ValidFormat("123456"))
	assert.True(t, v.ValidFormat("123456789"))
	assert.False(t, v.ValidFormat("12345"))
}

func TestNew_FallsBackOnBadBounds(t *testing.T) {
	v := New(0, 0)
	assert.True(t, v.ValidFormat("1234567"))
	assert.True(t, v.ValidFormat("12345678"))
	assert.False(t, v.ValidFormat("123456789"))
}

func TestValidate_CrossCheck(t *testing.T) {
	v := New(DefaultMinDigits, DefaultMaxDigits)

	tests := []struct {
		name      string
		claimed   string
		extracted *string
		want      bool
	}{
		{"equal", "12345678", ptr("12345678"), true},
		{"separators on card", "12345678", ptr("1234-5678"), true},
		{"spaces and case", " ab 123 ", ptr("AB123"), true},
		{"different", "12345678", ptr("12345679"), false},
		{"absent", "12345678", nil, false},
		{"blank", "12345678", ptr("   "), false},
		{"empty both", "", ptr(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := v.Validate(tt.claimed, tt.extracted)
			assert.Equal(t, tt.want, out.IDPatternMatched)
		})
	}
}

func TestValidate_FormatIndependentOfMatch(t *testing.T) {
	v := New(DefaultMinDigits, DefaultMaxDigits)

	out := v.Validate("123", ptr("123"))

	assert.False(t, out.IDNumberValid)
	assert.True(t, out.IDPatternMatched)
}
