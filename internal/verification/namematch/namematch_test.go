package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestMatches(t *testing.T) {
	m := New(Policy{MinSharedTokens: DefaultMinSharedTokens})

	tests := []struct {
		name      string
		claimed   string
		extracted *string
		want      bool
	}{
		{"identical", "John Doe", ptr("John Doe"), true},
		{"case and spacing", "  john   DOE ", ptr("JOHN DOE"), true},
		{"surname first with comma", "John Doe", ptr("DOE, JOHN"), true},
		{"diacritics", "José Müller", ptr("JOSE MULLER"), true},
		{"dropped middle name", "John Doe", ptr("JOHN KAMAU DOE"), true},
		{"claimed has middle name", "John Kamau Doe", ptr("John Doe"), true},
		{"single token subset", "John", ptr("John Doe"), false},
		{"different surname", "John Doe", ptr("John Smith"), false},
		{"absent extracted", "John Doe", nil, false},
		{"empty extracted", "John Doe", ptr(""), false},
		{"empty claimed", "   ", ptr("John Doe"), false},
		{"duplicate tokens", "John John Doe", ptr("Doe John"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.claimed, tt.extracted))
		})
	}
}

func TestMatches_OrderInsensitive(t *testing.T) {
	m := New(Policy{})
	names := []string{"Achieng Mary Otieno", "Otieno Achieng Mary", "Mary Otieno Achieng"}
	for _, a := range names {
		for _, b := range names {
			assert.True(t, m.Matches(a, ptr(b)), "%q vs %q", a, b)
		}
	}
}

func TestMatches_StricterPolicy(t *testing.T) {
	m := New(Policy{MinSharedTokens: 3})

	assert.False(t, m.Matches("John Doe", ptr("John Kamau Doe")))
	assert.True(t, m.Matches("John Doe", ptr("Doe John")))
	assert.Equal(t, 3, m.Policy().MinSharedTokens)
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"doe", "john"}, Tokens("DOE,JOHN"))
	assert.Equal(t, []string{"zoe"}, Tokens("Zoë zoe"))
	assert.Empty(t, Tokens(" , "))
}
