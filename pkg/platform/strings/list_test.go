package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", " , ,, ", []string{}},
		{"single origin", "https://kyc.example.com", []string{"https://kyc.example.com"}},
		{"trims and drops repeats", " http://a.test ,http://b.test,http://a.test", []string{"http://a.test", "http://b.test"}},
		{"keeps case", "KE,ke", []string{"KE", "ke"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.raw))
		})
	}
}

func TestUniqueFold(t *testing.T) {
	assert.Equal(t, []string{"john", "doe"}, UniqueFold([]string{" JOHN", "doe", "John ", ""}))
	assert.Empty(t, UniqueFold(nil))
}
