// Package namematch decides whether a claimed name refers to the same person as
// the name OCR read from the ID card.
package namematch

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	pstrings "kycverify/pkg/platform/strings"
)

// DefaultMinSharedTokens is the smallest token set allowed to match as a subset.
const DefaultMinSharedTokens = 2

// Policy is the tolerance applied once both names are tokenized.
type Policy struct {
	// MinSharedTokens is the minimum size of the smaller token set for a
	// subset match. Equal sets always match.
	MinSharedTokens int
}

// Matcher is safe for concurrent use.
type Matcher struct {
	policy Policy
}

// New returns a matcher for p. A non-positive MinSharedTokens uses the default.
func New(p Policy) *Matcher {
	if p.MinSharedTokens <= 0 {
		p.MinSharedTokens = DefaultMinSharedTokens
	}
	return &Matcher{policy: p}
}

// Policy returns the effective policy.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// Matches reports whether claimed and extracted name the same person. Token
// order does not matter, so "DOE, JOHN" matches "John Doe". One name may omit
// tokens of the other (a dropped middle name) as long as the shorter one still
// has MinSharedTokens tokens.
func (m *Matcher) Matches(claimed string, extracted *string) bool {
	if extracted == nil {
		return false
	}
	a, b := Tokens(claimed), Tokens(*extracted)
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	set := make(map[string]struct{}, len(large))
	for _, t := range large {
		set[t] = struct{}{}
	}
	for _, t := range small {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	if len(small) == len(large) {
		return true
	}
	return len(small) >= m.policy.MinSharedTokens
}

// Tokens returns the deduplicated lower-case tokens of name with diacritics
// removed, split on whitespace and commas.
func Tokens(name string) []string {
	fields := strings.FieldsFunc(fold(name), func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	return pstrings.UniqueFold(fields)
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
