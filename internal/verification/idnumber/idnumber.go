// Package idnumber checks the claimed Kenyan national ID number for format and
// cross-checks it against the number read from the card.
package idnumber

import (
	"strings"

	"kycverify/internal/verification/models"
)

const (
	DefaultMinDigits = 7
	DefaultMaxDigits = 8
)

// Validator is pure; a zero value is not usable, use New.
type Validator struct {
	minDigits int
	maxDigits int
}

// New returns a validator accepting claimed numbers of minDigits..maxDigits
// ASCII digits. Non-positive bounds fall back to the defaults.
func New(minDigits, maxDigits int) *Validator {
	if minDigits <= 0 {
		minDigits = DefaultMinDigits
	}
	if maxDigits < minDigits {
		maxDigits = max(DefaultMaxDigits, minDigits)
	}
	return &Validator{minDigits: minDigits, maxDigits: maxDigits}
}

// Validate never errors. A missing or blank extracted number is never a match.
func (v *Validator) Validate(claimed string, extracted *string) models.IDValidationOutcome {
	return models.IDValidationOutcome{
		IDNumberValid:    v.ValidFormat(claimed),
		IDPatternMatched: Matches(claimed, extracted),
	}
}

// ValidFormat reports whether the trimmed claimed number is all ASCII digits
// within the configured length bounds.
func (v *Validator) ValidFormat(claimed string) bool {
	s := strings.TrimSpace(claimed)
	if len(s) < v.minDigits || len(s) > v.maxDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Matches compares claimed and extracted after Normalize.
func Matches(claimed string, extracted *string) bool {
	if extracted == nil {
		return false
	}
	e := Normalize(*extracted)
	if e == "" {
		return false
	}
	return Normalize(claimed) == e
}

// Normalize trims, upper-cases and drops spaces and hyphens.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\t', '\n', '\r':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}
