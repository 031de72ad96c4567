// Package phone applies the acceptance policy to numbers parsed by the phone
// library.
package phone

import (
	"fmt"
	"strings"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/ports"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "KE"

// Validator normalizes phone numbers to E.164.
type Validator struct {
	parser        ports.PhoneParser
	defaultRegion string
}

// New returns a validator. An empty region falls back to DefaultRegion.
func New(parser ports.PhoneParser, defaultRegion string) *Validator {
	region := strings.ToUpper(strings.TrimSpace(defaultRegion))
	if region == "" {
		region = DefaultRegion
	}
	return &Validator{parser: parser, defaultRegion: region}
}

// DefaultRegion returns the region applied when none is given.
func (v *Validator) DefaultRegion() string {
	return v.defaultRegion
}

// Normalize validates raw. Numbers that parse but are not valid for any region
// are rejected, and NormalizedNumber is only set when the number is valid.
func (v *Validator) Normalize(raw, region string) models.PhoneValidationOutcome {
	_, outcome := v.Lookup(raw, region)
	return outcome
}

// Lookup is Normalize plus the parsed details, which are nil when the number
// could not be parsed.
func (v *Validator) Lookup(raw, region string) (*models.PhoneDetails, models.PhoneValidationOutcome) {
	if strings.TrimSpace(raw) == "" {
		return nil, models.PhoneValidationOutcome{Message: "Phone number is required"}
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = v.defaultRegion
	}

	details, err := v.parser.Parse(raw, region)
	if err != nil {
		return nil, models.PhoneValidationOutcome{
			Message: fmt.Sprintf("Invalid phone number format: %s", messageOf(err)),
		}
	}
	if !details.IsValid {
		return details, models.PhoneValidationOutcome{Message: "Invalid phone number"}
	}

	e164 := details.E164
	return details, models.PhoneValidationOutcome{
		IsValid:          true,
		NormalizedNumber: &e164,
		Message:          "Valid phone number",
	}
}

func messageOf(err error) string {
	if ports.GetCategory(err) == ports.ErrorInvalidPhoneFormat {
		return "could not parse number"
	}
	return err.Error()
}
