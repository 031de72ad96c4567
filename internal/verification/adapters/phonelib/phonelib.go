// Package phonelib adapts github.com/nyaruka/phonenumbers to ports.PhoneParser.
package phonelib

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/ports"
)

const adapterName = "phonelib"

// Parser implements ports.PhoneParser.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse never returns E.164 for a number that is not valid. Display formats
// and carrier are filled in regardless, as best effort.
func (p *Parser) Parse(raw, region string) (*models.PhoneDetails, error) {
	raw = strings.TrimSpace(raw)
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return nil, ports.NewAdapterError(ports.ErrorInvalidPhoneFormat, adapterName, "parse phone number", err)
	}

	details := &models.PhoneDetails{
		Raw:         raw,
		CountryCode: int(num.GetCountryCode()),
		RegionCode:  phonenumbers.GetRegionCodeForNumber(num),
		IsValid:     phonenumbers.IsValidNumber(num),
		IsPossible:  phonenumbers.IsPossibleNumber(num),

		InternationalFormat: phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
		NationalFormat:      phonenumbers.Format(num, phonenumbers.NATIONAL),
	}
	if details.IsValid {
		details.E164 = phonenumbers.Format(num, phonenumbers.E164)
	}
	if c, err := phonenumbers.GetCarrierForNumber(num, "en"); err == nil {
		details.Carrier = c
	}
	return details, nil
}
