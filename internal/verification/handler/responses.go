package handler

import (
	"kycverify/internal/verification/models"
)

// PhoneResponse is the HTTP response for POST /validate-phone.
type PhoneResponse struct {
	Input               string  `json:"input"`
	IsValid             bool    `json:"is_valid"`
	IsPossible          bool    `json:"is_possible"`
	NormalizedNumber    *string `json:"normalized_number"`
	InternationalFormat string  `json:"international_format,omitempty"`
	NationalFormat      string  `json:"national_format,omitempty"`
	CountryCode         int     `json:"country_code,omitempty"`
	RegionCode          string  `json:"region_code,omitempty"`
	Carrier             string  `json:"carrier,omitempty"`
	Message             string  `json:"message"`
}

// NewPhoneResponse flattens the lookup. details is nil for unparseable input.
func NewPhoneResponse(input string, details *models.PhoneDetails, outcome models.PhoneValidationOutcome) *PhoneResponse {
	resp := &PhoneResponse{
		Input:            input,
		IsValid:          outcome.IsValid,
		NormalizedNumber: outcome.NormalizedNumber,
		Message:          outcome.Message,
	}
	if details != nil {
		resp.IsPossible = details.IsPossible
		resp.InternationalFormat = details.InternationalFormat
		resp.NationalFormat = details.NationalFormat
		resp.CountryCode = details.CountryCode
		resp.RegionCode = details.RegionCode
		resp.Carrier = details.Carrier
	}
	return resp
}

// ExtractTextResponse is the HTTP response for POST /extract-text.
type ExtractTextResponse struct {
	Success bool                    `json:"success"`
	Data    *models.ExtractedIDData `json:"data"`
}

// FaceResponse is the HTTP response for POST /validate-face.
type FaceResponse struct {
	Match      bool    `json:"match"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}
