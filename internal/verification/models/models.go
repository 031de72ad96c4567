// Package models holds the data carried through the verification pipeline and
// the JSON contract of its result.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status reports whether the pipeline ran to completion. It says nothing about
// whether the identity was verified.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Gender as read from the ID card.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderUnknown Gender = "Unknown"
)

// ParseGender maps English and Swahili card values onto Gender.
func ParseGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male", "mwanaume", "me":
		return GenderMale
	case "f", "female", "mwanamke", "ke":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate truncates to the calendar day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// ClaimedIdentity is what the subject asserts about themselves.
type ClaimedIdentity struct {
	Name        string `json:"name"`
	IDNumber    string `json:"id_number"`
	PhoneNumber string `json:"phone_number"`
}

// ExtractedIDData is what OCR read from the card. Nil pointers mean the field
// was not found; they are never replaced by empty strings.
type ExtractedIDData struct {
	IDNumber     *string           `json:"id_number"`
	FullName     *string           `json:"full_name"`
	DateOfBirth  *Date             `json:"date_of_birth"`
	Gender       *Gender           `json:"gender"`
	OtherDetails map[string]string `json:"other_details"`
}

// NewExtractedIDData returns an empty extraction with a non-nil details map.
func NewExtractedIDData() *ExtractedIDData {
	return &ExtractedIDData{OtherDetails: map[string]string{}}
}

// MergeMissing fills fields absent on d from other. Fields already present on
// d win, so merging the back of the card into the front keeps front values.
func (d *ExtractedIDData) MergeMissing(other *ExtractedIDData) {
	if other == nil {
		return
	}
	if d.IDNumber == nil {
		d.IDNumber = other.IDNumber
	}
	if d.FullName == nil {
		d.FullName = other.FullName
	}
	if d.DateOfBirth == nil {
		d.DateOfBirth = other.DateOfBirth
	}
	if d.Gender == nil {
		d.Gender = other.Gender
	}
	if d.OtherDetails == nil {
		d.OtherDetails = map[string]string{}
	}
	for k, v := range other.OtherDetails {
		if _, ok := d.OtherDetails[k]; !ok {
			d.OtherDetails[k] = v
		}
	}
}

// Clone returns a copy that shares no mutable state with d.
func (d *ExtractedIDData) Clone() ExtractedIDData {
	if d == nil {
		return *NewExtractedIDData()
	}
	out := ExtractedIDData{
		IDNumber:     clonePtr(d.IDNumber),
		FullName:     clonePtr(d.FullName),
		DateOfBirth:  clonePtr(d.DateOfBirth),
		Gender:       clonePtr(d.Gender),
		OtherDetails: make(map[string]string, len(d.OtherDetails)),
	}
	for k, v := range d.OtherDetails {
		out.OtherDetails[k] = v
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FaceMatchOutcome is the thresholded face comparison.
type FaceMatchOutcome struct {
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// PhoneValidationOutcome carries an E.164 number only when IsValid.
type PhoneValidationOutcome struct {
	IsValid          bool    `json:"is_valid"`
	NormalizedNumber *string `json:"normalized_number"`
	Message          string  `json:"message"`
}

// IDValidationOutcome combines the format check of the claimed number with the
// cross-check against OCR.
type IDValidationOutcome struct {
	IDNumberValid    bool            `json:"id_number_valid"`
	IDPatternMatched bool            `json:"id_pattern_matched"`
	ExtractedData    ExtractedIDData `json:"extracted_data"`
}

// ValidationDetails explains a completed decision signal by signal.
type ValidationDetails struct {
	IDValidation     IDValidationOutcome    `json:"id_validation"`
	FaceMatch        FaceMatchOutcome       `json:"face_match"`
	PhoneValidation  PhoneValidationOutcome `json:"phone_validation"`
	NameMatch        bool                   `json:"name_match"`
	OCRExtractedData ExtractedIDData        `json:"ocr_extracted_data"`
}

// ValidationResult is the pipeline's only output. ValidationDetails is nil on
// failure.
type ValidationResult struct {
	Status            Status             `json:"status"`
	Message           string             `json:"message"`
	IsVerified        bool               `json:"is_verified"`
	Data              ClaimedIdentity    `json:"data"`
	ValidationDetails *ValidationDetails `json:"validation_details,omitempty"`
}

// PhoneDetails is the parsed view of a phone number from the phone library.
type PhoneDetails struct {
	Raw                 string `json:"input"`
	E164                string `json:"e164"`
	InternationalFormat string `json:"international_format"`
	NationalFormat      string `json:"national_format"`
	CountryCode         int    `json:"country_code"`
	RegionCode          string `json:"region_code"`
	Carrier             string `json:"carrier"`
	IsValid             bool   `json:"is_valid"`
	IsPossible          bool   `json:"is_possible"`
}
