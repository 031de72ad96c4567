package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMergeMissing_FrontWins(t *testing.T) {
	front := &ExtractedIDData{
		IDNumber:     ptr("12345678"),
		OtherDetails: map[string]string{"document_type": "national_id"},
	}
	back := &ExtractedIDData{
		IDNumber:     ptr("87654321"),
		FullName:     ptr("John Doe"),
		Gender:       ptr(GenderMale),
		OtherDetails: map[string]string{"document_type": "huduma_card", "place_of_issue": "Nairobi"},
	}

	front.MergeMissing(back)

	assert.Equal(t, "12345678", *front.IDNumber)
	assert.Equal(t, "John Doe", *front.FullName)
	assert.Equal(t, GenderMale, *front.Gender)
	assert.Nil(t, front.DateOfBirth)
	assert.Equal(t, "national_id", front.OtherDetails["document_type"])
	assert.Equal(t, "Nairobi", front.OtherDetails["place_of_issue"])
}

func TestMergeMissing_NilOther(t *testing.T) {
	d := NewExtractedIDData()
	d.MergeMissing(nil)
	assert.Nil(t, d.IDNumber)
	assert.NotNil(t, d.OtherDetails)
}

func TestClone_Independent(t *testing.T) {
	orig := &ExtractedIDData{IDNumber: ptr("1234567"), OtherDetails: map[string]string{"a": "b"}}
	c := orig.Clone()

	*c.IDNumber = "0000000"
	c.OtherDetails["a"] = "z"

	assert.Equal(t, "1234567", *orig.IDNumber)
	assert.Equal(t, "b", orig.OtherDetails["a"])

	var nilData *ExtractedIDData
	empty := nilData.Clone()
	assert.NotNil(t, empty.OtherDetails)
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"MALE":      GenderMale,
		" m ":       GenderMale,
		"Mwanaume":  GenderMale,
		"female":    GenderFemale,
		"MWANAMKE":  GenderFemale,
		"":          GenderUnknown,
		"something": GenderUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseGender(in), "input %q", in)
	}
}

func TestExtractedIDData_JSONAbsentFieldsAreNull(t *testing.T) {
	b, err := json.Marshal(NewExtractedIDData())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id_number":null,"full_name":null,"date_of_birth":null,"gender":null,"other_details":{}}`, string(b))
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(1990, time.January, 15)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-01-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	assert.Error(t, json.Unmarshal([]byte(`"15/01/1990"`), &back))
}

func TestValidationResult_FailureOmitsDetails(t *testing.T) {
	res := ValidationResult{
		Status:  StatusFailure,
		Message: "Validation failed: unreadable image",
		Data:    ClaimedIdentity{Name: "John Doe", IDNumber: "12345678", PhoneNumber: "0712345678"},
	}
	b, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "failure", m["status"])
	assert.Equal(t, false, m["is_verified"])
	assert.NotContains(t, m, "validation_details")
}
