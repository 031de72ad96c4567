// Package verdict merges the individual verification signals into a single
// ValidationResult. Every signal is a veto: the identity is verified only when
// all of them pass.
package verdict

import (
	"kycverify/internal/verification/models"
)

// Signal names a vetoing check, used in logs and metrics.
type Signal string

const (
	SignalIDFormat  Signal = "id_format"
	SignalIDPattern Signal = "id_pattern"
	SignalFace      Signal = "face"
	SignalPhone     Signal = "phone"
	SignalName      Signal = "name"
)

const (
	MessageCompleted = "Validation completed successfully"
	failurePrefix    = "Validation failed: "
)

// Verdict is the aggregated result plus the signals that vetoed it.
type Verdict struct {
	Result models.ValidationResult
	Vetoes []Signal
}

// Aggregate builds the result of a completed pipeline run. It is pure; the
// details hold copies of the extracted OCR data, so later changes to the inputs
// do not leak into the result.
func Aggregate(
	claim models.ClaimedIdentity,
	id models.IDValidationOutcome,
	face models.FaceMatchOutcome,
	phone models.PhoneValidationOutcome,
	nameMatch bool,
) Verdict {
	var vetoes []Signal
	if !id.IDNumberValid {
		vetoes = append(vetoes, SignalIDFormat)
	}
	if !id.IDPatternMatched {
		vetoes = append(vetoes, SignalIDPattern)
	}
	if !face.IsMatch {
		vetoes = append(vetoes, SignalFace)
	}
	if !phone.IsValid {
		vetoes = append(vetoes, SignalPhone)
	}
	if !nameMatch {
		vetoes = append(vetoes, SignalName)
	}

	id.ExtractedData = id.ExtractedData.Clone()
	if phone.NormalizedNumber != nil {
		n := *phone.NormalizedNumber
		phone.NormalizedNumber = &n
	}

	return Verdict{
		Result: models.ValidationResult{
			Status:     models.StatusSuccess,
			Message:    MessageCompleted,
			IsVerified: len(vetoes) == 0,
			Data:       claim,
			ValidationDetails: &models.ValidationDetails{
				IDValidation:     id,
				FaceMatch:        face,
				PhoneValidation:  phone,
				NameMatch:        nameMatch,
				OCRExtractedData: id.ExtractedData.Clone(),
			},
		},
		Vetoes: vetoes,
	}
}

// Failure builds the result of a pipeline that could not complete. It never
// carries partial details.
func Failure(claim models.ClaimedIdentity, message string) models.ValidationResult {
	return models.ValidationResult{
		Status:     models.StatusFailure,
		Message:    failurePrefix + message,
		IsVerified: false,
		Data:       claim,
	}
}
