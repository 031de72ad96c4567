// Package ports defines the signal producers the verification pipeline depends
// on. Implementations live under adapters/; the core never imports them.
package ports

import (
	"context"

	"kycverify/internal/verification/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks OCRExtractor,FaceComparer,PhoneParser,ImageChecker

// Image roles, also used in user-facing messages.
const (
	ImageSelfie  = "selfie"
	ImageIDFront = "ID front"
	ImageIDBack  = "ID back"
)

// OCRExtractor reads structured fields off one side of an ID card.
type OCRExtractor interface {
	// ExtractIDFields returns whatever fields could be read; missing fields are
	// nil. An image with no recognizable text is not an error.
	ExtractIDFields(ctx context.Context, image []byte) (*models.ExtractedIDData, error)
	Health(ctx context.Context) error
}

// FaceComparer measures the embedding distance between the most prominent
// face of each image. Lower is more similar.
type FaceComparer interface {
	// FaceDistance returns a NoFaceDetected AdapterError naming the image when
	// either side has no face.
	FaceDistance(ctx context.Context, selfie, idPhoto []byte) (float64, error)
	Health(ctx context.Context) error
}

// PhoneParser wraps a phone-number metadata library.
type PhoneParser interface {
	// Parse returns an InvalidPhoneFormat AdapterError when raw cannot be parsed
	// at all. Parsed but invalid numbers are returned with IsValid false.
	Parse(raw, region string) (*models.PhoneDetails, error)
}

// ImageChecker rejects uploads that are not a decodable image.
type ImageChecker interface {
	CheckImage(role string, data []byte) error
}
