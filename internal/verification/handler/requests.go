package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/service"
	dErrors "kycverify/pkg/domain-errors"
	"kycverify/pkg/platform/httputil"
)

// Form field names.
const (
	fieldName        = "name"
	fieldIDNumber    = "id_number"
	fieldPhoneNumber = "phone_number"
	fieldRegion      = "region"
	fieldSelfie      = "selfie"
	fieldIDFront     = "id_front"
	fieldIDBack      = "id_back"
	fieldImage       = "image"
	fieldImage1      = "image1"
	fieldImage2      = "image2"
)

const (
	maxJSONBody      = 64 << 10
	maxFormMemory    = 32 << 20
	formOverhead     = 1 << 20
	imagesPerRequest = 3

	maxNameLength   = 200
	maxIDLength     = 32
	maxPhoneLength  = 64
	maxRegionLength = 2
)

// PhoneRequest is the HTTP request body for POST /validate-phone.
type PhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
	Region      string `json:"region"`
}

// Validate trims and bounds the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *PhoneRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.PhoneNumber) > maxPhoneLength {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("phone_number must be at most %d characters", maxPhoneLength))
	}
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	if r.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone_number is required")
	}
	r.Region = strings.ToUpper(strings.TrimSpace(r.Region))
	if len(r.Region) > maxRegionLength {
		return dErrors.New(dErrors.CodeBadRequest, "region must be a two-letter region code")
	}
	return nil
}

// parseForm bounds and parses a multipart body. On failure it writes the
// error response and returns false.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request, requestID string) (*multipart.Form, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, imagesPerRequest*h.maxUpload+formOverhead)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse multipart form",
			"request_id", requestID,
			"error", err,
		)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodePayloadTooLarge, "request body too large"))
			return nil, false
		}
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form"))
		return nil, false
	}
	return r.MultipartForm, true
}

func parseVerifyRequest(form *multipart.Form, maxUpload int64) (service.VerifyRequest, error) {
	var req service.VerifyRequest

	claim := models.ClaimedIdentity{
		Name:        formValue(form, fieldName),
		IDNumber:    formValue(form, fieldIDNumber),
		PhoneNumber: formValue(form, fieldPhoneNumber),
	}
	if err := validateClaim(claim); err != nil {
		return req, err
	}
	req.Claim = claim
	req.Region = strings.ToUpper(formValue(form, fieldRegion))
	if len(req.Region) > maxRegionLength {
		return req, dErrors.New(dErrors.CodeBadRequest, "region must be a two-letter region code")
	}

	var err error
	if req.Selfie, err = readFile(form, fieldSelfie, maxUpload); err != nil {
		return req, err
	}
	if req.IDFront, err = readFile(form, fieldIDFront, maxUpload); err != nil {
		return req, err
	}
	if req.IDBack, err = readFile(form, fieldIDBack, maxUpload); err != nil {
		return req, err
	}
	return req, nil
}

func validateClaim(c models.ClaimedIdentity) error {
	// Size validation (fail fast)
	if len(c.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}
	if len(c.IDNumber) > maxIDLength {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("id_number must be at most %d characters", maxIDLength))
	}
	if len(c.PhoneNumber) > maxPhoneLength {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("phone_number must be at most %d characters", maxPhoneLength))
	}

	// Required fields
	if c.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if c.IDNumber == "" {
		return dErrors.New(dErrors.CodeBadRequest, "id_number is required")
	}
	if c.PhoneNumber == "" {
		return dErrors.New(dErrors.CodeBadRequest, "phone_number is required")
	}
	return nil
}

func formValue(form *multipart.Form, key string) string {
	if vs := form.Value[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// readFile returns the first file uploaded under field. An empty file is
// returned as is; decodability is the service's concern.
func readFile(form *multipart.Form, field string, maxUpload int64) ([]byte, error) {
	files := form.File[field]
	if len(files) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, field+" file is required")
	}
	if files[0].Size > maxUpload {
		return nil, dErrors.New(dErrors.CodePayloadTooLarge, fmt.Sprintf("%s exceeds %d bytes", field, maxUpload))
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "could not open "+field)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "could not read "+field)
	}
	if int64(len(data)) > maxUpload {
		return nil, dErrors.New(dErrors.CodePayloadTooLarge, fmt.Sprintf("%s exceeds %d bytes", field, maxUpload))
	}
	return data, nil
}
