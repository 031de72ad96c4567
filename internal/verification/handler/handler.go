package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/service"
	dErrors "kycverify/pkg/domain-errors"
	"kycverify/pkg/platform/httputil"
	"kycverify/pkg/requestcontext"
)

// Service defines the interface for verification operations.
type Service interface {
	Verify(ctx context.Context, req service.VerifyRequest) (*models.ValidationResult, error)
	ValidatePhone(ctx context.Context, raw, region string) (*models.PhoneDetails, models.PhoneValidationOutcome)
	ExtractText(ctx context.Context, image []byte) (*models.ExtractedIDData, error)
	CompareFaces(ctx context.Context, first, second []byte) (models.FaceMatchOutcome, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/handler-mocks.go -package=mocks Service

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service   Service
	logger    *slog.Logger
	maxUpload int64
}

// New constructs a verification handler. maxUpload bounds each uploaded image.
func New(service Service, logger *slog.Logger, maxUpload int64) *Handler {
	return &Handler{
		service:   service,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// RegisterVerification mounts the full verification endpoints.
func (h *Handler) RegisterVerification(r chi.Router) {
	r.Post("/api/validate/kenyan-id", h.HandleVerify)
	r.Post("/api/validate-kyc", h.HandleVerify)
}

// RegisterLookups mounts the single-signal endpoints.
func (h *Handler) RegisterLookups(r chi.Router) {
	r.Post("/validate-phone", h.HandleValidatePhone)
	r.Post("/extract-text", h.HandleExtractText)
	r.Post("/validate-face", h.HandleValidateFace)
}

// HandleVerify handles POST /api/validate/kenyan-id requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := h.parseForm(w, r, requestID)
	if !ok {
		return
	}
	req, err := parseVerifyRequest(form, h.maxUpload)
	if err != nil {
		h.rejectForm(ctx, w, requestID, err)
		return
	}

	result, err := h.service.Verify(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "verification request failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteJSON(w, httputil.StatusFor(dErrors.CodeOf(domainError(err))), result)
		return
	}

	h.logger.InfoContext(ctx, "verification request completed",
		"request_id", requestID,
		"is_verified", result.IsVerified,
		"duration_ms", time.Since(requestcontext.Now(ctx)).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleValidatePhone handles POST /validate-phone requests.
func (h *Handler) HandleValidatePhone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	req, ok := httputil.DecodeAndPrepare[PhoneRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	details, outcome := h.service.ValidatePhone(ctx, req.PhoneNumber, req.Region)
	httputil.WriteJSON(w, http.StatusOK, NewPhoneResponse(req.PhoneNumber, details, outcome))
}

// HandleExtractText handles POST /extract-text requests.
func (h *Handler) HandleExtractText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := h.parseForm(w, r, requestID)
	if !ok {
		return
	}
	image, err := readFile(form, fieldImage, h.maxUpload)
	if err != nil {
		h.rejectForm(ctx, w, requestID, err)
		return
	}

	data, err := h.service.ExtractText(ctx, image)
	if err != nil {
		h.logger.WarnContext(ctx, "text extraction failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, domainError(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ExtractTextResponse{Success: true, Data: data})
}

// HandleValidateFace handles POST /validate-face requests.
func (h *Handler) HandleValidateFace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	form, ok := h.parseForm(w, r, requestID)
	if !ok {
		return
	}
	first, err := readFile(form, fieldImage1, h.maxUpload)
	if err != nil {
		h.rejectForm(ctx, w, requestID, err)
		return
	}
	second, err := readFile(form, fieldImage2, h.maxUpload)
	if err != nil {
		h.rejectForm(ctx, w, requestID, err)
		return
	}

	outcome, err := h.service.CompareFaces(ctx, first, second)
	if err != nil {
		h.logger.WarnContext(ctx, "face comparison failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, domainError(err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FaceResponse{
		Match:      outcome.IsMatch,
		Confidence: outcome.Confidence,
		Message:    outcome.Message,
	})
}

func (h *Handler) rejectForm(ctx context.Context, w http.ResponseWriter, requestID string, err error) {
	h.logger.WarnContext(ctx, "request validation failed",
		"request_id", requestID,
		"error", err,
	)
	httputil.WriteError(w, err)
}
