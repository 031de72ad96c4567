package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"kycverify/internal/verification/models"
	"kycverify/internal/verification/ports"
)

// ValidatePhone is the standalone phone lookup. details is nil when the number
// could not be parsed.
func (s *Service) ValidatePhone(ctx context.Context, raw, region string) (*models.PhoneDetails, models.PhoneValidationOutcome) {
	_, span := tracer.Start(ctx, "verification.ValidatePhone")
	defer span.End()

	start := time.Now()
	details, outcome := s.phones.Lookup(raw, region)
	s.metrics.ObserveAdapterLatency(adapterPhone, resultLabel(outcome.IsValid, nil), time.Since(start))
	return details, outcome
}

// ExtractText runs OCR over a single card image.
func (s *Service) ExtractText(ctx context.Context, image []byte) (*models.ExtractedIDData, error) {
	ctx, span := tracer.Start(ctx, "verification.ExtractText")
	defer span.End()

	if err := s.images.CheckImage(ports.ImageIDFront, image); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return s.extract(ctx, adapterOCRFront, ports.ImageIDFront, image)
}

// CompareFaces thresholds the similarity of two arbitrary face images. A
// missing face is an unmatched outcome, not an error.
func (s *Service) CompareFaces(ctx context.Context, first, second []byte) (models.FaceMatchOutcome, error) {
	ctx, span := tracer.Start(ctx, "verification.CompareFaces")
	defer span.End()

	if err := s.images.CheckImage(ports.ImageSelfie, first); err != nil {
		return models.FaceMatchOutcome{}, err
	}
	if err := s.images.CheckImage(ports.ImageIDFront, second); err != nil {
		return models.FaceMatchOutcome{}, err
	}
	return s.compare(ctx, first, second)
}

// Ready checks both sidecars concurrently.
func (s *Service) Ready(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.ocr.Health(ctx) })
	g.Go(func() error { return s.faces.Health(ctx) })
	return g.Wait()
}
