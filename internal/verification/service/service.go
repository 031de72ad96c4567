package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"kycverify/internal/verification/facematch"
	"kycverify/internal/verification/idnumber"
	"kycverify/internal/verification/metrics"
	"kycverify/internal/verification/models"
	"kycverify/internal/verification/namematch"
	"kycverify/internal/verification/phone"
	"kycverify/internal/verification/ports"
	"kycverify/internal/verification/verdict"
	"kycverify/pkg/platform/privacy"
	"kycverify/pkg/requestcontext"
)

var tracer = otel.Tracer("kycverify/verification")

// Adapter labels for metrics and timeout errors.
const (
	adapterOCRFront = "ocr_front"
	adapterOCRBack  = "ocr_back"
	adapterFace     = "face"
	adapterPhone    = "phone"
)

// Config holds the decision policy and adapter budget.
type Config struct {
	IDMinDigits         int
	IDMaxDigits         int
	FaceMatchThreshold  float64
	FaceMaxDistance     float64
	NameMinSharedTokens int
	PhoneDefaultRegion  string
	AdapterTimeout      time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		IDMinDigits:         idnumber.DefaultMinDigits,
		IDMaxDigits:         idnumber.DefaultMaxDigits,
		FaceMatchThreshold:  facematch.DefaultThreshold,
		FaceMaxDistance:     facematch.DefaultMaxDistance,
		NameMinSharedTokens: namematch.DefaultMinSharedTokens,
		PhoneDefaultRegion:  phone.DefaultRegion,
		AdapterTimeout:      30 * time.Second,
	}
}

// VerifyRequest is one verification attempt: the claim plus the three images.
type VerifyRequest struct {
	Claim   models.ClaimedIdentity
	Selfie  []byte
	IDFront []byte
	IDBack  []byte
	// Region overrides the default phone region when set.
	Region string
}

// Service runs the verification pipeline. Its collaborators are safe for
// concurrent use, so one Service serves all requests.
type Service struct {
	ocr    ports.OCRExtractor
	faces  ports.FaceComparer
	images ports.ImageChecker

	ids     *idnumber.Validator
	names   *namematch.Matcher
	scorer  *facematch.Evaluator
	phones  *phone.Validator
	timeout time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics
	config  *Config
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func New(
	ocr ports.OCRExtractor,
	faces ports.FaceComparer,
	phones ports.PhoneParser,
	images ports.ImageChecker,
	opts ...Option,
) (*Service, error) {
	if ocr == nil {
		return nil, fmt.Errorf("ocr extractor is required")
	}
	if faces == nil {
		return nil, fmt.Errorf("face comparer is required")
	}
	if phones == nil {
		return nil, fmt.Errorf("phone parser is required")
	}
	if images == nil {
		return nil, fmt.Errorf("image checker is required")
	}

	svc := &Service{
		ocr:    ocr,
		faces:  faces,
		images: images,
		logger: slog.Default(),
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}

	cfg := svc.config
	svc.ids = idnumber.New(cfg.IDMinDigits, cfg.IDMaxDigits)
	svc.names = namematch.New(namematch.Policy{MinSharedTokens: cfg.NameMinSharedTokens})
	svc.scorer = facematch.New(cfg.FaceMatchThreshold, cfg.FaceMaxDistance)
	svc.phones = phone.New(phones, cfg.PhoneDefaultRegion)
	svc.timeout = cfg.AdapterTimeout
	if svc.timeout <= 0 {
		svc.timeout = DefaultConfig().AdapterTimeout
	}
	return svc, nil
}

// Verify runs the full pipeline. The result is never nil. err is non-nil
// exactly when the result has status failure, and carries the adapter error
// so callers can choose a transport status.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*models.ValidationResult, error) {
	start := time.Now()
	subject := privacy.SubjectHash(req.Claim.IDNumber, req.Claim.Name)

	ctx, span := tracer.Start(ctx, "verification.Verify")
	defer span.End()
	span.SetAttributes(attribute.String("subject.hash", subject))

	defer func() { s.metrics.ObserveVerifyLatency(time.Since(start)) }()

	for _, img := range []struct {
		role string
		data []byte
	}{
		{ports.ImageSelfie, req.Selfie},
		{ports.ImageIDFront, req.IDFront},
		{ports.ImageIDBack, req.IDBack},
	} {
		if err := s.images.CheckImage(img.role, img.data); err != nil {
			return s.fail(ctx, span, req.Claim, subject, err)
		}
	}

	signals := s.gatherSignals(ctx, req)
	if err := signals.firstError(); err != nil {
		return s.fail(ctx, span, req.Claim, subject, err)
	}

	extracted := signals.front.Clone()
	extracted.MergeMissing(signals.back)

	idOutcome := s.ids.Validate(req.Claim.IDNumber, extracted.IDNumber)
	idOutcome.ExtractedData = extracted
	nameMatch := s.names.Matches(req.Claim.Name, extracted.FullName)

	v := verdict.Aggregate(req.Claim, idOutcome, signals.face, signals.phone, nameMatch)

	result := "unverified"
	if v.Result.IsVerified {
		result = "verified"
	}
	s.metrics.IncrementOutcome(string(models.StatusSuccess), result)
	s.metrics.ObserveFaceConfidence(signals.face.Confidence)
	vetoes := make([]string, len(v.Vetoes))
	for i, sig := range v.Vetoes {
		vetoes[i] = string(sig)
		s.metrics.IncrementVeto(vetoes[i])
	}

	span.SetAttributes(
		attribute.Bool("verification.is_verified", v.Result.IsVerified),
		attribute.StringSlice("verification.vetoes", vetoes),
		attribute.Float64("verification.face_confidence", signals.face.Confidence),
	)
	s.logger.InfoContext(ctx, "verification completed",
		"request_id", requestcontext.RequestID(ctx),
		"subject_hash", subject,
		"is_verified", v.Result.IsVerified,
		"vetoes", vetoes,
		"face_confidence", signals.face.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out := v.Result
	return &out, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, claim models.ClaimedIdentity, subject string, err error) (*models.ValidationResult, error) {
	category := ports.GetCategory(err)
	s.metrics.IncrementOutcome(string(models.StatusFailure), string(category))
	span.RecordError(err)
	span.SetStatus(codes.Error, string(category))

	s.logger.WarnContext(ctx, "verification failed",
		"request_id", requestcontext.RequestID(ctx),
		"subject_hash", subject,
		"category", category,
		"image", ports.ImageOf(err),
		"error", err,
	)

	res := verdict.Failure(claim, FailureMessage(err))
	return &res, err
}

// FailureMessage renders a pipeline error for the result message. It names the
// offending image but never echoes adapter internals.
func FailureMessage(err error) string {
	image := ports.ImageOf(err)
	var ae *ports.AdapterError
	adapter := ""
	if errors.As(err, &ae) {
		adapter = ae.Adapter
	}
	switch ports.GetCategory(err) {
	case ports.ErrorUnreadableImage:
		if image == "" {
			return "Could not read image"
		}
		return fmt.Sprintf("Could not read %s image", image)
	case ports.ErrorNoFaceDetected:
		return fmt.Sprintf("No face detected in %s image", image)
	case ports.ErrorTimeout:
		return fmt.Sprintf("%s service timed out", adapterLabel(adapter))
	case ports.ErrorAdapterOutage:
		return fmt.Sprintf("%s service unavailable", adapterLabel(adapter))
	case ports.ErrorBadData:
		return fmt.Sprintf("%s service returned invalid data", adapterLabel(adapter))
	default:
		return "internal error"
	}
}

func adapterLabel(adapter string) string {
	switch adapter {
	case "ocr", adapterOCRFront, adapterOCRBack:
		return "OCR"
	case adapterFace:
		return "Face matching"
	case adapterPhone, "phonelib":
		return "Phone validation"
	default:
		return "Verification"
	}
}

// signals collects the concurrent adapter results. Each field is written by
// exactly one goroutine before Wait returns.
type signals struct {
	front, back       *models.ExtractedIDData
	face              models.FaceMatchOutcome
	phone             models.PhoneValidationOutcome
	errFront, errBack error
	errFace           error
}

// firstError picks errors in a fixed order so the reported failure does not
// depend on goroutine scheduling.
func (s *signals) firstError() error {
	for _, err := range []error{s.errFront, s.errBack, s.errFace} {
		if err != nil {
			return err
		}
	}
	return nil
}

// gatherSignals runs every adapter concurrently and waits for all of them.
// Failures are recorded per signal rather than cancelling the others.
func (s *Service) gatherSignals(ctx context.Context, req VerifyRequest) *signals {
	out := &signals{}
	var g errgroup.Group

	g.Go(func() error {
		out.front, out.errFront = s.extract(ctx, adapterOCRFront, ports.ImageIDFront, req.IDFront)
		return nil
	})
	g.Go(func() error {
		out.back, out.errBack = s.extract(ctx, adapterOCRBack, ports.ImageIDBack, req.IDBack)
		return nil
	})
	g.Go(func() error {
		out.face, out.errFace = s.compare(ctx, req.Selfie, req.IDFront)
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		out.phone = s.phones.Normalize(req.Claim.PhoneNumber, req.Region)
		s.metrics.ObserveAdapterLatency(adapterPhone, resultLabel(out.phone.IsValid, nil), time.Since(start))
		return nil
	})

	_ = g.Wait()
	return out
}

func (s *Service) extract(ctx context.Context, adapter, image string, data []byte) (*models.ExtractedIDData, error) {
	ctx, span := tracer.Start(ctx, "verification.ocr")
	defer span.End()
	span.SetAttributes(attribute.String("image", image))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	fields, err := s.ocr.ExtractIDFields(ctx, data)
	err = normalizeErr(ctx, adapter, image, err)
	s.metrics.ObserveAdapterLatency(adapter, resultLabel(true, err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if fields == nil {
		fields = models.NewExtractedIDData()
	}
	if fields.OtherDetails == nil {
		fields.OtherDetails = map[string]string{}
	}
	return fields, nil
}

func (s *Service) compare(ctx context.Context, selfie, idPhoto []byte) (models.FaceMatchOutcome, error) {
	ctx, span := tracer.Start(ctx, "verification.face")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	distance, err := s.faces.FaceDistance(ctx, selfie, idPhoto)
	if ports.IsNoFace(err) {
		s.metrics.ObserveAdapterLatency(adapterFace, "no_face", time.Since(start))
		image := ports.ImageOf(err)
		if image == "" {
			image = ports.ImageSelfie
		}
		return facematch.NoFace(image), nil
	}
	err = normalizeErr(ctx, adapterFace, "", err)
	s.metrics.ObserveAdapterLatency(adapterFace, resultLabel(true, err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		return models.FaceMatchOutcome{}, err
	}

	outcome := s.scorer.Evaluate(distance)
	span.SetAttributes(attribute.Float64("face.distance", distance), attribute.Bool("face.is_match", outcome.IsMatch))
	return outcome, nil
}

// normalizeErr turns deadline expiry into a timeout AdapterError and makes
// sure every adapter error names its image.
func normalizeErr(ctx context.Context, adapter, image string, err error) error {
	if err == nil {
		return nil
	}
	var ae *ports.AdapterError
	if !errors.As(err, &ae) {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			ae = ports.Timeout(adapter, err)
		} else {
			ae = ports.NewAdapterError(ports.ErrorInternal, adapter, "adapter call failed", err)
		}
		err = ae
	}
	if ae.Image == "" && image != "" {
		ae.Image = image
	}
	return err
}

func resultLabel(ok bool, err error) string {
	switch {
	case err != nil:
		return string(ports.GetCategory(err))
	case ok:
		return "ok"
	default:
		return "rejected"
	}
}
