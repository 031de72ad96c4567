package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "kycverify/pkg/platform/strings"
)

// Config is the full service configuration assembled from the environment.
type Config struct {
	Server       Server
	Log          Log
	Verification Verification
	Sidecars     Sidecars
	Redis        RedisConfig
	RateLimit    RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr               string
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	TrustProxyHeaders  bool
	ShutdownTimeout    time.Duration
}

// Log selects the slog handler.
type Log struct {
	Level  string
	Format string
}

// Verification holds the decision policy knobs.
type Verification struct {
	IDMinDigits         int
	IDMaxDigits         int
	FaceMatchThreshold  float64
	FaceMaxDistance     float64
	NameMinSharedTokens int
	PhoneDefaultRegion  string
}

// Sidecars locates the OCR and face inference services.
type Sidecars struct {
	OCRURL         string
	FaceURL        string
	AdapterTimeout time.Duration
}

// RedisConfig is empty-URL for "not configured".
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures the per-IP request limiter.
type RateLimit struct {
	Disabled        bool
	VerifyPerMinute int
	LookupPerMinute int
}

const (
	DefaultAddr                = ":8000"
	DefaultMaxUploadBytes      = 10 << 20
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultIDMinDigits         = 7
	DefaultIDMaxDigits         = 8
	DefaultFaceMatchThreshold  = 60.0
	DefaultFaceMaxDistance     = 1.0
	DefaultNameMinSharedTokens = 2
	DefaultPhoneRegion         = "KE"
	DefaultOCRURL              = "http://localhost:8101"
	DefaultFaceURL             = "http://localhost:8102"
	DefaultAdapterTimeout      = 30 * time.Second
	DefaultRedisPoolSize       = 10
	DefaultVerifyPerMinute     = 30
	DefaultLookupPerMinute     = 100
)

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) (Config, error) {
	p := parser{getenv: getenv}

	cfg := Config{
		Server: Server{
			Addr:               p.str("KYC_ADDR", DefaultAddr),
			MaxUploadBytes:     int64(p.int("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
			CORSAllowedOrigins: p.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
			TrustProxyHeaders:  p.bool("TRUST_PROXY_HEADERS"),
			ShutdownTimeout:    p.duration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		},
		Log: Log{
			Level:  strings.ToLower(p.str("LOG_LEVEL", "info")),
			Format: strings.ToLower(p.str("LOG_FORMAT", "json")),
		},
		Verification: Verification{
			IDMinDigits:         p.int("ID_MIN_DIGITS", DefaultIDMinDigits),
			IDMaxDigits:         p.int("ID_MAX_DIGITS", DefaultIDMaxDigits),
			FaceMatchThreshold:  p.float("FACE_MATCH_THRESHOLD", DefaultFaceMatchThreshold),
			FaceMaxDistance:     p.float("FACE_MAX_DISTANCE", DefaultFaceMaxDistance),
			NameMinSharedTokens: p.int("NAME_MIN_SHARED_TOKENS", DefaultNameMinSharedTokens),
			PhoneDefaultRegion:  strings.ToUpper(p.str("PHONE_DEFAULT_REGION", DefaultPhoneRegion)),
		},
		Sidecars: Sidecars{
			OCRURL:         strings.TrimRight(p.str("OCR_URL", DefaultOCRURL), "/"),
			FaceURL:        strings.TrimRight(p.str("FACE_URL", DefaultFaceURL), "/"),
			AdapterTimeout: p.duration("ADAPTER_TIMEOUT", DefaultAdapterTimeout),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.int("REDIS_POOL_SIZE", DefaultRedisPoolSize),
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		RateLimit: RateLimit{
			Disabled:        p.bool("RATE_LIMIT_DISABLED"),
			VerifyPerMinute: p.int("RATE_LIMIT_VERIFY_PER_MINUTE", DefaultVerifyPerMinute),
			LookupPerMinute: p.int("RATE_LIMIT_LOOKUP_PER_MINUTE", DefaultLookupPerMinute),
		},
	}

	if err := errors.Join(append(p.errs, cfg.validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	v := c.Verification
	if v.IDMinDigits < 1 || v.IDMaxDigits < v.IDMinDigits {
		errs = append(errs, fmt.Errorf("ID_MIN_DIGITS/ID_MAX_DIGITS: invalid range %d..%d", v.IDMinDigits, v.IDMaxDigits))
	}
	if v.FaceMatchThreshold <= 0 || v.FaceMatchThreshold > 100 {
		errs = append(errs, fmt.Errorf("FACE_MATCH_THRESHOLD: %v outside (0,100]", v.FaceMatchThreshold))
	}
	if v.FaceMaxDistance <= 0 {
		errs = append(errs, errors.New("FACE_MAX_DISTANCE: must be positive"))
	}
	if v.NameMinSharedTokens < 1 {
		errs = append(errs, errors.New("NAME_MIN_SHARED_TOKENS: must be at least 1"))
	}
	if len(v.PhoneDefaultRegion) != 2 {
		errs = append(errs, fmt.Errorf("PHONE_DEFAULT_REGION: %q is not a two-letter region", v.PhoneDefaultRegion))
	}
	if c.Sidecars.AdapterTimeout <= 0 {
		errs = append(errs, errors.New("ADAPTER_TIMEOUT: must be positive"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES: must be positive"))
	}
	if c.RateLimit.VerifyPerMinute < 1 || c.RateLimit.LookupPerMinute < 1 {
		errs = append(errs, errors.New("rate limits must be at least 1 per minute"))
	}
	return errors.Join(errs...)
}

type parser struct {
	getenv func(string) string
	errs   []error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) int(key string, def int) int {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) bool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(p.getenv(key)), "true")
}

func (p *parser) list(key string, def []string) []string {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	out := pstrings.SplitList(raw)
	if len(out) == 0 {
		return def
	}
	return out
}
