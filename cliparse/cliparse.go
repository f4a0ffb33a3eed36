package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	ErrMissingDatabaseURL     = errors.New("database URL required (use -d or DATABASE_URL env)")
	ErrMissingRecaptchaSecret = errors.New("RECAPTCHA_SECRET_KEY required")
)

const (
	defaultPort         = 8080
	defaultDatabaseType = "postgres"
	defaultVerifyURL    = "https://www.google.com/recaptcha/api/siteverify"
	defaultTimeout      = 5 * time.Second
	defaultMaxBody      = "64KiB"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	RecaptchaSecret    string
	RecaptchaVerifyURL string
	RecaptchaMinScore  float64
	VerifyTimeout      time.Duration

	MaxBodyBytes int64
	OTLPEndpoint string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxBody string

	fs := flag.NewFlagSet("radar", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&maxBody, "max-body", "", "Maximum request body size, e.g. 64KiB")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.RecaptchaSecret, "recaptcha-secret", "", "reCAPTCHA secret key (prefer env)")
	fs.StringVar(&cfg.RecaptchaVerifyURL, "recaptcha-url", "", "reCAPTCHA siteverify URL")
	fs.Float64Var(&cfg.RecaptchaMinScore, "recaptcha-min-score", -1, "Minimum reCAPTCHA v3 score (0 disables)")
	fs.DurationVar(&cfg.VerifyTimeout, "recaptcha-timeout", 0, "Timeout for each verification call")

	fs.StringVar(&cfg.OTLPEndpoint, "otlp", "", "OTLP gRPC endpoint for traces")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = defaultDatabaseType
		}
	}

	if maxBody == "" {
		maxBody = os.Getenv("MAX_BODY_SIZE")
		if maxBody == "" {
			maxBody = defaultMaxBody
		}
	}
	size, err := humanize.ParseBytes(maxBody)
	if err != nil || size == 0 {
		return Config{}, fmt.Errorf("invalid MAX_BODY_SIZE %q", maxBody)
	}
	cfg.MaxBodyBytes = int64(size)

	if cfg.RecaptchaVerifyURL == "" {
		cfg.RecaptchaVerifyURL = os.Getenv("RECAPTCHA_VERIFY_URL")
		if cfg.RecaptchaVerifyURL == "" {
			cfg.RecaptchaVerifyURL = defaultVerifyURL
		}
	}

	if cfg.RecaptchaMinScore < 0 {
		cfg.RecaptchaMinScore = 0
		if s := os.Getenv("RECAPTCHA_MIN_SCORE"); s != "" {
			score, err := strconv.ParseFloat(s, 64)
			if err != nil || score < 0 || score > 1 {
				return Config{}, errors.New("invalid RECAPTCHA_MIN_SCORE env variable (want 0..1)")
			}
			cfg.RecaptchaMinScore = score
		}
	}

	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = defaultTimeout
		if s := os.Getenv("RECAPTCHA_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil || d <= 0 {
				return Config{}, errors.New("invalid RECAPTCHA_TIMEOUT env variable")
			}
			cfg.VerifyTimeout = d
		}
	}

	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	// Secrets - MUST be provided
	if cfg.RecaptchaSecret == "" {
		cfg.RecaptchaSecret = os.Getenv("RECAPTCHA_SECRET_KEY")
	}
	if cfg.RecaptchaSecret == "" {
		cfg.RecaptchaSecret = os.Getenv("RECAPTCHA_SECRET")
	}
	if cfg.RecaptchaSecret == "" {
		return Config{}, ErrMissingRecaptchaSecret
	}

	return cfg, nil
}
