// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8080)
  - DatabaseURL: Connection string (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - RecaptchaSecret: Server-side reCAPTCHA secret (required)
  - RecaptchaVerifyURL: siteverify endpoint (default: Google)
  - RecaptchaMinScore: Minimum v3 score, 0 disables (default: 0)
  - VerifyTimeout: Bound on each verification call (default: 5s)
  - MaxBodyBytes: Request body limit (default: 64KiB)
  - OTLPEndpoint: OTLP gRPC trace collector (optional)

# CLI Flags

	-p                   Server port
	-d                   Database URL
	-t                   Database type
	-max-body            Request body limit (e.g. 64KiB, 1 MB)
	-recaptcha-secret    reCAPTCHA secret
	-recaptcha-url       siteverify URL
	-recaptcha-min-score Minimum score
	-recaptcha-timeout   Verification timeout
	-otlp                OTLP endpoint

# Environment Variables

Flags fall back to environment variables:

	PORT                        → -p
	DATABASE_URL                → -d
	DATABASE_TYPE               → -t
	MAX_BODY_SIZE               → -max-body
	RECAPTCHA_SECRET_KEY        → -recaptcha-secret (RECAPTCHA_SECRET also accepted)
	RECAPTCHA_VERIFY_URL        → -recaptcha-url
	RECAPTCHA_MIN_SCORE         → -recaptcha-min-score
	RECAPTCHA_TIMEOUT           → -recaptcha-timeout
	OTEL_EXPORTER_OTLP_ENDPOINT → -otlp

CLI flags take precedence over environment variables. main loads a .env
file first when one is present.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided (ErrMissingDatabaseURL)
  - RECAPTCHA_SECRET_KEY must be provided (ErrMissingRecaptchaSecret)

Both are startup failures: the server refuses to run without a store or
a verifier rather than failing each request.
*/
package cliparse
