// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Radar API server.

Radar collects community reports of firearms-registration process
turnaround (process type, deciding unit, protocol and decision dates,
outcome) and serves the aggregates behind the dashboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... RECAPTCHA_SECRET_KEY=... go run .

Or with flags:

	go run . -p 8080 -t sqlite -d "file:radar.db" -recaptcha-secret "..."

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string
  - RECAPTCHA_SECRET_KEY (-recaptcha-secret): Server-side reCAPTCHA secret

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - MAX_BODY_SIZE, RECAPTCHA_VERIFY_URL, RECAPTCHA_MIN_SCORE,
    RECAPTCHA_TIMEOUT, OTEL_EXPORTER_OTLP_ENDPOINT

Missing required settings stop the process at startup.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (submissions, units, stats)
  - submission: Validation pipeline and error taxonomy
  - captcha: reCAPTCHA siteverify client
  - router: Route definitions using chi
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response and domain types
  - db: Dialects, schema creation and unit seed
  - metrics, tracing: Prometheus collectors and OpenTelemetry setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
