// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/radar-cac/radar/metrics"
	"github.com/radar-cac/radar/tracing"
)

// DefaultVerifyURL is Google's reCAPTCHA verification endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

const DefaultTimeout = 5 * time.Second

var (
	// ErrUnconfigured means no server secret is set. This is a deployment
	// bug, not a caller error.
	ErrUnconfigured = errors.New("captcha secret not configured")
	// ErrUnavailable covers transport failures, timeouts, non-2xx answers
	// and bodies that cannot be decoded
	ErrUnavailable = errors.New("captcha verification unavailable")
	// ErrUnreachable is the part of ErrUnavailable where no usable answer
	// came back at all: transport errors, timeouts and undecodable bodies
	ErrUnreachable = fmt.Errorf("%w: no usable answer", ErrUnavailable)
	// ErrRejected means the service answered and refused the token
	ErrRejected = errors.New("captcha rejected")
)

// Client verifies reCAPTCHA tokens. It holds no per-request state and is
// safe for concurrent use.
type Client struct {
	secret    string
	verifyURL string
	minScore  float64
	http      *http.Client
}

type Option func(*Client)

// WithVerifyURL points the client at another siteverify-compatible endpoint
func WithVerifyURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.verifyURL = u
		}
	}
}

// WithTimeout bounds each verification call
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMinScore rejects reCAPTCHA v3 answers scoring below score. Zero disables
// the check; v2 answers carry no score and are never rejected by it.
func WithMinScore(score float64) Option {
	return func(c *Client) {
		c.minScore = score
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(secret string, opts ...Option) *Client {
	c := &Client{
		secret:    secret,
		verifyURL: DefaultVerifyURL,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify makes exactly one call to the verification service. It returns nil
// only for an unambiguous success.
func (c *Client) Verify(ctx context.Context, token, remoteIP string) (err error) {
	ctx, span := tracing.Tracer().Start(ctx, "captcha.Verify")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.secret == "" {
		return ErrUnconfigured
	}

	form := url.Values{
		"secret":   {c.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ExternalAPIDuration.WithLabelValues("recaptcha", "siteverify").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalAPIFailureTotal.WithLabelValues("recaptcha", "siteverify").Inc()
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		metrics.ExternalAPIFailureTotal.WithLabelValues("recaptcha", "siteverify").Inc()
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out verifyResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err != nil {
		metrics.ExternalAPIFailureTotal.WithLabelValues("recaptcha", "siteverify").Inc()
		return fmt.Errorf("%w: decode response: %v", ErrUnreachable, err)
	}
	metrics.ExternalAPISuccessTotal.WithLabelValues("recaptcha", "siteverify").Inc()

	span.SetAttributes(
		attribute.Bool("captcha.success", out.Success),
		attribute.String("captcha.hostname", out.Hostname),
	)

	if !out.Success {
		return fmt.Errorf("%w: %s", ErrRejected, strings.Join(out.ErrorCodes, ","))
	}
	if c.minScore > 0 && out.Score != nil && *out.Score < c.minScore {
		return fmt.Errorf("%w: score %.2f below %.2f", ErrRejected, *out.Score, c.minScore)
	}
	return nil
}
