// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/radar-cac/radar/captcha"
	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/metrics"
	"github.com/radar-cac/radar/middleware"
	"github.com/radar-cac/radar/models"
	"github.com/radar-cac/radar/submission"
	"github.com/radar-cac/radar/tracing"
)

// Verifier checks an anti-abuse token. Implementations return
// captcha.ErrRejected, captcha.ErrUnavailable, captcha.ErrUnreachable or
// captcha.ErrUnconfigured.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type SubmissionHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	verifier Verifier
	now      func() time.Time
}

func NewSubmissionHandler(db *sql.DB, cfg cliparse.Config, verifier Verifier) *SubmissionHandler {
	return &SubmissionHandler{db: db, cfg: cfg, verifier: verifier, now: time.Now}
}

// Submit handles POST /submissions
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST, OPTIONS")
		h.fail(w, submission.ErrMethodNotAllowed, nil)
		return
	}

	if h.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	}

	var req models.SubmissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		h.fail(w, submission.ErrMalformedInput, err)
		return
	}

	sub, err := submission.Validate(req, h.now())
	if err != nil {
		h.fail(w, asPipelineError(err), nil)
		return
	}

	if err := submission.CheckToken(req.CaptchaToken); err != nil {
		h.fail(w, asPipelineError(err), nil)
		return
	}

	// No point spending a single-use token when nothing can be stored
	if h.db == nil {
		h.fail(w, submission.ErrStoreUnconfigured, errors.New("no database connection"))
		return
	}

	if perr, cause := h.verify(r.Context(), req.CaptchaToken, middleware.GetClientIP(r)); perr != nil {
		h.fail(w, perr, cause)
		return
	}

	// The insert runs to completion even if the client goes away
	if err := h.persist(context.WithoutCancel(r.Context()), &sub); err != nil {
		var perr *submission.Error
		if errors.As(err, &perr) {
			h.fail(w, perr, nil)
			return
		}
		h.fail(w, submission.ErrPersistence, err)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	slog.Info("submission stored",
		"submission_id", sub.ID,
		"type", sub.Type,
		"om_id", sub.OMID,
		"turnaround_days", sub.TurnaroundDays(),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{Success: true})
}

// verify maps verifier outcomes onto pipeline errors. The returned cause is
// for the log only.
func (h *SubmissionHandler) verify(ctx context.Context, token, remoteIP string) (*submission.Error, error) {
	if h.verifier == nil {
		return submission.ErrVerifierUnconfigured, errors.New("no verifier configured")
	}

	if h.cfg.VerifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.VerifyTimeout)
		defer cancel()
	}

	err := h.verifier.Verify(ctx, token, remoteIP)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, captcha.ErrUnconfigured):
		return submission.ErrVerifierUnconfigured, err
	case errors.Is(err, captcha.ErrRejected):
		return submission.ErrVerificationFailed, err
	case errors.Is(err, captcha.ErrUnreachable):
		return submission.ErrVerificationUnreachable, err
	case errors.Is(err, captcha.ErrUnavailable):
		return submission.ErrVerificationUnavailable, err
	default:
		return submission.ErrVerificationUnreachable, err
	}
}

// persist re-checks the unit and inserts the submission in one transaction.
// A missing unit is returned as submission.ErrInvalidUnit; anything else is
// a storage failure.
func (h *SubmissionHandler) persist(ctx context.Context, sub *models.Submission) (err error) {
	ctx, span := tracing.Tracer().Start(ctx, "submissions.persist")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM oms WHERE id = $1)", sub.OMID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check unit %d: %w", sub.OMID, err)
	}
	if !exists {
		return submission.ErrInvalidUnit
	}

	sub.ID = uuid.NewString()
	sub.CreatedAt = h.now().UTC()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO submissions (id, type, om_id, result, date_protocol, date_decision, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sub.ID, sub.Type, sub.OMID, sub.Result, sub.DateProtocol, sub.DateDecision, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}

	span.SetAttributes(
		attribute.String("submission.id", sub.ID),
		attribute.Int64("submission.om_id", sub.OMID),
	)
	return nil
}

// fail writes the caller-safe message and logs the cause. Server-side
// failures are logged at error level with full detail.
func (h *SubmissionHandler) fail(w http.ResponseWriter, perr *submission.Error, cause error) {
	metrics.SubmissionsTotal.WithLabelValues(string(perr.Kind)).Inc()

	if perr.Internal() {
		slog.Error("submission failed", "kind", perr.Kind, "error", cause)
	} else if cause != nil {
		slog.Warn("submission rejected", "kind", perr.Kind, "error", cause)
	} else {
		slog.Info("submission rejected", "kind", perr.Kind)
	}

	middleware.ErrorResponse(w, perr.Status, perr.Message)
}

func asPipelineError(err error) *submission.Error {
	var perr *submission.Error
	if errors.As(err, &perr) {
		return perr
	}
	return submission.ErrMalformedInput
}
