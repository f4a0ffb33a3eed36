// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/radar-cac/radar/models"
)

// Fields holds a request whose vocabulary, unit and date presence checks passed
type Fields struct {
	Type         models.ProcessType
	OMID         int64
	Result       models.Result
	DateProtocol string
	DateDecision string
}

// CheckFields validates enum membership, the unit reference and presence
// of both dates, in that order.
func CheckFields(req models.SubmissionRequest) (Fields, error) {
	if req.Type == "" || !req.Type.Valid() || req.Result == "" || !req.Result.Valid() {
		return Fields{}, ErrInvalidEnum
	}

	omID, ok := parseUnitID(req.OMID)
	if !ok {
		return Fields{}, ErrInvalidUnit
	}

	protocol := strings.TrimSpace(req.DateProtocol)
	decision := strings.TrimSpace(req.DateDecision)
	if protocol == "" || decision == "" {
		return Fields{}, ErrMissingDates
	}

	return Fields{
		Type:         req.Type,
		OMID:         omID,
		Result:       req.Result,
		DateProtocol: protocol,
		DateDecision: decision,
	}, nil
}

// parseUnitID accepts a bare JSON number that is a positive integer.
// Integral floats such as 12.0 or 1.2e1 are accepted; quoted numbers are not.
func parseUnitID(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

// Today returns the current server day at UTC midnight
func Today(now time.Time) models.Date {
	return models.NewDate(now.UTC())
}

// CheckDates parses both dates strictly as YYYY-MM-DD and enforces that
// neither is after today and that the decision does not precede the protocol.
// Equal dates are accepted.
func CheckDates(protocol, decision string, today models.Date) (models.Date, models.Date, error) {
	p, err := models.ParseDate(protocol)
	if err != nil {
		return models.Date{}, models.Date{}, ErrInvalidDateFormat
	}
	d, err := models.ParseDate(decision)
	if err != nil {
		return models.Date{}, models.Date{}, ErrInvalidDateFormat
	}

	if p.After(today.Time) || d.After(today.Time) {
		return models.Date{}, models.Date{}, ErrFutureDateNotAllowed
	}
	if d.Before(p.Time) {
		return models.Date{}, models.Date{}, ErrDecisionBeforeProtocol
	}
	return p, d, nil
}

// Validate runs the field and temporal checks and returns the record to
// persist. ID and CreatedAt are left for the writer.
func Validate(req models.SubmissionRequest, now time.Time) (models.Submission, error) {
	fields, err := CheckFields(req)
	if err != nil {
		return models.Submission{}, err
	}

	protocol, decision, err := CheckDates(fields.DateProtocol, fields.DateDecision, Today(now))
	if err != nil {
		return models.Submission{}, err
	}

	return models.Submission{
		Type:         fields.Type,
		OMID:         fields.OMID,
		Result:       fields.Result,
		DateProtocol: protocol,
		DateDecision: decision,
	}, nil
}

// CheckToken rejects a missing verification token
func CheckToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingVerificationToken
	}
	return nil
}
