// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission validates community-submitted processing-time reports.

# Pipeline

A report is checked in a fixed order and the first failure wins:

	fields, err := submission.CheckFields(req)      // vocabulary, unit, dates present
	p, d, err := submission.CheckDates(a, b, today) // format, future, ordering
	err = submission.CheckToken(req.CaptchaToken)

Validate runs the first two and returns a models.Submission ready for
insertion. The functions are pure; verification and persistence live in the
handlers package.

# Errors

Every rejection is one of the *Error sentinels, carrying the HTTP status and
a pt-BR message safe to show to the submitter:

	var perr *submission.Error
	if errors.As(err, &perr) {
		middleware.ErrorResponse(w, perr.Status, perr.Message)
	}

Internal kinds (unconfigured verifier or store, persistence failure) map to
500 and share a generic message.
*/
package submission
