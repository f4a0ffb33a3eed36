// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmissionRequest: type, om_id, result, date_protocol, date_decision, captchaToken

# Response Types

Types for JSON responses:

  - SubmitResponse: success
  - ErrorResponse: error
  - Stats: total, avg_days, min_days, max_days
  - MonthlyStat: month, avg_days, total
  - RecentSubmission: id, created_at, om, process_type, result, days
  - Vocabulary: process_types and results as code/label options

# Domain Types

  - Submission: a persisted, append-only report
  - Unit: an administrative unit (OM) that decides processes
  - Date: a UTC calendar day, serialized as YYYY-MM-DD

# Vocabularies

Process types and results are closed sets. Valid reports membership and
Label returns the pt-BR description used by the dashboard:

	models.ProcessType("CR_OBTER").Valid()  // true
	models.ResultDeferido.Label()           // "Deferido"

Values outside the vocabularies are rejected, never coerced.
*/
package models
