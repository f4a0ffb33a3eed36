// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Radar API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SubmissionHandler: Validates, verifies and stores reports
  - UnitHandler: Lists administrative units
  - StatsHandler: Dashboard aggregates and recent reports

Handlers are created via constructor functions that accept *sql.DB and Config:

	statsHandler := handlers.NewStatsHandler(db, cfg)
	submissionHandler := handlers.NewSubmissionHandler(db, cfg, verifier)

# Submission Pipeline

POST /submissions runs these steps in order and stops at the first failure:

	decode → fields → dates → token → reCAPTCHA → store

Field and date checks live in package submission and run before any
outbound call, so a bad request never spends the client's token. The
reCAPTCHA call is bounded by Config.VerifyTimeout. The unit is re-checked
and the row inserted in one transaction that is not cancelled if the client
disconnects.

Every failure maps to a *submission.Error. Validation classes are 400 with
the message shown to the user; configuration and storage failures are 500
with a generic message and are logged with full detail.

# Read Path

	GET /oms                - UnitHandler.List
	GET /vocabulary         - UnitHandler.Vocabulary
	GET /stats              - StatsHandler.Summary
	GET /stats/monthly      - StatsHandler.Monthly
	GET /submissions/recent - StatsHandler.Recent

Filters: process_type, om_id, days (decision within the last N days).
Turnaround is date_decision - date_protocol in calendar days.
*/
package handlers
