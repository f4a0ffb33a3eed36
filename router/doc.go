// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Radar API.

# Route Registration

NewRouter creates a configured chi router with all endpoints:

	r := router.NewRouter(db, cfg, captcha.New(cfg.RecaptchaSecret))

# Endpoints

Health and operations:

	GET /health
	GET /metrics - Prometheus exposition

Submission (public, reCAPTCHA protected):

	POST /submissions - Validate and store a report

Any other method on /submissions gets 405 from the handler.

Dashboard (public, read-only):

	GET /oms                - Administrative units
	GET /vocabulary         - Process type and result codes with labels
	GET /stats              - Turnaround summary
	GET /stats/monthly      - Average turnaround per decision month
	GET /submissions/recent - Latest reports

The read endpoints accept process_type, om_id and days filters.

# Middleware

Applied to every route, in order: chi RequestID, RealIP, Recoverer,
Prometheus metrics, CORS. Unknown routes and methods get JSON errors.
*/
package router
