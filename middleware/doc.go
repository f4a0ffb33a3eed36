// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Get("/stats", middleware.WithLogging(statsHandler.Summary))

Logs request start (method, path, remote, request_id) and completion
(status, duration_ms). The request id comes from chi's RequestID middleware.

# Metrics

Record Prometheus request metrics labelled by chi route pattern:

	r.Use(middleware.Metrics)

# CORS Middleware

Browsers post submissions from any origin:

	r.Use(middleware.CORS)

Every response carries Access-Control-Allow-Origin: * and allows headers
authorization, x-client-info, apikey, content-type. OPTIONS requests are
answered with 200 "ok" before routing.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponse{Success: true})
	middleware.ErrorResponse(w, http.StatusBadRequest, "OM inválida")

Error bodies are {"error": message}.

Parse JSON request bodies:

	var req models.SubmissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "JSON inválido")
		return
	}

# Client IP Extraction

Get the client IP from RemoteAddr, as rewritten by chi's RealIP:

	ip := middleware.GetClientIP(r)

Forwarded to the captcha service as remoteip.
*/
package middleware
