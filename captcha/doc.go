// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package captcha verifies reCAPTCHA tokens against the siteverify API.
//
//	client := captcha.New(secret, captcha.WithTimeout(5*time.Second))
//	err := client.Verify(ctx, token, remoteIP)
//
// Verify returns ErrUnconfigured, ErrUnavailable or ErrRejected (possibly
// wrapped). Tokens are single-use, so results are never cached and calls are
// never retried.
package captcha
