// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/radar-cac/radar/testutil"
)

// TestConcurrentSubmissions verifies that simultaneous submissions are
// independent: each one is verified once and stored as its own row
func TestConcurrentSubmissions(t *testing.T) {
	verifier := &testutil.StubVerifier{}
	h, conn := newSubmitHandler(t, verifier)

	numSubmitters := 20

	// Track results
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numSubmitters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := validBody()
			body["om_id"] = idx%5 + 1
			body["captchaToken"] = fmt.Sprintf("token-%d", idx)

			req := testutil.MakeRequest("POST", "/submissions", body, nil)
			w := httptest.NewRecorder()

			h.Submit(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	// All submissions should succeed
	if int(successCount.Load()) != numSubmitters {
		t.Errorf("Expected %d successful submissions, got %d", numSubmitters, successCount.Load())
	}

	if verifier.Calls() != numSubmitters {
		t.Errorf("Expected %d verifications, got %d", numSubmitters, verifier.Calls())
	}

	// Verify every submission got its own row and ID
	var rows, distinct int
	err := conn.QueryRow("SELECT COUNT(*), COUNT(DISTINCT id) FROM submissions").Scan(&rows, &distinct)
	if err != nil {
		t.Fatalf("Failed to count submissions: %v", err)
	}
	if rows != numSubmitters || distinct != numSubmitters {
		t.Errorf("Expected %d distinct rows, got %d rows / %d ids", numSubmitters, rows, distinct)
	}
}

// TestConcurrentMixedOutcomes interleaves valid and invalid submissions;
// rejections must not affect the accepted ones
func TestConcurrentMixedOutcomes(t *testing.T) {
	h, conn := newSubmitHandler(t, &testutil.StubVerifier{})

	numRequests := 30
	var accepted, rejected atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body := validBody()
			if idx%3 == 0 {
				body["date_decision"] = "2024-01-01" // before protocol
			}

			w := httptest.NewRecorder()
			h.Submit(w, testutil.MakeRequest("POST", "/submissions", body, nil))

			switch w.Code {
			case http.StatusCreated:
				accepted.Add(1)
			case http.StatusBadRequest:
				rejected.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if accepted.Load() != 20 || rejected.Load() != 10 {
		t.Errorf("Expected 20 accepted / 10 rejected, got %d / %d", accepted.Load(), rejected.Load())
	}
	if n := testutil.CountSubmissions(t, conn); n != 20 {
		t.Errorf("Expected 20 rows, got %d", n)
	}
}
