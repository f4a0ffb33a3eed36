// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/db"
	"github.com/radar-cac/radar/models"
)

// TestDBURL is an in-memory SQLite database; each connection gets its own
const TestDBURL = ":memory:"

// SRPFSP is the seeded id of unit SR/PF/SP
const SRPFSP int64 = 99

// SetupTestDB creates a fresh in-memory database with the full schema and
// the unit seed
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}
	if _, err := db.SeedUnits(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to seed units: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            8080,
		DatabaseURL:     TestDBURL,
		DatabaseType:    string(db.SQLite),
		RecaptchaSecret: "test-secret",
		VerifyTimeout:   time.Second,
		MaxBodyBytes:    64 << 10,
	}
}

// CreateTestSubmission inserts a submission directly, bypassing the
// pipeline, and returns its ID
func CreateTestSubmission(t *testing.T, conn *sql.DB, typ models.ProcessType, omID int64, result models.Result, protocol, decision string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO submissions (id, type, om_id, result, date_protocol, date_decision, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, typ, omID, result, protocol, decision, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test submission: %v", err)
	}

	return id
}

// CountSubmissions returns the number of stored submissions
func CountSubmissions(t *testing.T, conn *sql.DB) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM submissions").Scan(&n); err != nil {
		t.Fatalf("Failed to count submissions: %v", err)
	}
	return n
}

// StubVerifier is a captcha verifier returning a fixed answer
type StubVerifier struct {
	Err error

	mu        sync.Mutex
	calls     int
	tokens    []string
	remoteIPs []string
}

func (s *StubVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.tokens = append(s.tokens, token)
	s.remoteIPs = append(s.remoteIPs, remoteIP)
	return s.Err
}

// Calls reports how many verifications were attempted
func (s *StubVerifier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Tokens returns the tokens passed to Verify, in call order
func (s *StubVerifier) Tokens() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tokens...)
}

// RemoteIPs returns the client addresses passed to Verify, in call order
func (s *StubVerifier) RemoteIPs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.remoteIPs...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		case []byte:
			raw = b
		default:
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
