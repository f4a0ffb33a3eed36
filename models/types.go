package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the only accepted wire format for calendar dates
const DateLayout = "2006-01-02"

// Request types

// SubmissionRequest is the untrusted body of POST /submissions.
// OMID keeps the raw JSON token so that strings, fractions and other
// non-integers are reported as an invalid unit rather than as malformed JSON.
type SubmissionRequest struct {
	Type         ProcessType     `json:"type"`
	OMID         json.RawMessage `json:"om_id"`
	Result       Result          `json:"result"`
	DateProtocol string          `json:"date_protocol"`
	DateDecision string          `json:"date_decision"`
	CaptchaToken string          `json:"captchaToken"`
}

// Response types

type SubmitResponse struct {
	Success bool `json:"success"`
}

// Domain types

// Submission is a validated, persisted report. Rows are append-only.
type Submission struct {
	ID           string      `json:"id"`
	Type         ProcessType `json:"type"`
	OMID         int64       `json:"om_id"`
	Result       Result      `json:"result"`
	DateProtocol Date        `json:"date_protocol"`
	DateDecision Date        `json:"date_decision"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TurnaroundDays is the number of calendar days between protocol and decision
func (s Submission) TurnaroundDays() int {
	return int(s.DateDecision.Sub(s.DateProtocol.Time).Hours() / 24)
}

// Unit is an administrative unit ("OM") that decides processes
type Unit struct {
	ID    int64   `json:"id"`
	Code  string  `json:"code"`
	Unit  string  `json:"unit"`
	Email *string `json:"email,omitempty"`
}

// Stats aggregates turnaround days over a filtered set of submissions.
// Averages are nil when the set is empty.
type Stats struct {
	Total   int      `json:"total"`
	AvgDays *float64 `json:"avg_days"`
	MinDays *float64 `json:"min_days"`
	MaxDays *float64 `json:"max_days"`
}

type MonthlyStat struct {
	Month   string   `json:"month"` // YYYY-MM of the decision date
	AvgDays *float64 `json:"avg_days"`
	Total   int      `json:"total"`
}

type RecentSubmission struct {
	ID          string      `json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	OM          string      `json:"om"`
	ProcessType ProcessType `json:"process_type"`
	Result      Result      `json:"result"`
	Days        *float64    `json:"days"`
}

// Date is a calendar day in UTC. It scans from both a DATE column returned
// as time.Time (lib/pq) and one returned as text (sqlite).
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as YYYY-MM-DD text, which both drivers accept
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanText(s string) error {
	if len(s) < len(DateLayout) {
		return fmt.Errorf("invalid date %q", s)
	}
	parsed, err := ParseDate(s[:len(DateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Option is a code with its display label
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Vocabulary lists the closed code sets accepted by POST /submissions
type Vocabulary struct {
	ProcessTypes []Option `json:"process_types"`
	Results      []Option `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
