// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/radar-cac/radar/models"
	"github.com/radar-cac/radar/testutil"
)

func newStatsHandler(t *testing.T) (*StatsHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	h := NewStatsHandler(conn, testutil.GetTestConfig())
	h.now = func() time.Time { return fixedNow }
	return h, conn
}

// seedStats stores four submissions:
//
//	CR_OBTER      @99  2025-01-01 → 2025-01-11  10 days
//	CR_OBTER      @99  2025-01-05 → 2025-01-25  20 days
//	CR_REVALIDAR  @1   2025-02-01 → 2025-02-01   0 days
//	CR_OBTER      @1   2025-05-01 → 2025-05-31  30 days
func seedStats(t *testing.T, conn *sql.DB) []string {
	t.Helper()
	return []string{
		testutil.CreateTestSubmission(t, conn, models.ProcessCRObter, 99, models.ResultDeferido, "2025-01-01", "2025-01-11"),
		testutil.CreateTestSubmission(t, conn, models.ProcessCRObter, 99, models.ResultIndeferido, "2025-01-05", "2025-01-25"),
		testutil.CreateTestSubmission(t, conn, models.ProcessCRRevalidar, 1, models.ResultDeferido, "2025-02-01", "2025-02-01"),
		testutil.CreateTestSubmission(t, conn, models.ProcessCRObter, 1, models.ResultDeferido, "2025-05-01", "2025-05-31"),
	}
}

func floatValue(p *float64) float64 {
	if p == nil {
		return -1
	}
	return *p
}

func TestStatsSummary(t *testing.T) {
	h, conn := newStatsHandler(t)
	seedStats(t, conn)

	testCases := []struct {
		name                      string
		query                     string
		total                     int
		avgDays, minDays, maxDays float64
	}{
		{"all", "", 4, 15, 0, 30},
		{"by type", "?process_type=CR_OBTER", 3, 20, 10, 30},
		{"by unit", "?om_id=99", 2, 15, 10, 20},
		{"by type and unit", "?process_type=CR_OBTER&om_id=1", 1, 30, 30, 30},
		{"last 30 days", "?days=30", 1, 30, 30, 30},
		{"last 365 days", "?days=365", 4, 15, 0, 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/stats"+tc.query, nil)
			w := httptest.NewRecorder()

			h.Summary(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var stats models.Stats
			testutil.AssertJSON(t, w, &stats)

			if stats.Total != tc.total {
				t.Errorf("Expected total %d, got %d", tc.total, stats.Total)
			}
			if got := floatValue(stats.AvgDays); got != tc.avgDays {
				t.Errorf("Expected avg %v, got %v", tc.avgDays, got)
			}
			if got := floatValue(stats.MinDays); got != tc.minDays {
				t.Errorf("Expected min %v, got %v", tc.minDays, got)
			}
			if got := floatValue(stats.MaxDays); got != tc.maxDays {
				t.Errorf("Expected max %v, got %v", tc.maxDays, got)
			}
		})
	}
}

func TestStatsSummary_Empty(t *testing.T) {
	h, _ := newStatsHandler(t)

	w := httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/stats", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.Stats
	testutil.AssertJSON(t, w, &stats)
	if stats.Total != 0 {
		t.Errorf("Expected total 0, got %d", stats.Total)
	}
	if stats.AvgDays != nil || stats.MinDays != nil || stats.MaxDays != nil {
		t.Error("Expected null aggregates for an empty set")
	}
}

func TestStats_InvalidFilters(t *testing.T) {
	h, _ := newStatsHandler(t)

	queries := []string{
		"?process_type=UNKNOWN",
		"?om_id=abc",
		"?om_id=0",
		"?days=-1",
		"?days=soon",
	}

	endpoints := map[string]http.HandlerFunc{
		"/stats":              h.Summary,
		"/stats/monthly":      h.Monthly,
		"/submissions/recent": h.Recent,
	}

	for path, handler := range endpoints {
		for _, q := range queries {
			t.Run(path+q, func(t *testing.T) {
				w := httptest.NewRecorder()
				handler(w, httptest.NewRequest("GET", path+q, nil))
				testutil.AssertStatus(t, w, http.StatusBadRequest)
			})
		}
	}
}

func TestStatsMonthly(t *testing.T) {
	h, conn := newStatsHandler(t)
	seedStats(t, conn)

	w := httptest.NewRecorder()
	h.Monthly(w, httptest.NewRequest("GET", "/stats/monthly", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var months []models.MonthlyStat
	testutil.AssertJSON(t, w, &months)

	expected := []struct {
		month string
		avg   float64
		total int
	}{
		{"2025-01", 15, 2},
		{"2025-02", 0, 1},
		{"2025-05", 30, 1},
	}

	if len(months) != len(expected) {
		t.Fatalf("Expected %d months, got %d: %+v", len(expected), len(months), months)
	}
	for i, exp := range expected {
		if months[i].Month != exp.month {
			t.Errorf("Month %d: expected %s, got %s", i, exp.month, months[i].Month)
		}
		if got := floatValue(months[i].AvgDays); got != exp.avg {
			t.Errorf("Month %s: expected avg %v, got %v", exp.month, exp.avg, got)
		}
		if months[i].Total != exp.total {
			t.Errorf("Month %s: expected total %d, got %d", exp.month, exp.total, months[i].Total)
		}
	}
}

func TestStatsMonthly_Filtered(t *testing.T) {
	h, conn := newStatsHandler(t)
	seedStats(t, conn)

	w := httptest.NewRecorder()
	h.Monthly(w, httptest.NewRequest("GET", "/stats/monthly?process_type=CR_REVALIDAR", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var months []models.MonthlyStat
	testutil.AssertJSON(t, w, &months)
	if len(months) != 1 || months[0].Month != "2025-02" {
		t.Errorf("Expected only 2025-02, got %+v", months)
	}
}

func TestRecentSubmissions(t *testing.T) {
	h, conn := newStatsHandler(t)
	ids := seedStats(t, conn)

	// Spread creation times so ordering is deterministic
	base := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)
	for i, id := range ids {
		if _, err := conn.Exec("UPDATE submissions SET created_at = $1 WHERE id = $2", base.Add(time.Duration(i)*time.Hour), id); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("default limit, newest first", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Recent(w, httptest.NewRequest("GET", "/submissions/recent", nil))

		testutil.AssertStatus(t, w, http.StatusOK)

		var recent []models.RecentSubmission
		testutil.AssertJSON(t, w, &recent)

		if len(recent) != 4 {
			t.Fatalf("Expected 4 submissions, got %d", len(recent))
		}
		if recent[0].ID != ids[3] || recent[3].ID != ids[0] {
			t.Errorf("Expected newest first, got %s ... %s", recent[0].ID, recent[3].ID)
		}
		if recent[0].OM == "" {
			t.Error("Expected unit name to be joined in")
		}
		if got := floatValue(recent[0].Days); got != 30 {
			t.Errorf("Expected 30 days for newest, got %v", got)
		}
		if recent[1].ProcessType != models.ProcessCRRevalidar {
			t.Errorf("Expected CR_REVALIDAR second, got %s", recent[1].ProcessType)
		}
	})

	t.Run("explicit limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Recent(w, httptest.NewRequest("GET", "/submissions/recent?limit=2", nil))

		var recent []models.RecentSubmission
		testutil.AssertJSON(t, w, &recent)
		if len(recent) != 2 {
			t.Errorf("Expected 2 submissions, got %d", len(recent))
		}
	})

	t.Run("filtered by unit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Recent(w, httptest.NewRequest("GET", "/submissions/recent?om_id=99", nil))

		var recent []models.RecentSubmission
		testutil.AssertJSON(t, w, &recent)
		if len(recent) != 2 {
			t.Fatalf("Expected 2 submissions, got %d", len(recent))
		}
		for _, s := range recent {
			if s.OM != "SR/PF/SP" {
				t.Errorf("Expected SR/PF/SP, got %s", s.OM)
			}
		}
	})

	for _, limit := range []string{"0", "51", "-1", "many"} {
		t.Run("invalid limit "+limit, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Recent(w, httptest.NewRequest("GET", "/submissions/recent?limit="+limit, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
