// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/db"
	"github.com/radar-cac/radar/middleware"
	"github.com/radar-cac/radar/models"
	"github.com/radar-cac/radar/submission"
)

const (
	defaultRecentLimit = 6
	maxRecentLimit     = 50
)

// StatsHandler serves the dashboard's read path
type StatsHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	dialect db.Dialect
	now     func() time.Time
}

func NewStatsHandler(conn *sql.DB, cfg cliparse.Config) *StatsHandler {
	return &StatsHandler{
		db:      conn,
		cfg:     cfg,
		dialect: db.Dialect(cfg.DatabaseType),
		now:     time.Now,
	}
}

// filter is the set of optional dashboard filters shared by all read endpoints
type filter struct {
	processType models.ProcessType
	omID        int64
	days        int
}

func parseFilter(q url.Values) (filter, error) {
	var f filter

	if v := q.Get("process_type"); v != "" {
		p := models.ProcessType(v)
		if !p.Valid() {
			return filter{}, errors.New("process_type inválido")
		}
		f.processType = p
	}

	if v := q.Get("om_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return filter{}, errors.New("om_id inválido")
		}
		f.omID = id
	}

	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return filter{}, errors.New("days inválido")
		}
		f.days = n
	}

	return f, nil
}

// where renders the filter as a WHERE clause over alias s, numbering
// placeholders from $1
func (f filter) where(today models.Date) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.processType != "" {
		args = append(args, f.processType)
		conds = append(conds, fmt.Sprintf("s.type = $%d", len(args)))
	}
	if f.omID != 0 {
		args = append(args, f.omID)
		conds = append(conds, fmt.Sprintf("s.om_id = $%d", len(args)))
	}
	if f.days != 0 {
		args = append(args, models.NewDate(today.AddDate(0, 0, -f.days)))
		conds = append(conds, fmt.Sprintf("s.date_decision >= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (h *StatsHandler) turnaround() string {
	return h.dialect.DaysBetween("s.date_protocol", "s.date_decision")
}

// Summary handles GET /stats
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	where, args := f.where(submission.Today(h.now()))
	query := fmt.Sprintf(`
		SELECT COUNT(*), AVG(t.days), MIN(t.days), MAX(t.days)
		FROM (
			SELECT %s AS days
			FROM submissions s
			%s
		) t
	`, h.turnaround(), where)

	var stats models.Stats
	var avgDays, minDays, maxDays sql.NullFloat64
	err = h.db.QueryRowContext(r.Context(), query, args...).Scan(&stats.Total, &avgDays, &minDays, &maxDays)
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
		return
	}

	stats.AvgDays = nullableFloat(avgDays)
	stats.MinDays = nullableFloat(minDays)
	stats.MaxDays = nullableFloat(maxDays)

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Monthly handles GET /stats/monthly
func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	where, args := f.where(submission.Today(h.now()))
	query := fmt.Sprintf(`
		SELECT t.month, AVG(t.days), COUNT(*)
		FROM (
			SELECT %s AS month, %s AS days
			FROM submissions s
			%s
		) t
		GROUP BY t.month
		ORDER BY t.month
	`, h.dialect.Month("s.date_decision"), h.turnaround(), where)

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		slog.Error("failed to query monthly stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
		return
	}
	defer rows.Close()

	months := []models.MonthlyStat{}
	for rows.Next() {
		var m models.MonthlyStat
		var avg sql.NullFloat64
		if err := rows.Scan(&m.Month, &avg, &m.Total); err != nil {
			slog.Error("failed to scan monthly stat", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
			return
		}
		m.AvgDays = nullableFloat(avg)
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate monthly stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar estatísticas")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, months)
}

// Recent handles GET /submissions/recent
func (h *StatsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f, err := parseFilter(q)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	limit := defaultRecentLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxRecentLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("limit deve estar entre 1 e %d", maxRecentLimit))
			return
		}
		limit = n
	}

	where, args := f.where(submission.Today(h.now()))
	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT s.id, s.created_at, o.unit, s.type, s.result, %s
		FROM submissions s
		JOIN oms o ON o.id = s.om_id
		%s
		ORDER BY s.created_at DESC, s.id
		LIMIT $%d
	`, h.turnaround(), where, len(args))

	rows, err := h.db.QueryContext(r.Context(), query, args...)
	if err != nil {
		slog.Error("failed to query recent submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar envios")
		return
	}
	defer rows.Close()

	recent := []models.RecentSubmission{}
	for rows.Next() {
		var s models.RecentSubmission
		var days sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.OM, &s.ProcessType, &s.Result, &days); err != nil {
			slog.Error("failed to scan recent submission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar envios")
			return
		}
		s.Days = nullableFloat(days)
		recent = append(recent, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate recent submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar envios")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, recent)
}

func nullableFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
