// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/middleware"
	"github.com/radar-cac/radar/models"
)

type UnitHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUnitHandler(db *sql.DB, cfg cliparse.Config) *UnitHandler {
	return &UnitHandler{db: db, cfg: cfg}
}

// List handles GET /oms
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, code, unit, email
		FROM oms
		ORDER BY unit, id
	`)
	if err != nil {
		slog.Error("failed to query units", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar OMs")
		return
	}
	defer rows.Close()

	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Code, &u.Unit, &email); err != nil {
			slog.Error("failed to scan unit", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar OMs")
			return
		}
		if email.Valid {
			u.Email = &email.String
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate units", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Erro ao carregar OMs")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, units)
}

// Vocabulary handles GET /vocabulary
func (h *UnitHandler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	vocab := models.Vocabulary{
		ProcessTypes: make([]models.Option, 0, len(models.ProcessTypes)),
		Results:      make([]models.Option, 0, len(models.Results)),
	}
	for _, p := range models.ProcessTypes {
		vocab.ProcessTypes = append(vocab.ProcessTypes, models.Option{Code: string(p), Label: p.Label()})
	}
	for _, res := range models.Results {
		vocab.Results = append(vocab.Results, models.Option{Code: string(res), Label: res.Label()})
	}

	middleware.JSONResponse(w, http.StatusOK, vocab)
}
