// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/radar-cac/radar/models"
)

//go:embed units.yaml
var unitsYAML []byte

type unitFile struct {
	Units []struct {
		ID    int64  `yaml:"id"`
		Code  string `yaml:"code"`
		Unit  string `yaml:"unit"`
		Email string `yaml:"email,omitempty"`
	} `yaml:"units"`
}

// Units returns the embedded unit list
func Units() ([]models.Unit, error) {
	var f unitFile
	if err := yaml.Unmarshal(unitsYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse units.yaml: %w", err)
	}

	units := make([]models.Unit, 0, len(f.Units))
	seen := make(map[int64]bool, len(f.Units))
	for _, u := range f.Units {
		if u.ID <= 0 || u.Code == "" || u.Unit == "" {
			return nil, fmt.Errorf("units.yaml: incomplete entry %+v", u)
		}
		if seen[u.ID] {
			return nil, fmt.Errorf("units.yaml: duplicate id %d", u.ID)
		}
		seen[u.ID] = true

		unit := models.Unit{ID: u.ID, Code: u.Code, Unit: u.Unit}
		if u.Email != "" {
			email := u.Email
			unit.Email = &email
		}
		units = append(units, unit)
	}
	return units, nil
}

// SeedUnits inserts the embedded units, leaving existing rows untouched.
// Returns the number of rows inserted.
func SeedUnits(db *sql.DB) (int, error) {
	units, err := Units()
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, u := range units {
		res, err := tx.Exec(`
			INSERT INTO oms (id, code, unit, email)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, u.ID, u.Code, u.Unit, u.Email)
		if err != nil {
			return 0, fmt.Errorf("failed to seed unit %s: %w", u.Code, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return inserted, nil
}
