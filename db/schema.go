// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/radar-cac/radar/models"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(Schema())
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema returns the DDL shared by both dialects. The vocabularies are
// rendered into CHECK constraints so the store rejects what the API rejects.
func Schema() string {
	types := make([]string, len(models.ProcessTypes))
	for i, p := range models.ProcessTypes {
		types[i] = "'" + string(p) + "'"
	}
	results := make([]string, len(models.Results))
	for i, r := range models.Results {
		results[i] = "'" + string(r) + "'"
	}

	return fmt.Sprintf(schema, strings.Join(types, ", "), strings.Join(results, ", "))
}

const schema = `
-- Administrative units
CREATE TABLE IF NOT EXISTS oms (
    id INTEGER PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    unit TEXT NOT NULL,
    email TEXT
);

CREATE INDEX IF NOT EXISTS idx_oms_unit ON oms(unit);

-- Submissions (append-only)
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN (%s)),
    om_id INTEGER NOT NULL REFERENCES oms(id),
    result TEXT NOT NULL CHECK (result IN (%s)),
    date_protocol DATE NOT NULL,
    date_decision DATE NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CHECK (date_decision >= date_protocol)
);

CREATE INDEX IF NOT EXISTS idx_submissions_om_id ON submissions(om_id);
CREATE INDEX IF NOT EXISTS idx_submissions_type ON submissions(type);
CREATE INDEX IF NOT EXISTS idx_submissions_date_decision ON submissions(date_decision);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at);
`
