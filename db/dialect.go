// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects driver and the few SQL fragments that differ between
// PostgreSQL and SQLite. Placeholders are $N in both.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case Postgres, SQLite:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unsupported database type %q (want postgres or sqlite)", s)
}

// DriverName is the database/sql driver registered for the dialect
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// DaysBetween returns an integer expression for to - from in calendar days
func (d Dialect) DaysBetween(from, to string) string {
	if d == SQLite {
		return fmt.Sprintf("CAST(julianday(%s) - julianday(%s) AS INTEGER)", to, from)
	}
	return fmt.Sprintf("(%s - %s)", to, from)
}

// Month returns a YYYY-MM text expression for a DATE column
func (d Dialect) Month(col string) string {
	if d == SQLite {
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", col)
	}
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", col)
}

// Open connects and pings the database
func Open(d Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(d.DriverName(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d, err)
	}

	if d == SQLite {
		// A single writer avoids SQLITE_BUSY under concurrent inserts
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d, err)
	}

	return conn, nil
}
