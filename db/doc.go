// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation and the unit seed.

# Dialects

Two drivers are supported, selected by DATABASE_TYPE:

	d, err := db.ParseDialect(cfg.DatabaseType) // "postgres" or "sqlite"
	conn, err := db.Open(d, cfg.DatabaseURL)

Queries use $N placeholders in both. The few expressions that differ
(day differences, month bucketing) come from Dialect.DaysBetween and
Dialect.Month.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - oms: Administrative units that decide processes
  - submissions: Append-only turnaround reports

The process type and result vocabularies, and decision >= protocol, are
enforced by CHECK constraints as well as by the submission package.

# Relationships

	oms 1──* submissions

# Seeding

The unit list is embedded from units.yaml. SeedUnits inserts missing rows
and never overwrites existing ones:

	n, err := db.SeedUnits(conn)
*/
package db
