// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"strings"
	"testing"

	"github.com/radar-cac/radar/models"
)

func TestParseDialect(t *testing.T) {
	testCases := []struct {
		input   string
		want    Dialect
		wantErr bool
	}{
		{"postgres", Postgres, false},
		{"sqlite", SQLite, false},
		{"mysql", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseDialect(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseDialect(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDialectFragments(t *testing.T) {
	if got := Postgres.DaysBetween("a", "b"); got != "(b - a)" {
		t.Errorf("postgres DaysBetween = %q", got)
	}
	if got := SQLite.DaysBetween("a", "b"); got != "CAST(julianday(b) - julianday(a) AS INTEGER)" {
		t.Errorf("sqlite DaysBetween = %q", got)
	}
	if got := Postgres.Month("c"); got != "to_char(c, 'YYYY-MM')" {
		t.Errorf("postgres Month = %q", got)
	}
	if got := SQLite.Month("c"); got != "strftime('%Y-%m', c)" {
		t.Errorf("sqlite Month = %q", got)
	}
	if Postgres.DriverName() != "postgres" || SQLite.DriverName() != "sqlite" {
		t.Error("unexpected driver names")
	}
}

func TestSchema_ContainsVocabularies(t *testing.T) {
	ddl := Schema()
	for _, p := range models.ProcessTypes {
		if !strings.Contains(ddl, "'"+string(p)+"'") {
			t.Errorf("schema missing process type %s", p)
		}
	}
	for _, r := range models.Results {
		if !strings.Contains(ddl, "'"+string(r)+"'") {
			t.Errorf("schema missing result %s", r)
		}
	}
}

func TestUnits(t *testing.T) {
	units, err := Units()
	if err != nil {
		t.Fatalf("Units() error = %v", err)
	}
	if len(units) != 101 {
		t.Errorf("Expected 101 units, got %d", len(units))
	}

	found := false
	for _, u := range units {
		if u.Unit == "SR/PF/SP" {
			found = true
			if u.ID != 99 {
				t.Errorf("Expected SR/PF/SP to have id 99, got %d", u.ID)
			}
		}
	}
	if !found {
		t.Error("Expected SR/PF/SP in unit list")
	}
}

func TestCreateSchemaAndSeed(t *testing.T) {
	conn, err := Open(SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	// Idempotent
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() pass %d error = %v", i+1, err)
		}
	}

	n, err := SeedUnits(conn)
	if err != nil {
		t.Fatalf("SeedUnits() error = %v", err)
	}
	if n != 101 {
		t.Errorf("Expected 101 inserted units, got %d", n)
	}

	// Second seed inserts nothing
	n, err = SeedUnits(conn)
	if err != nil {
		t.Fatalf("SeedUnits() second pass error = %v", err)
	}
	if n != 0 {
		t.Errorf("Expected re-seed to insert 0 rows, got %d", n)
	}

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM oms").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 101 {
		t.Errorf("Expected 101 rows in oms, got %d", count)
	}
}

func TestSchema_RejectsInvalidRows(t *testing.T) {
	conn, err := Open(SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}
	if _, err := SeedUnits(conn); err != nil {
		t.Fatal(err)
	}

	insert := `
		INSERT INTO submissions (id, type, om_id, result, date_protocol, date_decision)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	testCases := []struct {
		name     string
		typ      string
		result   string
		protocol string
		decision string
		wantErr  bool
	}{
		{"valid", "CR_OBTER", "DEFERIDO", "2024-01-10", "2024-01-20", false},
		{"same day", "CR_OBTER", "INDEFERIDO", "2024-01-10", "2024-01-10", false},
		{"unknown type", "UNKNOWN", "DEFERIDO", "2024-01-10", "2024-01-20", true},
		{"unknown result", "CR_OBTER", "APPROVED", "2024-01-10", "2024-01-20", true},
		{"decision before protocol", "CR_OBTER", "DEFERIDO", "2024-01-10", "2024-01-05", true},
	}

	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := "row-" + string(rune('a'+i))
			_, err := conn.Exec(insert, id, tc.typ, 99, tc.result, tc.protocol, tc.decision)
			if (err != nil) != tc.wantErr {
				t.Errorf("insert error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
