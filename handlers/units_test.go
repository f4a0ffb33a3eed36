// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/radar-cac/radar/models"
	"github.com/radar-cac/radar/testutil"
)

func TestListUnits(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	h := NewUnitHandler(conn, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/oms", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var units []models.Unit
	testutil.AssertJSON(t, w, &units)

	if len(units) != 101 {
		t.Fatalf("Expected 101 units, got %d", len(units))
	}

	if !sort.SliceIsSorted(units, func(i, j int) bool { return units[i].Unit < units[j].Unit }) {
		t.Error("Expected units ordered by name")
	}

	found := false
	for _, u := range units {
		if u.ID == testutil.SRPFSP {
			found = u.Unit == "SR/PF/SP"
		}
		if u.Email != nil {
			t.Errorf("Expected no seeded email, got %q for %s", *u.Email, u.Code)
		}
	}
	if !found {
		t.Error("Expected SR/PF/SP with id 99")
	}
}

func TestListUnits_StoreError(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	h := NewUnitHandler(conn, testutil.GetTestConfig())
	conn.Close()

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest("GET", "/oms", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestVocabulary(t *testing.T) {
	h := NewUnitHandler(nil, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	h.Vocabulary(w, httptest.NewRequest("GET", "/vocabulary", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var vocab models.Vocabulary
	testutil.AssertJSON(t, w, &vocab)

	if len(vocab.ProcessTypes) != 19 {
		t.Errorf("Expected 19 process types, got %d", len(vocab.ProcessTypes))
	}
	if len(vocab.Results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(vocab.Results))
	}
	for _, o := range vocab.ProcessTypes {
		if o.Label == "" || o.Label == o.Code {
			t.Errorf("Expected a label for %s", o.Code)
		}
	}
	if vocab.ProcessTypes[0].Code != "CR_OBTER" {
		t.Errorf("Expected display order to start with CR_OBTER, got %s", vocab.ProcessTypes[0].Code)
	}
}
