package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return supabase.NewClient(srv.URL, "service-key")
}

func TestEventRepository_GetByIDNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := NewEventRepository(client).GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestEventRepository_DateRangeFilter(t *testing.T) {
	var gotAnd, gotOrder string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAnd = r.URL.Query().Get("and")
		gotOrder = r.URL.Query().Get("order")
		_, _ = w.Write([]byte(`[{"id":"e1","user_id":"u1","title":"Run",
			"start_time":"2026-03-10T07:00:00Z","end_time":"2026-03-10T08:00:00Z",
			"category_id":"c1","mood_rating":5,"category":{"id":"c1","name":"Exercise","color":"#0f0"}}]`))
	})

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	events, err := NewEventRepository(client).GetByUserIDAndDateRange(context.Background(), "u1", from, to)
	if err != nil {
		t.Fatalf("GetByUserIDAndDateRange() error = %v", err)
	}

	if want := "(start_time.gte.2026-03-01T00:00:00Z,start_time.lt.2026-03-11T00:00:00Z)"; gotAnd != want {
		t.Errorf("and = %q, want %q", gotAnd, want)
	}
	if gotOrder != "start_time.asc" {
		t.Errorf("order = %q", gotOrder)
	}
	if len(events) != 1 || events[0].Category == nil || events[0].Category.Name != "Exercise" {
		t.Fatalf("events = %+v", events)
	}
	if events[0].MoodRating == nil || *events[0].MoodRating != 5 {
		t.Errorf("mood rating = %v", events[0].MoodRating)
	}
}

func TestMoodEntryRepository_ParsesDates(t *testing.T) {
	var gotAnd string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAnd = r.URL.Query().Get("and")
		_, _ = w.Write([]byte(`[{"id":"m1","user_id":"u1","date":"2026-12-31","rating":4}]`))
	})

	entries, err := NewMoodEntryRepository(client).GetByUserIDAndMonth(context.Background(), "u1", 2026, time.December)
	if err != nil {
		t.Fatalf("GetByUserIDAndMonth() error = %v", err)
	}
	if want := "(date.gte.2026-12-01,date.lt.2027-01-01)"; gotAnd != want {
		t.Errorf("and = %q, want %q", gotAnd, want)
	}
	if len(entries) != 1 || entries[0].Date.Day() != 31 || entries[0].Rating != 4 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestSuggestionRepository_ExpireCountsRows(t *testing.T) {
	var gotStatus, gotCreated, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotStatus = r.URL.Query().Get("status")
		gotCreated = r.URL.Query().Get("created_at")
		_, _ = w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	})

	cutoff := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	n, err := NewSuggestionRepository(client).ExpireOlderThan(context.Background(), "u1", cutoff)
	if err != nil {
		t.Fatalf("ExpireOlderThan() error = %v", err)
	}
	if n != 2 {
		t.Errorf("expired = %d, want 2", n)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotStatus != "eq.Pending" {
		t.Errorf("status filter = %q", gotStatus)
	}
	if gotCreated != "lt.2026-03-04T12:00:00Z" {
		t.Errorf("created_at filter = %q", gotCreated)
	}
}

func TestSuggestionRepository_ListUserIDsDeduplicates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"user_id":"u2"},{"user_id":"u1"},{"user_id":"u2"}]`))
	})

	ids, err := NewSuggestionRepository(client).ListUserIDsWithPending(context.Background())
	if err != nil {
		t.Fatalf("ListUserIDsWithPending() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "u1" || ids[1] != "u2" {
		t.Errorf("ids = %v, want [u1 u2]", ids)
	}
}

func TestFeedbackRepository_PropagatesStorageError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := NewFeedbackRepository(client).GetSince(context.Background(), "u1", time.Now())
	var apiErr *supabase.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want wrapped 503 supabase error", err)
	}
}

func TestEventRepository_CreateBatchUpsertsByID(t *testing.T) {
	var gotConflict string
	var rows []map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotConflict = r.URL.Query().Get("on_conflict")
		if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
			t.Errorf("invalid body: %v", err)
		}
		_, _ = w.Write([]byte(`[]`))
	})

	start := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	_, err := NewEventRepository(client).CreateBatch(context.Background(), []models.Event{
		{ID: "e1", UserID: "u1", Title: "Run", StartTime: start, EndTime: start.Add(time.Hour)},
		{UserID: "u1", Title: "Read", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}

	if gotConflict != "id" {
		t.Errorf("on_conflict = %q, want id", gotConflict)
	}
	if len(rows) != 2 {
		t.Fatalf("sent %d rows, want 2", len(rows))
	}
	if rows[0]["id"] != "e1" {
		t.Errorf("first id = %v, want e1", rows[0]["id"])
	}
	if id, _ := rows[1]["id"].(string); id == "" {
		t.Error("rows without an id must get one so every row has the same keys")
	}
	if len(rows[0]) != len(rows[1]) {
		t.Errorf("row keys differ: %v vs %v", rows[0], rows[1])
	}
}
