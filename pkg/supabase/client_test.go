package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpsert_SendsConflictTarget(t *testing.T) {
	var gotPrefer, gotConflict, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/recommendation_feedback" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotPrefer = r.Header.Get("Prefer")
		gotConflict = r.URL.Query().Get("on_conflict")
		gotAuth = r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`[{"recommendation_id":"r1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "service-key")
	body, err := c.Upsert(context.Background(), "recommendation_feedback",
		map[string]any{"recommendation_id": "r1"}, "user_id,recommendation_id")
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if string(body) != `[{"recommendation_id":"r1"}]` {
		t.Errorf("body = %s", body)
	}
	if gotConflict != "user_id,recommendation_id" {
		t.Errorf("on_conflict = %q", gotConflict)
	}
	if gotPrefer != "return=representation,resolution=merge-duplicates" {
		t.Errorf("Prefer = %q", gotPrefer)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["recommendation_id"] != "r1" {
		t.Errorf("request body = %v", gotBody)
	}
}

func TestSelect_EncodesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "eq.u1" {
			t.Errorf("user_id = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q", got)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if _, err := c.Select(context.Background(), "events", Query{"user_id": "eq.u1", "limit": 10}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
}

func TestDo_ReturnsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Insert(context.Background(), "schedule_suggestions", map[string]any{"id": "x"})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Errorf("status = %d, want 409", apiErr.Status)
	}
}

func TestVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.c"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	user, err := c.VerifyToken(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("user id = %q", user.ID)
	}

	if _, err := c.VerifyToken(context.Background(), "bad"); err == nil {
		t.Error("expected error for rejected token")
	}
}
