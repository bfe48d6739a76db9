// Package supabase is a minimal PostgREST and GoTrue client for the
// Supabase tables tempo reads and writes.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to one Supabase project with the service key
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a client with a 15s HTTP timeout
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        strings.TrimRight(url, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Error is returned for any response with status >= 400
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase error (status %d): %s", e.Status, e.Body)
}

// Query is a set of PostgREST query parameters, e.g.
// {"user_id": "eq.123", "order": "start_time.asc"}
type Query map[string]any

type request struct {
	method string
	path   string
	query  Query
	body   any
	prefer string
	token  string
}

func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var payload io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.URL+r.path, payload)
	if err != nil {
		return nil, err
	}

	if len(r.query) > 0 {
		q := req.URL.Query()
		for key, value := range r.query {
			q.Add(key, fmt.Sprintf("%v", value))
		}
		req.URL.RawQuery = q.Encode()
	}

	token := r.token
	if token == "" {
		token = c.ServiceKey
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{Status: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

func tablePath(table string) string {
	return "/rest/v1/" + table
}

// Select reads rows from table matching query
func (c *Client) Select(ctx context.Context, table string, query Query) ([]byte, error) {
	return c.do(ctx, request{method: http.MethodGet, path: tablePath(table), query: query})
}

// Insert inserts one row or a slice of rows and returns the representation
func (c *Client) Insert(ctx context.Context, table string, data any) ([]byte, error) {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		body:   data,
		prefer: "return=representation",
	})
}

// Upsert inserts or merges rows, detecting conflicts on the given columns
// (e.g. "user_id,recommendation_id")
func (c *Client) Upsert(ctx context.Context, table string, data any, onConflict string) ([]byte, error) {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   tablePath(table),
		query:  Query{"on_conflict": onConflict},
		body:   data,
		prefer: "return=representation,resolution=merge-duplicates",
	})
}

// UpdateWhere patches every row matching query
func (c *Client) UpdateWhere(ctx context.Context, table string, query Query, data any) ([]byte, error) {
	return c.do(ctx, request{
		method: http.MethodPatch,
		path:   tablePath(table),
		query:  query,
		body:   data,
		prefer: "return=representation",
	})
}

// User is the subset of a GoTrue user tempo needs
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken asks Supabase auth who owns the access token
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	body, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/v1/user", token: token})
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
