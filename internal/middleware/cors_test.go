package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/config"
)

func corsRouter(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/api/v1/recommendations", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func corsRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/recommendations", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	r := corsRouter([]string{"https://app.example.com", " https://*.preview.example.com ", ""})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{name: "exact origin", method: http.MethodGet, origin: "https://app.example.com", wantStatus: http.StatusOK, wantAllow: "https://app.example.com"},
		{name: "wildcard origin", method: http.MethodGet, origin: "https://pr-12.preview.example.com", wantStatus: http.StatusOK, wantAllow: "https://pr-12.preview.example.com"},
		{name: "preflight allowed", method: http.MethodOptions, origin: "https://app.example.com", wantStatus: http.StatusNoContent, wantAllow: "https://app.example.com"},
		{name: "preflight denied", method: http.MethodOptions, origin: "https://evil.com", wantStatus: http.StatusForbidden},
		{name: "preflight without origin", method: http.MethodOptions, wantStatus: http.StatusForbidden},
		{name: "simple request from unknown origin", method: http.MethodGet, origin: "https://evil.com", wantStatus: http.StatusOK},
		{name: "wildcard does not span labels", method: http.MethodGet, origin: "https://a.b.preview.example.com", wantStatus: http.StatusOK},
		{name: "wildcard needs a label", method: http.MethodGet, origin: "https://preview.example.com", wantStatus: http.StatusOK},
		{name: "wildcard checks scheme", method: http.MethodGet, origin: "http://pr-12.preview.example.com", wantStatus: http.StatusOK},
		{name: "wildcard rejects suffix injection", method: http.MethodGet, origin: "https://pr-12.preview.example.com.evil.com", wantStatus: http.StatusOK},
		{name: "wildcard rejects uppercase label", method: http.MethodGet, origin: "https://PR.preview.example.com", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRequest(r, tt.method, tt.origin)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			wantCreds := ""
			if tt.wantAllow != "" {
				wantCreds = "true"
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != wantCreds {
				t.Errorf("Allow-Credentials = %q, want %q", got, wantCreds)
			}
		})
	}
}

func TestCORS_AllowAll(t *testing.T) {
	for _, origins := range [][]string{nil, {}, {" ", ""}} {
		w := corsRequest(corsRouter(origins), http.MethodGet, "https://anything.test")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("origins %q: Allow-Origin = %q, want *", origins, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("origins %q: credentials must not be allowed with *", origins)
		}
	}
}

func TestCORS_BareWildcardPatternIsExact(t *testing.T) {
	// "https://*.com" would admit every .com site, so it is only matched literally
	r := corsRouter([]string{"https://*.com"})

	if got := corsRequest(r, http.MethodGet, "https://evil.com").Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want none", got)
	}
}

func TestCORS_OriginsFromConfig(t *testing.T) {
	t.Setenv("TEMPO_STORAGE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tempo.example.com,https://*.tempo-app.pages.dev")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %q, want 2 entries", cfg.Server.CORSOrigins)
	}

	r := corsRouter(cfg.Server.CORSOrigins)

	for origin, want := range map[string]string{
		"https://tempo.example.com":          "https://tempo.example.com",
		"https://a1b2c3.tempo-app.pages.dev": "https://a1b2c3.tempo-app.pages.dev",
		"https://tempo-app.pages.dev":        "",
		"https://other.example.com":          "",
	} {
		w := corsRequest(r, http.MethodGet, origin)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != want {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", origin, got, want)
		}
	}

	if w := corsRequest(r, http.MethodOptions, "https://other.example.com"); w.Code != http.StatusForbidden {
		t.Errorf("preflight from unlisted origin = %d, want 403", w.Code)
	}
}
