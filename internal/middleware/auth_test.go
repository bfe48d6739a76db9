package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-secret-at-least-32-bytes-long!!")

func signToken(t *testing.T, method jwt.SigningMethod, key any, subject string, expires time.Time) string {
	t.Helper()
	claims := tokenClaims{
		Email: "someone@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

type stubVerifier struct {
	user  *supabase.User
	err   error
	calls int
}

func (s *stubVerifier) VerifyToken(_ context.Context, _ string) (*supabase.User, error) {
	s.calls++
	return s.user, s.err
}

func authRouter(secret []byte, verifier TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", Auth(secret, verifier), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	return r
}

func TestAuth_LocalJWT(t *testing.T) {
	valid := signToken(t, jwt.SigningMethodHS256, testSecret, "user-1", time.Now().Add(time.Hour))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK, wantBody: "user-1"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, "user-1", time.Now().Add(-time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("another-secret-of-decent-length!!"), "user-1", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "other algorithm",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS512, testSecret, "user-1", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no subject",
			header:     "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, "", time.Now().Add(time.Hour)),
			wantStatus: http.StatusUnauthorized,
		},
	}

	router := authRouter(testSecret, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if w.Body.String() != tt.wantBody {
					t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
				}
				return
			}

			var problem apierror.ProblemDetails
			if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
				t.Fatalf("invalid problem body: %v", err)
			}
			if problem.Type != apierror.TypeUnauthorized {
				t.Errorf("problem type = %q", problem.Type)
			}
			if problem.RequestID == "" || problem.RequestID != w.Header().Get(RequestIDHeader) {
				t.Errorf("problem request id = %q, header = %q", problem.RequestID, w.Header().Get(RequestIDHeader))
			}
		})
	}
}

func TestAuth_SupabaseFallback(t *testing.T) {
	verifier := &stubVerifier{user: &supabase.User{ID: "user-9"}}
	router := authRouter(nil, verifier)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer opaque")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "user-9" {
		t.Fatalf("got %d %q, want 200 user-9", w.Code, w.Body.String())
	}
	if verifier.calls != 1 {
		t.Errorf("verifier calls = %d, want 1", verifier.calls)
	}

	verifier.err = errors.New("invalid JWT")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_SecretTakesPrecedence(t *testing.T) {
	verifier := &stubVerifier{user: &supabase.User{ID: "remote"}}
	router := authRouter(testSecret, verifier)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, "local", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != "local" {
		t.Errorf("body = %q, want local", w.Body.String())
	}
	if verifier.calls != 0 {
		t.Errorf("verifier called %d times, want 0", verifier.calls)
	}
}

func TestAuth_NoVerifier(t *testing.T) {
	router := authRouter(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
