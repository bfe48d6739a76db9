package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/apierror"
)

func TestRateLimiter_FixedWindow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, "test-window")
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i, want := range []bool{true, true, false, false} {
		allowed, count := limiter.isAllowed("k")
		if allowed != want || count != i+1 {
			t.Fatalf("request %d: allowed=%v count=%d, want %v %d", i+1, allowed, count, want, i+1)
		}
	}

	// Steady traffic does not extend the window
	now = now.Add(40 * time.Second)
	if got := limiter.retryAfter("k"); got != 20 {
		t.Errorf("retryAfter = %d, want 20", got)
	}

	now = now.Add(20 * time.Second)
	if allowed, count := limiter.isAllowed("k"); !allowed || count != 1 {
		t.Errorf("after window: allowed=%v count=%d, want true 1", allowed, count)
	}

	if allowed, _ := limiter.isAllowed("other"); !allowed {
		t.Error("keys must be counted independently")
	}
}

func TestRateLimitPerUser_Middleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, c.GetHeader("X-Test-User"))
		c.Next()
	})
	r.POST("/generate", RateLimitPerUser(1, time.Minute, "test-generate"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(user string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate", nil)
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send("alice")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}
	if first.Header().Get("X-RateLimit-Limit") != "1" || first.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("limit headers = %q/%q, want 1/0",
			first.Header().Get("X-RateLimit-Limit"), first.Header().Get("X-RateLimit-Remaining"))
	}

	second := send("alice")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}
	if ct := second.Header().Get("Content-Type"); ct != apierror.ContentTypeProblemJSON {
		t.Errorf("Content-Type = %q", ct)
	}
	var problem apierror.ProblemDetails
	if err := json.Unmarshal(second.Body.Bytes(), &problem); err != nil {
		t.Fatalf("invalid problem body: %v", err)
	}
	if problem.Type != apierror.TypeRateLimit || problem.RetryAfter == nil {
		t.Errorf("problem = %+v", problem)
	}

	if w := send("bob"); w.Code != http.StatusOK {
		t.Errorf("other user status = %d, want 200", w.Code)
	}
}

func TestRateLimitMiddleware_FallsBackToClientIP(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, "test-fallback")
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	var keys []string
	r := gin.New()
	r.Use(rateLimitMiddleware(limiter, func(c *gin.Context) string {
		key := "ip:" + c.ClientIP()
		if id := c.GetHeader("X-Test-User"); id != "" {
			key = "user:" + id
		}
		keys = append(keys, key)
		return key
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(user, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		if user != "" {
			req.Header.Set("X-Test-User", user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send("", "203.0.113.7:5000"); w.Code != http.StatusOK {
		t.Fatalf("first anonymous status = %d", w.Code)
	}
	now = now.Add(15 * time.Second)
	w := send("", "203.0.113.7:6000")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second anonymous status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "45" {
		t.Errorf("Retry-After = %q, want 45", got)
	}

	// A signed-in user on the same address has a budget of their own
	if w := send("carol", "203.0.113.7:7000"); w.Code != http.StatusOK {
		t.Errorf("user status = %d, want 200", w.Code)
	}

	want := []string{"ip:203.0.113.7", "ip:203.0.113.7", "user:carol"}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestRateLimitPerUser_ConcurrentRequests(t *testing.T) {
	const rate = 25
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, c.GetHeader("X-Test-User"))
		c.Next()
	})
	r.POST("/generate", RateLimitPerUser(rate, time.Minute, "test-concurrent"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var ok, limited atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 4*rate; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/generate", nil)
			req.Header.Set("X-Test-User", "user-"+strconv.Itoa(i%2))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			switch w.Code {
			case http.StatusOK:
				ok.Add(1)
			case http.StatusTooManyRequests:
				limited.Add(1)
			}
		}(i)
	}
	wg.Wait()

	// two users, each admitted exactly rate times
	if got := ok.Load(); got != 2*rate {
		t.Errorf("admitted %d requests, want %d", got, 2*rate)
	}
	if got := limited.Load(); got != 2*rate {
		t.Errorf("limited %d requests, want %d", got, 2*rate)
	}
}
