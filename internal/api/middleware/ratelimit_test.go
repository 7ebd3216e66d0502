package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestLimiterWindow(t *testing.T) {
	l := NewLimiter(3, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow("1.2.3.4", now); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, retryAfter := l.Allow("1.2.3.4", now)
	if ok {
		t.Fatal("fourth attempt should be rejected")
	}
	if retryAfter <= 0 || retryAfter > 15*time.Minute {
		t.Fatalf("retry after out of range: %v", retryAfter)
	}

	// Other keys count independently.
	if ok, _ := l.Allow("5.6.7.8", now); !ok {
		t.Fatal("distinct key should have its own window")
	}

	// A lapsed window resets the counter.
	later := now.Add(15*time.Minute + time.Second)
	if ok, _ := l.Allow("1.2.3.4", later); !ok {
		t.Fatal("window should reset after it lapses")
	}
}

func TestLimiterSweep(t *testing.T) {
	l := NewLimiter(1, time.Minute)
	now := time.Now()
	l.Allow("a", now)
	l.Allow("b", now)

	l.sweep(now.Add(2 * time.Minute))
	if len(l.entries) != 0 {
		t.Fatalf("expected swept map, have %d entries", len(l.entries))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(NewLimiter(2, time.Minute), "login"))

	hit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := hit(); rec.Code != http.StatusOK {
			t.Fatalf("attempt %d: got %d, want 200", i+1, rec.Code)
		}
	}

	rec := hit()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("breach: got %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("breach response must carry Retry-After")
	}
}
