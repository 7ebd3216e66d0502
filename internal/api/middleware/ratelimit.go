package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/joaaoazul/siganext/internal/api/metrics"
)

// Limiter is a fixed-window counter keyed by client address. It is a
// deliberate single-instance approximation: counts live in process memory and
// are not shared across horizontally scaled replicas.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*windowEntry
}

type windowEntry struct {
	count   int
	started time.Time
}

func NewLimiter(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		entries: make(map[string]*windowEntry),
	}
}

// Allow consumes one attempt for key. When the window is exhausted it returns
// false and the time until the window resets.
func (l *Limiter) Allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	if e == nil || now.Sub(e.started) >= l.window {
		l.entries[key] = &windowEntry{count: 1, started: now}
		return true, 0
	}

	if e.count >= l.max {
		return false, e.started.Add(l.window).Sub(now)
	}
	e.count++
	return true, 0
}

// StartSweep periodically drops windows that have lapsed. Stops when ctx is done.
func (l *Limiter) StartSweep(ctx context.Context, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				l.sweep(now)
			}
		}
	}()
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.entries {
		if now.Sub(e.started) >= l.window {
			delete(l.entries, k)
		}
	}
}

// RateLimit throttles a route group per client IP. A breach yields 429 with a
// Retry-After header in whole seconds.
func RateLimit(l *Limiter, route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retryAfter := l.Allow(c.RealIP(), time.Now())
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				seconds := int(retryAfter.Seconds())
				if seconds < 1 {
					seconds = 1
				}
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts")
			}
			return next(c)
		}
	}
}
