package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/agrigo/equipment-rental/internal/config"
)

func limiterConfig(capacity int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       capacity,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip",
		Prefix:         "rl",
	}
}

func runLimited(t *testing.T, mw echo.MiddlewareFunc) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/resources", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec.Code
}

func TestTokenBucket_RedisBlocksWhenDrained(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewTokenBucket(limiterConfig(2), rdb)

	for i := 0; i < 2; i++ {
		if code := runLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := runLimited(t, mw); code != http.StatusTooManyRequests {
		t.Fatalf("drained bucket: status = %d, want 429", code)
	}
}

func TestTokenBucket_RedisErrorFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	mw := NewTokenBucket(limiterConfig(1), rdb)
	for i := 0; i < 3; i++ {
		if code := runLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d with dead redis: status = %d, want 200 (fail open)", i+1, code)
		}
	}
}

func TestTokenBucket_LocalFallback(t *testing.T) {
	mw := NewTokenBucket(limiterConfig(2), nil)

	for i := 0; i < 2; i++ {
		if code := runLimited(t, mw); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := runLimited(t, mw); code != http.StatusTooManyRequests {
		t.Fatalf("drained local bucket: status = %d, want 429", code)
	}
}

func TestTokenBucket_DisabledPassesThrough(t *testing.T) {
	cfg := limiterConfig(0)
	cfg.Enabled = false
	mw := NewTokenBucket(cfg, nil)
	for i := 0; i < 5; i++ {
		if code := runLimited(t, mw); code != http.StatusOK {
			t.Fatalf("disabled limiter blocked request %d", i+1)
		}
	}
}
