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

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}
}

func TestRedisCache_HitServesStoredResponse(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheConfig(), rdb)

	calls := 0
	handler := mw(func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"n": calls})
	})

	run := func() *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/resources?status=verified", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/resources")
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	first := run()
	if first.Header().Get("X-Cache") != "MISS" {
		t.Fatalf("first request X-Cache = %q, want MISS", first.Header().Get("X-Cache"))
	}
	second := run()
	if second.Header().Get("X-Cache") != "HIT" {
		t.Fatalf("second request X-Cache = %q, want HIT", second.Header().Get("X-Cache"))
	}
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
}

func TestRedisCache_SkipsNonConfiguredMethods(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mw := NewRedisCache(cacheConfig(), rdb)

	calls := 0
	handler := mw(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusCreated)
	})
	for i := 0; i < 2; i++ {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/resources", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/resources")
		if err := handler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("POST must bypass the cache; handler ran %d times", calls)
	}
}

func TestRedisCache_NilClientDisables(t *testing.T) {
	mw := NewRedisCache(cacheConfig(), nil)
	calls := 0
	handler := mw(func(c echo.Context) error {
		calls++
		return c.NoContent(http.StatusOK)
	})
	for i := 0; i < 2; i++ {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/resources", nil)
		rec := httptest.NewRecorder()
		if err := handler(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("nil client must disable caching; handler ran %d times", calls)
	}
}
