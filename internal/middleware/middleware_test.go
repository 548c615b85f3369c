package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-admin/internal/config"
	"github.com/iliyamo/hotel-booking-admin/internal/utils"
)

const secret = "test-secret"

func protected(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := JWTAuth(secret)(RequireRole("ADMIN")(func(c echo.Context) error {
		return c.String(http.StatusOK, currentUserID(c))
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/hotel/gethotels", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestJWTAuthRejects(t *testing.T) {
	expired, _ := utils.NewAccessToken(secret, 1, "ADMIN", -5)
	foreign, _ := utils.NewAccessToken("other-secret", 1, "ADMIN", 5)
	cases := map[string]string{
		"missing":      "",
		"not bearer":   "Basic dXNlcjpwYXNz",
		"garbage":      "Bearer abc.def.ghi",
		"expired":      "Bearer " + expired.Token,
		"wrong secret": "Bearer " + foreign.Token,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := protected(t, header); rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestJWTAuthSetsAdminID(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 42, "ADMIN", 5)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	rec := protected(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK || rec.Body.String() != "42" {
		t.Fatalf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	tok, _ := utils.NewAccessToken(secret, 42, "CUSTOMER", 5)
	if rec := protected(t, "Bearer "+tok.Token); rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Request-Id": {"abc"}}
	body := []byte(`{"hotels":[]}`)
	bs, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || string(gotBody) != string(body) {
		t.Fatalf("decode = %d %q ok=%v", status, gotBody, ok)
	}
	if gotHdr.Get("X-Request-Id") != "abc" {
		t.Fatalf("headers = %v", gotHdr)
	}
	if _, _, _, ok := decodePayload(bs[:5]); ok {
		t.Fatalf("short payload decoded")
	}
}

func TestCacheKeyIsScopedPerAdmin(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "hotelcache", KeyStrategy: "user_route_query"}
	e := echo.New()
	key := func(uid uint64, target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.Set(CtxUserID, uid)
		return cacheKeyFrom(cfg, c)
	}
	a := key(1, "/api/hotel/gethotels")
	if !strings.HasPrefix(a, "hotelcache:u:1:") {
		t.Fatalf("key = %q", a)
	}
	if a == key(2, "/api/hotel/gethotels") {
		t.Fatalf("admins share a cache key")
	}
	if a == key(1, "/api/hotel/search?q=goa") {
		t.Fatalf("different paths share a cache key")
	}
	if a != key(1, "/api/hotel/gethotels") {
		t.Fatalf("key is not stable")
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/admin/login")

	got := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}, c)
	if got != "rl:ip:10.0.0.9:user:anon:route:POST /api/admin/login" {
		t.Fatalf("key = %q", got)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	if got := retryAfterSeconds(0); got != 1 {
		t.Fatalf("retry(0) = %d", got)
	}
	if got := retryAfterSeconds(1500 * time.Millisecond); got != 2 {
		t.Fatalf("retry(1.5s) = %d", got)
	}
}

func TestDisabledMiddlewarePassThrough(t *testing.T) {
	called := false
	next := func(echo.Context) error { called = true; return nil }
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if err := NewTokenBucket(config.RateLimitConfig{}, nil)(next)(c); err != nil || !called {
		t.Fatalf("rate limiter did not pass through")
	}
	called = false
	if err := NewRedisCache(config.CacheConfig{}, nil)(next)(c); err != nil || !called {
		t.Fatalf("cache did not pass through")
	}
}
