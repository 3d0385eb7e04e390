package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	middleware := Middleware(Options{
		Interval:  time.Hour,
		MaxBurst:  2,
		CacheSize: 10,
		CacheTTL:  time.Minute,
	})

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
		req.RemoteAddr = remoteAddr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res
	}

	for i := 0; i < 2; i++ {
		if e, g := http.StatusNoContent, do("10.0.0.1:1234").Code; e != g {
			t.Errorf("request #%d: expected status %d, got %d", i, e, g)
		}
	}

	res := do("10.0.0.1:4321")
	if e, g := http.StatusTooManyRequests, res.Code; e != g {
		t.Errorf("limited request: expected status %d, got %d", e, g)
	}

	if res.Header().Get("Retry-After") == "" {
		t.Errorf("limited request: expected a Retry-After header")
	}

	if e, g := "application/json", res.Header().Get("Content-Type"); e != g {
		t.Errorf("limited request content type: expected %s, got %s", e, g)
	}

	if e, g := http.StatusNoContent, do("10.0.0.2:1234").Code; e != g {
		t.Errorf("other client: expected status %d, got %d", e, g)
	}
}

func TestMiddlewareTrustHeaders(t *testing.T) {
	middleware := Middleware(Options{
		TrustHeaders: true,
		Interval:     time.Hour,
		MaxBurst:     1,
		CacheSize:    10,
		CacheTTL:     time.Minute,
	})

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/feedback", nil)
		req.Header.Set("X-Forwarded-For", forwardedFor)
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)
		return res.Code
	}

	if e, g := http.StatusNoContent, do("192.168.1.1, 10.0.0.1"); e != g {
		t.Errorf("first request: expected status %d, got %d", e, g)
	}

	if e, g := http.StatusNoContent, do("192.168.1.2"); e != g {
		t.Errorf("second client: expected status %d, got %d", e, g)
	}

	if e, g := http.StatusTooManyRequests, do("192.168.1.1"); e != g {
		t.Errorf("repeated client: expected status %d, got %d", e, g)
	}
}
