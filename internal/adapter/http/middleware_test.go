package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := &Server{logger: zap.New(core)}

	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/some/path", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["method"] != http.MethodGet {
		t.Errorf("expected method GET, got %v", fields["method"])
	}
	if fields["path"] != "/some/path" {
		t.Errorf("expected path /some/path, got %v", fields["path"])
	}
	if fields["status"] != int64(http.StatusTeapot) {
		t.Errorf("expected status 418, got %v", fields["status"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	newLimited := func() http.Handler {
		s := &Server{logger: zap.NewNop(), ratePerMin: 2, limiters: map[string]*ipLimiter{}}
		return s.rateLimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}
	post := func(handler http.Handler, addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	handler := newLimited()
	addr := "203.0.113.7:4567"
	codes := []int{post(handler, addr), post(handler, addr), post(handler, addr)}

	if codes[0] != http.StatusOK {
		t.Fatalf("first request should pass, got %d", codes[0])
	}
	if codes[len(codes)-1] != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst exhausted, got %v", codes)
	}

	// Another client is unaffected.
	if code := post(handler, "203.0.113.8:4567"); code != http.StatusOK {
		t.Fatalf("different ip should not be limited, got %d", code)
	}

	// The limiter table belongs to the server, not the package.
	if code := post(newLimited(), addr); code != http.StatusOK {
		t.Fatalf("fresh server should not inherit limiter state, got %d", code)
	}
}
