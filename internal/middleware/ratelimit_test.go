package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBurstThenReject(t *testing.T) {
	l := NewRateLimiter(1, 2)
	now := time.Date(2026, 9, 5, 19, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("expected third request to be rejected")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("expected other client to have its own bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("10.0.0.1") {
		t.Fatal("expected a token to refill after one second")
	}
}

func TestRateLimiterSweep(t *testing.T) {
	l := NewRateLimiter(5, 10)
	now := time.Date(2026, 9, 5, 19, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	now = now.Add(4 * time.Minute)
	l.Allow("10.0.0.2")
	l.Sweep()

	if _, ok := l.clients["10.0.0.1"]; ok {
		t.Error("expected idle client to be swept")
	}
	if _, ok := l.clients["10.0.0.2"]; !ok {
		t.Error("expected recent client to remain")
	}
}

func TestRateLimiterHandler(t *testing.T) {
	l := NewRateLimiter(1, 1)
	calls := 0
	h := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
	req.RemoteAddr = "192.0.2.7:51234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Error("expected Retry-After header")
	}
	if calls != 1 {
		t.Errorf("expected inner handler called once, got %d", calls)
	}
}
