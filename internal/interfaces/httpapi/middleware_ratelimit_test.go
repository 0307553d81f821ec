package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/ratelimit"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis unavailable")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RateLimit(failingLimiter{}, logging.NewNop())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fixtures", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected request to pass through, got %d", rec.Code)
	}
}

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.1"}, remote: "10.0.0.1:1234", want: "203.0.113.9"},
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "198.51.100.1"},
		{name: "cloudflare header", headers: map[string]string{"CF-Connecting-IP": "2001:db8::1"}, remote: "10.0.0.1:1234", want: "2001:db8::1"},
		{name: "remote addr", remote: "192.0.2.4:5555", want: "192.0.2.4"},
		{name: "remote addr without port", remote: "192.0.2.5", want: "192.0.2.5"},
		{name: "garbage", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "nope", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			if got := resolveClientIP(req); got != tt.want {
				t.Fatalf("resolveClientIP()=%q want=%q", got, tt.want)
			}
		})
	}
}
