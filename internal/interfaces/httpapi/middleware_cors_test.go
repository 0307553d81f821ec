package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantNext   bool
	}{
		{name: "configured origin", allowed: []string{" https://matchday.example.com "}, method: http.MethodGet, origin: "https://matchday.example.com", wantOrigin: "https://matchday.example.com", wantNext: true},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodGet, origin: "https://elsewhere.example.com", wantOrigin: "", wantNext: true},
		{name: "wildcard preflight", method: http.MethodOptions, origin: "https://anywhere.example.com", wantOrigin: "*", wantNext: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(tt.method, "/api/fixtures", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			if called != tt.wantNext {
				t.Fatalf("next called=%v want=%v", called, tt.wantNext)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{name: "matching token", configured: "secret", provided: "secret", want: http.StatusAccepted},
		{name: "wrong token", configured: "secret", provided: "guess", want: http.StatusUnauthorized},
		{name: "missing header", configured: "secret", want: http.StatusUnauthorized},
		{name: "not configured", configured: " ", provided: "secret", want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal/indexnow", nil)
			if tt.provided != "" {
				req.Header.Set(internalTokenHeader, tt.provided)
			}
			rec := httptest.NewRecorder()
			RequireInternalJobToken(tt.configured)(next).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status=%d want=%d", rec.Code, tt.want)
			}
		})
	}
}
