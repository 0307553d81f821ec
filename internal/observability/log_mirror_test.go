package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
)

func TestIsQuietRequestLog(t *testing.T) {
	cases := []struct {
		msg  string
		args []any
		want bool
	}{
		{msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{msg: "http request", args: []any{"path", "/robots.txt"}, want: true},
		{msg: "http request", args: []any{"path", "/api/fixtures"}, want: false},
		{msg: "sofascore request failed", args: []any{"path", "/healthz"}, want: false},
		{msg: "http request", args: []any{"path"}, want: false},
	}

	for _, tc := range cases {
		if got := isQuietRequestLog(tc.msg, tc.args); got != tc.want {
			t.Fatalf("isQuietRequestLog(%q, %v) = %v, want %v", tc.msg, tc.args, got, tc.want)
		}
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"event_id", "12436870", "attempt", 2, 42, "x", "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "event_id" || attrs[0].Value.AsString() != "12436870" {
		t.Fatalf("unexpected event_id attribute: %v", attrs[0])
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute: %v", attrs[1])
	}
	if attrs[2].Key != "arg_2" {
		t.Fatalf("expected positional key, got %q", attrs[2].Key)
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute: %v", attrs[3])
	}
}

func TestLogValue(t *testing.T) {
	if v := logValue(map[string]int{"away": 1, "home": 2}); v.AsString() != `{"away":1,"home":2}` {
		t.Fatalf("expected json map, got %v", v)
	}
	if v := logValue(errors.New("boom")); v.AsString() != "boom" {
		t.Fatalf("expected error text, got %v", v)
	}
	if v := logValue(1500 * time.Millisecond); v.AsString() != "1.5s" {
		t.Fatalf("expected duration string, got %v", v)
	}
	if v := logValue(uint8(7)); v.AsInt64() != 7 {
		t.Fatalf("expected int value, got %v", v)
	}
	if v := logValue(nil); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil, got %v", v)
	}
	var nilPtr *int
	if v := logValue(nilPtr); v.AsString() != "<nil>" {
		t.Fatalf("expected nil pointer text, got %v", v)
	}
}
