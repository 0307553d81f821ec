// Package tracing opens child spans for in-process work. Spans are only
// started under a sampled request so health checks and background helpers
// do not produce orphan roots.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Tracer struct {
	tracer trace.Tracer
	prefix string
}

func New(scope string) Tracer {
	return Tracer{tracer: otel.Tracer(scope)}
}

// WithPrefix limits the tracer to span names starting with prefix.
func (t Tracer) WithPrefix(prefix string) Tracer {
	t.prefix = prefix
	return t
}

// noop is safe to End; the request span must never be ended by a helper.
var noop = trace.SpanFromContext(context.Background())

// Start returns ctx unchanged and a no-op span when there is no parent to
// attach to or the name is filtered out.
func (t Tracer) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	if !t.Enabled(ctx, name) {
		return ctx, noop
	}
	return t.tracer.Start(ctx, name)
}

func (t Tracer) Enabled(ctx context.Context, name string) bool {
	if strings.TrimSpace(name) == "" || !strings.HasPrefix(name, t.prefix) {
		return false
	}
	return trace.SpanFromContext(ctx).SpanContext().IsValid()
}

// TracedPath reports whether an inbound request path gets a server span.
func TracedPath(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz", "/favicon.ico":
		return false
	}
	return true
}
