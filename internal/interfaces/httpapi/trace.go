package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/riskibarqy/pickem-pool/internal/interfaces/httpapi")

// Probes hit these every few seconds and would drown real traffic.
var untracedPaths = map[string]bool{
	"/healthz": true,
	"/health":  true,
	"/livez":   true,
	"/readyz":  true,
}

var spanPathValues = []struct{ wildcard, attr string }{
	{"week", "pickem.week"},
	{"poolerID", "pickem.pooler_id"},
	{"team", "pickem.team"},
}

// RequestTracing opens the server span. It is named after the method and
// path until the handler renames it to the matched route pattern.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "pickem-pool-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return traced(r.URL.Path)
		}),
	)
}

func traced(path string) bool {
	return !untracedPaths[strings.ToLower(strings.TrimSpace(path))]
}

// handlerSpan starts the child span for one handler. Requests without a
// server span, such as filtered probes, are left untraced.
func handlerSpan(r *http.Request, op string) (context.Context, trace.Span) {
	ctx := r.Context()
	server := trace.SpanFromContext(ctx)
	if !server.SpanContext().IsValid() {
		return ctx, server
	}
	if r.Pattern != "" {
		server.SetName(r.Pattern)
	}

	attrs := make([]attribute.KeyValue, 0, 4)
	if id := requestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	for _, p := range spanPathValues {
		if v := r.PathValue(p.wildcard); v != "" {
			attrs = append(attrs, attribute.String(p.attr, v))
		}
	}
	return tracer.Start(ctx, "httpapi.Handler."+op, trace.WithAttributes(attrs...))
}

// markSpanFailed flags the active span when a request ends in a server error.
func markSpanFailed(ctx context.Context, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, http.StatusText(status))
}
