package usecase

import (
	"context"

	"github.com/riskibarqy/pickem-pool/internal/domain/pickem"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("github.com/riskibarqy/pickem-pool/internal/usecase")

// startUsecaseSpan opens a child of the caller's span. Without one, such as
// in the cache warmer, it returns the context's no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if parent := trace.SpanFromContext(ctx); !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindInternal))
}

// endSpan records a failed operation on span before ending it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scopeAttrs(scope PoolScope) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64("pickem.pool_id", scope.PoolID),
		attribute.Int("pickem.season", scope.Season),
	}
}

func weekAttrs(scope PoolScope, week pickem.Week) []attribute.KeyValue {
	return append(scopeAttrs(scope), attribute.Int("pickem.week", int(week)))
}
