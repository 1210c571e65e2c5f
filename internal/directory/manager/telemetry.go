package manager

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"skillset/pkg/requestcontext"
	"skillset/pkg/result"
)

// call is the per-operation state threaded through an observed operation.
type call struct {
	op         string
	key        string
	reconciled bool
}

// observe wraps fn with a span, operation metrics and the outcome log line.
// fn must return a non-nil outcome.
func observe[R result.Outcome](ctx context.Context, b *base, op, key string, fn func(ctx context.Context, c *call) R) R {
	start := time.Now()
	ctx, span := b.tracer.Start(ctx, "directory."+b.entity+"."+op,
		trace.WithAttributes(
			attribute.String("directory.entity", b.entity),
			attribute.String("directory.key", key),
		),
	)
	defer span.End()

	c := &call{op: op, key: key}
	r := fn(ctx, c)
	outcome := r.Kind()

	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("reconciled", c.reconciled),
	)
	if rf, ok := any(r).(result.RepositoryFailure); ok {
		span.RecordError(rf.Cause)
		span.SetStatus(codes.Error, "repository failure")
	}

	b.metrics.ObserveOperation(b.entity, op, outcome, start)
	if c.reconciled {
		b.metrics.IncReconciliation(b.entity, op, outcome)
	}
	b.logOutcome(ctx, c, r, time.Since(start))
	return r
}

func (b *base) logOutcome(ctx context.Context, c *call, r result.Outcome, took time.Duration) {
	attrs := []any{
		"entity", b.entity,
		"operation", c.op,
		"key", c.key,
		"outcome", r.Kind(),
		"duration_ms", took.Milliseconds(),
		"request_id", requestcontext.RequestID(ctx),
	}
	if rf, ok := r.(result.RepositoryFailure); ok {
		b.logger.ErrorContext(ctx, "directory repository failure",
			append(attrs, "reconciled", c.reconciled, "error", rf.Cause)...)
		return
	}
	if c.reconciled {
		b.logger.WarnContext(ctx, "directory write failure reconciled", attrs...)
		return
	}
	b.logger.DebugContext(ctx, "directory operation", attrs...)
}
