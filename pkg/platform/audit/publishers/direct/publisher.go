// Package direct provides a synchronous audit publisher that writes straight to an
// audit.Store. It backs the in-memory ring and the Postgres audit table.
package direct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	audit "skillset/pkg/platform/audit"
)

var (
	errMissingAction = errors.New("audit event requires Action")
	errMissingEntity = errors.New("audit event requires Entity")
)

// Publisher emits events synchronously; the caller blocks until the store write returns.
type Publisher struct {
	store  audit.Store
	logger *slog.Logger
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit validates, stamps and appends the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return errMissingAction
	}
	if event.Entity == "" {
		return errMissingEntity
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	if err := p.store.Append(ctx, event); err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit append failed",
				"action", event.Action,
				"key", event.Key,
				"error", err,
			)
		}
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// Close is a no-op for the synchronous publisher.
func (p *Publisher) Close() error {
	return nil
}
