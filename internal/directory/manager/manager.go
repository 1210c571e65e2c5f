// Package manager implements the directory write protocol: validate, write, and on
// an opaque write failure probe the store to classify what actually happened.
package manager

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"skillset/internal/directory/metrics"
	"skillset/internal/directory/models"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/requestcontext"
	"skillset/pkg/result"
)

const tracerName = "skillset/internal/directory/manager"

const (
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
	opExists = "exists"
	opGetAll = "get_all"
	opGetOne = "get_one"
)

// PersonRepository stores people keyed by name. Writes either return a structured
// result or an opaque error; the manager never inspects the error.
type PersonRepository interface {
	Create(ctx context.Context, person models.Person) (result.CreateResult, error)
	Update(ctx context.Context, oldName string, person models.Person) (result.UpdateResult, error)
	Delete(ctx context.Context, name string) (result.DeleteResult, error)
	Exists(ctx context.Context, name string) (bool, error)
	GetAll(ctx context.Context) ([]models.Person, error)
	GetOne(ctx context.Context, name string) (result.GetOneResult, error)
}

// SkillRepository stores skills keyed by id. ExistsByName lets reconciliation
// detect a name collision on update.
type SkillRepository interface {
	Create(ctx context.Context, skill models.Skill) (result.CreateResult, error)
	Update(ctx context.Context, id string, skill models.Skill) (result.UpdateResult, error)
	Delete(ctx context.Context, id string) (result.DeleteResult, error)
	Exists(ctx context.Context, id string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetAll(ctx context.Context) ([]models.Skill, error)
	GetOne(ctx context.Context, id string) (result.GetOneResult, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// base carries what both managers share: identity for telemetry plus the optional
// collaborators configured through Option.
type base struct {
	entity  string
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	audit   AuditPublisher
}

type Option func(b *base)

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) {
		b.metrics = m
	}
}

// WithTracer overrides the global OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(b *base) {
		b.tracer = t
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(b *base) {
		b.audit = publisher
	}
}

func newBase(entity string, opts []Option) base {
	b := base{
		entity: entity,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// emit publishes an audit event for a successful write. Publisher failures never
// change the operation's outcome.
func (b *base) emit(ctx context.Context, action audit.AuditEvent, key, previousKey string) {
	if b.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    string(action),
		Entity:    b.entity,
		Key:       key,
		ActorID:   requestcontext.Actor(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		Device:    requestcontext.Device(ctx),
	}
	if previousKey != key {
		event.PreviousKey = previousKey
	}
	if err := b.audit.Emit(ctx, event); err != nil {
		b.logger.WarnContext(ctx, "audit emit failed",
			"action", action,
			"key", key,
			"error", err,
			"request_id", event.RequestID,
		)
	}
}
