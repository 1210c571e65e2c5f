// Package handler exposes the directory managers over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"skillset/internal/directory/models"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/result"
)

type PersonManager interface {
	Create(ctx context.Context, person *models.Person) (result.CreateResult, error)
	Update(ctx context.Context, name string, person *models.Person) (result.UpdateResult, error)
	Delete(ctx context.Context, name string) (result.DeleteResult, error)
	Exists(ctx context.Context, name string) (result.ExistsResult, error)
	GetAll(ctx context.Context) result.GetAllResult
	GetOne(ctx context.Context, name string) (result.GetOneResult, error)
}

type SkillManager interface {
	Create(ctx context.Context, skill *models.Skill) (result.CreateResult, error)
	Update(ctx context.Context, id string, skill *models.Skill) (result.UpdateResult, error)
	Delete(ctx context.Context, id string) (result.DeleteResult, error)
	Exists(ctx context.Context, id string) (result.ExistsResult, error)
	GetAll(ctx context.Context) result.GetAllResult
	GetOne(ctx context.Context, id string) (result.GetOneResult, error)
}

// AuditReader lists recently recorded audit events.
type AuditReader interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Handler wires directory endpoints to the managers.
type Handler struct {
	people PersonManager
	skills SkillManager
	audit  AuditReader
	logger *slog.Logger
}

type Option func(*Handler)

// WithAuditReader enables GET /audit/recent.
func WithAuditReader(reader AuditReader) Option {
	return func(h *Handler) {
		h.audit = reader
	}
}

func New(people PersonManager, skills SkillManager, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		people: people,
		skills: skills,
		logger: logger,
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the directory routes. Writes, and the audit feed, go through
// guard; pass a pass-through middleware to leave them open.
func (h *Handler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/people", h.HandleListPeople)
	r.Get("/people/{name}", h.HandleGetPerson)
	r.Head("/people/{name}", h.HandlePersonExists)

	r.Get("/skills", h.HandleListSkills)
	r.Get("/skills/{id}", h.HandleGetSkill)
	r.Head("/skills/{id}", h.HandleSkillExists)

	r.Group(func(r chi.Router) {
		if guard != nil {
			r.Use(guard)
		}
		r.Post("/people", h.HandleCreatePerson)
		r.Put("/people/{name}", h.HandleUpdatePerson)
		r.Delete("/people/{name}", h.HandleDeletePerson)

		r.Post("/skills", h.HandleCreateSkill)
		r.Put("/skills/{id}", h.HandleUpdateSkill)
		r.Delete("/skills/{id}", h.HandleDeleteSkill)

		if h.audit != nil {
			r.Get("/audit/recent", h.HandleRecentAudit)
		}
	})
}

// pathParam returns the decoded route parameter. chi matches against RawPath only
// when the request has one; otherwise the value is already decoded and must not be
// unescaped again.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
