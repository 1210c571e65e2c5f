package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"skillset/internal/directory/handler"
	platformmw "skillset/internal/platform/middleware"
	"skillset/internal/platform/metrics"
	"skillset/pkg/platform/httputil"
	"skillset/pkg/platform/middleware/metadata"
	"skillset/pkg/platform/middleware/request"
	"skillset/pkg/platform/middleware/requesttime"
)

// readyCheck reports whether one dependency can serve traffic.
type readyCheck func(ctx context.Context) error

type routerDeps struct {
	logger    *slog.Logger
	directory *handler.Handler
	guard     func(http.Handler) http.Handler
	limiter   *platformmw.IPRateLimiter
	metrics   *metrics.Metrics
	checks    map[string]readyCheck
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(request.Recovery(d.logger))
	r.Use(request.AccessLog(d.logger))
	if d.metrics != nil {
		r.Use(d.metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyHandler(d.checks, d.logger))

	r.Group(func(r chi.Router) {
		r.Use(platformmw.RateLimit(d.limiter, d.logger))
		r.Use(request.ContentTypeJSON)
		d.directory.Register(r, d.guard)
	})
	return r
}

func readyHandler(checks map[string]readyCheck, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{}
		var errs []error
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				status[name] = "unavailable"
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				continue
			}
			status[name] = "ok"
		}
		if err := errors.Join(errs...); err != nil {
			logger.WarnContext(ctx, "readiness check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
