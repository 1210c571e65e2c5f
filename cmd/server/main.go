package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"skillset/internal/directory"
	"skillset/internal/directory/handler"
	"skillset/internal/directory/manager"
	dirmetrics "skillset/internal/directory/metrics"
	"skillset/internal/directory/store"
	jwttoken "skillset/internal/jwt_token"
	"skillset/internal/platform/config"
	"skillset/internal/platform/httpserver"
	"skillset/internal/platform/logger"
	"skillset/internal/platform/metrics"
	platformmw "skillset/internal/platform/middleware"
	"skillset/internal/platform/postgres"
	platformredis "skillset/internal/platform/redis"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/platform/audit/publishers/direct"
	"skillset/pkg/platform/audit/publishers/kafka"
	auditmemory "skillset/pkg/platform/audit/store/memory"
	auditpostgres "skillset/pkg/platform/audit/store/postgres"
	"skillset/pkg/platform/middleware/auth"
)

// main wires configuration, storage and both HTTP listeners. Directory logic
// lives in internal/directory.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	checks := map[string]readyCheck{}
	var backends directory.Backends

	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		backends.DB = db
		checks["postgres"] = db.PingContext
	case config.StorageRedis:
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		backends.Redis = client.Client
		checks["redis"] = client.Health
	}

	auditStore := newAuditStore(cfg, backends.DB)
	publishers := fanout{direct.New(auditStore, direct.WithLogger(log))}
	if len(cfg.Audit.KafkaBrokers) > 0 {
		kp, err := kafka.New(cfg.Audit.KafkaBrokers, kafka.WithTopic(cfg.Audit.Topic), kafka.WithLogger(log))
		if err != nil {
			return err
		}
		defer kp.Close()
		if err := kp.EnsureTopic(ctx, 3, 1); err != nil {
			return err
		}
		publishers = append(publishers, kp)
		checks["kafka"] = kp.Ping
	}

	stores, err := directory.NewStores(cfg.Storage, backends)
	if err != nil {
		return err
	}
	dir, err := directory.New(stores,
		manager.WithLogger(log),
		manager.WithMetrics(dirmetrics.New(reg)),
		manager.WithAuditPublisher(publishers),
	)
	if err != nil {
		return err
	}

	if cfg.SeedFile != "" {
		sf, err := store.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		if _, err := sf.Apply(ctx, dir.People, dir.Skills, log); err != nil {
			return err
		}
	}

	var validator auth.SubjectValidator
	if cfg.Auth.Enabled() {
		validator = jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer)
	} else {
		log.Warn("SKILLSET_JWT_SIGNING_KEY not set; directory writes are unauthenticated")
	}
	var limiter *platformmw.IPRateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = platformmw.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	api := httpserver.New(cfg.Addr, newRouter(routerDeps{
		logger:    log,
		directory: handler.New(dir.People, dir.Skills, log, handler.WithAuditReader(auditStore)),
		guard:     auth.RequireAuth(validator, log),
		limiter:   limiter,
		metrics:   metrics.New(reg),
		checks:    checks,
	}))
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler(reg))
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{api, metricsSrv} {
		g.Go(func() error {
			log.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return errors.Join(api.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})
	return g.Wait()
}

// newAuditStore keeps audit events next to the directory data when it lives in
// Postgres, and in a bounded ring otherwise.
func newAuditStore(cfg config.Server, db *sql.DB) audit.Store {
	if db != nil {
		return auditpostgres.New(db)
	}
	return auditmemory.NewInMemoryStore(cfg.Audit.RingSize)
}

// fanout emits every event to each publisher and reports all failures.
type fanout []manager.AuditPublisher

func (f fanout) Emit(ctx context.Context, event audit.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
