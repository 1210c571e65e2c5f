package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformstrings "skillset/pkg/platform/strings"
)

// StorageBackend selects the repository implementation.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StoragePostgres StorageBackend = "postgres"
	StorageRedis    StorageBackend = "redis"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	MetricsAddr     string
	Storage         StorageBackend
	ShutdownTimeout time.Duration
	SeedFile        string

	Postgres  PostgresConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Audit     AuditConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds connection settings for the Redis store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// AuthConfig enables bearer authentication on mutating routes when JWTSigningKey is set.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
}

// Enabled reports whether writes require a token.
func (a AuthConfig) Enabled() bool {
	return a.JWTSigningKey != ""
}

// AuditConfig selects the audit sink. With no brokers events go to an in-memory ring.
type AuditConfig struct {
	KafkaBrokers []string
	Topic        string
	RingSize     int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type LogConfig struct {
	Level  slog.Level
	Format string
}

// Load reads optional .env files and then the environment. Missing files are ignored.
func Load(envFiles ...string) (Server, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Server config from SKILLSET_* environment variables so main stays lean.
func FromEnv() (Server, error) {
	p := parser{}

	cfg := Server{
		Addr:            p.str("SKILLSET_ADDR", ":8080"),
		MetricsAddr:     p.str("SKILLSET_METRICS_ADDR", ":9090"),
		Storage:         StorageBackend(strings.ToLower(p.str("SKILLSET_STORAGE", string(StorageMemory)))),
		ShutdownTimeout: p.duration("SKILLSET_SHUTDOWN_TIMEOUT", 15*time.Second),
		SeedFile:        p.str("SKILLSET_SEED_FILE", ""),
		Postgres: PostgresConfig{
			URL:             p.str("SKILLSET_DATABASE_URL", ""),
			MaxOpenConns:    p.integer("SKILLSET_DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    p.integer("SKILLSET_DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: p.duration("SKILLSET_DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			URL:          p.str("SKILLSET_REDIS_URL", ""),
			PoolSize:     p.integer("SKILLSET_REDIS_POOL_SIZE", 10),
			MinIdleConns: p.integer("SKILLSET_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("SKILLSET_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("SKILLSET_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("SKILLSET_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: AuthConfig{
			JWTSigningKey: p.str("SKILLSET_JWT_SIGNING_KEY", ""),
			JWTIssuer:     p.str("SKILLSET_JWT_ISSUER", "skillset"),
			TokenTTL:      p.duration("SKILLSET_JWT_TTL", time.Hour),
		},
		Audit: AuditConfig{
			KafkaBrokers: p.list("SKILLSET_KAFKA_BROKERS"),
			Topic:        p.str("SKILLSET_AUDIT_TOPIC", "skillset.audit"),
			RingSize:     p.integer("SKILLSET_AUDIT_RING_SIZE", 1000),
		},
		RateLimit: RateLimitConfig{
			RPS:   p.float("SKILLSET_RATE_LIMIT_RPS", 20),
			Burst: p.integer("SKILLSET_RATE_LIMIT_BURST", 40),
		},
		Log: LogConfig{
			Level:  p.level("SKILLSET_LOG_LEVEL", slog.LevelInfo),
			Format: strings.ToLower(p.str("SKILLSET_LOG_FORMAT", "json")),
		},
	}

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.Postgres.URL == "" {
			p.fail("SKILLSET_DATABASE_URL is required when SKILLSET_STORAGE=postgres")
		}
	case StorageRedis:
		if cfg.Redis.URL == "" {
			p.fail("SKILLSET_REDIS_URL is required when SKILLSET_STORAGE=redis")
		}
	default:
		p.fail(fmt.Sprintf("SKILLSET_STORAGE must be memory, postgres or redis, got %q", cfg.Storage))
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		p.fail(fmt.Sprintf("SKILLSET_LOG_FORMAT must be json or text, got %q", cfg.Log.Format))
	}
	if cfg.RateLimit.RPS < 0 || cfg.RateLimit.Burst < 0 {
		p.fail("rate limit settings must not be negative")
	}

	if err := errors.Join(p.errs...); err != nil {
		return Server{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parser collects every bad value so startup reports them together.
type parser struct {
	errs []error
}

func (p *parser) fail(msg string) {
	p.errs = append(p.errs, errors.New(msg))
}

func (p *parser) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func (p *parser) integer(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64) float64 {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (p *parser) level(key string, def slog.Level) slog.Level {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return l
}

func (p *parser) list(key string) []string {
	return platformstrings.SplitList(p.str(key, ""))
}
