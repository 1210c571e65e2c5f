package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillset/internal/directory"
	"skillset/internal/directory/handler"
	jwttoken "skillset/internal/jwt_token"
	"skillset/internal/platform/config"
	"skillset/internal/platform/metrics"
	platformmw "skillset/internal/platform/middleware"
	audit "skillset/pkg/platform/audit"
	"skillset/pkg/platform/middleware/auth"
	"skillset/pkg/platform/middleware/request"
	"skillset/pkg/testutil"
)

func newTestRouter(t *testing.T, checks map[string]readyCheck) (http.Handler, *jwttoken.JWTService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	stores, err := directory.NewStores(config.StorageMemory, directory.Backends{})
	require.NoError(t, err)
	dir, err := directory.New(stores)
	require.NoError(t, err)

	jwt := jwttoken.NewJWTService("router-test-key", "skillset")
	return newRouter(routerDeps{
		logger:    logger,
		directory: handler.New(dir.People, dir.Skills, logger),
		guard:     auth.RequireAuth(jwt, logger),
		limiter:   platformmw.NewIPRateLimiter(1000, 1000),
		metrics:   metrics.New(prometheus.NewRegistry()),
		checks:    checks,
	}), jwt
}

func TestRouter(t *testing.T) {
	router, jwt := newTestRouter(t, nil)
	token, err := jwt.GenerateToken("ops@example.com", "", time.Hour)
	require.NoError(t, err)

	testutil.Given(t, "a running directory API", func(t *testing.T) {
		testutil.When(t, "creating a person without a token", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/people", map[string]string{"name": "Joe"}))

			testutil.Then(t, "the write is refused", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			})
		})

		testutil.When(t, "creating a person with a token", func(t *testing.T) {
			req := testutil.WithBearer(testutil.NewJSONRequest(t, http.MethodPost, "/people", map[string]string{"name": "Joe"}), token)
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the person is created and the request is traced", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusCreated)
				assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
			})
		})

		testutil.When(t, "posting a non-JSON body", func(t *testing.T) {
			req := testutil.WithBearer(testutil.NewRequestWithBody(t, http.MethodPost, "/skills", "id=go"), token)
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the media type is rejected", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusUnsupportedMediaType)
			})
		})

		testutil.When(t, "reading without a token", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/people/Joe"))

			testutil.Then(t, "reads are public", func(t *testing.T) {
				testutil.AssertStatusOK(t, rr)
				testutil.AssertJSONContains(t, rr, "name", "Joe")
			})
		})
	})
}

func TestHealthAndReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("dial tcp: refused") }

	router, _ := newTestRouter(t, map[string]readyCheck{"postgres": healthy})
	testutil.AssertStatusOK(t, testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz")))

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/readyz"))
	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "postgres", "ok")

	router, _ = newTestRouter(t, map[string]readyCheck{"postgres": healthy, "kafka": broken})
	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/readyz"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONContains(t, rr, "kafka", "unavailable")
}

type recordingPublisher struct {
	events []audit.Event
	err    error
}

func (p *recordingPublisher) Emit(_ context.Context, e audit.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func TestFanout(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("broker down")}

	err := fanout{failing, ok}.Emit(context.Background(), audit.Event{Action: "person_created"})

	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.events, 1, "a failing publisher does not block the rest")
	assert.Len(t, failing.events, 1)
}
