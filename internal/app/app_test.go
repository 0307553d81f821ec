package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/ratelimit"
	"github.com/riskibarqy/matchday/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestFixturesLimiter_FallsBackToMemory(t *testing.T) {
	c := &Container{
		Config: config.Config{RateLimitPerMinute: 2},
		Clock:  clockwork.NewFakeClockAt(time.Date(2025, 8, 16, 12, 0, 0, 0, time.UTC)),
	}

	limiter := c.FixturesLimiter()
	_, ok := limiter.(*ratelimit.MemoryLimiter)
	require.True(t, ok, "expected memory limiter, got %T", limiter)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}
	decision, err := limiter.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	require.False(t, decision.Allowed)
}

func TestNewHTTPServer(t *testing.T) {
	logger := logging.NewNop()
	c := &Container{
		Config: config.Config{
			HTTPAddr:           ":0",
			CORSAllowedOrigins: []string{"*"},
			RateLimitPerMinute: 60,
			IndexNowKey:        "abc123key",
			ReadTimeout:        time.Second,
			WriteTimeout:       2 * time.Second,
		},
		Clock:    clockwork.NewRealClock(),
		Logger:   logger,
		IndexNow: usecase.NewIndexNowService(nil, false, logger),
	}

	srv, err := NewHTTPServer(c)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, srv.WriteTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/abc123key.txt", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc123key", rec.Body.String())

	c.Config.HTTPAddr = ""
	_, err = NewHTTPServer(c)
	require.Error(t, err)
}

func TestNewSofascoreClients_LegacyImagesIgnoreAPIType(t *testing.T) {
	requests := make(chan *url.URL, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r.URL
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png"))
	}))
	defer srv.Close()

	clients, err := newSofascoreClients(config.Config{
		SofascoreAPIType:      config.SofascoreStandard,
		SofascoreBaseURL:      srv.URL,
		SofascoreImageBaseURL: srv.URL,
		SofascoreTimeout:      time.Second,
	}, logging.NewNop())
	require.NoError(t, err)
	require.Equal(t, sofascore.VariantStandard, clients.primary.Variant())
	require.Equal(t, sofascore.VariantLegacy, clients.legacyImages.Variant())

	img, err := usecase.NewImageService(clients.legacyImages, clients.images).LegacyTeamImage(context.Background(), "42")
	require.NoError(t, err)
	got := <-requests
	require.Equal(t, "/images/team/download/full", got.Path)
	require.Equal(t, "42", got.Query().Get("team_id"))
	require.Equal(t, "image/png", img.ContentType)
}

func TestNewSofascoreClients_LegacyPrimaryIsShared(t *testing.T) {
	clients, err := newSofascoreClients(config.Config{
		SofascoreAPIType: config.SofascoreLegacy,
		SofascoreBaseURL: "http://legacy.test:8004",
		SofascoreTimeout: time.Second,
	}, logging.NewNop())
	require.NoError(t, err)
	require.Same(t, clients.primary, clients.legacyImages)
	require.Equal(t, sofascore.VariantStandard, clients.images.Variant())
}
