package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/tournament"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday/internal/interfaces/web"
	basecache "github.com/riskibarqy/matchday/internal/platform/cache"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/ratelimit"
	"github.com/riskibarqy/matchday/internal/platform/resilience"
	"github.com/riskibarqy/matchday/internal/usecase"
)

const rateLimitPrefix = "matchday:ratelimit:fixtures"

// Container holds the wired services shared by the api and seed commands.
type Container struct {
	Config   config.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Clock    clockwork.Clock
	Logger   *logging.Logger
	Matches  *usecase.MatchService
	Images   *usecase.ImageService
	Leagues  *usecase.LeagueService
	Players  *usecase.PlayerService
	Venues   *usecase.VenueService
	Managers *usecase.ManagerService
	Feed     *usecase.FeedService
	Sitemaps *usecase.SitemapService
	Seed     *usecase.SeedService
	IndexNow *usecase.IndexNowService
}

func NewContainer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Container, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	clients, err := newSofascoreClients(cfg, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clock := clockwork.NewRealClock()
	var (
		venues      venue.Repository      = postgres.NewVenueRepository(db)
		managers    manager.Repository    = postgres.NewManagerRepository(db)
		tournaments tournament.Repository = postgres.NewTournamentRepository(db)
	)
	teams := postgres.NewTeamRepository(db)
	matches := postgres.NewMatchRepository(db)
	if cfg.CacheEnabled {
		store := basecache.NewStoreWithClock(cfg.CacheTTL, clock)
		venues = cache.NewVenueRepository(venues, store)
		managers = cache.NewManagerRepository(managers, store)
		tournaments = cache.NewTournamentRepository(tournaments, store)
	}

	publisher := indexnow.NewPublisher(indexnow.Config{
		Key:     cfg.IndexNowKey,
		Timeout: cfg.IndexNowTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.IndexNowCircuitEnabled,
			FailureThreshold: cfg.IndexNowCircuitFailures,
			OpenTimeout:      cfg.IndexNowCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IndexNowCircuitHalfOpenReq,
		},
	}, logger)

	seedCfg := usecase.DefaultSeedConfig()
	seedCfg.Workers = cfg.SeedWorkers
	seedCfg.BaseURL = cfg.SiteBaseURL

	c := &Container{
		Config:   cfg,
		DB:       db,
		Clock:    clock,
		Logger:   logger,
		Matches:  usecase.NewMatchService(clients.primary, clients.primary, clock, logger),
		Images:   usecase.NewImageService(clients.legacyImages, clients.images),
		Leagues:  usecase.NewLeagueService(tournaments, matches, clients.primary, logger),
		Players:  usecase.NewPlayerService(clients.primary, clock, logger),
		Venues:   usecase.NewVenueService(venues, logger),
		Managers: usecase.NewManagerService(managers, teams, clock, logger),
		Feed:     usecase.NewFeedService(matches, logger),
		Sitemaps: usecase.NewSitemapService(venues, managers, matches, logger),
		Seed:     usecase.NewSeedService(clients.primary, tournaments, teams, venues, managers, matches, seedCfg, clock, logger),
		IndexNow: usecase.NewIndexNowService(publisher, cfg.IndexNowEnabled, logger),
	}

	if cfg.RedisURL != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// The limiter falls back to process memory; the site keeps serving.
			logger.WarnContext(ctx, "redis unavailable, using in-memory rate limiter", "error", err)
		} else {
			c.Redis = client
		}
	}

	return c, nil
}

// FixturesLimiter shares the window through redis when configured.
func (c *Container) FixturesLimiter() ratelimit.Limiter {
	if c.Redis != nil {
		return ratelimit.NewRedisLimiter(c.Redis, rateLimitPrefix, c.Config.RateLimitPerMinute, time.Minute)
	}
	return ratelimit.NewMemoryLimiter(c.Config.RateLimitPerMinute, time.Minute, c.Clock)
}

func (c *Container) Close() error {
	var firstErr error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewHTTPServer mounts the JSON api and the server-rendered pages on one
// router.
func NewHTTPServer(c *Container) (*http.Server, error) {
	cfg := c.Config
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(c.Matches, c.Images, c.Leagues, c.IndexNow, cfg.IndexNowKey, c.Logger)
	pages := web.NewPages(web.Services{
		Leagues:  c.Leagues,
		Players:  c.Players,
		Venues:   c.Venues,
		Managers: c.Managers,
		Matches:  c.Matches,
		Feed:     c.Feed,
		Sitemaps: c.Sitemaps,
	}, cfg.SiteBaseURL, c.Clock, c.Logger)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		FixturesLimiter:    c.FixturesLimiter(),
		RequestTimeout:     cfg.WriteTimeout,
		Pages:              pages.Routes,
	}, c.Logger)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}, nil
}

type sofascoreClients struct {
	primary *sofascore.Client
	// legacyImages always speaks the legacy proxy shape on SOFASCORE_API_URL.
	legacyImages *sofascore.Client
	// images is a standard client bound to the image host.
	images *sofascore.Client
}

func newSofascoreClients(cfg config.Config, logger *logging.Logger) (sofascoreClients, error) {
	build := func(baseURL string, variant sofascore.Variant) (*sofascore.Client, error) {
		return sofascore.NewClient(sofascore.Config{
			BaseURL:  baseURL,
			Variant:  variant,
			Timeout:  cfg.SofascoreTimeout,
			ProxyURL: cfg.SofascoreProxyURL,
			Logger:   logger,
		})
	}

	variant := sofascore.VariantLegacy
	if cfg.SofascoreAPIType == config.SofascoreStandard {
		variant = sofascore.VariantStandard
	}

	var (
		clients sofascoreClients
		err     error
	)
	if clients.primary, err = build(cfg.SofascoreBaseURL, variant); err != nil {
		return clients, fmt.Errorf("build sofascore client: %w", err)
	}
	clients.legacyImages = clients.primary
	if variant != sofascore.VariantLegacy {
		if clients.legacyImages, err = build(cfg.SofascoreBaseURL, sofascore.VariantLegacy); err != nil {
			return clients, fmt.Errorf("build sofascore legacy image client: %w", err)
		}
	}
	if clients.images, err = build(cfg.SofascoreImageBaseURL, sofascore.VariantStandard); err != nil {
		return clients, fmt.Errorf("build sofascore image client: %w", err)
	}
	return clients, nil
}
