package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/ratelimit"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	InternalJobToken   string
	FixturesLimiter    ratelimit.Limiter
	RequestTimeout     time.Duration
	// Pages mounts the HTML, feed and sitemap routes next to the API.
	Pages func(r chi.Router)
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(RequestLogging(logger))
	r.Use(CORS(cfg.CORSAllowedOrigins))
	r.Use(recoverPanic(logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(timeout))

	registerSystemRoutes(r, handler)
	registerAPIRoutes(r, handler, cfg.FixturesLimiter, logger)
	registerInternalJobRoutes(r, handler, cfg.InternalJobToken)
	if cfg.Pages != nil {
		cfg.Pages(r)
	}

	return RequestTracing(r)
}
