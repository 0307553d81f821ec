package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/platform/ratelimit"
)

func registerSystemRoutes(r chi.Router, handler *Handler) {
	r.Get("/healthz", handler.Healthz)
	if handler.indexNowKey != "" {
		r.Get("/"+handler.indexNowKey+".txt", handler.IndexNowKey)
	}
}

func registerAPIRoutes(r chi.Router, handler *Handler, limiter ratelimit.Limiter, logger *logging.Logger) {
	r.Route("/api", func(r chi.Router) {
		r.With(RateLimit(limiter, logger)).Get("/fixtures", handler.GetFixtures)
		r.Get("/image/team/{teamID}", handler.GetLegacyTeamImage)
		r.Get("/sofascore/image/team", handler.GetTeamImage)
		r.Get("/matches/{eventID}/live", handler.GetLiveScore)
		r.Get("/leagues/{slug}/standings", handler.GetLeagueStandings)
	})
}

func registerInternalJobRoutes(r chi.Router, handler *Handler, internalJobToken string) {
	r.With(RequireInternalJobToken(internalJobToken)).Post("/internal/indexnow", handler.SubmitIndexNow)
}
