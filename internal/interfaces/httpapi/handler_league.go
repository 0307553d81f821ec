package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	slug := chi.URLParam(r, "slug")
	standings, err := h.leagueService.Standings(ctx, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "get league standings failed", "slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, s-maxage=300, stale-while-revalidate=600")
	writeSuccess(ctx, w, http.StatusOK, standings)
}
