package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

const fixturesCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

// GetFixtures returns the upstream schedule document as is.
func (h *Handler) GetFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtures")
	defer span.End()

	date := r.URL.Query().Get("date")
	body, err := h.matchService.Fixtures(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixtures failed", "date", date, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Cache-Control", fixturesCacheControl)
	writeRaw(w, http.StatusOK, body)
}

func (h *Handler) GetLiveScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveScore")
	defer span.End()

	eventID := chi.URLParam(r, "eventID")
	score, err := h.matchService.LiveScore(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live score failed", "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeSuccess(ctx, w, http.StatusOK, score)
}
