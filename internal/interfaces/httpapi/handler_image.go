package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/usecase"
)

const (
	legacyImageCacheControl = "public, max-age=86400, s-maxage=86400"
	imageCacheControl       = "public, max-age=86400, s-maxage=86400, stale-while-revalidate=604800"
	defaultImageContentType = "image/png"
)

type imageErrorResponse struct {
	OK    *bool  `json:"ok,omitempty"`
	Error string `json:"error"`
}

// GetLegacyTeamImage proxies a crest from the legacy API. Upstream failures
// keep the upstream status.
func (h *Handler) GetLegacyTeamImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLegacyTeamImage")
	defer span.End()

	teamID := strings.TrimSpace(chi.URLParam(r, "teamID"))
	if teamID == "" {
		writeJSON(ctx, w, http.StatusBadRequest, imageErrorResponse{Error: "Team ID required"})
		return
	}

	img, err := h.imageService.LegacyTeamImage(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "legacy team image failed", "team_id", teamID, "error", err)
		status := sofascore.UpstreamStatus(err)
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
			if errors.Is(err, usecase.ErrInvalidInput) {
				status = http.StatusBadRequest
			}
		}
		writeJSON(ctx, w, status, imageErrorResponse{Error: "Failed to fetch image"})
		return
	}

	writeImage(w, img, legacyImageCacheControl)
}

// GetTeamImage serves a crest from the image host for ?team_id=<digits>.
func (h *Handler) GetTeamImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamImage")
	defer span.End()

	notOK := false
	teamID := r.URL.Query().Get("team_id")
	img, err := h.imageService.TeamImage(ctx, teamID)
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		writeJSON(ctx, w, http.StatusBadRequest, imageErrorResponse{OK: &notOK, Error: "bad_request"})
		return
	case errors.Is(err, usecase.ErrNotFound):
		writeJSON(ctx, w, http.StatusNotFound, imageErrorResponse{OK: &notOK, Error: "not_found"})
		return
	case err != nil:
		h.logger.WarnContext(ctx, "team image failed", "team_id", teamID, "error", err)
		writeJSON(ctx, w, http.StatusBadGateway, imageErrorResponse{OK: &notOK, Error: "upstream_failed"})
		return
	}

	writeImage(w, img, imageCacheControl)
}

func writeImage(w http.ResponseWriter, img *sofascore.Image, cacheControl string) {
	contentType := img.ContentType
	if contentType == "" {
		contentType = defaultImageContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Body)
}
