package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/internal/usecase"
)

type submitIndexNowRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,max=10000"`
}

type submitIndexNowResponse struct {
	Submitted int               `json:"submitted"`
	Results   []indexnow.Result `json:"results"`
}

func (h *Handler) SubmitIndexNow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitIndexNow")
	defer span.End()

	var req submitIndexNowRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.indexNowService.NotifyURLs(ctx, req.URLs)
	if err != nil {
		h.logger.ErrorContext(ctx, "indexnow submission failed", "url_count", len(req.URLs), "error", err)
		writeError(ctx, w, err)
		return
	}
	if results == nil {
		results = []indexnow.Result{}
	}

	writeSuccess(ctx, w, http.StatusOK, submitIndexNowResponse{
		Submitted: len(req.URLs),
		Results:   results,
	})
}

// IndexNowKey serves the ownership file search engines fetch from /{key}.txt.
func (h *Handler) IndexNowKey(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.IndexNowKey")
	defer span.End()

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.indexNowKey))
}
