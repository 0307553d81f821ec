package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/usecase"
)

type Handler struct {
	matchService    *usecase.MatchService
	imageService    *usecase.ImageService
	leagueService   *usecase.LeagueService
	indexNowService *usecase.IndexNowService
	indexNowKey     string
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	imageService *usecase.ImageService,
	leagueService *usecase.LeagueService,
	indexNowService *usecase.IndexNowService,
	indexNowKey string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:    matchService,
		imageService:    imageService,
		leagueService:   leagueService,
		indexNowService: indexNowService,
		indexNowKey:     strings.TrimSpace(indexNowKey),
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// validateRequest reports the failing fields as an invalid input error.
func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+" failed "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, strings.Join(fields, ", "))
}
