package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

type IndexNowService struct {
	notifier URLNotifier
	enabled  bool
	logger   *logging.Logger
}

func NewIndexNowService(notifier URLNotifier, enabled bool, logger *logging.Logger) *IndexNowService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IndexNowService{
		notifier: notifier,
		enabled:  enabled && notifier != nil,
		logger:   logger,
	}
}

// NotifyURLs submits absolute page urls. Blank entries are dropped and an
// empty list returns nil results without contacting any endpoint.
func (s *IndexNowService) NotifyURLs(ctx context.Context, urls []string) ([]indexnow.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IndexNowService.NotifyURLs")
	defer span.End()

	cleaned := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if err := validateVar("url", raw, "http_url"); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, raw)
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	if len(cleaned) > indexnow.MaxURLsPerRequest {
		return nil, fmt.Errorf("%w: at most %d urls per submission", ErrInvalidInput, indexnow.MaxURLsPerRequest)
	}
	if !s.enabled {
		s.logger.InfoContext(ctx, "indexnow disabled, skipping submission", "url_count", len(cleaned))
		return nil, nil
	}

	results, err := s.notifier.Notify(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: indexnow submit: %w", ErrDependencyUnavailable, err)
	}
	return results, nil
}
