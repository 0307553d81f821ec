package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/matchday/external/sofascore"
)

// ImageService proxies team crests from the two upstream image hosts.
type ImageService struct {
	legacy   ImageSource
	standard ImageSource
}

func NewImageService(legacy, standard ImageSource) *ImageService {
	return &ImageService{legacy: legacy, standard: standard}
}

// LegacyTeamImage serves the crest through the legacy proxy. Any non-empty
// id is forwarded.
func (s *ImageService) LegacyTeamImage(ctx context.Context, teamID string) (*sofascore.Image, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImageService.LegacyTeamImage")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if err := validateVar("team id", teamID, "required"); err != nil {
		return nil, err
	}

	img, err := s.legacy.TeamImage(ctx, teamID)
	if err != nil {
		return nil, upstreamError("legacy team image="+teamID, err)
	}
	return img, nil
}

// TeamImage serves the crest from the image host. The id must be digits.
func (s *ImageService) TeamImage(ctx context.Context, teamID string) (*sofascore.Image, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImageService.TeamImage")
	defer span.End()

	if err := validateVar("team id", teamID, "required,digits"); err != nil {
		return nil, err
	}

	img, err := s.standard.TeamImage(ctx, teamID)
	if err != nil {
		return nil, upstreamError("team image="+teamID, err)
	}
	return img, nil
}
