package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const managerListLimit = 200

type ManagerPage struct {
	Manager     manager.Manager
	Team        *team.Team
	Age         int
	HasAge      bool
	Title       string
	Description string
	Canonical   string
	JSONLD      PersonLD
}

type ManagerService struct {
	managers manager.Repository
	teams    team.Repository
	clock    clockwork.Clock
	logger   *logging.Logger
}

func NewManagerService(managers manager.Repository, teams team.Repository, clock clockwork.Clock, logger *logging.Logger) *ManagerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ManagerService{
		managers: managers,
		teams:    teams,
		clock:    clock,
		logger:   logger,
	}
}

func (s *ManagerService) List(ctx context.Context) ([]manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.List")
	defer span.End()

	items, err := s.managers.ListByName(ctx, managerListLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "list managers failed", "error", err)
		return []manager.Manager{}, nil
	}
	return items, nil
}

func (s *ManagerService) BySlug(ctx context.Context, slug string, baseURL string) (*ManagerPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.BySlug")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return nil, err
	}

	item, exists, err := s.managers.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "manager lookup failed", "slug", slug, "error", err)
		return nil, fmt.Errorf("%w: manager slug=%s", ErrNotFound, slug)
	}
	if !exists {
		return nil, fmt.Errorf("%w: manager slug=%s", ErrNotFound, slug)
	}

	page := &ManagerPage{
		Manager:   item,
		Title:     item.Name + " - Football Manager Profile",
		Canonical: strings.TrimRight(baseURL, "/") + "/managers/" + item.Slug,
	}
	if item.TeamID != nil {
		current, found, err := s.teams.GetByID(ctx, *item.TeamID)
		if err != nil {
			s.logger.WarnContext(ctx, "manager team lookup failed", "team_id", *item.TeamID, "error", err)
		} else if found {
			page.Team = &current
		}
	}
	if item.DateOfBirthTS != nil {
		page.Age, page.HasAge = football.AgeFromBirthMillis(*item.DateOfBirthTS*1000, s.clock.Now())
	}

	teamName := item.TeamName
	if page.Team != nil {
		teamName = page.Team.Name
	}
	page.Description = managerDescription(item, teamName)
	page.JSONLD = PersonLD{
		Context:     schemaContext,
		Type:        "Person",
		Name:        item.Name,
		JobTitle:    "Football Manager",
		Nationality: item.Nationality,
		Image:       item.ImageURL,
		URL:         page.Canonical,
	}
	if teamName != "" {
		works := &SportsTeamLD{Type: "SportsTeam", Name: teamName}
		if page.Team != nil {
			works.Logo = page.Team.ImageURL
		}
		page.JSONLD.WorksFor = works
	}
	return page, nil
}

func managerDescription(item manager.Manager, teamName string) string {
	var b strings.Builder
	b.WriteString(item.Name)
	b.WriteString(" football manager profile")
	if teamName != "" {
		b.WriteString(", head coach of " + teamName)
	}
	if item.Nationality != "" {
		b.WriteString(". Nationality: " + item.Nationality)
	}
	b.WriteString(".")
	return b.String()
}

// ManagerImageURL is the upstream portrait for a manager id.
func ManagerImageURL(managerID int64) string {
	return imageHostBaseURL + "/manager/" + strconv.FormatInt(managerID, 10) + "/image"
}
