package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/domain/tournament"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

const (
	WeeksPerSeason   = 38
	weekMatchLimit   = 20
	imageHostBaseURL = "https://api.sofascore.app/api/v1"
)

type CategoryPage struct {
	Slug        string
	Name        string
	FlagURL     string
	Found       bool
	Title       string
	Description string
}

type WeekLink struct {
	Week    int
	URL     string
	Current bool
}

type WeekPage struct {
	Slug        string
	LeagueName  string
	Week        int
	PrevWeek    int
	NextWeek    int
	Matches     []match.Match
	Weeks       []WeekLink
	Title       string
	Description string
	JSONLD      SportsEventLD
}

type StandingsView struct {
	TournamentID int64              `json:"tournamentId"`
	SeasonID     int64              `json:"seasonId"`
	Name         string             `json:"name,omitempty"`
	Cached       bool               `json:"cached"`
	Tables       []tournament.Table `json:"tables"`
}

type LeagueService struct {
	tournaments tournament.Repository
	matches     match.Repository
	source      LeagueSource
	logger      *logging.Logger
}

func NewLeagueService(tournaments tournament.Repository, matches match.Repository, source LeagueSource, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		tournaments: tournaments,
		matches:     matches,
		source:      source,
		logger:      logger,
	}
}

// Category renders a country landing page. Unknown slugs still get a soft
// landing page named after the slug.
func (s *LeagueService) Category(ctx context.Context, slug string) (CategoryPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Category")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return CategoryPage{}, err
	}

	page := CategoryPage{
		Slug: slug,
		Name: strings.ReplaceAll(slug, "-", " "),
	}

	categories, err := s.source.Categories(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "categories unavailable", "slug", slug, "error", err)
	} else {
		for _, category := range categories.Categories {
			if category.Slug != slug {
				continue
			}
			page.Found = true
			page.Name = category.Name
			if category.Flag != "" && category.ID > 0 {
				page.FlagURL = imageHostBaseURL + "/category/" + strconv.FormatInt(category.ID, 10) + "/image"
			}
			break
		}
	}

	page.Title = football.TitleCase(slug) + " Football - Live Scores & Streaming"
	page.Description = fmt.Sprintf("Watch live %s football matches. Get fixtures, scores, and results for all %s leagues and tournaments.", slug, slug)
	return page, nil
}

// Week lists up to 20 matches of the league, oldest kickoff first, with
// links to all 38 match weeks.
func (s *LeagueService) Week(ctx context.Context, slug string, week int, baseURL string) (WeekPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Week")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return WeekPage{}, err
	}
	if err := validateVar("week", week, "min=1,max=38"); err != nil {
		return WeekPage{}, err
	}

	leagueName := football.TitleFromSlug(slug)
	item, exists, err := s.tournaments.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "tournament lookup failed", "slug", slug, "error", err)
	} else if exists && item.Name != "" {
		leagueName = item.Name
	}

	matches, err := s.matches.ListByLeague(ctx, leagueName, weekMatchLimit)
	if err != nil {
		s.logger.WarnContext(ctx, "list week matches failed", "league", leagueName, "error", err)
		matches = nil
	}

	page := WeekPage{
		Slug:       slug,
		LeagueName: leagueName,
		Week:       week,
		Matches:    matches,
		Weeks:      make([]WeekLink, 0, WeeksPerSeason),
		Title:      fmt.Sprintf("%s Matchweek %d - Fixtures & Results", leagueName, week),
		Description: fmt.Sprintf("%s Matchweek %d fixtures, results, and live streams. All matches from week %d of the %s season.",
			leagueName, week, week, leagueName),
	}
	if week > 1 {
		page.PrevWeek = week - 1
	}
	if week < WeeksPerSeason {
		page.NextWeek = week + 1
	}
	for w := 1; w <= WeeksPerSeason; w++ {
		page.Weeks = append(page.Weeks, WeekLink{Week: w, URL: weekPath(slug, w), Current: w == week})
	}

	page.JSONLD = SportsEventLD{
		Context:     schemaContext,
		Type:        "SportsEvent",
		Name:        fmt.Sprintf("%s Matchweek %d", leagueName, week),
		Description: fmt.Sprintf("All fixtures and results from Matchweek %d of %s", week, leagueName),
		URL:         strings.TrimRight(baseURL, "/") + weekPath(slug, week),
		Sport:       "Football",
		EventStatus: "https://schema.org/EventScheduled",
	}
	return page, nil
}

func weekPath(slug string, week int) string {
	return "/leagues/" + slug + "/week/" + strconv.Itoa(week)
}

// ResolveTournament finds the upstream tournament id for slug, preferring
// the local catalogue over an upstream search.
func (s *LeagueService) ResolveTournament(ctx context.Context, slug string) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ResolveTournament")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return 0, err
	}

	item, exists, err := s.tournaments.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "tournament lookup failed", "slug", slug, "error", err)
	} else if exists {
		return item.ID, nil
	}

	id, err := s.source.ResolveTournamentID(ctx, slug)
	if err != nil {
		return 0, upstreamError("resolve tournament slug="+slug, err)
	}
	return id, nil
}

// Standings serves the cached table of the current season, falling back to
// a live upstream read.
func (s *LeagueService) Standings(ctx context.Context, slug string) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Standings")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if err := validateVar("slug", slug, "required,slug"); err != nil {
		return StandingsView{}, err
	}

	item, exists, err := s.tournaments.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.WarnContext(ctx, "tournament lookup failed", "slug", slug, "error", err)
		exists = false
	}
	if exists && item.CurrentSeasonID != nil {
		cached, found, err := s.tournaments.GetStandings(ctx, item.ID, *item.CurrentSeasonID)
		if err != nil {
			s.logger.WarnContext(ctx, "cached standings lookup failed", "tournament_id", item.ID, "error", err)
		} else if found {
			return StandingsView{
				TournamentID: cached.TournamentID,
				SeasonID:     cached.SeasonID,
				Name:         item.Name,
				Cached:       true,
				Tables:       withGoalDifference(cached.Tables),
			}, nil
		}
	}

	tournamentID := item.ID
	if !exists {
		tournamentID, err = s.ResolveTournament(ctx, slug)
		if err != nil {
			return StandingsView{}, err
		}
	}

	seasons, err := s.source.TournamentSeasons(ctx, tournamentID)
	if err != nil {
		return StandingsView{}, upstreamError("tournament seasons", err)
	}
	season, ok := tournament.CurrentSeason(seasonsFromUpstream(seasons))
	if !ok {
		return StandingsView{}, fmt.Errorf("%w: no season for tournament=%d", ErrNotFound, tournamentID)
	}

	standings, err := s.source.Standings(ctx, tournamentID, season.ID)
	if err != nil {
		return StandingsView{}, upstreamError("standings", err)
	}

	return StandingsView{
		TournamentID: tournamentID,
		SeasonID:     season.ID,
		Name:         item.Name,
		Tables:       tablesFromUpstream(standings),
	}, nil
}

func seasonsFromUpstream(in *sofascore.TournamentSeasons) []tournament.Season {
	if in == nil {
		return nil
	}
	out := make([]tournament.Season, 0, len(in.Seasons))
	for _, season := range in.Seasons {
		out = append(out, tournament.Season{ID: season.ID, Name: season.Name, Year: season.Year})
	}
	return out
}

// withGoalDifference fills rows of snapshots stored before the column existed.
func withGoalDifference(tables []tournament.Table) []tournament.Table {
	out := make([]tournament.Table, len(tables))
	for i, table := range tables {
		rows := make([]tournament.Row, len(table.Rows))
		for j, row := range table.Rows {
			if row.GoalDifference == "" {
				row.GoalDifference = football.FormatGoalDifference(row.ScoresFor, row.ScoresAgainst)
			}
			rows[j] = row
		}
		table.Rows = rows
		out[i] = table
	}
	return out
}

// tablesFromUpstream keeps upstream row order; positions are not recomputed.
func tablesFromUpstream(in *sofascore.Standings) []tournament.Table {
	if in == nil {
		return nil
	}
	out := make([]tournament.Table, 0, len(in.Standings))
	for _, table := range in.Standings {
		rows := make([]tournament.Row, 0, len(table.Rows))
		for _, row := range table.Rows {
			rows = append(rows, tournament.Row{
				Position:       row.Position,
				TeamID:         row.Team.ID,
				TeamName:       row.Team.Name,
				TeamSlug:       row.Team.Slug,
				Matches:        row.Matches,
				Wins:           row.Wins,
				Draws:          row.Draws,
				Losses:         row.Losses,
				ScoresFor:      row.ScoresFor,
				ScoresAgainst:  row.ScoresAgainst,
				Points:         row.Points,
				GoalDifference: football.FormatGoalDifference(row.ScoresFor, row.ScoresAgainst),
			})
		}
		out = append(out, tournament.Table{Type: table.Type, Name: table.Name, Rows: rows})
	}
	return out
}
