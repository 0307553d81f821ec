package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/domain/manager"
	"github.com/riskibarqy/matchday/internal/domain/match"
	"github.com/riskibarqy/matchday/internal/domain/team"
	"github.com/riskibarqy/matchday/internal/domain/tournament"
	"github.com/riskibarqy/matchday/internal/domain/venue"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"golang.org/x/time/rate"
)

// SeedLeague is one competition the seeder mirrors.
type SeedLeague struct {
	Name         string
	Slug         string
	TournamentID int64
}

var MajorLeagues = []SeedLeague{
	{Name: "Premier League", Slug: "premier-league", TournamentID: 17},
	{Name: "La Liga", Slug: "la-liga", TournamentID: 8},
	{Name: "Bundesliga", Slug: "bundesliga", TournamentID: 35},
	{Name: "Serie A", Slug: "serie-a", TournamentID: 23},
	{Name: "Ligue 1", Slug: "ligue-1", TournamentID: 34},
	{Name: "Champions League", Slug: "champions-league", TournamentID: 7},
	{Name: "Europa League", Slug: "europa-league", TournamentID: 679},
	{Name: "Eredivisie", Slug: "eredivisie", TournamentID: 37},
	{Name: "Championship", Slug: "championship", TournamentID: 18},
	{Name: "Liga Portugal", Slug: "primeira-liga", TournamentID: 238},
	{Name: "Conference League", Slug: "conference-league", TournamentID: 17015},
	{Name: "MLS", Slug: "mls", TournamentID: 242},
}

// TeamLeagues are the competitions whose standings list the clubs to mirror.
// Knockout cups are left out since their tables repeat league clubs.
var TeamLeagues = []SeedLeague{
	{Name: "Premier League", Slug: "premier-league", TournamentID: 17},
	{Name: "La Liga", Slug: "la-liga", TournamentID: 8},
	{Name: "Bundesliga", Slug: "bundesliga", TournamentID: 35},
	{Name: "Serie A", Slug: "serie-a", TournamentID: 23},
	{Name: "Ligue 1", Slug: "ligue-1", TournamentID: 34},
	{Name: "Champions League", Slug: "champions-league", TournamentID: 7},
	{Name: "Eredivisie", Slug: "eredivisie", TournamentID: 37},
	{Name: "Championship", Slug: "championship", TournamentID: 18},
	{Name: "Liga Portugal", Slug: "primeira-liga", TournamentID: 238},
	{Name: "MLS", Slug: "mls", TournamentID: 242},
}

type SeedConfig struct {
	Workers int
	BaseURL string
	// TournamentPause spaces tournament details, seasons and standings calls.
	TournamentPause time.Duration
	// TeamPause spaces the seasons and standings calls of a team league.
	TeamPause   time.Duration
	DetailPause time.Duration
}

func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Workers:         1,
		TournamentPause: time.Second,
		TeamPause:       500 * time.Millisecond,
		DetailPause:     300 * time.Millisecond,
	}
}

// SeedSummary counts processed items. URLs lists the public pages whose
// content changed, ready for IndexNow.
type SeedSummary struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	URLs    []string `json:"urls,omitempty"`
}

type SeedService struct {
	source      SeedSource
	tournaments tournament.Repository
	teams       team.Repository
	venues      venue.Repository
	managers    manager.Repository
	matches     match.Repository
	cfg         SeedConfig
	clock       clockwork.Clock
	logger      *logging.Logger
}

func NewSeedService(
	source SeedSource,
	tournaments tournament.Repository,
	teams team.Repository,
	venues venue.Repository,
	managers manager.Repository,
	matches match.Repository,
	cfg SeedConfig,
	clock clockwork.Clock,
	logger *logging.Logger,
) *SeedService {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &SeedService{
		source:      source,
		tournaments: tournaments,
		teams:       teams,
		venues:      venues,
		managers:    managers,
		matches:     matches,
		cfg:         cfg,
		clock:       clock,
		logger:      logger,
	}
}

// pacer spaces consecutive upstream calls by at least pause. A zero pause
// disables pacing.
func pacer(pause time.Duration) *rate.Limiter {
	if pause <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(pause), 1)
}

// SeedTournaments mirrors MajorLeagues with their seasons and the current
// season standings. A failing league is counted and skipped.
func (s *SeedService) SeedTournaments(ctx context.Context) (SeedSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.SeedTournaments")
	defer span.End()

	limiter := pacer(s.cfg.TournamentPause)
	var summary SeedSummary
	for _, league := range MajorLeagues {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := s.seedTournament(ctx, limiter, league); err != nil {
			summary.Failed++
			s.logger.ErrorContext(ctx, "seed tournament failed", "league", league.Name, "tournament_id", league.TournamentID, "error", err)
			continue
		}
		summary.Success++
		summary.URLs = append(summary.URLs, indexnow.LeagueURL(s.cfg.BaseURL, league.Slug))
		s.logger.InfoContext(ctx, "seeded tournament", "league", league.Name, "tournament_id", league.TournamentID)
	}

	s.logger.InfoContext(ctx, "tournament seeding complete", "success", summary.Success, "failed", summary.Failed)
	return summary, nil
}

func (s *SeedService) seedTournament(ctx context.Context, limiter *rate.Limiter, league SeedLeague) error {
	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	details, err := s.source.TournamentDetails(ctx, league.TournamentID)
	if err != nil {
		return fmt.Errorf("tournament details: %w", err)
	}

	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	seasons, err := s.source.TournamentSeasons(ctx, league.TournamentID)
	if err != nil {
		return fmt.Errorf("tournament seasons: %w", err)
	}

	item := tournament.Tournament{
		ID:        league.TournamentID,
		Slug:      league.Slug,
		Name:      league.Name,
		LogoURL:   imageHostBaseURL + "/unique-tournament/" + strconv.FormatInt(league.TournamentID, 10) + "/image",
		Seasons:   seasonsFromUpstream(seasons),
		UpdatedAt: s.clock.Now(),
	}
	if details != nil {
		if name := strings.TrimSpace(details.UniqueTournament.Name); name != "" {
			item.Name = name
		}
		if category := details.UniqueTournament.Category; category != nil {
			item.Country = category.Name
		}
	}

	season, hasSeason := tournament.CurrentSeason(item.Seasons)
	if hasSeason {
		seasonID := season.ID
		item.CurrentSeasonID = &seasonID
	}
	if err := s.tournaments.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert tournament: %w", err)
	}
	if !hasSeason {
		return nil
	}

	if err := limiter.Wait(ctx); err != nil {
		return err
	}
	standings, err := s.source.Standings(ctx, league.TournamentID, season.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "standings unavailable", "league", league.Name, "season_id", season.ID, "error", err)
		return nil
	}
	if err := s.tournaments.UpsertStandings(ctx, tournament.Standings{
		TournamentID: league.TournamentID,
		SeasonID:     season.ID,
		Tables:       tablesFromUpstream(standings),
		UpdatedAt:    s.clock.Now(),
	}); err != nil {
		return fmt.Errorf("upsert standings: %w", err)
	}
	return nil
}

// SeedTeams mirrors the clubs of TeamLeagues with their venue and manager.
// A club already seen earlier in the run is skipped.
func (s *SeedService) SeedTeams(ctx context.Context) (SeedSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.SeedTeams")
	defer span.End()

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	run := &teamSeedRun{
		seen:    make(map[int64]struct{}),
		league:  pacer(s.cfg.TeamPause),
		details: pacer(s.cfg.DetailPause),
		pool:    pool,
	}
	for _, league := range TeamLeagues {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := s.seedLeagueTeams(ctx, run, league); err != nil {
			s.logger.ErrorContext(ctx, "seed league teams failed", "league", league.Name, "error", err)
		}
	}

	summary := run.summary()
	s.logger.InfoContext(ctx, "team seeding complete", "success", summary.Success, "failed", summary.Failed)
	return summary, ctx.Err()
}

type teamSeedRun struct {
	seen    map[int64]struct{}
	league  *rate.Limiter
	details *rate.Limiter
	pool    *ants.Pool

	mu      sync.Mutex
	success int
	failed  int
	urls    []string
}

func (r *teamSeedRun) record(url string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.failed++
		return
	}
	r.success++
	r.urls = append(r.urls, url)
}

func (r *teamSeedRun) summary() SeedSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	return SeedSummary{Success: r.success, Failed: r.failed, URLs: append([]string(nil), r.urls...)}
}

func (s *SeedService) seedLeagueTeams(ctx context.Context, run *teamSeedRun, league SeedLeague) error {
	if err := run.league.Wait(ctx); err != nil {
		return err
	}
	seasons, err := s.source.TournamentSeasons(ctx, league.TournamentID)
	if err != nil {
		return fmt.Errorf("tournament seasons: %w", err)
	}
	season, ok := tournament.CurrentSeason(seasonsFromUpstream(seasons))
	if !ok {
		s.logger.WarnContext(ctx, "no current season", "league", league.Name)
		return nil
	}

	if err := run.league.Wait(ctx); err != nil {
		return err
	}
	standings, err := s.source.Standings(ctx, league.TournamentID, season.ID)
	if err != nil {
		return fmt.Errorf("standings: %w", err)
	}
	if standings == nil || len(standings.Standings) == 0 {
		s.logger.WarnContext(ctx, "no standings", "league", league.Name)
		return nil
	}

	var workers sync.WaitGroup
	for _, row := range standings.Standings[0].Rows {
		ref := row.Team
		if ref.ID <= 0 {
			continue
		}
		if _, dup := run.seen[ref.ID]; dup {
			continue
		}
		run.seen[ref.ID] = struct{}{}

		workers.Add(1)
		if err := run.pool.Submit(func() {
			defer workers.Done()
			url, err := s.seedTeam(ctx, run.details, ref)
			if err != nil {
				s.logger.ErrorContext(ctx, "seed team failed", "team_id", ref.ID, "team", ref.Name, "error", err)
			}
			run.record(url, err)
		}); err != nil {
			workers.Done()
			run.record("", err)
		}
	}
	workers.Wait()
	return nil
}

func (s *SeedService) seedTeam(ctx context.Context, limiter *rate.Limiter, ref sofascore.TeamRef) (string, error) {
	if err := limiter.Wait(ctx); err != nil {
		return "", err
	}
	teamID := strconv.FormatInt(ref.ID, 10)
	detail, err := s.source.Team(ctx, teamID)
	if err != nil {
		return "", fmt.Errorf("team details: %w", err)
	}

	data := sofascore.Team{ID: ref.ID, Name: ref.Name, ShortName: ref.ShortName, NameCode: ref.NameCode, Country: ref.Country}
	if detail != nil && detail.Team.ID > 0 {
		data = detail.Team
	}
	name := data.Name
	if name == "" {
		name = ref.Name
	}

	now := s.clock.Now()
	item := team.Team{
		ID:        ref.ID,
		Slug:      football.Slugify(name),
		Name:      name,
		ShortName: data.ShortName,
		ImageURL:  imageHostBaseURL + "/team/" + teamID + "/image",
		UpdatedAt: now,
	}
	if item.ShortName == "" {
		item.ShortName = data.NameCode
	}
	if data.Country != nil {
		item.Country = data.Country.Name
	}
	if data.FoundationDateTimestamp != nil {
		year := time.Unix(*data.FoundationDateTimestamp, 0).UTC().Year()
		item.FoundedYear = &year
	}
	if data.TeamColors != nil {
		item.PrimaryColor = data.TeamColors.Primary
		item.SecondaryColor = data.TeamColors.Secondary
	}
	if data.Venue != nil && data.Venue.ID > 0 {
		id := data.Venue.ID
		item.VenueID = &id
	}
	if data.Manager != nil && data.Manager.ID > 0 {
		id := data.Manager.ID
		item.ManagerID = &id
	}
	if err := s.teams.Upsert(ctx, item); err != nil {
		return "", fmt.Errorf("upsert team: %w", err)
	}

	if data.Venue != nil && data.Venue.ID > 0 {
		if err := s.venues.Upsert(ctx, venueFromUpstream(*data.Venue, item.Country, now)); err != nil {
			return "", fmt.Errorf("upsert venue: %w", err)
		}
	}
	if data.Manager != nil && data.Manager.ID > 0 {
		if err := s.managers.Upsert(ctx, managerFromUpstream(*data.Manager, item, now)); err != nil {
			return "", fmt.Errorf("upsert manager: %w", err)
		}
	}

	return indexnow.TeamURL(s.cfg.BaseURL, item.Slug), nil
}

func venueFromUpstream(in sofascore.Venue, teamCountry string, now time.Time) venue.Venue {
	out := venue.Venue{
		ID:        in.ID,
		Slug:      football.Slugify(in.Name),
		Name:      in.Name,
		Country:   teamCountry,
		Capacity:  in.Capacity,
		Surface:   in.Surface,
		UpdatedAt: now,
	}
	if out.Slug == "" {
		out.Slug = "venue-" + strconv.FormatInt(in.ID, 10)
	}
	if out.Name == "" {
		out.Name = out.Slug
	}
	if in.City != nil {
		out.City = in.City.Name
	}
	if in.Country != nil && in.Country.Name != "" {
		out.Country = in.Country.Name
	}
	if in.VenueCoordinates != nil {
		lat, lng := in.VenueCoordinates.Latitude, in.VenueCoordinates.Longitude
		out.Latitude = &lat
		out.Longitude = &lng
	}
	return out
}

func managerFromUpstream(in sofascore.Manager, current team.Team, now time.Time) manager.Manager {
	teamID := current.ID
	out := manager.Manager{
		ID:            in.ID,
		Slug:          football.Slugify(in.Name),
		Name:          in.Name,
		ShortName:     in.ShortName,
		TeamID:        &teamID,
		TeamName:      current.Name,
		DateOfBirthTS: in.DateOfBirthTimestamp,
		ImageURL:      ManagerImageURL(in.ID),
		UpdatedAt:     now,
	}
	if out.Slug == "" {
		out.Slug = "manager-" + strconv.FormatInt(in.ID, 10)
	}
	if out.Name == "" {
		out.Name = out.Slug
	}
	if in.Country != nil {
		out.Nationality = in.Country.Name
	}
	return out
}

// SyncMatches upserts the scheduled football events of date into the match
// store and reports the watch pages it touched.
func (s *SeedService) SyncMatches(ctx context.Context, date time.Time) (SeedSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeedService.SyncMatches")
	defer span.End()

	if date.IsZero() {
		date = s.clock.Now()
	}
	events, err := s.source.ScheduledEvents(ctx, date)
	if err != nil {
		return SeedSummary{}, upstreamError("scheduled events date="+date.UTC().Format(time.DateOnly), err)
	}

	var summary SeedSummary
	if events == nil {
		return summary, nil
	}
	now := s.clock.Now()
	for _, event := range events.Events {
		item := matchFromEvent(event, now)
		if err := s.matches.Upsert(ctx, item); err != nil {
			summary.Failed++
			s.logger.WarnContext(ctx, "sync match failed", "event_id", event.ID, "slug", item.Slug, "error", err)
			continue
		}
		summary.Success++
		summary.URLs = append(summary.URLs, indexnow.MatchURL(s.cfg.BaseURL, item.Slug))
	}

	s.logger.InfoContext(ctx, "match sync complete", "date", date.UTC().Format(time.DateOnly), "success", summary.Success, "failed", summary.Failed)
	return summary, nil
}

func matchFromEvent(event sofascore.Event, now time.Time) match.Match {
	item := match.Match{
		Slug:      MatchSlug(event.HomeTeam.Name, event.AwayTeam.Name, event.ID),
		HomeTeam:  event.HomeTeam.Name,
		AwayTeam:  event.AwayTeam.Name,
		KickoffAt: time.Unix(event.StartTimestamp, 0).UTC(),
		Status:    event.Status.Type,
		UpdatedAt: now,
	}
	if event.StartTimestamp == 0 {
		item.KickoffAt = time.Time{}
	}
	if event.ID > 0 {
		id := event.ID
		item.EventID = &id
	}
	if t := event.Tournament; t != nil {
		item.League = t.Name
		if t.UniqueTournament != nil {
			if t.UniqueTournament.Name != "" {
				item.League = t.UniqueTournament.Name
			}
			id := t.UniqueTournament.ID
			item.TournamentID = &id
		}
	}
	if event.RoundInfo != nil && event.RoundInfo.Round > 0 {
		round := event.RoundInfo.Round
		item.Round = &round
	}
	item.HomeScore = currentScore(event.HomeScore)
	item.AwayScore = currentScore(event.AwayScore)
	return item
}

// MatchSlug names the watch page of one event. The event id suffix keeps
// rematches of the same pairing apart.
func MatchSlug(home, away string, eventID int64) string {
	slug := football.Slugify(home + "-vs-" + away)
	if eventID <= 0 {
		return slug
	}
	return slug + "-" + strconv.FormatInt(eventID, 10)
}

func currentScore(score *sofascore.Score) *int {
	if score == nil || score.Current == nil {
		return nil
	}
	v := *score.Current
	return &v
}
