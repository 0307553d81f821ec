package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/matchday/external/sofascore"
	"github.com/riskibarqy/matchday/internal/domain/football"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

type TransferRow struct {
	Date string
	From string
	To   string
	Fee  string
}

type PlayerProfile struct {
	ID          string
	Name        string
	Position    string
	Nationality string
	Height      *int
	Age         int
	HasAge      bool
	BirthDate   string
	MarketValue string
	ImageURL    string
	TeamName    string
	TeamSlug    string
	TeamLogoURL string
	Transfers   []TransferRow
	Title       string
	Description string
	Canonical   string
	JSONLD      PersonLD
}

type PlayerService struct {
	source PlayerSource
	clock  clockwork.Clock
	logger *logging.Logger
}

func NewPlayerService(source PlayerSource, clock clockwork.Clock, logger *logging.Logger) *PlayerService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		source: source,
		clock:  clock,
		logger: logger,
	}
}

// Profile loads the player and the transfer history concurrently. A missing
// transfer history still renders the profile.
func (s *PlayerService) Profile(ctx context.Context, slugOrID string, baseURL string) (*PlayerProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Profile")
	defer span.End()

	playerID, ok := football.PlayerIDFromSlug(slugOrID)
	if !ok {
		return nil, fmt.Errorf("%w: player id from %q", ErrInvalidInput, slugOrID)
	}

	var (
		detail      *sofascore.PlayerDetail
		transfers   *sofascore.PlayerTransfers
		playerErr   error
		transferErr error
		wg          conc.WaitGroup
	)
	wg.Go(func() { detail, playerErr = s.source.Player(ctx, playerID) })
	wg.Go(func() { transfers, transferErr = s.source.PlayerTransfers(ctx, playerID) })
	wg.Wait()

	if playerErr != nil {
		return nil, upstreamError("player id="+playerID, playerErr)
	}
	if detail == nil || detail.Player.ID == 0 {
		return nil, fmt.Errorf("%w: player id=%s", ErrNotFound, playerID)
	}
	if transferErr != nil {
		s.logger.WarnContext(ctx, "player transfers unavailable", "player_id", playerID, "error", transferErr)
	}

	player := detail.Player
	base := strings.TrimRight(baseURL, "/")
	profile := &PlayerProfile{
		ID:        playerID,
		Name:      player.Name,
		Position:  player.Position,
		Height:    player.Height,
		ImageURL:  imageHostBaseURL + "/player/" + playerID + "/image",
		Canonical: base + "/players/" + slugOrID,
	}
	if player.Country != nil {
		profile.Nationality = player.Country.Name
	}
	if player.DateOfBirthTimestamp != nil {
		dob := *player.DateOfBirthTimestamp
		profile.BirthDate = time.Unix(dob, 0).UTC().Format(time.DateOnly)
		profile.Age, profile.HasAge = football.AgeFromBirthMillis(dob*1000, s.clock.Now())
	}
	if player.ProposedMarketValue != nil {
		profile.MarketValue = football.FormatMarketValue(*player.ProposedMarketValue)
	}
	if player.Team != nil {
		profile.TeamName = player.Team.Name
		profile.TeamSlug = strings.ReplaceAll(strings.ToLower(player.Team.Name), " ", "-")
		profile.TeamLogoURL = imageHostBaseURL + "/team/" + strconv.FormatInt(player.Team.ID, 10) + "/image"
	}
	if transfers != nil {
		profile.Transfers = transferRows(transfers.All())
	}

	profile.Title = player.Name + " - Player Profile, Stats & Transfers"
	profile.Description = playerDescription(profile)
	profile.JSONLD = PersonLD{
		Context:     schemaContext,
		Type:        "Person",
		Name:        player.Name,
		JobTitle:    "Professional Football Player",
		BirthDate:   profile.BirthDate,
		Nationality: profile.Nationality,
		Height:      player.Height,
		Image:       profile.ImageURL,
		URL:         profile.Canonical,
	}
	if profile.TeamName != "" || profile.Position != "" {
		athlete := &AthleteLD{Type: "Athlete", Position: profile.Position}
		if profile.TeamName != "" {
			athlete.Team = &SportsTeamLD{Type: "SportsTeam", Name: profile.TeamName, Logo: profile.TeamLogoURL}
		}
		profile.JSONLD.Athlete = athlete
	}

	return profile, nil
}

func transferRows(in []sofascore.Transfer) []TransferRow {
	out := make([]TransferRow, 0, len(in))
	for _, item := range in {
		row := TransferRow{Fee: football.FormatTransferFee(item.TransferFeeDescription)}
		if item.TransferDateTimestamp > 0 {
			row.Date = time.Unix(item.TransferDateTimestamp, 0).UTC().Format(time.DateOnly)
		}
		if item.TransferFrom != nil {
			row.From = item.TransferFrom.Name
		}
		if item.TransferTo != nil {
			row.To = item.TransferTo.Name
		}
		out = append(out, row)
	}
	return out
}

func playerDescription(p *PlayerProfile) string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Position != "" {
		b.WriteString(" (" + p.Position + ")")
	}
	if p.TeamName != "" {
		b.WriteString(" plays for " + p.TeamName)
	}
	b.WriteString(". Profile, market value, and transfer history.")
	return b.String()
}
