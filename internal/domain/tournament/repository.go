package tournament

import "context"

// Repository describes tournament and standings persistence needs from use cases.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (Tournament, bool, error)
	Upsert(ctx context.Context, item Tournament) error
	GetStandings(ctx context.Context, tournamentID, seasonID int64) (Standings, bool, error)
	UpsertStandings(ctx context.Context, item Standings) error
}
