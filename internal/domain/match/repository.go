package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	// ListRecent returns matches by kickoff, newest first.
	ListRecent(ctx context.Context, limit int) ([]Match, error)
	// ListByLeague matches the league name case-insensitively as a substring,
	// ordered by kickoff ascending.
	ListByLeague(ctx context.Context, leagueName string, limit int) ([]Match, error)
	ListWithVideo(ctx context.Context) ([]Match, error)
	Upsert(ctx context.Context, item Match) error
}
