package venue

import "context"

// Repository describes venue persistence needs from use cases.
type Repository interface {
	// ListByCapacity returns the biggest venues first; unknown capacity sorts last.
	ListByCapacity(ctx context.Context, limit int) ([]Venue, error)
	ListAll(ctx context.Context) ([]Venue, error)
	GetBySlug(ctx context.Context, slug string) (Venue, bool, error)
	Upsert(ctx context.Context, item Venue) error
}
