package manager

import "context"

// Repository describes manager persistence needs from use cases.
type Repository interface {
	ListByName(ctx context.Context, limit int) ([]Manager, error)
	ListAll(ctx context.Context) ([]Manager, error)
	GetBySlug(ctx context.Context, slug string) (Manager, bool, error)
	Upsert(ctx context.Context, item Manager) error
}
