package usecase

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday/external/sofascore"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// upstreamError maps an adapter failure onto the usecase error kinds while
// keeping the original chain for logging and status inspection.
func upstreamError(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case crerr.Is(err, sofascore.ErrNotFound):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, what, err)
	case crerr.Is(err, sofascore.ErrInvalidParams):
		return fmt.Errorf("%w: %s: %w", ErrInvalidInput, what, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, what, err)
	}
}
