package sofascore

import (
	"context"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

const (
	searchTypeUniqueTournament = "uniqueTournament"
	footballSportSlug          = "football"
)

// ResolveTournamentID maps a league slug such as "premier-league" to the
// upstream unique tournament id using the search endpoint.
func (c *Client) ResolveTournamentID(ctx context.Context, slug string) (int64, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return 0, crerr.Wrap(ErrInvalidParams, "tournament slug is required")
	}

	results, err := c.Search(ctx, slug)
	if err != nil {
		return 0, err
	}

	id, ok := selectTournament(results.Results, slug)
	if !ok {
		c.logger.WarnContext(ctx, "no football tournament matched slug", "slug", slug)
		return 0, crerr.Wrapf(ErrNotFound, "no tournament for slug %q", slug)
	}
	return id, nil
}

func selectTournament(results []SearchResult, slug string) (int64, bool) {
	candidates := make([]SearchResult, 0, len(results))
	for _, result := range results {
		if result.Type != searchTypeUniqueTournament || result.Entity.ID <= 0 {
			continue
		}
		if !isFootball(result.Entity) {
			continue
		}
		candidates = append(candidates, result)
	}
	if len(candidates) == 0 {
		return 0, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return resultScore(candidates[i]) > resultScore(candidates[j])
	})

	for _, candidate := range candidates {
		if candidate.Entity.Slug == slug {
			return candidate.Entity.ID, true
		}
	}
	return candidates[0].Entity.ID, true
}

func isFootball(entity SearchEntity) bool {
	if entity.Sport != nil && entity.Sport.Slug == footballSportSlug {
		return true
	}
	return entity.Category != nil && entity.Category.Sport != nil && entity.Category.Sport.Slug == footballSportSlug
}

func resultScore(result SearchResult) float64 {
	if result.Score != 0 {
		return result.Score
	}
	return result.Entity.Score
}
