package scraper

import (
	"context"
	"time"

	"github.com/hashlens/hashlens/extract"
)

// authorWaitBudget bounds the polling wait for author byline anchors.
const authorWaitBudget = 15 * time.Second

// ResolveAuthor waits until any of the author anchor selectors matches,
// then resolves the first valid username from a page snapshot. An empty
// result with a nil error means "author not found", which is a normal
// outcome for reshared or degraded post pages.
func (s *Session) ResolveAuthor(ctx context.Context) (string, error) {
	matched := waitFor(ctx, authorWaitBudget, func() bool {
		for _, sel := range extract.AuthorSelectors {
			if s.Has(ctx, sel) {
				return true
			}
		}
		return false
	})
	if !matched {
		return "", nil
	}

	rawHTML, err := s.HTML(ctx)
	if err != nil {
		return "", categorizeError(err, "failed to snapshot post page")
	}
	return extract.AuthorFromSnapshot(rawHTML), nil
}
