package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-storefront/internal/content"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/pkg/interfaces"
)

// SeedResult counts what Seed did.
type SeedResult struct {
	Created  int
	Existing int
}

// Seed creates every document that is not already in store. Documents are
// matched by collection and slug, so seeding twice is harmless.
func Seed(ctx context.Context, store content.Store, docs []Document, logger interfaces.Logger) (SeedResult, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	var result SeedResult
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, err := store.GetBySlug(ctx, doc.Collection, doc.Slug)
		switch {
		case err == nil:
			result.Existing++
			logger.Debug("fixtures.seed.exists", "collection", doc.Collection, "slug", doc.Slug)
			continue
		case !content.IsNotFound(err):
			return result, fmt.Errorf("fixtures: lookup %s/%s: %w", doc.Collection, doc.Slug, err)
		}

		entity := doc.Entity()
		if _, err := store.Create(ctx, &entity); err != nil {
			if errors.Is(err, content.ErrDuplicateSlug) {
				result.Existing++
				continue
			}
			return result, fmt.Errorf("fixtures: create %s/%s: %w", doc.Collection, doc.Slug, err)
		}
		result.Created++
		logger.Info("fixtures.seed.created", "collection", doc.Collection, "slug", doc.Slug, "source", doc.Source)
	}
	return result, nil
}
