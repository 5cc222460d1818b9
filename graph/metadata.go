package graph

import (
	"context"
	"fmt"
)

// fetchCategories requests categories batch by batch, in order, and
// merges them into one map. The first failing batch aborts the fetch.
func (b *Builder) fetchCategories(ctx context.Context, titles []string, lang string) (map[string][]string, error) {
	merged := make(map[string][]string, len(titles))
	batches := (len(titles) + b.batchSize - 1) / b.batchSize

	for n := 0; n < batches; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := n * b.batchSize
		end := min(start+b.batchSize, len(titles))
		batch := titles[start:end]

		got, err := b.categories.Categories(ctx, batch, lang)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: batch %d of %d: %w", ErrMetadataFetch, n+1, batches, err)
		}
		for title, cats := range got {
			merged[title] = append(merged[title], cats...)
		}

		b.logger.Debug("fetched category batch", "batch", n+1, "batches", batches, "titles", len(batch))
		b.monitor.BatchFetched(n+1, batches, end, len(titles))
	}

	return merged, nil
}
