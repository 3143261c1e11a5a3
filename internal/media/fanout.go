package media

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves the given storage keys concurrently and returns the
// display URLs in key order. Each lookup is an independent, side-effect-free
// read: a failed or empty resolution degrades that slot to "" and never fails
// or blocks the others. Empty keys skip the lookup entirely.
func ResolveAll(ctx context.Context, r Resolver, keys ...string) []string {
	urls := make([]string, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		if key == "" {
			continue
		}
		i, key := i, key
		g.Go(func() error {
			url, err := r.Resolve(ctx, key)
			if err != nil {
				// Degrade to empty; the enclosing record must still render.
				return nil
			}
			urls[i] = url
			return nil
		})
	}
	// All goroutines return nil, so Wait only synchronizes.
	_ = g.Wait()
	return urls
}
