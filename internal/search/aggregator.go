package search

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Aggregator fans a fixed keyword set out to the primary provider, runs the
// secondary listing fetch alongside, and merges everything into one
// deduplicated, recency-sorted result set.
type Aggregator struct {
	primary Provider
	listing ListingSource // optional
	queries []string
}

// NewAggregator creates an aggregator. listing may be nil to disable the
// secondary source.
func NewAggregator(primary Provider, listing ListingSource, queries []string) *Aggregator {
	if len(queries) == 0 {
		queries = DefaultQueries
	}
	return &Aggregator{
		primary: primary,
		listing: listing,
		queries: queries,
	}
}

// Aggregate runs all searches concurrently. Any primary-source failure is
// fatal to the whole aggregation; a listing-source failure is absorbed.
func (a *Aggregator) Aggregate(ctx context.Context) ([]Article, error) {
	start := time.Now()

	// Per-slot collection keeps merge order deterministic: keyword order
	// first, listing results last, regardless of completion order.
	perQuery := make([][]Article, len(a.queries))
	var listed []Article

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range a.queries {
		g.Go(func() error {
			results, err := a.primary.SearchNews(gctx, q, resultsPerQuery)
			if err != nil {
				return err
			}
			perQuery[i] = results
			return nil
		})
	}

	if a.listing != nil {
		g.Go(func() error {
			results, err := a.listing.ListingNews(gctx)
			if err != nil {
				log.Printf("[Aggregator] %s listing failed (ignored): %v", a.listing.Name(), err)
				return nil
			}
			listed = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []Article
	for _, results := range perQuery {
		merged = append(merged, results...)
	}
	merged = append(merged, listed...)

	deduped := dedupe(merged)

	// Newest first. SliceStable preserves first-seen order among articles
	// sharing a timestamp (listing items all carry the fetch time).
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})

	log.Printf("[Aggregator] %d queries + listing -> %d results, %d unique (%.0fms)",
		len(a.queries), len(merged), len(deduped), float64(time.Since(start).Milliseconds()))
	return deduped, nil
}

// dedupe keeps the first occurrence of each canonical URL.
func dedupe(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.CanonicalURL == "" || seen[a.CanonicalURL] {
			continue
		}
		seen[a.CanonicalURL] = true
		out = append(out, a)
	}
	return out
}
