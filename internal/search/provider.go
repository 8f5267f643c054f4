package search

import (
	"context"
	"strings"
	"time"
)

// Article is a single search result from any source.
type Article struct {
	Title        string    `json:"title"`
	OriginalURL  string    `json:"originalUrl"`
	CanonicalURL string    `json:"canonicalUrl"`
	Snippet      string    `json:"snippet"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// Provider is the interface the primary keyword-search source implements.
type Provider interface {
	// Name returns the provider identifier (e.g., "naver")
	Name() string

	// SearchNews searches for news articles matching the query
	SearchNews(ctx context.Context, query string, maxResults int) ([]Article, error)
}

// ListingSource is the secondary listing-page source. Failures from this
// source degrade to an empty result and never abort aggregation.
type ListingSource interface {
	Name() string
	ListingNews(ctx context.Context) ([]Article, error)
}

// Canonicalize strips the query string and fragment from a URL. Article
// identity during deduplication is keyed on the canonical form.
func Canonicalize(u string) string {
	if idx := strings.IndexAny(u, "?#"); idx != -1 {
		return u[:idx]
	}
	return u
}
