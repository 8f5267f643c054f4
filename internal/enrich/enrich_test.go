package enrich

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimjiho/fxbrief/internal/scraper"
	"github.com/kimjiho/fxbrief/internal/search"
)

type fakeFetcher struct {
	mu       sync.Mutex
	contents map[string]*scraper.Content
	inFlight int32
	maxSeen  int32
	delay    time.Duration
}

func (f *fakeFetcher) Fetch(ctx context.Context, articleURL string) *scraper.Content {
	cur := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if cur > f.maxSeen {
		f.maxSeen = cur
	}
	content := f.contents[articleURL]
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return content
}

func items(urls ...string) []search.Article {
	out := make([]search.Article, len(urls))
	for i, u := range urls {
		out[i] = search.Article{Title: "기사 " + u, CanonicalURL: u}
	}
	return out
}

func TestEnrichAllPreservesOrderAndLength(t *testing.T) {
	fetcher := &fakeFetcher{contents: map[string]*scraper.Content{
		"u1": {Text: "본문 1", Source: "연합뉴스"},
		"u3": {Text: "본문 3", Source: "한국경제"},
	}}

	o := NewOrchestrator(fetcher, 2)
	got := o.EnrichAll(context.Background(), items("u1", "u2", "u3", "u4", "u5"))

	require.Len(t, got, 5)
	for i, u := range []string{"u1", "u2", "u3", "u4", "u5"} {
		assert.Equal(t, u, got[i].CanonicalURL)
	}

	assert.True(t, got[0].Enriched)
	assert.Equal(t, "본문 1", got[0].FullText)
	assert.Equal(t, "연합뉴스", got[0].Source)

	assert.False(t, got[1].Enriched)
	assert.Empty(t, got[1].FullText)

	assert.True(t, got[2].Enriched)
	assert.False(t, got[3].Enriched)
	assert.False(t, got[4].Enriched)
}

func TestEnrichAllEmptyBodyIsNotEnriched(t *testing.T) {
	fetcher := &fakeFetcher{contents: map[string]*scraper.Content{
		"u1": {Text: "", Source: "연합뉴스"},
	}}

	o := NewOrchestrator(fetcher, 5)
	got := o.EnrichAll(context.Background(), items("u1"))

	require.Len(t, got, 1)
	assert.False(t, got[0].Enriched)
}

func TestEnrichAllBoundsConcurrency(t *testing.T) {
	contents := make(map[string]*scraper.Content)
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = string(rune('a' + i))
		contents[urls[i]] = &scraper.Content{Text: "본문"}
	}

	fetcher := &fakeFetcher{contents: contents, delay: 10 * time.Millisecond}
	o := NewOrchestrator(fetcher, 5)
	got := o.EnrichAll(context.Background(), items(urls...))

	require.Len(t, got, 12)
	assert.LessOrEqual(t, fetcher.maxSeen, int32(5))
}

func TestEnrichAllEmptyInput(t *testing.T) {
	o := NewOrchestrator(&fakeFetcher{}, 5)
	got := o.EnrichAll(context.Background(), nil)
	assert.Empty(t, got)
}

func TestNewOrchestratorDefaultBatchSize(t *testing.T) {
	o := NewOrchestrator(&fakeFetcher{}, 0)
	assert.Equal(t, DefaultBatchSize, o.batchSize)
}
