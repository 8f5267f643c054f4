// Package enrich drives the content fetcher over aggregated search results
// in fixed-size concurrent batches.
package enrich

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/kimjiho/fxbrief/internal/scraper"
	"github.com/kimjiho/fxbrief/internal/search"
)

// DefaultBatchSize bounds concurrent outbound article fetches. Batches run
// sequentially as a politeness control against the news host.
const DefaultBatchSize = 5

// Article is a search result carrying its enrichment outcome. Enriched=false
// is a valid terminal state for an item, never an error.
type Article struct {
	search.Article
	FullText     string `json:"fullText"`
	Source       string `json:"source"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Enriched     bool   `json:"enriched"`
}

// Fetcher retrieves full content for one article URL, or nil on any miss.
type Fetcher interface {
	Fetch(ctx context.Context, articleURL string) *scraper.Content
}

// Orchestrator enriches aggregated results batch by batch.
type Orchestrator struct {
	fetcher   Fetcher
	batchSize int
}

// NewOrchestrator creates an orchestrator. batchSize <= 0 selects the default.
func NewOrchestrator(fetcher Fetcher, batchSize int) *Orchestrator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Orchestrator{
		fetcher:   fetcher,
		batchSize: batchSize,
	}
}

// EnrichAll produces exactly one Article per input item, in input order.
// Fetches run concurrently within a batch; each batch completes before the
// next starts.
func (o *Orchestrator) EnrichAll(ctx context.Context, items []search.Article) []Article {
	out := make([]Article, len(items))
	totalBatches := (len(items) + o.batchSize - 1) / o.batchSize
	start := time.Now()

	for batchStart := 0; batchStart < len(items); batchStart += o.batchSize {
		batchEnd := min(batchStart+o.batchSize, len(items))
		batchNum := batchStart/o.batchSize + 1

		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				out[i] = o.enrichOne(ctx, items[i])
			}(i)
		}
		wg.Wait()

		log.Printf("[Enrich] Batch %d/%d complete (%d articles)", batchNum, totalBatches, batchEnd-batchStart)
	}

	enriched := 0
	for _, a := range out {
		if a.Enriched {
			enriched++
		}
	}
	log.Printf("[Enrich] %d/%d articles enriched (%.0fms)",
		enriched, len(items), float64(time.Since(start).Milliseconds()))
	return out
}

func (o *Orchestrator) enrichOne(ctx context.Context, item search.Article) Article {
	article := Article{Article: item}

	content := o.fetcher.Fetch(ctx, item.CanonicalURL)
	if content == nil || content.Text == "" {
		return article
	}

	article.FullText = content.Text
	article.Source = content.Source
	article.ThumbnailURL = content.ThumbnailURL
	article.Enriched = true
	return article
}
