// Package core runs the briefing pipeline: aggregate news, enrich article
// content, synthesize the analysis and memoize the result.
package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kimjiho/fxbrief/internal/cache"
	"github.com/kimjiho/fxbrief/internal/enrich"
	"github.com/kimjiho/fxbrief/internal/finance"
	"github.com/kimjiho/fxbrief/internal/report"
	"github.com/kimjiho/fxbrief/internal/search"
)

// Cache tags for the two memoized products.
const (
	ReportTag   = "analysis:usd-krw"
	SnapshotTag = "snapshot:usd-krw"
)

// SnapshotSource supplies the live reference snapshot.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) finance.Snapshot
}

// BriefingCore owns the end-to-end pipeline and its caches.
type BriefingCore struct {
	aggregator  *search.Aggregator
	enricher    *enrich.Orchestrator
	finance     SnapshotSource
	synthesizer *report.Synthesizer
	reports     *cache.Cache[*report.AnalysisReport]
	snapshots   *cache.Cache[finance.Snapshot]
}

// NewBriefingCore creates the pipeline core.
func NewBriefingCore(
	aggregator *search.Aggregator,
	enricher *enrich.Orchestrator,
	financeClient SnapshotSource,
	synthesizer *report.Synthesizer,
	reports *cache.Cache[*report.AnalysisReport],
	snapshots *cache.Cache[finance.Snapshot],
) *BriefingCore {
	return &BriefingCore{
		aggregator:  aggregator,
		enricher:    enricher,
		finance:     financeClient,
		synthesizer: synthesizer,
		reports:     reports,
		snapshots:   snapshots,
	}
}

// GetReport returns the current analysis report, serving the cached value
// while fresh. refresh bypasses the cache and replaces the stored report.
// The returned bool reports whether the value came from cache.
func (c *BriefingCore) GetReport(ctx context.Context, refresh bool) (*report.AnalysisReport, bool, error) {
	if refresh {
		r, err := c.reports.ForceFresh(ctx, ReportTag, c.generate)
		return r, false, err
	}
	return c.reports.GetOrCompute(ctx, ReportTag, c.generate)
}

// generate runs the full pipeline once. The request either completes every
// phase or fails as a whole; there is no partial result.
func (c *BriefingCore) generate(ctx context.Context) (*report.AnalysisReport, error) {
	start := time.Now()
	log.Printf("[Briefing] Pipeline started")

	// The snapshot fetch never fails; run it alongside aggregation.
	snapshotCh := make(chan finance.Snapshot, 1)
	go func() {
		snapshotCh <- c.finance.FetchSnapshot(ctx)
	}()

	items, err := c.aggregator.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("news aggregation failed: %w", err)
	}

	enriched := c.enricher.EnrichAll(ctx, items)
	snapshot := <-snapshotCh

	result, err := c.synthesizer.Synthesize(ctx, enriched, snapshot)
	if err != nil {
		return nil, err
	}

	log.Printf("[Briefing] Pipeline complete: %d articles, %d sources (%.1fs)",
		len(items), len(result.Sources), time.Since(start).Seconds())
	return result, nil
}

// CurrentSnapshot serves the lightweight reference snapshot through its own
// short-lived cache.
func (c *BriefingCore) CurrentSnapshot(ctx context.Context) (finance.Snapshot, bool) {
	snapshot, cached, _ := c.snapshots.GetOrCompute(ctx, SnapshotTag, func(ctx context.Context) (finance.Snapshot, error) {
		return c.finance.FetchSnapshot(ctx), nil
	})
	return snapshot, cached
}

// Invalidate expires cached entries. An empty tag or "all" clears both
// caches; otherwise only the matching tag is cleared. Returns the tags that
// were actually removed.
func (c *BriefingCore) Invalidate(tag string) []string {
	if tag == "" || tag == "all" {
		cleared := c.reports.InvalidateAll()
		cleared = append(cleared, c.snapshots.InvalidateAll()...)
		return cleared
	}

	var cleared []string
	if c.reports.Invalidate(tag) {
		cleared = append(cleared, tag)
	} else if c.snapshots.Invalidate(tag) {
		cleared = append(cleared, tag)
	}
	return cleared
}
