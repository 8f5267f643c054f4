package fx

import (
	"log"
	"time"

	"github.com/kimjiho/fxbrief/internal/ai"
	"github.com/kimjiho/fxbrief/internal/cache"
	"github.com/kimjiho/fxbrief/internal/config"
	"github.com/kimjiho/fxbrief/internal/core"
	"github.com/kimjiho/fxbrief/internal/digest"
	"github.com/kimjiho/fxbrief/internal/enrich"
	"github.com/kimjiho/fxbrief/internal/finance"
	"github.com/kimjiho/fxbrief/internal/mailer"
	"github.com/kimjiho/fxbrief/internal/naver"
	"github.com/kimjiho/fxbrief/internal/report"
	"github.com/kimjiho/fxbrief/internal/scraper"
	"github.com/kimjiho/fxbrief/internal/search"

	"go.uber.org/fx"
)

// ============================================================================
// FX MODULES - Group related providers together
// ============================================================================

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// ScraperModule provides the article content fetcher
var ScraperModule = fx.Module("scraper",
	fx.Provide(scraper.NewScraper),
)

// FinanceModule provides the finance portal client (listing news + snapshot)
var FinanceModule = fx.Module("finance",
	fx.Provide(finance.NewClient),
)

// AIModule provides the generative-analysis provider
var AIModule = fx.Module("ai",
	fx.Provide(NewAnalysisProvider),
)

// SearchModule provides the multi-source aggregator
var SearchModule = fx.Module("search",
	fx.Provide(NewAggregator),
)

// CacheModule provides the report and snapshot caches
var CacheModule = fx.Module("cache",
	fx.Provide(
		NewReportCache,
		NewSnapshotCache,
	),
)

// CoreModule provides the briefing pipeline core
var CoreModule = fx.Module("core",
	fx.Provide(
		NewEnrichOrchestrator,
		NewSynthesizer,
		NewBriefingCore,
	),
)

// DigestModule provides the scheduled email digest
var DigestModule = fx.Module("digest",
	fx.Provide(
		NewMailSender,
		NewDigestWorker,
	),
)

// ============================================================================
// PROVIDER FUNCTIONS - Constructors that FX will call automatically
// ============================================================================

// NewAnalysisProvider creates the generative provider chain
func NewAnalysisProvider(cfg config.Config) ai.Provider {
	provider, err := ai.NewAnalysisProvider(cfg.GeminiAPIKey, cfg.OpenAIAPIKey, cfg.GroqAPIKey)
	if err != nil {
		log.Fatalf("[FX] %v", err)
	}
	log.Printf("[FX] AnalysisProvider initialized (%s)", provider.Name())
	return provider
}

// NewAggregator creates the multi-source search aggregator
func NewAggregator(cfg config.Config, financeClient *finance.Client) *search.Aggregator {
	var listing search.ListingSource
	if cfg.FinanceNewsEnabled {
		listing = financeClient
		log.Printf("[FX] Aggregator: finance listing source enabled")
	} else {
		log.Printf("[FX] Aggregator: finance listing source disabled")
	}

	primary := naver.NewClient(cfg.NaverClientID, cfg.NaverClientSecret)
	return search.NewAggregator(primary, listing, search.DefaultQueries)
}

// NewReportCache creates the analysis report cache
func NewReportCache(cfg config.Config) *cache.Cache[*report.AnalysisReport] {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	log.Printf("[FX] ReportCache initialized (TTL %s)", ttl)
	return cache.New[*report.AnalysisReport](ttl)
}

// NewSnapshotCache creates the lightweight snapshot cache
func NewSnapshotCache(cfg config.Config) *cache.Cache[finance.Snapshot] {
	ttl := time.Duration(cfg.SnapshotTTLSeconds) * time.Second
	log.Printf("[FX] SnapshotCache initialized (TTL %s)", ttl)
	return cache.New[finance.Snapshot](ttl)
}

// NewEnrichOrchestrator creates the batched enrichment orchestrator
func NewEnrichOrchestrator(cfg config.Config, s *scraper.Scraper) *enrich.Orchestrator {
	log.Printf("[FX] EnrichOrchestrator initialized (batch size %d)", cfg.EnrichBatchSize)
	return enrich.NewOrchestrator(s, cfg.EnrichBatchSize)
}

// NewSynthesizer creates the report synthesizer
func NewSynthesizer(cfg config.Config, provider ai.Provider) *report.Synthesizer {
	return report.NewSynthesizer(provider, cfg.MaxArticles, report.DefaultBodyLimit)
}

// NewBriefingCore creates the pipeline core
func NewBriefingCore(
	aggregator *search.Aggregator,
	orchestrator *enrich.Orchestrator,
	financeClient *finance.Client,
	synthesizer *report.Synthesizer,
	reports *cache.Cache[*report.AnalysisReport],
	snapshots *cache.Cache[finance.Snapshot],
) *core.BriefingCore {
	c := core.NewBriefingCore(aggregator, orchestrator, financeClient, synthesizer, reports, snapshots)
	log.Printf("[FX] BriefingCore initialized")
	return c
}

// NewMailSender creates the SMTP sender
func NewMailSender(cfg config.Config) *mailer.Sender {
	return mailer.NewSender(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}

// NewDigestWorker creates the digest worker (optional - nil without config)
func NewDigestWorker(cfg config.Config, briefingCore *core.BriefingCore, sender *mailer.Sender) *digest.Worker {
	if cfg.SMTPHost == "" || len(cfg.DigestRecipients) == 0 {
		log.Printf("[FX] DigestWorker disabled (no SMTP host or recipients)")
		return nil
	}

	worker := digest.NewWorker(briefingCore, sender, cfg.DigestRecipients, cfg.DigestCron)
	log.Printf("[FX] DigestWorker initialized (%d recipients)", len(cfg.DigestRecipients))
	return worker
}
