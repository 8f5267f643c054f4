package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/kimjiho/fxbrief/internal/ai"
	"github.com/kimjiho/fxbrief/internal/enrich"
	"github.com/kimjiho/fxbrief/internal/finance"
)

const (
	// DefaultMaxArticles caps how many enriched articles feed one prompt.
	DefaultMaxArticles = 50

	// DefaultBodyLimit truncates each article body inside the prompt.
	DefaultBodyLimit = 1000
)

// Synthesizer builds the prompt, invokes the generative provider and
// validates the structured result.
type Synthesizer struct {
	provider    ai.Provider
	maxArticles int
	bodyLimit   int
	now         func() time.Time
}

// NewSynthesizer creates a synthesizer. Non-positive limits select defaults.
func NewSynthesizer(provider ai.Provider, maxArticles, bodyLimit int) *Synthesizer {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}
	return &Synthesizer{
		provider:    provider,
		maxArticles: maxArticles,
		bodyLimit:   bodyLimit,
		now:         time.Now,
	}
}

// modelReport is the shape requested from the generator. Sources, snapshot
// and counters are attached by the synthesizer, never taken from the model.
type modelReport struct {
	Title            string         `json:"title"`
	Summary          string         `json:"summary"`
	DetailedAnalysis string         `json:"detailedAnalysis"`
	KeyPoints        []string       `json:"keyPoints"`
	MarketFactors    []MarketFactor `json:"marketFactors"`
	Sentiment        Sentiment      `json:"sentiment"`
	Outlook          Outlook        `json:"outlook"`
	InvestmentTip    string         `json:"investmentTip"`
}

// Synthesize produces the analysis report from enriched articles and the
// reference snapshot. Only articles with Enriched=true and non-empty text are
// submitted; the report's sources are exactly that slice.
func (s *Synthesizer) Synthesize(ctx context.Context, articles []enrich.Article, snapshot finance.Snapshot) (*AnalysisReport, error) {
	selected := selectEnriched(articles, s.maxArticles)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no enriched articles available for analysis")
	}

	log.Printf("[Synthesizer] Building prompt from %d articles (snapshot available: %v)",
		len(selected), !snapshot.IsZero())

	prompt := buildPrompt(selected, snapshot, s.bodyLimit)

	raw, err := s.provider.GenerateAnalysis(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analysis generation failed: %w", err)
	}

	var parsed modelReport
	if err := json.Unmarshal([]byte(ai.CleanJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}
	if parsed.Title == "" || parsed.Summary == "" {
		return nil, fmt.Errorf("analysis response is missing required fields")
	}

	report := &AnalysisReport{
		Title:             parsed.Title,
		Summary:           parsed.Summary,
		DetailedAnalysis:  parsed.DetailedAnalysis,
		KeyPoints:         parsed.KeyPoints,
		MarketFactors:     parsed.MarketFactors,
		Sentiment:         parsed.Sentiment,
		Outlook:           parsed.Outlook,
		InvestmentTip:     parsed.InvestmentTip,
		Sources:           buildSources(selected),
		ReferenceSnapshot: snapshot,
		GeneratedAt:       s.now(),
		EnrichedCount:     len(selected),
	}
	normalizeReport(report)

	log.Printf("[Synthesizer] Report generated: %q (%d key points, %d sources, sentiment %.2f)",
		report.Title, len(report.KeyPoints), len(report.Sources), report.Sentiment.Score)
	return report, nil
}

// selectEnriched filters to enriched, non-empty-content articles, capped at max.
func selectEnriched(articles []enrich.Article, max int) []enrich.Article {
	selected := make([]enrich.Article, 0, len(articles))
	for _, a := range articles {
		if !a.Enriched || a.FullText == "" {
			continue
		}
		selected = append(selected, a)
		if len(selected) == max {
			break
		}
	}
	return selected
}

// buildSources derives the report sources from the submitted articles.
func buildSources(articles []enrich.Article) []Source {
	sources := make([]Source, len(articles))
	for i, a := range articles {
		sources[i] = Source{
			Title:        a.Title,
			SourceName:   a.Source,
			URL:          a.CanonicalURL,
			ThumbnailURL: a.ThumbnailURL,
		}
	}
	return sources
}

// normalizeReport clamps the sentiment score and coerces enum fields to
// their documented value sets. Breakdown percentages pass through as-is.
func normalizeReport(r *AnalysisReport) {
	r.Sentiment.Score = clamp(r.Sentiment.Score, -1.0, 1.0)
	r.Sentiment.Overall = normalizeEnum(r.Sentiment.Overall, []string{"positive", "negative", "neutral"}, "neutral")
	r.Outlook.Direction = normalizeEnum(r.Outlook.Direction, []string{"up", "down", "stable", "uncertain"}, "uncertain")
	for i := range r.MarketFactors {
		r.MarketFactors[i].Impact = normalizeEnum(r.MarketFactors[i].Impact, []string{"positive", "negative", "neutral"}, "neutral")
	}
}

func normalizeEnum(v string, allowed []string, fallback string) string {
	lower := strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if lower == a {
			return a
		}
	}
	return fallback
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
