// Package report synthesizes the structured market analysis from enriched
// news articles and the live reference snapshot.
package report

import (
	"time"

	"github.com/kimjiho/fxbrief/internal/finance"
)

// MarketFactor is one driver the model identified in the corpus.
type MarketFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"` // positive, negative, neutral
	Description string `json:"description"`
}

// SentimentBreakdown holds percentage shares as reported by the generator.
// They are expected to approximate 100 but are not renormalized.
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// Sentiment is the aggregate market mood. Score is clamped to [-1.0, 1.0].
type Sentiment struct {
	Overall     string             `json:"overall"` // positive, negative, neutral
	Score       float64            `json:"score"`
	Description string             `json:"description"`
	Breakdown   SentimentBreakdown `json:"breakdown"`
}

// Outlook is the forward-looking view.
type Outlook struct {
	Direction   string   `json:"direction"` // up, down, stable, uncertain
	ShortTerm   string   `json:"shortTerm"`
	MidTerm     string   `json:"midTerm"`
	RiskFactors []string `json:"riskFactors"`
}

// Source references one enriched article that fed the analysis.
type Source struct {
	Title        string `json:"title"`
	SourceName   string `json:"sourceName"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// AnalysisReport is the complete briefing. It is immutable once produced;
// regeneration supersedes it wholesale.
type AnalysisReport struct {
	Title             string           `json:"title"`
	Summary           string           `json:"summary"`
	DetailedAnalysis  string           `json:"detailedAnalysis"`
	KeyPoints         []string         `json:"keyPoints"`
	MarketFactors     []MarketFactor   `json:"marketFactors"`
	Sentiment         Sentiment        `json:"sentiment"`
	Outlook           Outlook          `json:"outlook"`
	InvestmentTip     string           `json:"investmentTip"`
	Sources           []Source         `json:"sources"`
	ReferenceSnapshot finance.Snapshot `json:"referenceSnapshot"`
	GeneratedAt       time.Time        `json:"generatedAt"`
	EnrichedCount     int              `json:"enrichedCount"`
}
