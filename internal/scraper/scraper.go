package scraper

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/kimjiho/fxbrief/internal/textutil"
	"golang.org/x/time/rate"
)

// Only article pages on the news host are fetched; everything else is a
// deliberate scope filter, not an error.
var articleHostPattern = regexp.MustCompile(`^https?://n\.news\.naver\.com/`)

const (
	// maxContentLength bounds the extracted body so one long-form piece
	// cannot dominate the analysis prompt budget.
	maxContentLength = 3000

	fetchTimeout = 10 * time.Second
)

// Ordered preference lists; first non-empty match wins.
var (
	contentSelectors = []string{
		"#dic_area",
		"#newsct_article",
		"#articleBodyContents",
		"#articeBody",
		".article_body",
	}
	sourceSelectors = []string{
		".media_end_head_top_logo img",
		".press_logo img",
		".media_end_head_top a img",
	}
)

// Content is the best-effort extraction result for one article URL.
type Content struct {
	Text         string
	Source       string
	ThumbnailURL string
}

// Scraper fetches full article bodies from supported news pages.
type Scraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewScraper creates a scraper with a politeness limit on outbound fetches.
func NewScraper() *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
}

// Fetch retrieves and extracts one article. It returns nil for unsupported
// hosts, fetch failures and empty extractions; errors never propagate.
func (s *Scraper) Fetch(ctx context.Context, articleURL string) *Content {
	if !articleHostPattern.MatchString(articleURL) {
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", articleURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Scraper] Fetch failed for %s: %v", articleURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Scraper] Status %d for %s", resp.StatusCode, articleURL)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		log.Printf("[Scraper] Parse failed for %s: %v", articleURL, err)
		return nil
	}

	text := extractBody(doc)
	if text == "" {
		log.Printf("[Scraper] No extractable body for %s", articleURL)
		return nil
	}

	content := &Content{
		Text:         textutil.Truncate(text, maxContentLength),
		Source:       extractSource(doc),
		ThumbnailURL: doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""),
	}

	log.Printf("[Scraper] Extracted %d chars from %s (%.0fms)",
		len(content.Text), articleURL, float64(time.Since(start).Milliseconds()))
	return content
}

// extractBody tries each content selector in order and returns the first
// non-empty body text with scripts and photo captions removed.
func extractBody(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		selection := doc.Find(selector).First()
		if selection.Length() == 0 {
			continue
		}

		selection.Find("script, style, .end_photo_org, .img_desc, .vod_player_wrap").Remove()

		text := collapseWhitespace(selection.Text())
		if text != "" {
			return text
		}
	}
	return ""
}

// extractSource returns the publisher name from the first matching logo
// element, falling back to OpenGraph metadata.
func extractSource(doc *goquery.Document) string {
	for _, selector := range sourceSelectors {
		if name := strings.TrimSpace(doc.Find(selector).First().AttrOr("alt", "")); name != "" {
			return name
		}
	}
	return strings.TrimSpace(doc.Find(`meta[property="og:article:author"]`).First().AttrOr("content", ""))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
