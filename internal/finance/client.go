// Package finance scrapes the Naver Finance portal: the exchange-rate news
// listing page (secondary search source) and the market index page used for
// the live reference snapshot.
package finance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const (
	marketIndexURL = "https://finance.naver.com/marketindex/"
	mainNewsURL    = "https://finance.naver.com/news/mainnews.naver?category=forex"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches and parses Naver Finance pages.
type Client struct {
	client   *http.Client
	now      func() time.Time
	indexURL string
	newsURL  string
}

// NewClient creates a finance portal client.
func NewClient() *Client {
	return &Client{
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
		indexURL: marketIndexURL,
		newsURL:  mainNewsURL,
	}
}

// fetchDocument GETs a finance page and parses it. The portal serves EUC-KR,
// so the body is decoded before goquery sees it.
func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code error: %d", resp.StatusCode)
	}

	reader := transform.NewReader(resp.Body, korean.EUCKR.NewDecoder())
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return doc, nil
}

// parseNumber parses a portal-formatted number like "1,392.50".
func parseNumber(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
