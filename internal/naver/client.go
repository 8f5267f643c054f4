package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kimjiho/fxbrief/internal/search"
	"github.com/kimjiho/fxbrief/internal/textutil"
)

const apiURL = "https://openapi.naver.com/v1/search/news.json"

// Client is a Naver Open API news search client.
type Client struct {
	clientID     string
	clientSecret string
	client       *http.Client
	baseURL      string
}

// NewClient creates a new Naver news search client.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
		baseURL:      apiURL,
	}
}

// newsItem is a single item from the news search response. Title and
// description arrive with <b> highlight tags and encoded entities.
type newsItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"` // RFC1123Z, e.g. "Mon, 02 Jan 2006 15:04:05 +0900"
}

type newsResponse struct {
	Total int        `json:"total"`
	Items []newsItem `json:"items"`
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return "naver"
}

// SearchNews performs a news search sorted by recency. Both credentials are
// required; their absence is a configuration error surfaced before any
// network call.
func (c *Client) SearchNews(ctx context.Context, query string, maxResults int) ([]search.Article, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("naver search credentials are not configured (NAVER_CLIENT_ID / NAVER_CLIENT_SECRET)")
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(maxResults))
	params.Set("sort", "date")

	log.Printf("[Naver] Searching for: %q (max %d results)", query, maxResults)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var newsResp newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&newsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	articles := make([]search.Article, 0, len(newsResp.Items))
	for _, item := range newsResp.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		publishedAt, err := time.Parse(time.RFC1123Z, item.PubDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		originalURL := item.OriginalLink
		if originalURL == "" {
			originalURL = item.Link
		}

		articles = append(articles, search.Article{
			Title:        textutil.Normalize(item.Title),
			OriginalURL:  originalURL,
			CanonicalURL: search.Canonicalize(item.Link),
			Snippet:      textutil.Normalize(item.Description),
			PublishedAt:  publishedAt,
		})
	}

	log.Printf("[Naver] Found %d results for query: %s", len(articles), query)
	return articles, nil
}
