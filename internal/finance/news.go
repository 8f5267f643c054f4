package finance

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kimjiho/fxbrief/internal/search"
	"github.com/kimjiho/fxbrief/internal/textutil"
)

// Name returns the source identifier
func (c *Client) Name() string {
	return "naver-finance"
}

// ListingNews scrapes the forex news listing page. The listing carries no
// publish timestamps we can rely on, so items are stamped with the fetch
// time; this skews the recency sort against dated primary results and is a
// known limitation.
func (c *Client) ListingNews(ctx context.Context) ([]search.Article, error) {
	doc, err := c.fetchDocument(ctx, c.newsURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(c.newsURL)
	if err != nil {
		return nil, err
	}

	fetchedAt := c.now()
	var articles []search.Article

	doc.Find(".mainnews_list .articleSubject a, ul.realtimeNewsList dd.articleSubject a").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title = strings.TrimSpace(sel.AttrOr("title", ""))
		}
		href, ok := sel.Attr("href")
		if title == "" || !ok || href == "" {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()

		// Legacy read links carry their identity in the query string;
		// stripping it would collapse every item to one canonical URL.
		canonical := search.Canonicalize(absolute)
		if strings.Contains(absolute, "article_id=") {
			canonical = absolute
		}

		snippet := ""
		if summary := sel.Closest("dl, li").Find(".articleSummary").First(); summary.Length() > 0 {
			snippet = textutil.Normalize(summary.Contents().Not("span").Text())
		}

		articles = append(articles, search.Article{
			Title:        textutil.Normalize(title),
			OriginalURL:  absolute,
			CanonicalURL: canonical,
			Snippet:      textutil.Truncate(snippet, 200),
			PublishedAt:  fetchedAt,
		})
	})

	log.Printf("[Finance] Listing page yielded %d articles", len(articles))
	return articles, nil
}
