package finance

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Trend direction values for a snapshot instrument.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Snapshot is a point-in-time view of the exchange market used to ground the
// analysis. The zero value is the documented "unavailable" state and is never
// treated as an error.
type Snapshot struct {
	USDKRW    float64            `json:"usdkrw"`
	Change    float64            `json:"change"`
	Trend     string             `json:"trend"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetchedAt"`
}

// IsZero reports whether the snapshot carries no usable market data.
func (s Snapshot) IsZero() bool {
	return s.USDKRW == 0
}

// secondaryInstruments maps the market-index listing labels to snapshot keys.
var secondaryInstruments = map[string]string{
	"유럽연합 EUR":    "EUR",
	"일본 JPY(100엔)": "JPY",
	"중국 CNY":       "CNY",
}

const primaryInstrument = "미국 USD"

// FetchSnapshot scrapes the market index page. Any fetch or parse failure
// yields a zero-valued snapshot; this method never returns an error.
func (c *Client) FetchSnapshot(ctx context.Context) Snapshot {
	start := time.Now()
	snapshot := Snapshot{
		Trend:     TrendStable,
		Rates:     map[string]float64{},
		FetchedAt: c.now(),
	}

	doc, err := c.fetchDocument(ctx, c.indexURL)
	if err != nil {
		log.Printf("[Finance] Snapshot fetch failed, returning empty snapshot: %v", err)
		return snapshot
	}

	doc.Find("#exchangeList li").Each(func(i int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find(".h_lst .blind").First().Text())
		if name == "" {
			return
		}

		info := sel.Find(".head_info").First()
		value := parseNumber(info.Find(".value").First().Text())
		change := parseNumber(info.Find(".change").First().Text())

		// The change figure is unsigned on the page; direction comes from
		// the indicator class, not from the number itself.
		trend := TrendStable
		if info.HasClass("point_up") {
			trend = TrendUp
		} else if info.HasClass("point_dn") {
			trend = TrendDown
			change = -change
		}

		if name == primaryInstrument {
			snapshot.USDKRW = value
			snapshot.Change = change
			snapshot.Trend = trend
			return
		}
		if key, ok := secondaryInstruments[name]; ok {
			snapshot.Rates[key] = value
		}
	})

	if snapshot.IsZero() {
		log.Printf("[Finance] Snapshot parse yielded no USD rate (%.0fms)", float64(time.Since(start).Milliseconds()))
	} else {
		log.Printf("[Finance] Snapshot: USD/KRW %.2f (%+.2f, %s), %d secondary rates (%.0fms)",
			snapshot.USDKRW, snapshot.Change, snapshot.Trend, len(snapshot.Rates), float64(time.Since(start).Milliseconds()))
	}
	return snapshot
}
