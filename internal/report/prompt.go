package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kimjiho/fxbrief/internal/enrich"
	"github.com/kimjiho/fxbrief/internal/finance"
	"github.com/kimjiho/fxbrief/internal/textutil"
	"github.com/kimjiho/fxbrief/prompts"
)

// buildPrompt assembles the analysis prompt: role framing, the snapshot
// context block (omitted when the snapshot is unavailable) and a numbered
// list of article titles with truncated bodies.
func buildPrompt(articles []enrich.Article, snapshot finance.Snapshot, bodyLimit int) string {
	context := ""
	if !snapshot.IsZero() {
		context = fmt.Sprintf(prompts.SnapshotContext,
			snapshot.USDKRW, snapshot.Change, snapshot.Trend, formatSecondaryRates(snapshot.Rates))
	}

	var list strings.Builder
	for i, a := range articles {
		list.WriteString(fmt.Sprintf("%d. %s\n", i+1, a.Title))
		list.WriteString(textutil.Truncate(a.FullText, bodyLimit))
		list.WriteString("\n\n")
	}

	return fmt.Sprintf(prompts.AnalysisReport, context, list.String())
}

func formatSecondaryRates(rates map[string]float64) string {
	if len(rates) == 0 {
		return ""
	}

	keys := make([]string, 0, len(rates))
	for k := range rates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s/KRW %.2f", k, rates[k]))
	}
	return "- Cross rates: " + strings.Join(parts, ", ") + "\n"
}
