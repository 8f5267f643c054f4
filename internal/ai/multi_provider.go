package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// MultiProvider tries providers in order until one returns a usable result.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider creates a new multi-provider fallback chain.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	if len(providers) == 0 {
		panic("at least one provider required")
	}
	return &MultiProvider{providers: providers}
}

func (m *MultiProvider) Name() string {
	names := make([]string, len(m.providers))
	for i, p := range m.providers {
		names[i] = p.Name()
	}
	return "Multi[" + strings.Join(names, "+") + "]"
}

// GenerateAnalysis tries each provider in order, returning the first success.
func (m *MultiProvider) GenerateAnalysis(ctx context.Context, prompt string) (string, error) {
	for i, provider := range m.providers {
		log.Printf("[MultiProvider] Trying %s for analysis (attempt %d/%d)...", provider.Name(), i+1, len(m.providers))
		content, err := provider.GenerateAnalysis(ctx, prompt)
		if err == nil {
			return content, nil
		}
		log.Printf("[MultiProvider] %s failed: %v", provider.Name(), err)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("all providers failed for analysis")
}
