package ai

import "context"

// Provider defines the interface for generative-analysis providers.
type Provider interface {
	Name() string

	// GenerateAnalysis sends the analysis prompt and returns the raw model
	// output, which is expected to be a single JSON object.
	GenerateAnalysis(ctx context.Context, prompt string) (string, error)
}
