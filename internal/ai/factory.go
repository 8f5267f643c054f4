package ai

import (
	"fmt"

	"github.com/kimjiho/fxbrief/internal/ai/models"
)

// NewAnalysisProvider builds the generative-analysis provider chain from the
// configured credentials: Gemini first, then OpenAI, then Groq. Returns a
// configuration error when no credential is present.
func NewAnalysisProvider(geminiKey, openAIKey, groqKey string) (Provider, error) {
	var providers []Provider

	if geminiKey != "" {
		providers = append(providers, NewGeminiProvider(geminiKey, models.AnalysisGeminiModel))
	}
	if openAIKey != "" {
		providers = append(providers, NewOpenAIProvider(openAIKey, models.AnalysisOpenAIModel))
	}
	if groqKey != "" {
		providers = append(providers, NewGroqProvider(groqKey, models.AnalysisGroqModel))
	}

	switch len(providers) {
	case 0:
		return nil, fmt.Errorf("no generative provider configured: set GEMINI_API_KEY, OPENAI_API_KEY or GROQ_API_KEY")
	case 1:
		return providers[0], nil
	default:
		return NewMultiProvider(providers...), nil
	}
}
