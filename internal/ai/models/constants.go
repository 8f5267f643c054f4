// Package models pins the model names used per provider.
package models

const (
	// AnalysisGeminiModel is the default Gemini model for report synthesis.
	AnalysisGeminiModel = "gemini-2.0-flash"

	// AnalysisOpenAIModel is the default model on the OpenAI endpoint.
	AnalysisOpenAIModel = "gpt-4o-mini"

	// AnalysisGroqModel is the fallback model on the Groq endpoint.
	AnalysisGroqModel = "openai/gpt-oss-120b"
)
