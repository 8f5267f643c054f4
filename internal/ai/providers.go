package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ProviderConfig holds configuration for an OpenAI-compatible provider.
type ProviderConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	Model   string
}

// BaseProvider implements Provider against OpenAI-compatible chat APIs.
type BaseProvider struct {
	config ProviderConfig
	client *http.Client
}

// NewBaseProvider creates a new base provider.
func NewBaseProvider(config ProviderConfig) *BaseProvider {
	return &BaseProvider{
		config: config,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *BaseProvider) Name() string {
	return p.config.Name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateAnalysis sends the prompt in JSON mode and returns the raw output.
func (p *BaseProvider) GenerateAnalysis(ctx context.Context, prompt string) (string, error) {
	if p.config.APIKey == "" {
		return "", fmt.Errorf("%s API key is not configured", p.config.Name)
	}

	log.Printf("[%s.Analysis] Sending request (prompt %d chars)...", p.config.Name, len(prompt))

	reqBody := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.config.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[%s.Analysis] Response status: %d", p.config.Name, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("api error: %d %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	log.Printf("[%s.Analysis] Success, response length: %d", p.config.Name, len(content))
	return content, nil
}

// CleanJSON strips markdown code fences some models wrap around JSON output.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Convenience constructors for specific providers

// NewOpenAIProvider creates a provider against the OpenAI API.
func NewOpenAIProvider(apiKey, model string) *BaseProvider {
	return NewBaseProvider(ProviderConfig{
		Name:    "OpenAI",
		BaseURL: "https://api.openai.com/v1/chat/completions",
		APIKey:  apiKey,
		Model:   model,
	})
}

// NewGroqProvider creates a provider against the Groq API.
func NewGroqProvider(apiKey, model string) *BaseProvider {
	return NewBaseProvider(ProviderConfig{
		Name:    "Groq",
		BaseURL: "https://api.groq.com/openai/v1/chat/completions",
		APIKey:  apiKey,
		Model:   model,
	})
}
