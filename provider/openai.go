package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/kiranahq/lingocache"
)

// OpenAIProvider implements Provider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate translates a single text using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if !lingocache.IsKnownLanguage(targetLang) {
		return "", &lingocache.ProviderError{
			Message:   fmt.Sprintf("unsupported target language %q", targetLang),
			Retryable: false,
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", &lingocache.ProviderError{
			Message:   "empty source text",
			Retryable: false,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt(sourceLang, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(text)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &lingocache.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &lingocache.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAIProvider) systemPrompt(sourceLang, targetLang string) string {
	sourceName := lingocache.GetLanguageName(sourceLang)
	targetName := lingocache.GetLanguageName(targetLang)

	return fmt.Sprintf(`# Role
You are an expert native translator. You translate retail catalog content from %s to %s with the fluency of a highly educated native speaker.

# Style Guide
- **Natural Flow**: Avoid literal translations. Rephrase to sound completely natural to a native speaker.
- **Product Terms**: Keep brand names, units (kg, L, ml), and SKU codes exactly as they appear.
- **Interpolation**: Do NOT translate variables or placeholders (e.g., {{name}}, {count}, %%s).
- **Formatting**: Preserve meaningful whitespace and use idiomatic punctuation for %s.

# Format
Return a valid JSON object with a single key "translation" containing the translated string.
Example: {"translation": "translated text"}
Do NOT wrap the output in Markdown code blocks.`, sourceName, targetName, targetName)
}

func userMessage(text string) string {
	data, _ := json.Marshal(map[string]string{"text": text})
	return string(data)
}

func parseResponse(content string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if v, ok := obj["translation"]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
		// Fallback: first string value
		for _, v := range obj {
			if s, ok := v.(string); ok && s != "" {
				return s, nil
			}
		}
	}

	// Some models ignore JSON mode and return the bare string.
	trimmed := strings.TrimSpace(content)
	if trimmed != "" && !strings.HasPrefix(trimmed, "{") {
		return trimmed, nil
	}

	return "", &lingocache.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

// isRetryableError classifies provider failures. Throttling, server
// errors, and network timeouts are transient; everything else is
// permanent.
func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"rate limit", "timeout", "connection refused", "connection reset", "temporarily unavailable"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
