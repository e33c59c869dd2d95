package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/snapkitchen/pantry-api/internal/config"
)

// AIClient talks to an OpenAI-compatible chat-completions endpoint. Both
// the vision extractor and the recipe generator share one client.
type AIClient struct {
	cfg    *config.Config
	client *resty.Client
}

// NewAIClient creates a chat-completions client from config
func NewAIClient(cfg *config.Config) *AIClient {
	client := resty.New().
		SetBaseURL(cfg.AIBaseURL).
		SetTimeout(cfg.AITimeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AIAPIKey))

	return &AIClient{cfg: cfg, client: client}
}

// Enabled reports whether model calls are configured
func (a *AIClient) Enabled() bool {
	return a.cfg.AIEnabled && a.cfg.AIAPIKey != ""
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// imageContent builds the multimodal content block for a user message
// carrying a base64 image plus a text instruction.
func imageContent(imageBase64, text string) []map[string]interface{} {
	url := imageBase64
	if !strings.HasPrefix(url, "data:image/") {
		url = "data:image/jpeg;base64," + imageBase64
	}
	return []map[string]interface{}{
		{"type": "image_url", "image_url": map[string]string{"url": url}},
		{"type": "text", "text": text},
	}
}

// complete sends a chat-completion request and returns the raw assistant
// message content.
func (a *AIClient) complete(ctx context.Context, messages []chatMessage, maxTokens int, temperature float64) (string, error) {
	req := map[string]interface{}{
		"model":       a.cfg.AIModel,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse model response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in model response")
	}

	return result.Choices[0].Message.Content, nil
}

// stripModelFences removes markdown code fences that models wrap around
// JSON output despite instructions not to.
func stripModelFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// looksLikeJSON reports whether stripped model output starts with a JSON
// array or object.
func looksLikeJSON(content string) bool {
	return strings.HasPrefix(content, "[") || strings.HasPrefix(content, "{")
}
