package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAIGenerator talks to any OpenAI-compatible /chat/completions endpoint
// (OpenRouter, Groq, a local Ollama).
type OpenAIGenerator struct {
	baseURL    string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema map[string]any `json:"json_schema,omitempty"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAIGenerator creates a Generator for baseURL, e.g. "https://openrouter.ai/api/v1".
func NewOpenAIGenerator(baseURL string, timeout time.Duration) *OpenAIGenerator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIGenerator{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *OpenAIGenerator) GenerateJSON(ctx context.Context, req Request) (string, error) {
	format := &responseFormat{Type: "json_object"}
	if req.Schema != nil {
		name := req.Schema.Name
		if name == "" {
			name = "response"
		}
		format = &responseFormat{
			Type:       "json_schema",
			JSONSchema: map[string]any{"name": name, "schema": req.Schema.JSONSchema()},
		}
	}
	text, err := g.chat(ctx, req, format)
	if err != nil {
		return "", err
	}
	return extractJSON(text), nil
}

func (g *OpenAIGenerator) GenerateText(ctx context.Context, req Request) (string, error) {
	return g.chat(ctx, req, nil)
}

func (g *OpenAIGenerator) chat(ctx context.Context, req Request, format *responseFormat) (string, error) {
	if req.APIKey == "" {
		return "", ErrNoCredential
	}
	body, err := json.Marshal(chatRequest{
		Model:          req.Model,
		Messages:       []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature:    0.7,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode chat response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("chat api error: %s", out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat api status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

// extractJSON strips markdown fences some chat models wrap around JSON.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
