package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiGenerator calls the Gemini API. A client is built per request so the
// key resolved at call time is the one used.
type GeminiGenerator struct {
	httpClient *http.Client
}

// NewGeminiGenerator creates a Gemini-backed Generator.
func NewGeminiGenerator(timeout time.Duration) *GeminiGenerator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiGenerator{httpClient: &http.Client{Timeout: timeout}}
}

func (g *GeminiGenerator) GenerateJSON(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
		// Structured plans do not benefit from thinking; keep latency low.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
	return g.generate(ctx, req, cfg)
}

func (g *GeminiGenerator) GenerateText(ctx context.Context, req Request) (string, error) {
	return g.generate(ctx, req, nil)
}

func (g *GeminiGenerator) generate(ctx context.Context, req Request, cfg *genai.GenerateContentConfig) (string, error) {
	if req.APIKey == "" {
		return "", ErrNoCredential
	}
	model := req.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = toGenaiSchema(v)
		}
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeInteger:
		return genai.TypeInteger
	default:
		return genai.TypeString
	}
}
