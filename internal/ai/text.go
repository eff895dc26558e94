package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// TextGenerator writes free-text workout guides for the template library.
type TextGenerator struct {
	gen      Generator
	creds    CredentialSource
	model    string
	language string
	logger   *slog.Logger
}

func NewTextGenerator(gen Generator, creds CredentialSource, opts Options, logger *slog.Logger) *TextGenerator {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextGenerator{
		gen:      gen,
		creds:    creds,
		model:    opts.Model,
		language: opts.Language,
		logger:   logger,
	}
}

// Generate returns the guide text for topic verbatim. No schema is applied.
func (t *TextGenerator) Generate(ctx context.Context, topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}

	key := ""
	if t.creds != nil {
		key = t.creds.APIKey()
	}
	if key == "" {
		t.logger.Warn("text generation skipped: no AI credential configured")
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, ErrNoCredential)
	}

	text, err := t.gen.GenerateText(ctx, Request{
		APIKey: key,
		Model:  t.model,
		Prompt: buildGuidePrompt(topic, t.language),
	})
	if err != nil {
		t.logger.Error("text generation request failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		t.logger.Error("text generation returned empty content")
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return text, nil
}
