// Package ai builds generation requests for the trainer console and turns the
// responses into domain values. The generation capability itself is an
// external service reached through the Generator interface.
package ai

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrGenerationFailed is the single failure reported to callers for any
	// unusable generation: transport error, empty text or undecodable payload.
	ErrGenerationFailed = errors.New("generation failed")
	// ErrNoCredential means no API key is configured; no request was sent.
	ErrNoCredential = errors.New("no AI credential configured")
	// ErrEmptyTopic rejects a text-generation request without a topic.
	ErrEmptyTopic = errors.New("topic is required")
)

// Request is one call to the generation capability.
type Request struct {
	APIKey string
	Model  string
	Prompt string
	Schema *Schema // nil for free text
}

// Generator is the external generation capability.
type Generator interface {
	// GenerateJSON returns a JSON document conforming to req.Schema.
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// GenerateText returns free text for req.Prompt.
	GenerateText(ctx context.Context, req Request) (string, error)
}

// CredentialSource resolves the API key at call time.
type CredentialSource interface {
	APIKey() string
}

// StaticKey is a CredentialSource resolved once at the composition root.
type StaticKey string

func (k StaticKey) APIKey() string { return strings.TrimSpace(string(k)) }

// CredentialFunc adapts a function, e.g. an environment lookup, to CredentialSource.
type CredentialFunc func() string

func (f CredentialFunc) APIKey() string { return strings.TrimSpace(f()) }
