// Package llm provides OpenAI-compatible LLM client functionality.
package llm

import (
	"context"
	"encoding/json"
)

// Message is one turn of a chat completion request.
type Message struct {
	Role    string
	Content string
}

// LLMClient defines the interface for LLM operations: grounded chat
// completion, vision transcription, and structured critique.
// Use this interface for dependency injection to enable mocking in tests.
type LLMClient interface {
	// Complete generates a chat completion for an ordered message sequence.
	Complete(ctx context.Context, messages []Message) (string, error)

	// TranscribeImage submits an image (as a base64 data URL) with a
	// transcription instruction to the vision model and returns the text.
	TranscribeImage(ctx context.Context, imageDataURL string, instruction string) (string, error)

	// Critique asks the model to assess content against an instruction,
	// returning the model's JSON verdict as an opaque payload.
	Critique(ctx context.Context, instruction string, content string) (json.RawMessage, error)

	// GetModel returns the configured chat model name.
	GetModel() string

	// GetEndpoint returns the configured endpoint.
	GetEndpoint() string
}

// Ensure Client implements LLMClient at compile time.
var _ LLMClient = (*Client)(nil)
