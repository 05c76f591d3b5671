package llm

import (
	"context"
	"encoding/json"
)

// MockLLMClient is a configurable mock for testing LLM functionality.
// Set the function fields to control behavior in tests.
type MockLLMClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty string and nil error.
	CompleteFunc func(ctx context.Context, messages []Message) (string, error)

	// TranscribeImageFunc is called when TranscribeImage is invoked.
	// If nil, returns empty string and nil error.
	TranscribeImageFunc func(ctx context.Context, imageDataURL string, instruction string) (string, error)

	// CritiqueFunc is called when Critique is invoked.
	// If nil, returns an empty JSON object and nil error.
	CritiqueFunc func(ctx context.Context, instruction string, content string) (json.RawMessage, error)

	// Model is returned by GetModel. Defaults to "mock-model".
	Model string

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	CompleteCalls        int
	TranscribeImageCalls int
	CritiqueCalls        int

	// LastMessages records the argument of the most recent Complete call.
	LastMessages []Message
}

// NewMockLLMClient creates a new mock with sensible defaults.
func NewMockLLMClient() *MockLLMClient {
	return &MockLLMClient{
		Model:    "mock-model",
		Endpoint: "http://mock-endpoint",
	}
}

// Complete implements LLMClient.
func (m *MockLLMClient) Complete(ctx context.Context, messages []Message) (string, error) {
	m.CompleteCalls++
	m.LastMessages = messages
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, messages)
	}
	return "", nil
}

// TranscribeImage implements LLMClient.
func (m *MockLLMClient) TranscribeImage(ctx context.Context, imageDataURL string, instruction string) (string, error) {
	m.TranscribeImageCalls++
	if m.TranscribeImageFunc != nil {
		return m.TranscribeImageFunc(ctx, imageDataURL, instruction)
	}
	return "", nil
}

// Critique implements LLMClient.
func (m *MockLLMClient) Critique(ctx context.Context, instruction string, content string) (json.RawMessage, error) {
	m.CritiqueCalls++
	if m.CritiqueFunc != nil {
		return m.CritiqueFunc(ctx, instruction, content)
	}
	return json.RawMessage(`{}`), nil
}

// GetModel implements LLMClient.
func (m *MockLLMClient) GetModel() string {
	return m.Model
}

// GetEndpoint implements LLMClient.
func (m *MockLLMClient) GetEndpoint() string {
	return m.Endpoint
}

// Ensure MockLLMClient implements LLMClient at compile time.
var _ LLMClient = (*MockLLMClient)(nil)
