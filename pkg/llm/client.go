package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Client provides access to OpenAI-compatible LLM endpoints.
type Client struct {
	client      *openai.Client
	endpoint    string
	chatModel   string
	visionModel string
	logger      *zap.Logger
}

// Config holds configuration for creating an LLM client.
type Config struct {
	Endpoint    string // Base URL, e.g., "https://api.openai.com/v1"
	ChatModel   string // Model name, e.g., "gpt-4o"
	VisionModel string // Vision-capable model; defaults to ChatModel
	APIKey      string // Optional for local endpoints
}

// NewClient creates a new OpenAI-compatible LLM client.
func NewClient(cfg *Config, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if cfg.ChatModel == "" {
		return nil, fmt.Errorf("chat model is required")
	}

	visionModel := cfg.VisionModel
	if visionModel == "" {
		visionModel = cfg.ChatModel
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		endpoint:    cfg.Endpoint,
		chatModel:   cfg.ChatModel,
		visionModel: visionModel,
		logger:      logger.Named("llm"),
	}, nil
}

// Complete generates a chat completion for an ordered message sequence.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	reqMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		reqMessages[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}

	c.logger.Debug("LLM chat request",
		zap.String("model", c.chatModel),
		zap.Int("messages", len(messages)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: reqMessages,
	})
	if err != nil {
		c.logger.Error("LLM chat request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	content, err := c.firstChoice(resp)
	if err != nil {
		return "", err
	}

	c.logger.Info("LLM chat request completed",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}

// TranscribeImage submits an image with a transcription instruction to the
// vision model and returns the transcribed text.
func (c *Client) TranscribeImage(ctx context.Context, imageDataURL string, instruction string) (string, error) {
	c.logger.Debug("LLM vision request",
		zap.String("model", c.visionModel),
		zap.Int("image_len", len(imageDataURL)))

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL},
					},
				},
			},
		},
	})
	if err != nil {
		c.logger.Error("LLM vision request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", ClassifyError(err)
	}

	content, err := c.firstChoice(resp)
	if err != nil {
		return "", err
	}

	c.logger.Info("LLM vision request completed",
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("elapsed", time.Since(start)))

	return content, nil
}

// Critique asks the model to assess content against an instruction.
// The model is put in JSON mode and its verdict is returned as an opaque
// payload; callers must not assume a fixed schema.
func (c *Client) Critique(ctx context.Context, instruction string, content string) (json.RawMessage, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instruction},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("LLM critique request failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, ClassifyError(err)
	}

	text, err := c.firstChoice(resp)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(text)) {
		return nil, NewError(ErrorTypeResponse, "model returned invalid JSON verdict", false, nil)
	}

	c.logger.Info("LLM critique request completed",
		zap.Duration("elapsed", time.Since(start)))

	return json.RawMessage(text), nil
}

// firstChoice extracts the first choice's content, mapping an empty choice
// list and safety-filtered finishes to classified errors.
func (c *Client) firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", NewError(ErrorTypeResponse, "no choices in response", false, nil)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", NewError(ErrorTypeSafety, "response blocked by safety filter", false, nil)
	}

	return choice.Message.Content, nil
}

// GetModel returns the configured chat model name.
func (c *Client) GetModel() string {
	return c.chatModel
}

// GetEndpoint returns the configured endpoint.
func (c *Client) GetEndpoint() string {
	return c.endpoint
}
