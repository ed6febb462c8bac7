// Package llm provides generation and embedding clients for
// OpenAI-compatible hosted model APIs.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/bunfree-ai/bunfree-engine/engine/domain"
)

// ChatConfig configures the generation client.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// RPS caps generation calls per second; 0 disables limiting.
	RPS   float64
	Burst int
}

// ChatClient produces text completions for rendered prompts.
type ChatClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewChatClient creates a generation client.
func NewChatClient(cfg ChatConfig, logger *slog.Logger) *ChatClient {
	if logger == nil {
		logger = slog.Default()
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	return &ChatClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		limiter: limiter,
		logger:  logger,
	}
}

// Generate sends a single rendered prompt and returns the text completion.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", parseAPIError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: %w", domain.ErrEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}

// EmbedConfig configures the embedding client.
type EmbedConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

// EmbedClient converts text into fixed-length vectors.
type EmbedClient struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// NewEmbedClient creates an embedding client.
func NewEmbedClient(cfg EmbedConfig) *EmbedClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &EmbedClient{
		client:     openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
	}
}

// Embed vectorizes a single query string.
func (e *EmbedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dimensions > 0 {
		req.Dimensions = e.dimensions
	}

	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, parseAPIError("embedding", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding: %w", domain.ErrEmptyCompletion)
	}
	return resp.Data[0].Embedding, nil
}
