package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"pocket-balance/pkg/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// GroqClient calls Groq through its OpenAI-compatible chat completions API.
type GroqClient struct {
	client     openai.Client
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGroqClient(cfg *config.GroqConfig, logger *zap.Logger) *GroqClient {
	httpClient := &http.Client{}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		// the advice service makes a single attempt bounded by its own timeout
		option.WithMaxRetries(0),
	)

	logger.Info("Using Groq model", zap.String("model", cfg.Model))

	return &GroqClient{
		client:     client,
		model:      cfg.Model,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *GroqClient) Generate(ctx context.Context, prompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(buildSystemInstruction()),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1000),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func (c *GroqClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
