package service

import (
	"context"
	"fmt"
	"strings"

	"pocket-balance/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// NewLLMClient builds the client for cfg.LLM.Provider. It returns a nil client for
// the "none" provider, which the advice service treats as always unavailable.
func NewLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (LLMClient, error) {
	switch cfg.LLM.Provider {
	case config.ProviderNone:
		logger.Warn("No LLM provider configured, budget advice will use fallback answers")
		return nil, nil
	case config.ProviderGroq:
		return NewGroqClient(&cfg.Groq, logger), nil
	case config.ProviderGigaChat:
		return NewGigaChatClient(ctx, &cfg.GigaChat, logger)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, &cfg.Gemini, logger)
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
}

func buildSystemInstruction() string {
	return `You are a personal budget assistant. You review a household's income, essential payments,
personal spending and savings for a period and give short, practical, non-judgemental advice.

Rules:
- Base every statement on the totals you are given; do not invent transactions or amounts.
- Suggestions must be concrete actions a person can take this month.
- Classify risk as "low" when there is a healthy surplus and regular saving, "medium" when the
  balance is thin or savings are low, and "high" when spending exceeds income.
- Always answer with a single valid JSON object and nothing else.`
}

// GigaChatClient talks to Sber GigaChat through the gigago SDK.
type GigaChatClient struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func NewGigaChatClient(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}

	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.7

	logger.Info("Using GigaChat model", zap.String("model", cfg.Model))

	return &GigaChatClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GigaChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *GigaChatClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
