package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pocket-balance/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chatCompletionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

func newTestGroqClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		Model:   "llama-3.3-70b-versatile",
		BaseURL: server.URL,
	}, zap.NewNop())
}

func TestGroqClient_Generate(t *testing.T) {
	var got chatCompletionRequest
	client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","model":"llama-3.3-70b-versatile","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  {\"advice\":\"ok\"}  "}}]}`))
	})

	content, err := client.Generate(context.Background(), "analyze this")

	require.NoError(t, err)
	assert.Equal(t, `{"advice":"ok"}`, content)
	assert.Equal(t, "llama-3.3-70b-versatile", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 1000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "analyze this", got.Messages[1].Content)
}

func TestGroqClient_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyResponse},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`, wantErr: ErrEmptyResponse},
		{name: "invalid body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			content, err := client.Generate(context.Background(), "prompt")

			assert.Empty(t, content)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestGroqClient_Generate_ContextCanceled(t *testing.T) {
	client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	content, err := client.Generate(ctx, "prompt")
	assert.Empty(t, content)
	assert.Error(t, err)
}

func TestNewLLMClient(t *testing.T) {
	ctx := context.Background()

	client, err := NewLLMClient(ctx, &config.Config{LLM: config.LLMConfig{Provider: config.ProviderNone}}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewLLMClient(ctx, &config.Config{
		LLM:  config.LLMConfig{Provider: config.ProviderGroq},
		Groq: config.GroqConfig{APIKey: "k", Model: "m", BaseURL: "http://localhost"},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &GroqClient{}, client)
	assert.NoError(t, client.Close())

	_, err = NewLLMClient(ctx, &config.Config{LLM: config.LLMConfig{Provider: "openai"}}, zap.NewNop())
	assert.Error(t, err)
}
