package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pocket-balance/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockLLMClient struct {
	mock.Mock
}

func (m *mockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockLLMClient) Close() error {
	return nil
}

func newTestAdviceService(t *testing.T) (*AdviceService, *mockLLMClient) {
	t.Helper()
	client := &mockLLMClient{}
	t.Cleanup(func() { client.AssertExpectations(t) })
	return NewAdviceService(client, time.Second, "PKR", zap.NewNop()), client
}

func monthlySnapshot() models.FinancialSnapshot {
	return Aggregate([]models.Transaction{
		tx("1", models.CategoryIncoming, "5000"),
		tx("2", models.CategoryPayments, "2000"),
		tx("3", models.CategoryPersonal, "1000"),
		tx("4", models.CategorySavings, "500"),
	})
}

func TestRequestAdvice_ParsesStructuredResponse(t *testing.T) {
	svc, client := newTestAdviceService(t)

	client.On("Generate", mock.Anything, mock.Anything).Return(`{
		"advice": "You are saving 10% of income.",
		"suggestions": ["Raise savings to 20%", "Cut dining out", "Build an emergency fund"],
		"riskLevel": "low"
	}`, nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.False(t, result.Degraded)
	assert.NoError(t, result.Reason)
	assert.Equal(t, "You are saving 10% of income.", result.Advice.Advice)
	assert.Equal(t, []string{"Raise savings to 20%", "Cut dining out", "Build an emergency fund"}, result.Advice.Suggestions)
	assert.Equal(t, models.RiskLow, result.Advice.RiskLevel)
}

func TestRequestAdvice_PromptEmbedsTotals(t *testing.T) {
	svc, client := newTestAdviceService(t)

	client.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "Total Income: PKR 5,000.00") &&
			strings.Contains(prompt, "Total Payments (Essential): PKR 2,000.00") &&
			strings.Contains(prompt, "Total Personal Spending: PKR 1,000.00") &&
			strings.Contains(prompt, "Total Savings: PKR 500.00") &&
			strings.Contains(prompt, "Remaining Balance: PKR 1,500.00") &&
			strings.Contains(prompt, "Number of transactions: 4") &&
			strings.Contains(prompt, `"riskLevel": "low|medium|high"`)
	})).Return(`{"advice":"ok","suggestions":["a"],"riskLevel":"medium"}`, nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())
	assert.False(t, result.Degraded)
}

func TestRequestAdvice_AppliesTimeout(t *testing.T) {
	svc, client := newTestAdviceService(t)

	client.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Second
	}), mock.Anything).Return(`{"advice":"ok","suggestions":["a"],"riskLevel":"high"}`, nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())
	assert.Equal(t, models.RiskHigh, result.Advice.RiskLevel)
}

func TestRequestAdvice_NetworkErrorReturnsFallback(t *testing.T) {
	svc, client := newTestAdviceService(t)
	netErr := errors.New("dial tcp: connection refused")

	client.On("Generate", mock.Anything, mock.Anything).Return("", netErr).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Reason, ErrAdviceUnavailable)
	assert.ErrorIs(t, result.Reason, netErr)
	assert.Equal(t, FallbackAdvice(), result.Advice)
	assert.Equal(t, models.RiskMedium, result.Advice.RiskLevel)
	assert.Equal(t, DefaultSuggestions, result.Advice.Suggestions)
}

func TestRequestAdvice_TimeoutReturnsFallback(t *testing.T) {
	client := &mockLLMClient{}
	svc := NewAdviceService(client, 10*time.Millisecond, "PKR", zap.NewNop())

	client.On("Generate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}).Return("", context.DeadlineExceeded).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Reason, context.DeadlineExceeded)
	assert.Equal(t, FallbackAdvice(), result.Advice)
	client.AssertExpectations(t)
}

func TestRequestAdvice_EmptyResponseReturnsFallback(t *testing.T) {
	svc, client := newTestAdviceService(t)
	client.On("Generate", mock.Anything, mock.Anything).Return("   ", nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Reason, ErrEmptyResponse)
	assert.Equal(t, FallbackAdvice(), result.Advice)
}

func TestRequestAdvice_NoClientReturnsFallback(t *testing.T) {
	svc := NewAdviceService(nil, 0, "PKR", zap.NewNop())

	result := svc.RequestAdvice(context.Background(), models.FinancialSnapshot{})

	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Reason, ErrAdviceUnavailable)
	assert.Equal(t, FallbackAdvice(), result.Advice)
}

func TestRequestAdvice_NonJSONUsesRawTextPrefix(t *testing.T) {
	svc, client := newTestAdviceService(t)
	client.On("Generate", mock.Anything, mock.Anything).Return("Looks fine", nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.True(t, result.Degraded)
	assert.ErrorIs(t, result.Reason, ErrMalformedAdvice)
	assert.True(t, strings.HasPrefix(result.Advice.Advice, "Looks fine"))
	assert.Equal(t, "Looks fine", result.Advice.Advice)
	assert.Equal(t, DefaultSuggestions, result.Advice.Suggestions)
	assert.Equal(t, models.RiskMedium, result.Advice.RiskLevel)
}

func TestRequestAdvice_LongNonJSONIsTruncated(t *testing.T) {
	svc, client := newTestAdviceService(t)
	raw := strings.Repeat("ж", 250)
	client.On("Generate", mock.Anything, mock.Anything).Return(raw, nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.Equal(t, strings.Repeat("ж", 200)+"...", result.Advice.Advice)
	assert.Equal(t, DefaultSuggestions, result.Advice.Suggestions)
}

func TestRequestAdvice_BrokenJSONUsesRawTextPrefix(t *testing.T) {
	svc, client := newTestAdviceService(t)
	client.On("Generate", mock.Anything, mock.Anything).Return(`{"advice": "cut costs", "suggestions": [`, nil).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())

	assert.True(t, result.Degraded)
	assert.Equal(t, `{"advice": "cut costs", "suggestions": [`, result.Advice.Advice)
	assert.Equal(t, models.RiskMedium, result.Advice.RiskLevel)
}

func TestRequestAdvice_FallbackSuggestionsAreCopies(t *testing.T) {
	svc, client := newTestAdviceService(t)
	client.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom")).Once()

	result := svc.RequestAdvice(context.Background(), monthlySnapshot())
	result.Advice.Suggestions[0] = "mutated"

	assert.Equal(t, "Review your spending patterns", DefaultSuggestions[0])
}

func TestParseAdvice(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    models.BudgetAdvice
		wantErr bool
	}{
		{
			name:    "markdown fenced",
			content: "```json\n{\"advice\":\"Fine\",\"suggestions\":[\"Save more\"],\"riskLevel\":\"HIGH\"}\n```",
			want:    models.BudgetAdvice{Advice: "Fine", Suggestions: []string{"Save more"}, RiskLevel: models.RiskHigh},
		},
		{
			name:    "surrounding chatter",
			content: "Here you go: {\"advice\":\"Fine\",\"suggestions\":[\"a\",\"b\",\"c\"],\"riskLevel\":\"low\"} Hope it helps!",
			want:    models.BudgetAdvice{Advice: "Fine", Suggestions: []string{"a", "b", "c"}, RiskLevel: models.RiskLow},
		},
		{
			name:    "missing fields get defaults",
			content: `{}`,
			want: models.BudgetAdvice{
				Advice:      "Unable to generate advice at this time.",
				Suggestions: []string{"Review your spending patterns", "Consider increasing savings"},
				RiskLevel:   models.RiskMedium,
			},
		},
		{
			name:    "unknown risk level",
			content: `{"advice":"x","suggestions":["y"],"riskLevel":"extreme"}`,
			want:    models.BudgetAdvice{Advice: "x", Suggestions: []string{"y"}, RiskLevel: models.RiskMedium},
		},
		{
			name:    "blank suggestions dropped",
			content: `{"advice":"x","suggestions":["", "  ", "keep"],"riskLevel":"low"}`,
			want:    models.BudgetAdvice{Advice: "x", Suggestions: []string{"keep"}, RiskLevel: models.RiskLow},
		},
		{name: "plain text", content: "Looks fine", wantErr: true},
		{name: "wrong types", content: `{"advice":"x","suggestions":"save"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAdvice(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"5":          "5.00",
		"999.999":    "1,000.00",
		"1234567.5":  "1,234,567.50",
		"-1500":      "-1,500.00",
		"999999999":  "999,999,999.00",
		"100000.004": "100,000.00",
		"0.07":       "0.07",
		"12.345":     "12.35",
		"-0.001":     "0.00",
	}

	for in, want := range tests {
		assert.Equal(t, want, formatAmount(decimal.RequireFromString(in)), in)
	}
}
