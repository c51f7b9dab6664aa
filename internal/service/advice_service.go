package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pocket-balance/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrAdviceUnavailable = errors.New("advice service unavailable")
	ErrMalformedAdvice   = errors.New("advice response is not valid JSON")
	ErrEmptyResponse     = errors.New("no response from LLM")
)

const (
	DefaultAdviceTimeout = 15 * time.Second

	fallbackPrefixLength = 200

	missingAdviceText     = "Unable to generate advice at this time."
	unavailableAdviceText = "Unable to generate AI advice at this time. Please check your connection and try again."
)

// DefaultSuggestions are returned whenever the model's answer cannot be used.
var DefaultSuggestions = []string{
	"Review your spending patterns",
	"Consider increasing your savings rate",
	"Track expenses more closely",
	"Set up automatic savings",
}

// missingSuggestions fill in for a parsed answer that left suggestions out.
var missingSuggestions = []string{
	"Review your spending patterns",
	"Consider increasing savings",
}

// LLMClient sends a single prompt to a text generation model.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

type AdviceService struct {
	client   LLMClient
	timeout  time.Duration
	currency string
	logger   *zap.Logger
}

// NewAdviceService builds the advice adapter. A nil client makes every request degrade
// to the fixed fallback.
func NewAdviceService(client LLMClient, timeout time.Duration, currency string, logger *zap.Logger) *AdviceService {
	if timeout <= 0 {
		timeout = DefaultAdviceTimeout
	}
	return &AdviceService{
		client:   client,
		timeout:  timeout,
		currency: currency,
		logger:   logger,
	}
}

type adviceResponse struct {
	Advice      string   `json:"advice"`
	Suggestions []string `json:"suggestions"`
	RiskLevel   string   `json:"riskLevel"`
}

// RequestAdvice asks the model to assess the snapshot. It makes a single attempt bounded by
// the configured timeout and never fails: every error path yields fallback advice marked degraded.
func (s *AdviceService) RequestAdvice(ctx context.Context, snapshot models.FinancialSnapshot) models.AdviceResult {
	if s.client == nil {
		return s.unavailable(errors.New("no LLM provider configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	content, err := s.client.Generate(ctx, s.buildPrompt(snapshot))
	if err != nil {
		return s.unavailable(err)
	}
	content = strings.TrimSpace(sanitizeUTF8(content))
	if content == "" {
		return s.unavailable(ErrEmptyResponse)
	}

	advice, err := parseAdvice(content)
	if err != nil {
		s.logger.Warn("Advice response could not be parsed, using raw text",
			zap.Error(err),
			zap.Int("response_length", len(content)),
		)
		return models.AdviceResult{
			Advice: models.BudgetAdvice{
				Advice:      truncateRunes(content, fallbackPrefixLength),
				Suggestions: defaultSuggestions(),
				RiskLevel:   models.RiskMedium,
			},
			Degraded: true,
			Reason:   fmt.Errorf("%w: %w", ErrMalformedAdvice, err),
		}
	}

	s.logger.Info("Budget advice generated",
		zap.String("risk_level", string(advice.RiskLevel)),
		zap.Int("suggestions", len(advice.Suggestions)),
		zap.Duration("elapsed", time.Since(started)),
	)

	return models.AdviceResult{Advice: advice}
}

func (s *AdviceService) unavailable(cause error) models.AdviceResult {
	reason := fmt.Errorf("%w: %w", ErrAdviceUnavailable, cause)
	s.logger.Warn("Advice request failed, returning fallback advice", zap.Error(reason))
	return models.AdviceResult{
		Advice:   FallbackAdvice(),
		Degraded: true,
		Reason:   reason,
	}
}

// FallbackAdvice is the fixed answer used when the model cannot be reached.
func FallbackAdvice() models.BudgetAdvice {
	return models.BudgetAdvice{
		Advice:      unavailableAdviceText,
		Suggestions: defaultSuggestions(),
		RiskLevel:   models.RiskMedium,
	}
}

func defaultSuggestions() []string {
	return append([]string(nil), DefaultSuggestions...)
}

func (s *AdviceService) buildPrompt(snapshot models.FinancialSnapshot) string {
	money := func(d decimal.Decimal) string {
		return strings.TrimSpace(s.currency + " " + formatAmount(d))
	}

	return fmt.Sprintf(`Analyze the following financial data and provide personalized budget advice:

Total Income: %s
Total Payments (Essential): %s
Total Personal Spending: %s
Total Savings: %s
Remaining Balance: %s

Number of transactions: %d

Please provide:
1. A brief assessment of the financial health
2. 3-5 specific actionable suggestions for improvement
3. Risk level assessment (low/medium/high)

Format your response as JSON with the following structure:
{
  "advice": "Your assessment here",
  "suggestions": ["suggestion1", "suggestion2", "suggestion3"],
  "riskLevel": "low|medium|high"
}

Return ONLY the JSON object, without markdown or any text before or after it.`,
		money(snapshot.TotalIncome),
		money(snapshot.TotalPayments),
		money(snapshot.TotalPersonal),
		money(snapshot.TotalSavings),
		money(snapshot.RemainingBalance),
		len(snapshot.Transactions),
	)
}

// parseAdvice decodes the model's JSON answer. Missing or invalid fields get defaults.
func parseAdvice(content string) (models.BudgetAdvice, error) {
	jsonStr, ok := extractJSONObject(content)
	if !ok {
		return models.BudgetAdvice{}, errors.New("no JSON object in response")
	}

	var resp adviceResponse
	if err := json.Unmarshal([]byte(jsonStr), &resp); err != nil {
		return models.BudgetAdvice{}, err
	}

	advice := models.BudgetAdvice{
		Advice:    strings.TrimSpace(resp.Advice),
		RiskLevel: models.RiskLevel(strings.ToLower(strings.TrimSpace(resp.RiskLevel))),
	}
	for _, suggestion := range resp.Suggestions {
		if suggestion = strings.TrimSpace(suggestion); suggestion != "" {
			advice.Suggestions = append(advice.Suggestions, suggestion)
		}
	}

	if advice.Advice == "" {
		advice.Advice = missingAdviceText
	}
	if len(advice.Suggestions) == 0 {
		advice.Suggestions = append([]string(nil), missingSuggestions...)
	}
	if !advice.RiskLevel.IsValid() {
		advice.RiskLevel = models.RiskMedium
	}

	return advice, nil
}

// extractJSONObject strips markdown code fences and keeps the outermost {...} span.
func extractJSONObject(content string) (string, bool) {
	s := strings.TrimSpace(content)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
