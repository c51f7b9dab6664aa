package dto

import "pocket-balance/internal/models"

// BudgetAdviceResponse carries the model's advice. Degraded is set when the answer is a
// fallback rather than a parsed model response; the failure reason is only logged.
type BudgetAdviceResponse struct {
	Advice      string   `json:"advice"`
	Suggestions []string `json:"suggestions"`
	RiskLevel   string   `json:"risk_level" enums:"low,medium,high"`
	Degraded    bool     `json:"degraded"`
}

func NewBudgetAdviceResponse(result models.AdviceResult) BudgetAdviceResponse {
	suggestions := result.Advice.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return BudgetAdviceResponse{
		Advice:      result.Advice.Advice,
		Suggestions: suggestions,
		RiskLevel:   string(result.Advice.RiskLevel),
		Degraded:    result.Degraded,
	}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	LLM     string `json:"llm"`
}
