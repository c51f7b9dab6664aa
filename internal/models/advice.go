package models

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

type BudgetAdvice struct {
	Advice      string
	Suggestions []string
	RiskLevel   RiskLevel
}

// AdviceResult always carries usable advice. Degraded marks advice that came from a
// fallback path; Reason holds the underlying failure for logging.
type AdviceResult struct {
	Advice   BudgetAdvice
	Degraded bool
	Reason   error
}
