package dto

import "pocket-balance/internal/models"

type FinancialDataResponse struct {
	Transactions     []TransactionResponse `json:"transactions"`
	TotalIncome      float64               `json:"total_income"`
	TotalPayments    float64               `json:"total_payments"`
	TotalPersonal    float64               `json:"total_personal"`
	TotalSavings     float64               `json:"total_savings"`
	RemainingBalance float64               `json:"remaining_balance"`
	// keyed by category name
	CategoryTotals map[string]float64 `json:"category_totals"`
}

func NewFinancialDataResponse(snapshot models.FinancialSnapshot) FinancialDataResponse {
	transactions := make([]TransactionResponse, 0, len(snapshot.Transactions))
	for _, tx := range snapshot.Transactions {
		transactions = append(transactions, NewTransactionResponse(tx))
	}

	totals := make(map[string]float64, len(models.Categories))
	for _, category := range models.Categories {
		totals[string(category)] = snapshot.TotalFor(category).InexactFloat64()
	}

	return FinancialDataResponse{
		Transactions:     transactions,
		TotalIncome:      snapshot.TotalIncome.InexactFloat64(),
		TotalPayments:    snapshot.TotalPayments.InexactFloat64(),
		TotalPersonal:    snapshot.TotalPersonal.InexactFloat64(),
		TotalSavings:     snapshot.TotalSavings.InexactFloat64(),
		RemainingBalance: snapshot.RemainingBalance.InexactFloat64(),
		CategoryTotals:   totals,
	}
}
