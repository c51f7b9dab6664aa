package service

import (
	"pocket-balance/internal/models"

	"github.com/shopspring/decimal"
)

// Aggregate derives per-category totals and the remaining balance from a collection.
// Decimal addition is exact, so the result does not depend on input order.
func Aggregate(transactions []models.Transaction) models.FinancialSnapshot {
	totals := make(map[models.TransactionCategory]decimal.Decimal, len(models.Categories))
	for _, category := range models.Categories {
		totals[category] = decimal.Zero
	}

	for _, tx := range transactions {
		if _, ok := totals[tx.Category]; !ok {
			// legacy records with an unknown category count toward no total
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}

	snapshot := models.FinancialSnapshot{
		Transactions:  append(make([]models.Transaction, 0, len(transactions)), transactions...),
		TotalIncome:   totals[models.CategoryIncoming],
		TotalPayments: totals[models.CategoryPayments],
		TotalPersonal: totals[models.CategoryPersonal],
		TotalSavings:  totals[models.CategorySavings],
	}
	snapshot.RemainingBalance = snapshot.TotalIncome.Sub(snapshot.TotalOutgoing())

	return snapshot
}
