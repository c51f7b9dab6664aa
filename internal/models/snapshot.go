package models

import "github.com/shopspring/decimal"

// FinancialSnapshot is derived from a transaction collection on every read and never stored.
type FinancialSnapshot struct {
	Transactions     []Transaction
	TotalIncome      decimal.Decimal
	TotalPayments    decimal.Decimal
	TotalPersonal    decimal.Decimal
	TotalSavings     decimal.Decimal
	RemainingBalance decimal.Decimal
}

// TotalFor returns the total of a single category.
func (s FinancialSnapshot) TotalFor(category TransactionCategory) decimal.Decimal {
	switch category {
	case CategoryIncoming:
		return s.TotalIncome
	case CategoryPayments:
		return s.TotalPayments
	case CategoryPersonal:
		return s.TotalPersonal
	case CategorySavings:
		return s.TotalSavings
	}
	return decimal.Zero
}

// TotalOutgoing is everything that leaves the incoming pool.
func (s FinancialSnapshot) TotalOutgoing() decimal.Decimal {
	return s.TotalPayments.Add(s.TotalPersonal).Add(s.TotalSavings)
}
