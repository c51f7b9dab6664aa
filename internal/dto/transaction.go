package dto

import (
	"strings"

	"pocket-balance/internal/models"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	Description string          `json:"description" example:"Salary"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"number" example:"5000"`
	Date        string          `json:"date" example:"2025-05-01"`
	Category    string          `json:"category" example:"incoming" enums:"incoming,payments,personal,savings"`
}

// ToModel converts the request into a candidate transaction. An unparseable date is
// reported as models.ErrInvalidDate.
func (r CreateTransactionRequest) ToModel() (models.NewTransaction, error) {
	var date civil.Date
	if s := strings.TrimSpace(r.Date); s != "" {
		parsed, err := civil.ParseDate(s)
		if err != nil {
			return models.NewTransaction{}, models.ErrInvalidDate
		}
		date = parsed
	}

	return models.NewTransaction{
		Description: r.Description,
		Amount:      r.Amount,
		Date:        date,
		Category:    models.TransactionCategory(strings.ToLower(strings.TrimSpace(r.Category))),
	}, nil
}

type TransactionResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
}

func NewTransactionResponse(tx models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.InexactFloat64(),
		Date:        tx.Date.String(),
		Category:    string(tx.Category),
	}
}
