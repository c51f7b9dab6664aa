package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

type TransactionCategory string

const (
	CategoryIncoming TransactionCategory = "incoming"
	CategoryPayments TransactionCategory = "payments"
	CategoryPersonal TransactionCategory = "personal"
	CategorySavings  TransactionCategory = "savings"
)

// Categories lists every category in display order.
var Categories = []TransactionCategory{
	CategoryIncoming,
	CategoryPayments,
	CategoryPersonal,
	CategorySavings,
}

func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryIncoming, CategoryPayments, CategoryPersonal, CategorySavings:
		return true
	}
	return false
}

const MaxDescriptionLength = 100

// MaxAmount is the largest amount a single transaction may carry.
var MaxAmount = decimal.NewFromInt(999_999_999)

var (
	ErrValidation         = errors.New("invalid transaction")
	ErrEmptyDescription   = fmt.Errorf("%w: description is required", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description must be at most %d characters", ErrValidation, MaxDescriptionLength)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrAmountTooLarge     = fmt.Errorf("%w: amount must not exceed %s", ErrValidation, MaxAmount.String())
	ErrInvalidDate        = fmt.Errorf("%w: date must be a valid YYYY-MM-DD calendar date", ErrValidation)
	ErrInvalidCategory    = fmt.Errorf("%w: category must be one of incoming, payments, personal, savings", ErrValidation)
)

type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        civil.Date
	Category    TransactionCategory
}

// NewTransaction is a transaction candidate that has not been assigned an ID yet.
type NewTransaction struct {
	Description string
	Amount      decimal.Decimal
	Date        civil.Date
	Category    TransactionCategory
}

// Normalize returns a copy with surrounding whitespace removed from the description.
func (n NewTransaction) Normalize() NewTransaction {
	n.Description = strings.TrimSpace(n.Description)
	return n
}

// Validate checks the candidate against the transaction invariants.
// Description length is measured after trimming, in characters.
func (n NewTransaction) Validate() error {
	description := strings.TrimSpace(n.Description)
	if description == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if !n.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if n.Amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}

	if !n.Date.IsValid() {
		return ErrInvalidDate
	}

	if !n.Category.IsValid() {
		return ErrInvalidCategory
	}

	return nil
}

// WithID builds the stored transaction for this candidate.
func (n NewTransaction) WithID(id string) Transaction {
	n = n.Normalize()
	return Transaction{
		ID:          id,
		Description: n.Description,
		Amount:      n.Amount,
		Date:        n.Date,
		Category:    n.Category,
	}
}
