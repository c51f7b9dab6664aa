package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pocket-balance/internal/models"
	"pocket-balance/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPersistence         = errors.New("failed to persist transactions")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// IDGenerator returns a fresh transaction ID.
type IDGenerator func() string

// NewTransactionID returns a UUIDv7: a millisecond timestamp followed by random bits.
func NewTransactionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type TransactionService struct {
	store  repository.TransactionStore
	newID  IDGenerator
	logger *zap.Logger

	// serializes load-modify-save cycles within this process
	mu sync.Mutex
}

func NewTransactionService(store repository.TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		newID:  NewTransactionID,
		logger: logger,
	}
}

// WithIDGenerator replaces the ID generator. Intended for tests.
func (s *TransactionService) WithIDGenerator(gen IDGenerator) *TransactionService {
	s.newID = gen
	return s
}

// AddTransaction validates the candidate, assigns it an ID and appends it to the stored collection.
func (s *TransactionService) AddTransaction(ctx context.Context, candidate models.NewTransaction) (*models.Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.store.LoadStrict(ctx)
	if err != nil {
		s.logger.Error("Failed to read transactions before add", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	tx := candidate.WithID(s.newID())
	transactions = append(transactions, tx)

	if err := s.store.Save(ctx, transactions); err != nil {
		s.logger.Error("Failed to save new transaction", zap.String("id", tx.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logger.Info("Transaction added",
		zap.String("id", tx.ID),
		zap.String("category", string(tx.Category)),
		zap.String("amount", tx.Amount.String()),
	)

	return &tx, nil
}

// DeleteTransaction removes the transaction with the given ID. Unknown IDs are a no-op.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.store.LoadStrict(ctx)
	if err != nil {
		s.logger.Error("Failed to read transactions before delete", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	kept := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}

	if len(kept) == len(transactions) {
		s.logger.Debug("Delete of unknown transaction ignored", zap.String("id", id))
		return nil
	}

	if err := s.store.Save(ctx, kept); err != nil {
		s.logger.Error("Failed to save after delete", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logger.Info("Transaction deleted", zap.String("id", id))
	return nil
}

// GetTransaction looks up a single stored transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	for _, tx := range s.store.Load(ctx) {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, ErrTransactionNotFound
}

// GetFinancialData loads the collection and recomputes the snapshot from it.
func (s *TransactionService) GetFinancialData(ctx context.Context) models.FinancialSnapshot {
	return Aggregate(s.store.Load(ctx))
}
