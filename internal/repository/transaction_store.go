package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"pocket-balance/internal/models"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is the key the transaction collection is persisted under.
const StorageKey = "pocket-balance-data"

// TransactionStore persists the whole transaction collection.
// Load never fails: missing or unreadable data loads as an empty collection.
// LoadStrict is for read-modify-write paths and reports backend read errors instead.
// Save replaces the persisted collection.
type TransactionStore interface {
	Load(ctx context.Context) []models.Transaction
	LoadStrict(ctx context.Context) ([]models.Transaction, error)
	Save(ctx context.Context, transactions []models.Transaction) error
}

// KVBackend is a durable key-value medium. Put must replace the value atomically:
// a failed Put leaves the previous value readable.
type KVBackend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

type transactionRecord struct {
	ID          string                     `json:"id"`
	Description string                     `json:"description"`
	Amount      json.Number                `json:"amount"`
	Date        civil.Date                 `json:"date"`
	Category    models.TransactionCategory `json:"category"`
}

// KVTransactionStore keeps the collection as one JSON array under StorageKey.
type KVTransactionStore struct {
	backend KVBackend
	key     string
	logger  *zap.Logger
}

func NewKVTransactionStore(backend KVBackend, logger *zap.Logger) *KVTransactionStore {
	return &KVTransactionStore{
		backend: backend,
		key:     StorageKey,
		logger:  logger,
	}
}

func (s *KVTransactionStore) Load(ctx context.Context) []models.Transaction {
	transactions, err := s.LoadStrict(ctx)
	if err != nil {
		s.logger.Warn("Failed to read transactions, treating store as empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return []models.Transaction{}
	}
	return transactions
}

// LoadStrict fails only when the backend cannot be read. Missing or corrupt data
// still loads as an empty collection, since there is nothing usable to preserve.
func (s *KVTransactionStore) LoadStrict(ctx context.Context) ([]models.Transaction, error) {
	data, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	if !found || len(data) == 0 {
		return []models.Transaction{}, nil
	}

	transactions, err := decodeTransactions(data)
	if err != nil {
		s.logger.Warn("Persisted transactions are corrupt, treating store as empty",
			zap.String("key", s.key),
			zap.Int("size", len(data)),
			zap.Error(err),
		)
		return []models.Transaction{}, nil
	}

	return transactions, nil
}

func (s *KVTransactionStore) Save(ctx context.Context, transactions []models.Transaction) error {
	data, err := encodeTransactions(transactions)
	if err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}

	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}

	s.logger.Debug("Transactions saved", zap.Int("count", len(transactions)))
	return nil
}

func encodeTransactions(transactions []models.Transaction) ([]byte, error) {
	records := make([]transactionRecord, 0, len(transactions))
	for _, tx := range transactions {
		records = append(records, transactionRecord{
			ID:          tx.ID,
			Description: tx.Description,
			Amount:      json.Number(tx.Amount.String()),
			Date:        tx.Date,
			Category:    tx.Category,
		})
	}
	return json.Marshal(records)
}

func decodeTransactions(data []byte) ([]models.Transaction, error) {
	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(records))
	for i, rec := range records {
		amount, err := decimal.NewFromString(rec.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid amount %q: %w", i, rec.Amount, err)
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("record %d: missing id", i)
		}
		transactions = append(transactions, models.Transaction{
			ID:          rec.ID,
			Description: rec.Description,
			Amount:      amount,
			Date:        rec.Date,
			Category:    rec.Category,
		})
	}

	return transactions, nil
}

// NoopTransactionStore is used where no persistence medium is available.
type NoopTransactionStore struct{}

func (NoopTransactionStore) Load(context.Context) []models.Transaction {
	return []models.Transaction{}
}

func (NoopTransactionStore) LoadStrict(context.Context) ([]models.Transaction, error) {
	return []models.Transaction{}, nil
}

func (NoopTransactionStore) Save(context.Context, []models.Transaction) error {
	return nil
}
