package repository

import (
	"context"
	"fmt"

	"pocket-balance/pkg/config"
	"pocket-balance/pkg/postgres"
	"pocket-balance/pkg/sqlite"

	"go.uber.org/zap"
)

// NewTransactionStore builds the store selected by cfg.Storage.Backend.
// The returned close function releases the backend's resources and is never nil.
func NewTransactionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (TransactionStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.StorageNone:
		logger.Warn("No persistence medium configured, transactions will not be saved")
		return NoopTransactionStore{}, noop, nil

	case config.StorageMemory:
		return NewKVTransactionStore(NewMemoryKV(), logger), noop, nil

	case config.StorageFile:
		backend, err := NewFileKV(cfg.Storage.Path)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("Using file storage", zap.String("path", cfg.Storage.Path))
		return NewKVTransactionStore(backend, logger), noop, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, noop, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close sqlite database", zap.Error(err))
			}
		}
		return NewKVTransactionStore(NewSQLiteKV(db), logger), closeFn, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, noop, err
		}
		backend, err := NewPostgresKV(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return NewKVTransactionStore(backend, logger), pool.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
