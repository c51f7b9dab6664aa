package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const createKVTableSQL = `CREATE TABLE IF NOT EXISTS kv_store (
	store_key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PostgresKV struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresKV makes sure the kv_store table exists before returning.
func NewPostgresKV(ctx context.Context, db *pgxpool.Pool, logger *zap.Logger) (*PostgresKV, error) {
	if _, err := db.Exec(ctx, createKVTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	logger.Debug("Postgres kv_store table ready")
	return &PostgresKV{
		db:     db,
		logger: logger,
	}, nil
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := squirrel.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"store_key": key}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, false, err
	}

	var value string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *PostgresKV) Put(ctx context.Context, key string, value []byte) error {
	query := squirrel.Insert(kvTable).
		Columns("store_key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix(upsertSuffix).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
