package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gmaps-scraper/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type PostgresWriter struct {
	pool *pgxpool.Pool
}

// NewPostgresWriter connects to dsn. The pool is capped at a single
// connection; inserts are issued one after another.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	poolCfg.MaxConns = 1

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS businesses (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		state TEXT,
		city TEXT,
		zip_code TEXT,
		business_type TEXT,
		website TEXT,
		phone_number TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (name, address)
	);

	CREATE INDEX IF NOT EXISTS idx_businesses_city ON businesses(city, state);
	CREATE INDEX IF NOT EXISTS idx_businesses_type ON businesses(business_type);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

// Insert writes one row in its own implicit transaction. A unique key
// violation is reported as ErrDuplicate.
func (w *PostgresWriter) Insert(ctx context.Context, b models.Business) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	insertSQL := `
	INSERT INTO businesses (name, address, state, city, zip_code, business_type, website, phone_number)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := w.pool.Exec(ctx, insertSQL,
		b.Name,
		b.Address,
		b.State,
		b.City,
		b.ZipCode,
		b.BusinessType,
		b.Website,
		b.PhoneNumber,
	)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("postgres insert failed: %w", err)
}
