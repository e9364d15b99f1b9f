package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gmaps-scraper/config"
	"gmaps-scraper/models"
	"gmaps-scraper/utils"
)

var (
	// ErrDuplicate is returned by Store.Insert when the row violates the
	// businesses table's unique key.
	ErrDuplicate     = errors.New("business already stored")
	ErrUnknownDriver = errors.New("unknown database driver")
)

// Store is a destination for business rows. Each Insert commits on its
// own: a row that went in stays in even if a later one fails.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, b models.Business) error
	Close()
}

// Open connects to the database named by cfg.DBDriver, retrying the
// connection with backoff.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var connect func() (Store, error)

	switch cfg.DBDriver {
	case "postgres":
		connect = func() (Store, error) { return NewPostgresWriter(ctx, cfg.DSN()) }
	case "sqlite3", "mysql":
		connect = func() (Store, error) { return NewSQLWriter(ctx, cfg.DBDriver, cfg.DSN()) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DBDriver)
	}

	var store Store
	err := utils.Retry(ctx, cfg.DBMaxRetries, 2*time.Second, func() error {
		var err error
		store, err = connect()
		return err
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
