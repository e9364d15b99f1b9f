package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gmaps-scraper/models"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// MySQL error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

var schemas = map[string]string{
	"sqlite3": `
	CREATE TABLE IF NOT EXISTS businesses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		state TEXT,
		city TEXT,
		zip_code TEXT,
		business_type TEXT,
		website TEXT,
		phone_number TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (name, address)
	);`,
	"mysql": `
	CREATE TABLE IF NOT EXISTS businesses (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL,
		state VARCHAR(100) NULL,
		city VARCHAR(255) NULL,
		zip_code VARCHAR(20) NULL,
		business_type VARCHAR(255) NULL,
		website VARCHAR(512) NULL,
		phone_number VARCHAR(50) NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_name_address (name, address)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

// SQLWriter stores businesses through database/sql, for the sqlite3 and
// mysql drivers. Both use "?" placeholders.
type SQLWriter struct {
	db     *sql.DB
	driver string
}

func NewSQLWriter(ctx context.Context, driver, dsn string) (*SQLWriter, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect %s: %w", driver, err)
	}

	return &SQLWriter{db: db, driver: driver}, nil
}

func (w *SQLWriter) Close() {
	if w.db != nil {
		w.db.Close()
	}
}

func (w *SQLWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, schemas[w.driver]); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

func (w *SQLWriter) Insert(ctx context.Context, b models.Business) error {
	const stmt = `
	INSERT INTO businesses (name, address, state, city, zip_code, business_type, website, phone_number)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	_, err := w.db.ExecContext(ctx, stmt,
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
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicate, b.Name)
	}
	return fmt.Errorf("%s insert failed: %w", w.driver, err)
}

// Count returns the number of stored businesses.
func (w *SQLWriter) Count(ctx context.Context) (int, error) {
	var n int
	if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM businesses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	return false
}
