package db

import (
	"context"
	"database/sql"
	"fmt"

	// pure go sqlite driver, registers itself as "sqlite"
	_ "modernc.org/sqlite"
)

type NewSQLiteParams struct {
	Path string
	// BusyTimeoutMs is how long a writer waits on a locked database
	BusyTimeoutMs int
}

// NewSQLite opens the embedded database file. A single connection is kept
// open: the app has one writer and :memory: databases are per connection.
func NewSQLite(ctx context.Context, params NewSQLiteParams) (*sql.DB, error) {
	busyTimeout := params.BusyTimeoutMs
	if busyTimeout <= 0 {
		busyTimeout = 5000
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		params.Path, busyTimeout,
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", params.Path, err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", params.Path, err)
	}

	return sqlDB, nil
}
