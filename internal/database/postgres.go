// Package database provides the PostgreSQL persistence layer for URL
// submissions and analysis results.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	DefaultMaxOpenConns = 25

	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 5

	// DefaultConnMaxLifetime is the default maximum lifetime of a connection.
	DefaultConnMaxLifetime = 5 * time.Minute

	// DefaultPingTimeout is the default timeout for pinging the database.
	DefaultPingTimeout = 5 * time.Second
)

// NewPostgresConnection creates a new PostgreSQL connection with pooling and
// verifies it with a bounded ping.
func NewPostgresConnection(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}
