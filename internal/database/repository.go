package database

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Postgres error codes handled by the repository.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Repository provides database operations for URLs and analysis results.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Ping verifies the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// isPQError reports whether err is a pq error with the given code.
func isPQError(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// endOfDay extends a date-only bound to cover the whole day, so an
// end_date of 2026-08-27 includes results recorded at any time that day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
