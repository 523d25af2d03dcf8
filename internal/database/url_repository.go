package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saviladev/PhishingDetector/internal/models"
)

const urlColumns = "id, url, domain, url_hash, source, submitted_at, created_at, updated_at"

// SubmitURL registers a URL, deduplicating on the unique url column.
// Resubmission of a known URL refreshes updated_at and returns the existing
// record; the returned flag reports whether a new row was created. A unique
// violation from a concurrent submission is resolved by re-reading the
// surviving row.
func (r *Repository) SubmitURL(ctx context.Context, req *models.URLSubmitRequest) (*models.URL, bool, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := r.touchURL(ctx, req.URL)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, false, err
	}

	created, err := r.createURL(ctx, req)
	if err == nil {
		return created, true, nil
	}
	if errors.Is(err, models.ErrAlreadyExists) {
		// Lost the insert race; the other submission owns the row now.
		existing, lookupErr := r.touchURL(ctx, req.URL)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		return existing, false, nil
	}

	return nil, false, err
}

// createURL inserts a new URL row, mapping unique violations to
// models.ErrAlreadyExists.
func (r *Repository) createURL(ctx context.Context, req *models.URLSubmitRequest) (*models.URL, error) {
	now := time.Now()
	record := &models.URL{
		ID:          uuid.New(),
		URL:         req.URL,
		Domain:      req.Domain,
		URLHash:     hashURL(req.URL),
		Source:      req.Source,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO urls (id, url, domain, url_hash, source, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + urlColumns

	err := r.db.QueryRowxContext(
		ctx, query,
		record.ID, record.URL, record.Domain, record.URLHash, record.Source,
		record.SubmittedAt, record.CreatedAt, record.UpdatedAt,
	).StructScan(record)

	if err != nil {
		if isPQError(err, pgUniqueViolation) {
			return nil, models.ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create url: %w", err)
	}

	return record, nil
}

// touchURL refreshes updated_at on the record matching the URL and returns
// it, or models.ErrNotFound if no record exists.
func (r *Repository) touchURL(ctx context.Context, url string) (*models.URL, error) {
	record := &models.URL{}
	query := `
		UPDATE urls
		SET updated_at = $2
		WHERE url = $1
		RETURNING ` + urlColumns

	err := r.db.QueryRowxContext(ctx, query, url, time.Now()).StructScan(record)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to refresh url: %w", err)
	}

	return record, nil
}

// GetURLByID retrieves a URL record by ID.
func (r *Repository) GetURLByID(ctx context.Context, id uuid.UUID) (*models.URL, error) {
	record := &models.URL{}
	query := `SELECT ` + urlColumns + ` FROM urls WHERE id = $1`

	err := r.db.GetContext(ctx, record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get url: %w", err)
	}

	return record, nil
}

// GetURLByURL retrieves a URL record by its normalized URL text.
func (r *Repository) GetURLByURL(ctx context.Context, url string) (*models.URL, error) {
	record := &models.URL{}
	query := `SELECT ` + urlColumns + ` FROM urls WHERE url = $1`

	err := r.db.GetContext(ctx, record, query, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get url: %w", err)
	}

	return record, nil
}

// ListURLsByDomain retrieves URLs for a domain, most recently submitted
// first.
func (r *Repository) ListURLsByDomain(ctx context.Context, filter *models.URLFilter) ([]models.URL, error) {
	records := []models.URL{}

	if filter.Limit == 0 {
		filter.Limit = 100
	}
	const maxLimit = 1000
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}

	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE domain = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	err := r.db.SelectContext(ctx, &records, query, filter.Domain, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls by domain: %w", err)
	}

	return records, nil
}

// DeleteURL removes a URL record. Analysis results cascade at the storage
// layer. This is an administrative action; the service never deletes URLs
// on its own.
func (r *Repository) DeleteURL(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM urls WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// hashURL computes the derived url_hash column. The hash is a fast-path
// lookup key only; the url unique constraint stays authoritative for dedup.
func hashURL(url string) string {
	h := sha256.Sum256([]byte(url))
	return hex.EncodeToString(h[:])
}
