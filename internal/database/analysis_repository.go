package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/saviladev/PhishingDetector/internal/models"
)

const analysisColumns = `id, url_id, analysis_date, is_phishing, risk_score, confidence_level,
		virustotal_result, heuristic_result, analysis_duration_ms, sources_checked, error_log, created_at`

// CreateAnalysisResult appends one immutable result row for a URL. The
// verdict is validated before the store is touched; a missing URL surfaces
// as models.ErrNotFound via the foreign key.
func (r *Repository) CreateAnalysisResult(ctx context.Context, urlID uuid.UUID, req *models.VerdictRequest) (*models.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	analysisDate := now
	if req.AnalysisDate != nil {
		analysisDate = *req.AnalysisDate
	}

	vtPayload, err := marshalPayload(req.VirusTotalResult)
	if err != nil {
		return nil, fmt.Errorf("failed to encode virustotal payload: %w", err)
	}
	heuristicPayload, err := marshalPayload(req.HeuristicResult)
	if err != nil {
		return nil, fmt.Errorf("failed to encode heuristic payload: %w", err)
	}

	result := &models.AnalysisResult{
		ID:                 uuid.New(),
		URLID:              urlID,
		AnalysisDate:       analysisDate,
		IsPhishing:         *req.IsPhishing,
		RiskScore:          *req.RiskScore,
		ConfidenceLevel:    req.ConfidenceLevel,
		AnalysisDurationMs: req.AnalysisDurationMs,
		SourcesChecked:     pq.StringArray(req.SourcesChecked),
		ErrorLog:           req.ErrorLog,
		CreatedAt:          now,
	}

	query := `
		INSERT INTO analysis_results (id, url_id, analysis_date, is_phishing, risk_score, confidence_level,
			virustotal_result, heuristic_result, analysis_duration_ms, sources_checked, error_log, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + analysisColumns

	err = r.db.QueryRowxContext(
		ctx, query,
		result.ID, result.URLID, result.AnalysisDate, result.IsPhishing, result.RiskScore,
		result.ConfidenceLevel, vtPayload, heuristicPayload, result.AnalysisDurationMs,
		result.SourcesChecked, result.ErrorLog, result.CreatedAt,
	).StructScan(result)

	if err != nil {
		if isPQError(err, pgForeignKeyViolation) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to create analysis result: %w", err)
	}

	return result, nil
}

// GetLatestResult returns the most recent result for a URL by
// analysis_date, or models.ErrNotFound if none exist.
func (r *Repository) GetLatestResult(ctx context.Context, urlID uuid.UUID) (*models.AnalysisResult, error) {
	result := &models.AnalysisResult{}
	query := `
		SELECT ` + analysisColumns + `
		FROM analysis_results
		WHERE url_id = $1
		ORDER BY analysis_date DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, result, query, urlID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest result: %w", err)
	}

	return result, nil
}

// ListResultsByURL retrieves the analysis history for a URL, newest first.
// Pagination makes the sequence restartable from any offset.
func (r *Repository) ListResultsByURL(ctx context.Context, urlID uuid.UUID, filter *models.AnalysisFilter) ([]models.AnalysisResult, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	applyFilterDefaults(filter)

	results := []models.AnalysisResult{}
	query := `
		SELECT ` + analysisColumns + `
		FROM analysis_results
		WHERE url_id = $1
	`

	args := []any{urlID}
	argPos := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND analysis_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND analysis_date <= $%d", argPos)
		args = append(args, endOfDay(*filter.EndDate))
		argPos++
	}

	query += " ORDER BY analysis_date DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	err := r.db.SelectContext(ctx, &results, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

// ListAnalyses retrieves analysis results across all URLs, newest first,
// optionally bounded by a date range.
func (r *Repository) ListAnalyses(ctx context.Context, filter *models.AnalysisFilter) ([]models.AnalysisResult, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	applyFilterDefaults(filter)

	results := []models.AnalysisResult{}
	query := `
		SELECT ` + analysisColumns + `
		FROM analysis_results
		WHERE 1=1
	`

	args := []any{}
	argPos := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND analysis_date >= $%d", argPos)
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND analysis_date <= $%d", argPos)
		args = append(args, endOfDay(*filter.EndDate))
		argPos++
	}

	query += " ORDER BY analysis_date DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	err := r.db.SelectContext(ctx, &results, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	return results, nil
}

// applyFilterDefaults clamps pagination to sane bounds.
func applyFilterDefaults(filter *models.AnalysisFilter) {
	if filter.Limit == 0 {
		filter.Limit = 100
	}
	const maxLimit = 1000
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
}

// marshalPayload encodes an opaque analyzer payload for storage. Absent
// payloads are stored as NULL.
func marshalPayload(m map[string]any) (any, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return types.JSONText(b), nil
}
