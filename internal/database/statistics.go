package database

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/saviladev/PhishingDetector/internal/models"
)

// statsRow matches the aggregate statistics query.
type statsRow struct {
	Total      int     `db:"total"`
	Phishing   int     `db:"phishing"`
	AvgRisk    float64 `db:"avg_risk"`
	LowRisk    int     `db:"low_risk"`
	MediumRisk int     `db:"medium_risk"`
	HighRisk   int     `db:"high_risk"`
	LowConf    int     `db:"low_conf"`
	MediumConf int     `db:"medium_conf"`
	HighConf   int     `db:"high_conf"`
}

// GetStatistics aggregates analysis results, optionally bounded by a date
// range. Buckets: low risk < 40, medium 40-69, high >= 70.
func (r *Repository) GetStatistics(ctx context.Context, startDate, endDate *time.Time) (*models.Statistics, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_phishing) AS phishing,
			COALESCE(AVG(risk_score), 0) AS avg_risk,
			COUNT(*) FILTER (WHERE risk_score < 40) AS low_risk,
			COUNT(*) FILTER (WHERE risk_score >= 40 AND risk_score < 70) AS medium_risk,
			COUNT(*) FILTER (WHERE risk_score >= 70) AS high_risk,
			COUNT(*) FILTER (WHERE confidence_level = 'low') AS low_conf,
			COUNT(*) FILTER (WHERE confidence_level = 'medium') AS medium_conf,
			COUNT(*) FILTER (WHERE confidence_level = 'high') AS high_conf
		FROM analysis_results
		WHERE 1=1
	`

	query, args := appendDateRange(query, nil, 1, startDate, endDate)

	row := statsRow{}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	stats := &models.Statistics{
		TotalAnalyses:    row.Total,
		PhishingDetected: row.Phishing,
		SafeURLs:         row.Total - row.Phishing,
		AvgRiskScore:     round2(row.AvgRisk),
		RiskDistribution: models.RiskDistribution{
			Low:    row.LowRisk,
			Medium: row.MediumRisk,
			High:   row.HighRisk,
		},
		ConfidenceDistribution: models.ConfidenceDistribution{
			Low:    row.LowConf,
			Medium: row.MediumConf,
			High:   row.HighConf,
		},
	}
	if row.Total > 0 {
		stats.PhishingPercentage = round2(float64(row.Phishing) / float64(row.Total) * 100)
	}

	usage, err := r.getSourcesUsage(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	stats.SourcesUsage = usage

	return stats, nil
}

// getSourcesUsage counts how often each analysis source appears in
// sources_checked.
func (r *Repository) getSourcesUsage(ctx context.Context, startDate, endDate *time.Time) (map[string]int, error) {
	query := `
		SELECT source, COUNT(*) AS count
		FROM (
			SELECT unnest(sources_checked) AS source
			FROM analysis_results
			WHERE 1=1
	`

	query, args := appendDateRange(query, nil, 1, startDate, endDate)
	query += `
		) s
		GROUP BY source
		ORDER BY count DESC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources usage: %w", err)
	}
	defer rows.Close()

	usage := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if scanErr := rows.Scan(&source, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan sources usage: %w", scanErr)
		}
		usage[source] = count
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to read sources usage: %w", rowsErr)
	}

	return usage, nil
}

// GetDailyCounts returns the number of analyses per day within the range.
func (r *Repository) GetDailyCounts(ctx context.Context, startDate, endDate time.Time) ([]models.DailyCount, error) {
	counts := []models.DailyCount{}
	query := `
		SELECT to_char(date_trunc('day', analysis_date), 'YYYY-MM-DD') AS date, COUNT(*) AS count
		FROM analysis_results
		WHERE analysis_date >= $1 AND analysis_date <= $2
		GROUP BY 1
		ORDER BY 1
	`

	err := r.db.SelectContext(ctx, &counts, query, startDate, endOfDay(endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily counts: %w", err)
	}

	return counts, nil
}

// appendDateRange appends analysis_date bounds to a query under
// construction. The end bound is widened to cover its whole day.
func appendDateRange(query string, args []any, argPos int, startDate, endDate *time.Time) (string, []any) {
	if startDate != nil {
		query += fmt.Sprintf(" AND analysis_date >= $%d", argPos)
		args = append(args, *startDate)
		argPos++
	}
	if endDate != nil {
		query += fmt.Sprintf(" AND analysis_date <= $%d", argPos)
		args = append(args, endOfDay(*endDate))
	}
	return query, args
}

// round2 rounds to two decimal places, matching the reported precision of
// avg_risk_score and phishing_percentage.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
