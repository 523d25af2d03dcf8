package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Valid confidence levels for an analysis verdict.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Risk score bounds enforced at write time.
const (
	MinRiskScore = 0
	MaxRiskScore = 100
)

// AnalysisResult represents one completed analysis run against a URL.
// Rows are append-only; they are removed only when the owning URL is
// deleted.
type AnalysisResult struct {
	ID                 uuid.UUID      `db:"id"                   json:"id"`
	URLID              uuid.UUID      `db:"url_id"               json:"url_id"`
	AnalysisDate       time.Time      `db:"analysis_date"        json:"analysis_date"`
	IsPhishing         bool           `db:"is_phishing"          json:"is_phishing"`
	RiskScore          int            `db:"risk_score"           json:"risk_score"`
	ConfidenceLevel    string         `db:"confidence_level"     json:"confidence_level"`
	VirusTotalResult   types.JSONText `db:"virustotal_result"    json:"virustotal_result,omitempty"`
	HeuristicResult    types.JSONText `db:"heuristic_result"     json:"heuristic_result,omitempty"`
	AnalysisDurationMs *int64         `db:"analysis_duration_ms" json:"analysis_duration_ms,omitempty"`
	SourcesChecked     pq.StringArray `db:"sources_checked"      json:"sources_checked"`
	ErrorLog           *string        `db:"error_log"            json:"error_log,omitempty"`
	CreatedAt          time.Time      `db:"created_at"           json:"created_at"`
}

// VerdictRequest represents the payload an external analyzer posts for a
// completed analysis run. The virustotal and heuristic payloads are stored
// verbatim and never interpreted.
type VerdictRequest struct {
	IsPhishing         *bool          `binding:"required" json:"is_phishing"`
	RiskScore          *int           `binding:"required" json:"risk_score"`
	ConfidenceLevel    string         `binding:"required" json:"confidence_level"`
	VirusTotalResult   map[string]any `json:"virustotal_result"`
	HeuristicResult    map[string]any `json:"heuristic_result"`
	AnalysisDurationMs *int64         `json:"analysis_duration_ms"`
	SourcesChecked     []string       `json:"sources_checked"`
	ErrorLog           *string        `json:"error_log"`
	AnalysisDate       *time.Time     `json:"analysis_date"` // defaults to now
}

// Validate enforces the verdict invariants before anything touches the
// store. Violations are non-retriable.
func (r *VerdictRequest) Validate() error {
	if r.RiskScore == nil || *r.RiskScore < MinRiskScore || *r.RiskScore > MaxRiskScore {
		return ErrInvalidRiskScore
	}
	switch r.ConfidenceLevel {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return ErrInvalidConfidenceLevel
	}
	if r.AnalysisDurationMs != nil && *r.AnalysisDurationMs < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// AnalysisFilter represents filter criteria for querying analysis results.
type AnalysisFilter struct {
	StartDate *time.Time `form:"start_date"                  time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date"                    time_format:"2006-01-02"`
	Limit     int        `binding:"omitempty,min=1,max=1000" form:"limit"` // Default 100
	Offset    int        `binding:"omitempty,min=0"          form:"offset"`
}

// Validate checks the date range ordering.
func (f *AnalysisFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}
