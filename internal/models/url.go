package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceManual is the default provenance tag for submitted URLs.
const SourceManual = "manual"

// URL represents a submitted URL and its provenance.
type URL struct {
	ID          uuid.UUID `db:"id"           json:"id"`
	URL         string    `db:"url"          json:"url"`
	Domain      string    `db:"domain"       json:"domain"`
	URLHash     string    `db:"url_hash"     json:"url_hash"`
	Source      string    `db:"source"       json:"source"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}

// URLSubmitRequest represents the request payload for submitting a URL.
// Resubmitting a known URL is not an error; it resolves to the existing
// record.
type URLSubmitRequest struct {
	URL    string `binding:"required" json:"url"`
	Domain string `binding:"required" json:"domain"`
	Source string `json:"source"` // defaults to "manual"
}

// Normalize trims whitespace and applies the default source.
func (r *URLSubmitRequest) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
	r.Domain = strings.ToLower(strings.TrimSpace(r.Domain))
	if r.Source == "" {
		r.Source = SourceManual
	}
}

// Validate validates the submit request after normalization.
func (r *URLSubmitRequest) Validate() error {
	if r.URL == "" {
		return ErrEmptyURL
	}
	if r.Domain == "" {
		return ErrEmptyDomain
	}
	return nil
}

// URLFilter represents filter criteria for listing URLs.
type URLFilter struct {
	Domain string `form:"domain"`
	Limit  int    `binding:"omitempty,min=1,max=1000" form:"limit"` // Default 100
	Offset int    `binding:"omitempty,min=0"          form:"offset"`
}
