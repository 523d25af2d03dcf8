package models

import "errors"

// Common errors
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	// Callers submitting a URL should treat this as "resolve to the existing
	// record", not as a failure.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrEmptyURL is returned when a submission has no URL.
	ErrEmptyURL = errors.New("url must not be empty")

	// ErrEmptyDomain is returned when a submission has no domain.
	ErrEmptyDomain = errors.New("domain must not be empty")

	// ErrInvalidRiskScore is returned when a risk score is outside 0-100.
	ErrInvalidRiskScore = errors.New("risk score must be between 0 and 100")

	// ErrInvalidConfidenceLevel is returned when a confidence level is not
	// one of high, medium, low.
	ErrInvalidConfidenceLevel = errors.New("confidence level must be one of: high, medium, low")

	// ErrInvalidDuration is returned when an analysis duration is negative.
	ErrInvalidDuration = errors.New("analysis duration must not be negative")

	// ErrInvalidDateRange is returned when start_date is after end_date.
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")
)
