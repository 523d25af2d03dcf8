package models

// RiskDistribution buckets analyses by risk score: low < 40,
// medium 40-69, high >= 70.
type RiskDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ConfidenceDistribution counts analyses per confidence level.
type ConfidenceDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Statistics aggregates analysis results, optionally bounded by a date
// range.
type Statistics struct {
	TotalAnalyses          int                    `json:"total_analyses"`
	PhishingDetected       int                    `json:"phishing_detected"`
	SafeURLs               int                    `json:"safe_urls"`
	AvgRiskScore           float64                `json:"avg_risk_score"`
	PhishingPercentage     float64                `json:"phishing_percentage"`
	RiskDistribution       RiskDistribution       `json:"risk_distribution"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidence_distribution"`
	SourcesUsage           map[string]int         `json:"sources_usage"`
}

// DailyCount is the number of analyses recorded on one day.
type DailyCount struct {
	Date  string `db:"date"  json:"date"` // YYYY-MM-DD
	Count int    `db:"count" json:"count"`
}
