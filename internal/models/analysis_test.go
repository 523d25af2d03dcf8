package models

import (
	"testing"
	"time"
)

func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }

func TestVerdictRequest_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		req     VerdictRequest
		wantErr error
	}{
		{
			name: "valid high confidence verdict",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				RiskScore:       intPtr(92),
				ConfidenceLevel: ConfidenceHigh,
			},
			wantErr: nil,
		},
		{
			name: "risk score lower bound accepted",
			req: VerdictRequest{
				IsPhishing:      boolPtr(false),
				RiskScore:       intPtr(0),
				ConfidenceLevel: ConfidenceLow,
			},
			wantErr: nil,
		},
		{
			name: "risk score upper bound accepted",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				RiskScore:       intPtr(100),
				ConfidenceLevel: ConfidenceMedium,
			},
			wantErr: nil,
		},
		{
			name: "negative risk score rejected",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				RiskScore:       intPtr(-1),
				ConfidenceLevel: ConfidenceHigh,
			},
			wantErr: ErrInvalidRiskScore,
		},
		{
			name: "risk score above 100 rejected",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				RiskScore:       intPtr(101),
				ConfidenceLevel: ConfidenceHigh,
			},
			wantErr: ErrInvalidRiskScore,
		},
		{
			name: "missing risk score rejected",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				ConfidenceLevel: ConfidenceHigh,
			},
			wantErr: ErrInvalidRiskScore,
		},
		{
			name: "unknown confidence level rejected",
			req: VerdictRequest{
				IsPhishing:      boolPtr(true),
				RiskScore:       intPtr(50),
				ConfidenceLevel: "critical",
			},
			wantErr: ErrInvalidConfidenceLevel,
		},
		{
			name: "negative duration rejected",
			req: VerdictRequest{
				IsPhishing:         boolPtr(false),
				RiskScore:          intPtr(10),
				ConfidenceLevel:    ConfidenceLow,
				AnalysisDurationMs: int64Ptr(-5),
			},
			wantErr: ErrInvalidDuration,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if err != tc.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestAnalysisFilter_Validate(t *testing.T) {
	start := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	filter := AnalysisFilter{StartDate: &start, EndDate: &end}
	if err := filter.Validate(); err != ErrInvalidDateRange {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidDateRange)
	}

	filter = AnalysisFilter{StartDate: &end, EndDate: &start}
	if err := filter.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
