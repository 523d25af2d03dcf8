package models

import "testing"

func TestURLSubmitRequest_Normalize(t *testing.T) {
	req := URLSubmitRequest{
		URL:    "  http://evil.example/a  ",
		Domain: " Evil.Example ",
	}
	req.Normalize()

	if req.URL != "http://evil.example/a" {
		t.Errorf("URL = %q, want trimmed", req.URL)
	}
	if req.Domain != "evil.example" {
		t.Errorf("Domain = %q, want lowercased and trimmed", req.Domain)
	}
	if req.Source != SourceManual {
		t.Errorf("Source = %q, want %q", req.Source, SourceManual)
	}
}

func TestURLSubmitRequest_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		req     URLSubmitRequest
		wantErr error
	}{
		{
			name:    "valid request",
			req:     URLSubmitRequest{URL: "http://evil.example/a", Domain: "evil.example", Source: SourceManual},
			wantErr: nil,
		},
		{
			name:    "empty url rejected",
			req:     URLSubmitRequest{Domain: "evil.example"},
			wantErr: ErrEmptyURL,
		},
		{
			name:    "empty domain rejected",
			req:     URLSubmitRequest{URL: "http://evil.example/a"},
			wantErr: ErrEmptyDomain,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.Validate(); err != tc.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
