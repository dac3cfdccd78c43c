package registry

import (
	"testing"
)

const validHeader = `name: react-vite-frontend
version: 0.1.0
created: 2026-03-14T10:30:00Z
last_sync: 2026-03-14T10:30:00Z
stack:
  - react
  - vite
libraries:
  - name: react
    version: 18.2.0
`

func TestValidateHeaderValid(t *testing.T) {
	result, err := ValidateHeader([]byte(validHeader))
	if err != nil {
		t.Fatalf("ValidateHeader: %v", err)
	}
	if !result.Valid {
		t.Fatalf("header invalid, issues: %v", result.Issues)
	}
}

func TestValidateHeaderViolations(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{
			"missing name",
			"version: 0.1.0\ncreated: 2026-03-14T10:30:00Z\nlast_sync: 2026-03-14T10:30:00Z\nstack: [react]\nlibraries: []\n",
		},
		{
			"bad version",
			"name: x\nversion: latest\ncreated: 2026-03-14T10:30:00Z\nlast_sync: 2026-03-14T10:30:00Z\nstack: [react]\nlibraries: []\n",
		},
		{
			"empty stack",
			"name: x\nversion: 0.1.0\ncreated: 2026-03-14T10:30:00Z\nlast_sync: 2026-03-14T10:30:00Z\nstack: []\nlibraries: []\n",
		},
		{
			"library missing version",
			"name: x\nversion: 0.1.0\ncreated: 2026-03-14T10:30:00Z\nlast_sync: 2026-03-14T10:30:00Z\nstack: [react]\nlibraries:\n  - name: react\n",
		},
		{
			"unknown field",
			validHeader + "extra: field\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateHeader([]byte(tt.header))
			if err != nil {
				t.Fatalf("ValidateHeader: %v", err)
			}
			if result.Valid {
				t.Error("header accepted, want schema violation")
			}
			if len(result.Issues) == 0 {
				t.Error("no issues reported for invalid header")
			}
		})
	}
}

func TestValidateHeaderMalformedYAML(t *testing.T) {
	if _, err := ValidateHeader([]byte("name: [unclosed")); err == nil {
		t.Error("ValidateHeader accepted malformed YAML")
	}
}
