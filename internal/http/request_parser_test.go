package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Rent"}`, ""},
		{"empty", ``, "request body is empty"},
		{"trailing object", `{"name":"a"}{"name":"b"}`, "single JSON object"},
		{"unknown field", `{"nome":"a"}`, "malformed JSON body"},
		{"too large", `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(tt.body))
			var dst addEntryRequest
			err := decodeJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if dst.Name != "Rent" {
					t.Errorf("Name = %q, want Rent", dst.Name)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseIndex(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/entries/3/group", nil)
	req.SetPathValue("index", "3")
	if idx, err := parseIndex(req); err != nil || idx != 3 {
		t.Errorf("parseIndex = %d, %v; want 3", idx, err)
	}

	req.SetPathValue("index", "three")
	if _, err := parseIndex(req); err == nil {
		t.Errorf("expected error for non-numeric index")
	}
}

func TestParseIncome(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`1000`, "1000", false},
		{`2.5e2`, "250", false},
		{`"  42.10 "`, "42.1", false},
		{`""`, "0", false},
		{`"12,5"`, "", true},
		{`1e20000000`, "", true},
		{`"-1e20000000"`, "", true},
		{`null`, "", true},
		{``, "", true},
		{`true`, "", true},
	}

	for _, tt := range tests {
		got, err := parseIncome(json.RawMessage(tt.raw))
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseIncome(%s) expected error, got %s", tt.raw, got)
			}
			continue
		}
		if err != nil || !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("parseIncome(%s) = %s, %v; want %s", tt.raw, got, err, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"  Rent  ", "Rent"},
		{"Car\x00 loan", "Car loan"},
		{"Gym\n", "Gym"},
		{"a\tb", "a\tb"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
