package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNumeric(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"1", "1"},
		{"1.0", "1"},
		{"1.23", "1.23"},
		{"1,23", "0"},
		{"12,5", "0"},
		{" 2.50 ", "2.5"},
		{"-1", "-1"},
		{"0", "0"},
		{"1e3", "1000"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"1,2,3", "0"},
		{"1e308", "1e308"},
		{"1e400", "0"},
		{"1e20000000", "0"},
		{"-1e20000000", "0"},
		{"1e-20000000", "0"},
	}
	for _, tc := range cases {
		got := Numeric(tc.in)
		want := decimal.RequireFromString(tc.out)
		if !got.Equal(want) {
			t.Fatalf("%q expected %s, got %s", tc.in, want, got)
		}
	}
}

func TestSummarize_OutOfRangeAmountIsZero(t *testing.T) {
	snap := Snapshot{
		Income: decimal.NewFromInt(100),
		Entries: []Entry{
			{Name: "Huge", Planned: "1e20000000", Actual: "9e99999999"},
			{Name: "Half", Planned: "0.5", Actual: "0.5"},
		},
	}

	start := time.Now()
	sum := Summarize(snap)
	text := sum.TotalPlanned.String() + sum.Remaining.String()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("summary took %v", elapsed)
	}
	if !sum.TotalPlanned.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected planned 0.5, got %s", sum.TotalPlanned)
	}
	if !sum.TotalActual.Equal(decimal.RequireFromString("0.5")) {
		t.Fatalf("expected actual 0.5, got %s", sum.TotalActual)
	}
	if text != "0.599.5" {
		t.Fatalf("unexpected rendering %q", text)
	}
}

func TestParseIncome(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"160", true},
		{"-20.5", true},
		{"0", true},
		{"", false},
		{"x", false},
		{"12,5", false},
		{"1e20000000", false},
	}
	for _, tc := range cases {
		_, err := ParseIncome(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
