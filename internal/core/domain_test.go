package core

import (
	"errors"
	"testing"
)

func TestGroupValid(t *testing.T) {
	for _, g := range []Group{Unassigned, Fixed, Leisure, Savings, Debts} {
		if !g.Valid() {
			t.Fatalf("expected %q to be valid", g)
		}
	}
	for _, s := range []string{"fixed", "Fijos", "Other", " "} {
		if _, err := ParseGroup(s); !errors.Is(err, ErrInvalidGroup) {
			t.Fatalf("%q expected ErrInvalidGroup, got %v", s, err)
		}
	}
}

func TestGroupsMetadata(t *testing.T) {
	gs := Groups()
	if len(gs) != 5 {
		t.Fatalf("expected 5 groups, got %d", len(gs))
	}
	gs[0].Label = "mutated"
	if info, _ := Fixed.Info(); info.Label != "Fixed expenses" {
		t.Fatalf("Groups must return a copy, got label %q", info.Label)
	}
	if _, ok := Group("nope").Info(); ok {
		t.Fatalf("expected no info for unknown group")
	}
}

func TestParseAmountField(t *testing.T) {
	cases := []struct {
		in   string
		want AmountField
		ok   bool
	}{
		{"planned", Planned, true},
		{"Actual", Actual, true},
		{" actual ", Actual, true},
		{"budget", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmountField(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidField) {
			t.Fatalf("%q expected ErrInvalidField, got %v", tc.in, err)
		}
	}
}

func TestSameName(t *testing.T) {
	cases := []struct {
		a, b string
		same bool
	}{
		{"Rent", "rent ", true},
		{"RENT", "rent", true},
		{"École", "ÉCOLE", true},
		{"Rent", "Rental", false},
	}
	for _, tc := range cases {
		if got := SameName(tc.a, tc.b); got != tc.same {
			t.Fatalf("SameName(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.same)
		}
	}
}

func TestSnapshotClone(t *testing.T) {
	s := NewSnapshot()
	s.Entries = append(s.Entries, Entry{Name: "Rent"})
	c := s.Clone()
	c.Entries[0].Name = "changed"
	if s.Entries[0].Name != "Rent" {
		t.Fatalf("clone shares entries with original")
	}
	if s.IndexOfName("RENT") != 0 || s.IndexOfName("food") != -1 {
		t.Fatalf("unexpected IndexOfName results")
	}
}
