package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

const (
	Unassigned Group = ""
	Fixed      Group = "Fixed"
	Leisure    Group = "Leisure"
	Savings    Group = "Savings"
	Debts      Group = "Debts"
)

const (
	Planned AmountField = "planned"
	Actual  AmountField = "actual"
)

// DefaultIncome is the income of a fresh budget.
var DefaultIncome = decimal.NewFromInt(160)

type (
	// Group is the top-level classification of an entry.
	Group string

	// AmountField selects which amount of an entry an edit targets.
	AmountField string

	// GroupInfo carries the display metadata of a group.
	GroupInfo struct {
		Group Group
		Label string
		Color string
	}

	// Entry is one user-defined spending line.
	Entry struct {
		Name    string
		Group   Group
		Planned string // raw user input, coerced only when aggregating
		Actual  string // raw user input, coerced only when aggregating
	}

	// Snapshot is the complete budget state.
	Snapshot struct {
		Income  decimal.Decimal
		Entries []Entry
	}
)

var (
	ErrDuplicateName   = errors.New("duplicate or empty entry name")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrInvalidGroup    = errors.New("invalid group")
	ErrInvalidField    = errors.New("invalid amount field")
	ErrCorruptRecord   = errors.New("corrupt persisted record")
)

// groups lists every valid group; the first four are the chart rows in display order.
var groups = []GroupInfo{
	{Group: Fixed, Label: "Fixed expenses", Color: "#166534"},
	{Group: Leisure, Label: "Leisure", Color: "#854d0e"},
	{Group: Savings, Label: "Savings", Color: "#6b21a8"},
	{Group: Debts, Label: "Debts", Color: "#991b1b"},
	{Group: Unassigned, Label: "Unassigned", Color: "#374151"},
}

// Groups returns the display metadata of all five groups.
func Groups() []GroupInfo {
	return append([]GroupInfo(nil), groups...)
}

// Valid reports whether g is one of the five known groups.
func (g Group) Valid() bool {
	switch g {
	case Unassigned, Fixed, Leisure, Savings, Debts:
		return true
	default:
		return false
	}
}

// Info returns the display metadata for g.
func (g Group) Info() (GroupInfo, bool) {
	for _, gi := range groups {
		if gi.Group == g {
			return gi, true
		}
	}
	return GroupInfo{}, false
}

// ParseGroup validates a stored or user-supplied group name.
func ParseGroup(s string) (Group, error) {
	g := Group(s)
	if !g.Valid() {
		return Unassigned, ErrInvalidGroup
	}
	return g, nil
}

// ParseAmountField validates an amount field name.
func ParseAmountField(s string) (AmountField, error) {
	switch f := AmountField(strings.ToLower(strings.TrimSpace(s))); f {
	case Planned, Actual:
		return f, nil
	default:
		return "", ErrInvalidField
	}
}

// NewSnapshot returns the first-run budget.
func NewSnapshot() Snapshot {
	return Snapshot{Income: DefaultIncome, Entries: []Entry{}}
}

// Clone returns a deep copy so callers cannot mutate the store's entries.
func (s Snapshot) Clone() Snapshot {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	return Snapshot{Income: s.Income, Entries: entries}
}

// SameName compares entry names the way duplicates are detected.
func SameName(a, b string) bool {
	// A Caser holds state and must not be shared between goroutines.
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// IndexOfName returns the position of the entry named name, or -1.
func (s Snapshot) IndexOfName(name string) int {
	for i, e := range s.Entries {
		if SameName(e.Name, name) {
			return i
		}
	}
	return -1
}

// Amount returns the raw text of the selected field.
func (e Entry) Amount(f AmountField) string {
	if f == Actual {
		return e.Actual
	}
	return e.Planned
}
