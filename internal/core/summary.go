package core

import "github.com/shopspring/decimal"

// GroupTotal is one row of the chart breakdown.
type GroupTotal struct {
	Group  Group
	Label  string
	Color  string
	Actual decimal.Decimal
}

// Summary bundles every derived value of a snapshot.
type Summary struct {
	Income           decimal.Decimal
	TotalPlanned     decimal.Decimal
	TotalActual      decimal.Decimal
	Remaining        decimal.Decimal
	OverPlannedAlert bool
	OverActualAlert  bool
	Breakdown        []GroupTotal
}

// TotalPlanned sums the coerced planned amounts of all entries.
func TotalPlanned(s Snapshot) decimal.Decimal {
	return sumField(s.Entries, Planned)
}

// TotalActual sums the coerced actual amounts of all entries, unassigned ones included.
func TotalActual(s Snapshot) decimal.Decimal {
	return sumField(s.Entries, Actual)
}

// Remaining is income minus the planned total.
func Remaining(s Snapshot) decimal.Decimal {
	return s.Income.Sub(TotalPlanned(s))
}

// OverPlannedAlert reports a plan strictly above income.
func OverPlannedAlert(s Snapshot) bool {
	return TotalPlanned(s).GreaterThan(s.Income)
}

// OverActualAlert reports spending strictly above income.
func OverActualAlert(s Snapshot) bool {
	return TotalActual(s).GreaterThan(s.Income)
}

// GroupBreakdown returns actual spending per chart group in display order.
// Unassigned entries have no row, so the rows can sum to less than TotalActual.
func GroupBreakdown(s Snapshot) []GroupTotal {
	rows := make([]GroupTotal, 0, len(groups)-1)
	for _, gi := range groups {
		if gi.Group == Unassigned {
			continue
		}
		total := decimal.Zero
		for _, e := range s.Entries {
			if e.Group == gi.Group {
				total = total.Add(Numeric(e.Actual))
			}
		}
		rows = append(rows, GroupTotal{
			Group:  gi.Group,
			Label:  gi.Label,
			Color:  gi.Color,
			Actual: total,
		})
	}
	return rows
}

// Summarize computes all derived values at once.
func Summarize(s Snapshot) Summary {
	planned := TotalPlanned(s)
	actual := TotalActual(s)
	return Summary{
		Income:           s.Income,
		TotalPlanned:     planned,
		TotalActual:      actual,
		Remaining:        s.Income.Sub(planned),
		OverPlannedAlert: planned.GreaterThan(s.Income),
		OverActualAlert:  actual.GreaterThan(s.Income),
		Breakdown:        GroupBreakdown(s),
	}
}

func sumField(entries []Entry, f AmountField) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(Numeric(e.Amount(f)))
	}
	return total
}
