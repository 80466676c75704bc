package http

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

type entryView struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Group   string `json:"group"`
	Planned string `json:"planned"`
	Actual  string `json:"actual"`
}

type groupView struct {
	Group string `json:"group"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type groupTotalView struct {
	groupView
	Actual json.Number `json:"actual"`
}

type summaryView struct {
	TotalPlanned     json.Number      `json:"total_planned"`
	TotalActual      json.Number      `json:"total_actual"`
	Remaining        json.Number      `json:"remaining"`
	OverPlannedAlert bool             `json:"over_planned_alert"`
	OverActualAlert  bool             `json:"over_actual_alert"`
	Breakdown        []groupTotalView `json:"breakdown"`
}

type budgetView struct {
	Income  json.Number `json:"income"`
	Entries []entryView `json:"entries"`
	Summary summaryView `json:"summary"`
}

type addEntryView struct {
	Added  bool       `json:"added"`
	Budget budgetView `json:"budget"`
}

// newBudgetView renders a snapshot and the summary derived from it, so the
// two always describe the same state.
func newBudgetView(snap core.Snapshot) budgetView {
	sum := core.Summarize(snap)

	entries := make([]entryView, len(snap.Entries))
	for i, e := range snap.Entries {
		entries[i] = entryView{
			Index:   i,
			Name:    e.Name,
			Group:   string(e.Group),
			Planned: e.Planned,
			Actual:  e.Actual,
		}
	}

	breakdown := make([]groupTotalView, len(sum.Breakdown))
	for i, gt := range sum.Breakdown {
		breakdown[i] = groupTotalView{
			groupView: groupView{Group: string(gt.Group), Label: gt.Label, Color: gt.Color},
			Actual:    number(gt.Actual),
		}
	}

	return budgetView{
		Income:  number(snap.Income),
		Entries: entries,
		Summary: summaryView{
			TotalPlanned:     number(sum.TotalPlanned),
			TotalActual:      number(sum.TotalActual),
			Remaining:        number(sum.Remaining),
			OverPlannedAlert: sum.OverPlannedAlert,
			OverActualAlert:  sum.OverActualAlert,
			Breakdown:        breakdown,
		},
	}
}

func newGroupViews() []groupView {
	groups := core.Groups()
	out := make([]groupView, len(groups))
	for i, g := range groups {
		out[i] = groupView{Group: string(g.Group), Label: g.Label, Color: g.Color}
	}
	return out
}

// number renders a decimal as a bare JSON number without float rounding.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
