package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // rejected edit, e.g. an unknown entry index
	ExitCommandError = 2 // bad flags, configuration or backend
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

const (
	msgOverPlanned = "Planned budget exceeds income!"
	msgOverActual  = "Actual spending exceeds income!"
)

// RenderSummary prints the budget as a human readable report.
func RenderSummary(w io.Writer, snap core.Snapshot) error {
	sum := core.Summarize(snap)

	fmt.Fprintf(w, "%-16s%12s\n", "Income", money(sum.Income))
	fmt.Fprintf(w, "%-16s%12s\n", "Total planned", money(sum.TotalPlanned))
	fmt.Fprintf(w, "%-16s%12s\n", "Total actual", money(sum.TotalActual))
	fmt.Fprintf(w, "%-16s%12s\n", "Remaining", money(sum.Remaining))
	if sum.OverPlannedAlert {
		fmt.Fprintln(w, msgOverPlanned)
	}
	if sum.OverActualAlert {
		fmt.Fprintln(w, msgOverActual)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actual by group")
	for _, gt := range sum.Breakdown {
		fmt.Fprintf(w, "  %-14s%12s\n", gt.Label, money(gt.Actual))
	}

	fmt.Fprintln(w)
	if len(snap.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tGroup\tPlanned\tActual")
	for i, e := range snap.Entries {
		info, _ := e.Group.Info()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i, e.Name, info.Label, e.Planned, e.Actual)
	}
	return tw.Flush()
}

// money formats an amount with two decimals, as the budget screen shows it.
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

type summaryJSON struct {
	Income           json.Number      `json:"income"`
	TotalPlanned     json.Number      `json:"total_planned"`
	TotalActual      json.Number      `json:"total_actual"`
	Remaining        json.Number      `json:"remaining"`
	OverPlannedAlert bool             `json:"over_planned_alert"`
	OverActualAlert  bool             `json:"over_actual_alert"`
	Breakdown        []groupTotalJSON `json:"breakdown"`
	Entries          []entryJSON      `json:"entries"`
}

type groupTotalJSON struct {
	Group  string      `json:"group"`
	Label  string      `json:"label"`
	Actual json.Number `json:"actual"`
}

type entryJSON struct {
	Name    string `json:"name"`
	Group   string `json:"group"`
	Planned string `json:"planned"`
	Actual  string `json:"actual"`
}

// RenderSummaryJSON prints the budget and its summary as indented JSON.
func RenderSummaryJSON(w io.Writer, snap core.Snapshot) error {
	sum := core.Summarize(snap)
	out := summaryJSON{
		Income:           json.Number(sum.Income.String()),
		TotalPlanned:     json.Number(sum.TotalPlanned.String()),
		TotalActual:      json.Number(sum.TotalActual.String()),
		Remaining:        json.Number(sum.Remaining.String()),
		OverPlannedAlert: sum.OverPlannedAlert,
		OverActualAlert:  sum.OverActualAlert,
		Breakdown:        make([]groupTotalJSON, len(sum.Breakdown)),
		Entries:          make([]entryJSON, len(snap.Entries)),
	}
	for i, gt := range sum.Breakdown {
		out.Breakdown[i] = groupTotalJSON{Group: string(gt.Group), Label: gt.Label, Actual: json.Number(gt.Actual.String())}
	}
	for i, e := range snap.Entries {
		out.Entries[i] = entryJSON{Name: e.Name, Group: string(e.Group), Planned: e.Planned, Actual: e.Actual}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
