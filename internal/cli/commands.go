package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gastos/internal/core"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print totals, alerts and the group breakdown",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return printBudget(cmd, rootOpts, a)
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard every entry and restore the default income",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitCommandError, "reset discards all budget data; pass --yes to confirm")
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				a.store.Reset(ctx)
				return printBudget(cmd, rootOpts, a)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}

// NewIncomeCommand creates the income command.
func NewIncomeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "income <amount>",
		Short: "Set the total income",
		Example: `  gastos income 1000
  gastos income -- -50`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := core.ParseIncome(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid income %q: must be a number", args[0]))
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				a.store.SetIncome(ctx, income)
				return printBudget(cmd, rootOpts, a)
			})
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a spending entry",
		Long: `Add a spending entry with no group and blank amounts.

Names are unique ignoring case and surrounding spaces; adding an existing or
empty name changes nothing.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if err := a.store.AddEntry(ctx, name); err != nil {
					if !errors.Is(err, core.ErrDuplicateName) {
						return err
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "not added: %q is empty or already present\n", strings.TrimSpace(name))
				}
				return printBudget(cmd, rootOpts, a)
			})
		},
	}
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "group <index> <group>",
		Short: "Assign an entry to a group",
		Long: `Assign the entry at index to Fixed, Leisure, Savings or Debts.
Use "none" to make it unassigned again.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexArg(args[0])
			if err != nil {
				return err
			}
			group, err := parseGroupArg(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if err := a.store.SetEntryGroup(ctx, idx, group); err != nil {
					return WrapExitError(ExitFailure, "cannot set group", err)
				}
				return printBudget(cmd, rootOpts, a)
			})
		},
	}
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <index> <planned|actual> <value>",
		Short: "Set the planned or actual amount of an entry",
		Long: `Set the planned or actual amount of an entry. The value is stored as
typed; text that is not a number counts as zero in the totals.`,
		Example: `  gastos set 0 planned 500
  gastos set 0 actual ""`,
		Args: usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndexArg(args[0])
			if err != nil {
				return err
			}
			field, err := core.ParseAmountField(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid field %q: must be planned or actual", args[1]))
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if err := a.store.SetEntryAmount(ctx, idx, field, args[2]); err != nil {
					return WrapExitError(ExitFailure, "cannot set amount", err)
				}
				return printBudget(cmd, rootOpts, a)
			})
		},
	}
}

func parseIndexArg(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid index %q: must be an integer", s))
	}
	return idx, nil
}

// parseGroupArg accepts group names in any case; "none" and "" mean unassigned.
func parseGroupArg(s string) (core.Group, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return core.Unassigned, nil
	}
	for _, gi := range core.Groups() {
		if gi.Group != core.Unassigned && strings.EqualFold(string(gi.Group), s) {
			return gi.Group, nil
		}
	}
	return core.Unassigned, NewExitError(ExitCommandError,
		fmt.Sprintf("invalid group %q: must be one of Fixed, Leisure, Savings, Debts or none", s))
}
