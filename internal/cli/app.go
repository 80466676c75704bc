package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"gastos/internal/backend"
	"gastos/internal/config"
	"gastos/internal/log"
	"gastos/internal/services"
)

// app is the wiring shared by every command: configuration, logger,
// the opened backend and the budget store loaded from it.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	store   *services.BudgetStore
	backend *backend.BackendResult
}

// openApp loads configuration and opens the configured backend.
// The caller must call close.
func openApp(ctx context.Context, opts *RootOptions, logOut io.Writer) (*app, error) {
	cfg, err := LoadAndValidateConfig(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	logger := SetupLogger(cfg, logOut)

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid backend configuration", err)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open backend", err)
	}

	store := services.NewBudgetStore(ctx, res.Store,
		services.WithLogger(logger),
		services.WithPersistTimeout(cfg.PersistTimeout))

	return &app{cfg: cfg, logger: logger, store: store, backend: res}, nil
}

func (a *app) close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("Failed to close backend", log.FieldError, err.Error())
	}
}

// withApp opens the app for a command, runs fn and closes it.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

// printBudget writes the budget in the selected output format.
func printBudget(cmd *cobra.Command, opts *RootOptions, a *app) error {
	snap := a.store.Snapshot()
	if opts.Format == "json" {
		return RenderSummaryJSON(cmd.OutOrStdout(), snap)
	}
	return RenderSummary(cmd.OutOrStdout(), snap)
}
