package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apphttp "gastos/internal/http"
	"gastos/internal/log"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr            string
	ShutdownTimeout time.Duration
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the budget JSON API",
		Long: `Serve the budget JSON API on BIND_ADDR:PORT (127.0.0.1:8081 by default).

Example:
  gastos serve
  gastos serve --addr 127.0.0.1:9000 --config gastos.yaml`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				addr := opts.Addr
				if addr == "" {
					addr = a.cfg.Addr()
				}
				ctx, cancel := SignalContext(ctx, a.logger)
				defer cancel()
				return runServer(ctx, a, addr, opts.ShutdownTimeout)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides BIND_ADDR and PORT)")
	cmd.Flags().DurationVar(&opts.ShutdownTimeout, "shutdown-timeout", 30*time.Second, "graceful shutdown timeout")

	return cmd
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, a *app, addr string, shutdownTimeout time.Duration) error {
	srv := apphttp.NewServer(addr, a.store, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("Starting gastos server",
			"addr", addr,
			log.FieldBackend, a.cfg.DataBackend,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitCommandError, "server error", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Server shutdown error", log.FieldError, err.Error(), log.FieldOperation, log.OpShutdown)
			return err
		}
		a.logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
		return nil
	})

	return g.Wait()
}
