package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/api"
	"github.com/MikeSquared-Agency/mofasa/internal/hermes"
)

func newServeCmd(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the event listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == 0 {
				port = app.Config.Port
			}

			if app.Bus != nil {
				if err := app.Bus.Subscribe(hermes.SubjectExtractRequested, app.Processor.HandleExtractRequested); err != nil {
					return err
				}
			} else {
				app.Logger.Warn("NATS not configured, running without events")
			}

			srv := api.NewServer(port, app.Config.APIToken, app.Store, app.Catalog, app.Processor, app.Logger)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			app.Logger.Info("mofasa ready", "port", port)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
			}

			app.Logger.Info("shutting down")
			app.Store.Flush()
			app.Logger.Info("mofasa stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from MOFASA_PORT)")
	return cmd
}

// signalContext is used by long-running commands other than serve.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	return ctx, cancel
}
