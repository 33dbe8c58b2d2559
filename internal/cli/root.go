package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/config"
	"github.com/MikeSquared-Agency/mofasa/internal/hermes"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
	"github.com/MikeSquared-Agency/mofasa/internal/questions"
	"github.com/MikeSquared-Agency/mofasa/internal/store"
)

// App holds everything the commands need.
type App struct {
	Config    config.Config
	Store     *store.Store
	Catalog   *questions.Catalog
	Processor *processor.Processor
	Bus       *hermes.Client // nil when NATS is not configured
	Logger    *slog.Logger
}

// NewRootCmd creates the top-level "mofasa" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mofasa",
		Short:         "MoFASA interview coding: factor tagging, answer extraction and rule tallies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newFactorsCmd(app),
		newProjectCmd(app),
		newExtractCmd(app),
		newSummarizeCmd(app),
		newTallyCmd(app),
	)

	return root
}
