package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/extractor"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
)

func newExtractCmd(app *App) *cobra.Command {
	var scope, batchSize int
	var mode string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "extract <project> <participant>",
		Short: "Answer the enabled questions from the participant's interview",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := extractor.ParseMode(mode)
			if err != nil {
				return err
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			part, err := resolveParticipant(p, scope-1, args[1])
			if err != nil {
				return err
			}
			if batchSize == 0 {
				batchSize = app.Config.BatchSize
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			progress := func(done, total int) {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "\r%d/%d questions", done, total)
				}
			}
			res, err := app.Processor.ExtractParticipant(ctx, processor.ExtractInput{
				ProjectID:     p.ID,
				Scope:         scope - 1,
				ParticipantID: part.ID,
				Mode:          m,
				BatchSize:     batchSize,
			}, progress)
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, a := range res.Answers {
				fmt.Fprintf(out, "[%s] %s\n  %s\n", a.Question.Section, a.Question.Text, a.Value)
			}
			fmt.Fprintln(out, res.Describe())
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	cmd.Flags().StringVar(&mode, "mode", "batch", "batch or individual")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "questions per request: 3, 5, 7 or 10 (default from MOFASA_BATCH_SIZE)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print progress")
	return cmd
}

func newSummarizeCmd(app *App) *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "summarize <project> <participant>",
		Short: "Generate and store a participant summary from their answers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			part, err := resolveParticipant(p, scope-1, args[1])
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			_, err = app.Processor.Summarize(ctx, p.ID, scope-1, part.ID, func(delta string) {
				fmt.Fprint(out, delta)
			})
			fmt.Fprintln(out)
			return err
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	return cmd
}
