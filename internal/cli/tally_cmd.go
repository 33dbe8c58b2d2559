package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func newTallyCmd(app *App) *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "tally <project>",
		Short: "Count how many participants selected each rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if scope < 1 || scope > len(p.Scopes) {
				return fmt.Errorf("scope %d: %w", scope, project.ErrNotFound)
			}
			sc := p.Scopes[scope-1]

			out := cmd.OutOrStdout()
			if len(sc.Rules) == 0 {
				fmt.Fprintf(out, "Scope %d has no rules.\n", sc.Number)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RULE\tSELECTED\tUNDESIRABLE")
			for _, rc := range project.RuleFrequencies(sc) {
				flag := ""
				if rc.Undesirable {
					flag = "yes"
				}
				fmt.Fprintf(w, "%s\t%d/%d\t%s\n", rc.Rule, rc.Count, len(sc.Participants), flag)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%.0f%% of participants selected an undesirable rule\n", project.UndesirableShare(sc)*100)
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	return cmd
}
