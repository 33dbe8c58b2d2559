package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/factors"
	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func newFactorsCmd(app *App) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "factors [text]",
		Short: "List MoFASA factors, or tag the given text with factor names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				for _, name := range factors.ParseFactors(args[0]) {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			list := factors.Default().All()
			if section != "" {
				sec, err := project.ParseSection(section)
				if err != nil {
					return err
				}
				list = factors.Default().BySection(sec)
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SECTION\tFACTOR\tRELATED")
			for _, f := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Section, f.Name, strings.Join(f.RelatedFactors, ", "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "only list factors of this section")
	return cmd
}
