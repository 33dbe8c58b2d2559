package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects, participants and rules",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddParticipantCmd(app),
		newProjectInterviewCmd(app),
		newProjectAddRuleCmd(app),
		newProjectDeleteRuleCmd(app),
		newProjectSelectRulesCmd(app),
		newProjectAddScopeCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.New(args[0], description)
			if err != nil {
				return err
			}
			if err := app.Store.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description used in extraction prompts")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects := app.Store.List(cmd.Context())
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects.")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSCOPES\tPARTICIPANTS")
			for _, p := range projects {
				n := 0
				if len(p.Scopes) > 0 {
					n = len(p.Scopes[0].Participants)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", p.ID[:8], p.Name, len(p.Scopes), n)
			}
			return w.Flush()
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's scopes, rules and participants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
			if p.Description != "" {
				fmt.Fprintf(out, "  %s\n", p.Description)
			}
			for _, sc := range p.Scopes {
				fmt.Fprintf(out, "\nScope %d", sc.Number)
				if sc.Text != "" {
					fmt.Fprintf(out, ": %s", sc.Text)
				}
				fmt.Fprintln(out)
				if len(sc.Rules) > 0 {
					fmt.Fprintf(out, "  Rules: %s\n", strings.Join(sc.Rules, "; "))
				}
				for _, part := range sc.Participants {
					done := make([]string, 0, len(project.Sections))
					for _, sec := range project.AnsweredSections(part) {
						done = append(done, sec.String())
					}
					fmt.Fprintf(out, "  - %s [%s]\n", part.Name, strings.Join(done, ", "))
				}
			}
			return nil
		},
	}
}

func newProjectAddParticipantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-participant <project> <name>",
		Short: "Add a participant to every scope of a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			var added project.Participant
			_, err = app.Store.Update(cmd.Context(), p.ID, func(doc project.Project) (project.Project, error) {
				next, part, err := project.AddParticipant(doc, args[1])
				added = part
				return next, err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added participant %s (%s)\n", added.Name, added.ID)
			return nil
		},
	}
}

func newProjectInterviewCmd(app *App) *cobra.Command {
	var scope int
	var file string

	cmd := &cobra.Command{
		Use:   "interview <project> <participant>",
		Short: "Store a participant's interview transcript from a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read interview: %w", err)
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			part, err := resolveParticipant(p, scope-1, args[1])
			if err != nil {
				return err
			}
			if _, err := app.Processor.SetInterview(cmd.Context(), p.ID, scope-1, part.ID, string(data)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored interview for %s (%d bytes)\n", part.Name, len(data))
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	cmd.Flags().StringVarP(&file, "file", "f", "", "transcript file")
	return cmd
}

func newProjectAddRuleCmd(app *App) *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "add-rule <project> <rule>",
		Short: "Add a rule to a scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			_, err = app.Store.Update(cmd.Context(), p.ID, func(doc project.Project) (project.Project, error) {
				return project.AddRule(doc, scope-1, args[1])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q to scope %d\n", strings.TrimSpace(args[1]), scope)
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	return cmd
}

func newProjectDeleteRuleCmd(app *App) *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "delete-rule <project> <rule>",
		Short: "Delete a rule and every selection, decision and flag that refers to it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if _, err := app.Processor.DeleteRule(cmd.Context(), p.ID, scope-1, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule %q from scope %d\n", args[1], scope)
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	return cmd
}

func newProjectSelectRulesCmd(app *App) *cobra.Command {
	var scope int

	cmd := &cobra.Command{
		Use:   "select-rules <project> <participant> <rule>...",
		Short: "Set the rules a participant considered",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			part, err := resolveParticipant(p, scope-1, args[1])
			if err != nil {
				return err
			}
			_, err = app.Store.Update(cmd.Context(), p.ID, func(doc project.Project) (project.Project, error) {
				return project.SelectRules(doc, scope-1, part.ID, args[2:])
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s selected %d rule(s)\n", part.Name, len(args)-2)
			return nil
		},
	}

	cmd.Flags().IntVar(&scope, "scope", 1, "scope number")
	return cmd
}

func newProjectAddScopeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-scope <project> [text]",
		Short: "Add a scope; robot answers shared by every scope are carried over",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			text := ""
			if len(args) == 2 {
				text = args[1]
			}
			next, err := app.Store.Update(cmd.Context(), p.ID, func(doc project.Project) (project.Project, error) {
				return project.AddScope(doc, text, func(sec project.Section, key string) bool {
					return app.Catalog.SameForAllScopes(doc, sec, key)
				})
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added scope %d\n", next.Scopes[len(next.Scopes)-1].Number)
			return nil
		},
	}
}
