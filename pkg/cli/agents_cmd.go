package cli

import (
	"fmt"
	"strings"

	"agentscrape-go/pkg/cli/format"
	"agentscrape-go/pkg/models"

	"github.com/spf13/cobra"
)

func newAgentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "agents",
		Aliases: []string{"agent"},
		Short:   "List, create and delete agents",
	}

	cmd.AddCommand(newAgentsListCmd(app))
	cmd.AddCommand(newAgentsCreateCmd(app))
	cmd.AddCommand(newAgentsDeleteCmd(app))

	return cmd
}

func newAgentsListCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all agents",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(output)
			if err != nil {
				return err
			}

			agents, err := app.getClient().ListAgents(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			return format.WriteAgents(cmd.OutOrStdout(), agents, f)
		},
	}
	outputFlag(cmd, &output)
	return cmd
}

func newAgentsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <title>",
		Short: "Create an agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if err := app.getClient().CreateAgent(cmd.Context(), title); err != nil {
				return app.fail(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatSuccessMessage(
				fmt.Sprintf("Agent %q created successfully", strings.TrimSpace(title))))
			return nil
		},
	}
}

func newAgentsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an agent",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := models.ID(strings.TrimSpace(args[0]))
			out := cmd.OutOrStdout()

			if !yes {
				ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete agent %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := app.getClient().DeleteAgent(cmd.Context(), id); err != nil {
				return app.fail(err)
			}
			fmt.Fprint(out, format.FormatSuccessMessage("Agent deleted successfully"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
