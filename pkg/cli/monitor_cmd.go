package cli

import (
	"agentscrape-go/pkg/cli/client"

	"github.com/spf13/cobra"
)

func newMonitorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor <agent-id>",
		Short: "Open the interactive scrape monitor for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID := agentArg(args)
			if agentID == "" {
				return app.fail(client.MissingAgentError(client.OpListWebpages))
			}
			return app.runTUI(agentID)
		},
	}
}
