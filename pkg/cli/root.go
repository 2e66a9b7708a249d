package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	app := newApp()

	cmd := &cobra.Command{
		Use:   "agentscrape",
		Short: "Manage agents and watch their website scrapes",
		Long: "agentscrape manages agents on the agent backend and monitors the websites scraped for them.\n" +
			"Run without a subcommand to open the interactive agent directory.",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI("")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&app.configFlag, "config", "", "config file (default ~/.config/agentscrape/config.toml)")
	cmd.PersistentFlags().StringVar(&app.baseURLFlag, "base-url", "", "backend address, overrides cli.base_url")
	cmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newAgentsCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newMonitorCmd(app))

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
