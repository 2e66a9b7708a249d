package cli

import (
	"fmt"
	"strings"

	"agentscrape-go/pkg/config"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.cfg.Marshal()
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <section.key=value | section.key value>",
		Short: "Set a configuration value",
		Example: "  agentscrape config set cli.base_url=http://127.0.0.1:8000\n" +
			"  agentscrape config set cli.poll_interval 5",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value, err := splitSetArgs(args)
			if err != nil {
				return err
			}
			if err := app.cfg.Set(key, value); err != nil {
				return err
			}
			if err := config.Save(app.cfg, app.cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.cfgPath)
		},
	})

	return cmd
}

func splitSetArgs(args []string) (key, value string, err error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	parts := strings.SplitN(args[0], "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format: expected 'section.key=value'")
	}
	return parts[0], parts[1], nil
}
