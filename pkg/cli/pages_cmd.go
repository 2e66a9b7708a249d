package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"agentscrape-go/pkg/cli/client"
	"agentscrape-go/pkg/cli/format"
	"agentscrape-go/pkg/cli/tui/scrapemon"
	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/monitor"
	"agentscrape-go/pkg/utils"

	"github.com/spf13/cobra"
)

func newPagesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pages",
		Aliases: []string{"webpages", "sources"},
		Short:   "List and scrape an agent's webpages",
	}

	cmd.AddCommand(newPagesListCmd(app))
	cmd.AddCommand(newPagesScrapeCmd(app))
	cmd.AddCommand(newPagesWatchCmd(app))

	return cmd
}

func newPagesListCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list <agent-id>",
		Short: "List the webpages tracked for an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(output)
			if err != nil {
				return err
			}

			pages, err := app.getClient().ListWebpages(cmd.Context(), agentArg(args))
			if err != nil {
				return app.fail(err)
			}
			return format.WriteWebpages(cmd.OutOrStdout(), pages, monitor.Progress(pages), f, time.Now())
		},
	}
	outputFlag(cmd, &output)
	return cmd
}

func newPagesScrapeCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "scrape <agent-id> <url>...",
		Short: "Start scraping websites for an agent",
		Long: "Start scraping websites for an agent. URLs may be given as separate\n" +
			"arguments or comma separated. With --watch, progress is polled until\n" +
			"every page is done.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agentID := agentArg(args)
			if agentID == "" {
				return app.fail(client.MissingAgentError(client.OpStartScrape))
			}
			websites, err := utils.ParseWebsites(strings.Join(args[1:], ","))
			if err != nil {
				return app.fail(client.InvalidInputError(client.OpStartScrape, err))
			}

			if err := app.getClient().StartScrape(cmd.Context(), agentID, websites); err != nil {
				return app.fail(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), format.FormatSuccessMessage("Scraping started."))

			if !watch {
				return nil
			}
			return app.watch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), agentID)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "poll progress until the scrape completes")
	return cmd
}

func newPagesWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <agent-id>",
		Short: "Poll an agent's scrape progress until it completes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.watch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), agentArg(args))
		},
	}
}

// watch polls the agent's webpages at the configured interval and prints a
// progress line for every successful read. It returns once the job
// completes or the user interrupts.
func (a *App) watch(ctx context.Context, out, errOut io.Writer, agentID models.ID) error {
	if agentID == "" {
		return a.fail(client.MissingAgentError(client.OpListWebpages))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := monitor.NewWatcher(agentID, a.getClient(), a.cfg.PollInterval(), monitor.Hooks{
		OnUpdate: func(pages []models.Webpage, progress int) {
			done, total := monitor.Counts(pages)
			fmt.Fprintln(out, format.FormatProgress(done, total, progress))
		},
		OnError: func(err error) {
			fmt.Fprint(errOut, format.FormatErrorMessage(client.UserMessage(err)))
		},
		OnComplete: func() {
			fmt.Fprint(out, format.FormatSuccessMessage(
				fmt.Sprintf("%s: %s", scrapemon.CompletedTitle, scrapemon.CompletedBody)))
		},
	}, monitor.WithWatcherLogger(a.log))

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	err := w.Wait(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, monitor.ErrStopped), errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Stopped watching.")
		return nil
	default:
		return err
	}
}

func agentArg(args []string) models.ID {
	if len(args) == 0 {
		return ""
	}
	return models.ID(strings.TrimSpace(args[0]))
}
