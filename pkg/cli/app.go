package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"agentscrape-go/pkg/cli/client"
	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/cli/tui"
	"agentscrape-go/pkg/config"
	"agentscrape-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds what every command shares once the root command has loaded
// configuration.
type App struct {
	cfg     *config.Config
	cfgPath string
	log     *logger.Logger
	client  *client.Client

	// persistent flags
	configFlag  string
	baseURLFlag string
	logLevel    string
}

func newApp() *App {
	return &App{log: logger.Nop()}
}

// load reads the config file and applies flag overrides on top of it
func (a *App) load() error {
	path := a.configFlag
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.baseURLFlag != "" {
		cfg.CLI.BaseURL = a.baseURLFlag
	}
	if a.logLevel != "" {
		cfg.CLI.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.cfgPath = path
	a.client = nil
	a.log = logger.New(nil, cfg.CLI.LogLevel)
	return nil
}

// getClient returns the HTTP client, creating it if necessary
func (a *App) getClient() *client.Client {
	if a.client == nil {
		a.client = client.NewClient(a.cfg.CLI.BaseURL, a.cfg.RequestTimeout(), client.WithLogger(a.log))
	}
	return a.client
}

func (a *App) tuiOptions(log *logger.Logger) tui.Options {
	return tui.Options{
		PollInterval:   a.cfg.PollInterval(),
		NotifyDuration: a.cfg.NotifyDuration(),
		RequestTimeout: a.cfg.RequestTimeout(),
		Logger:         log,
	}
}

// runTUI starts the interactive program, on the scrape monitor of agentID
// when one is given. Logs go to a file because the TUI owns the terminal.
func (a *App) runTUI(agentID models.ID) error {
	log, closer := logger.NewFile(a.cfg.CLI.LogDir, a.cfg.CLI.LogLevel)
	defer closer.Close()

	c := client.NewClient(a.cfg.CLI.BaseURL, a.cfg.RequestTimeout(), client.WithLogger(log))
	opts := a.tuiOptions(log)

	var model tea.Model
	if agentID == "" {
		model = tui.NewRootModel(c, opts)
	} else {
		model = tui.NewRootModelAt(c, opts, agentID)
	}

	log.Info().Str("base_url", a.cfg.CLI.BaseURL).Msg("starting tui")
	return tui.Run(model)
}

// fail logs the full error and returns the notification text shown to
// the user.
func (a *App) fail(err error) error {
	a.log.Debug().Err(err).Msg("command failed")
	return errors.New(client.UserMessage(err))
}

// confirm asks a y/N question on out and reads the answer from in.
// Anything other than y or yes declines.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// outputFlag registers the -o flag shared by list commands.
func outputFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "output", "o", "table", "output format (table, json, yaml)")
}
