package tui

import (
	"context"
	"time"

	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/cli/tui/agentdir"
	"agentscrape-go/pkg/cli/tui/scrapemon"
	"agentscrape-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// AgentClient is the part of the API client the agent directory uses.
type AgentClient interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	CreateAgent(ctx context.Context, title string) error
	DeleteAgent(ctx context.Context, id models.ID) error
}

// WebpageClient is the part of the API client the scrape monitor uses.
type WebpageClient interface {
	ListWebpages(ctx context.Context, agentID models.ID) ([]models.Webpage, error)
	StartScrape(ctx context.Context, agentID models.ID, websites []string) error
}

// APIClient is everything the app shell needs.
type APIClient interface {
	AgentClient
	WebpageClient
}

// Options carries the timing and logging settings shared by all screens.
type Options struct {
	PollInterval   time.Duration
	NotifyDuration time.Duration
	RequestTimeout time.Duration
	Logger         *logger.Logger
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = 3 * time.Second
	}
	if o.NotifyDuration <= 0 {
		o.NotifyDuration = 5 * time.Second
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}
	return o
}

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// rootModel is the app shell. It shows the agent directory and swaps in a
// fresh scrape monitor whenever an agent is opened.
type rootModel struct {
	client APIClient
	opts   Options
	log    *logger.Logger

	directory     *Frame
	directoryView *agentDirectoryModel
	monitor       *Frame
	monitorView   *scrapeMonitorModel

	// Current active screen
	current tea.Model

	size *tea.WindowSizeMsg
}

// NewRootModel constructs the app shell, starting on the agent directory.
func NewRootModel(c APIClient, opts Options) tea.Model {
	return newRootModel(c, opts, "")
}

// NewRootModelAt constructs the app shell opened directly on the scrape
// monitor of agentID. Going back leads to the agent directory.
func NewRootModelAt(c APIClient, opts Options, agentID models.ID) tea.Model {
	return newRootModel(c, opts, agentID)
}

func newRootModel(c APIClient, opts Options, agentID models.ID) *rootModel {
	opts = opts.withDefaults()

	m := &rootModel{
		client: c,
		opts:   opts,
		log:    opts.Logger.Sub("tui"),
	}
	m.directory = NewAgentDirectory(c, opts).(*Frame)
	m.directoryView = m.directory.Model().(*agentDirectoryModel)
	m.current = m.directory

	if agentID != "" {
		m.openMonitor(agentID)
	}
	return m
}

func (m *rootModel) Init() tea.Cmd {
	return m.current.Init()
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg

	case agentdir.OpenMonitorMsg:
		m.log.Debug().Str("agent_id", msg.AgentID.String()).Msg("opening scrape monitor")
		return m, tea.Batch(m.openMonitor(msg.AgentID), m.resize())

	case scrapemon.BackMsg:
		m.closeMonitor()
		m.current = m.directory
		return m, tea.Batch(m.directoryView.refresh(), m.resize())

	case agentdir.AgentsLoadedMsg, agentdir.AgentCreatedMsg, agentdir.AgentDeletedMsg:
		// Directory results may arrive while a monitor is open.
		_, cmd := m.directory.Update(msg)
		return m, cmd

	case toastExpiredMsg:
		// Toast IDs are global, so each screen drops only its own.
		_, cmd := m.directory.Update(msg)
		if m.monitor != nil {
			_, monitorCmd := m.monitor.Update(msg)
			cmd = tea.Batch(cmd, monitorCmd)
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.current, cmd = m.current.Update(msg)
	return m, cmd
}

// openMonitor replaces any open monitor with a new instance for agentID
func (m *rootModel) openMonitor(agentID models.ID) tea.Cmd {
	m.closeMonitor()
	m.monitor = NewScrapeMonitor(m.client, agentID, m.opts)
	m.monitorView = m.monitor.Model().(*scrapeMonitorModel)
	m.current = m.monitor
	return m.monitor.Init()
}

func (m *rootModel) closeMonitor() {
	if m.monitorView != nil {
		m.monitorView.Close()
	}
	m.monitor = nil
	m.monitorView = nil
}

// resize replays the last window size to the newly active screen
func (m *rootModel) resize() tea.Cmd {
	if m.size == nil {
		return nil
	}
	size := *m.size
	var cmd tea.Cmd
	m.current, cmd = m.current.Update(size)
	return cmd
}

func (m *rootModel) View() string {
	return m.current.View()
}

// Run starts the interactive program on the alternate screen.
func Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
