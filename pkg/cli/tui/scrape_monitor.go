package tui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"agentscrape-go/pkg/cli/client"
	"agentscrape-go/pkg/cli/format"
	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/cli/tui/scrapemon"
	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/monitor"
	"agentscrape-go/pkg/utils"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// screenSeq tags each monitor instance so late results can be matched to
// the screen that asked for them.
var screenSeq atomic.Int64

// scrapeMonitorModel shows one agent's webpages and drives a
// monitor.Machine. The polling timer is a tea.Tick chain carrying the
// machine's TimerID; a tick the machine no longer owns ends the chain.
type scrapeMonitorModel struct {
	client WebpageClient
	opts   Options
	log    *logger.Logger

	screen  int
	machine *monitor.Machine

	pages   []models.Webpage
	table   table.Model
	bar     progress.Model
	step    int
	loading bool

	urlInput   textinput.Model
	submitting bool

	notes notifier
	width int

	// schedule arms one tick of the polling timer
	schedule func(d time.Duration, msg tea.Msg) tea.Cmd
	now      func() time.Time
}

// NewScrapeMonitor creates the scrape monitor screen for agentID.
func NewScrapeMonitor(c WebpageClient, agentID models.ID, opts Options) *Frame {
	opts = opts.withDefaults()
	return NewFrame(newScrapeMonitor(c, agentID, opts), FrameConfig{
		Title:       "Information Sources",
		HelpContent: ScrapeMonitorHelpContent,
		FooterKeys:  []string{"s scrape", "r refresh", "esc back"},
		MinWidth:    60,
		MinHeight:   10,
	}, opts.Logger)
}

func newScrapeMonitor(c WebpageClient, agentID models.ID, opts Options) *scrapeMonitorModel {
	opts = opts.withDefaults()

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com, https://example.org"
	urlInput.CharLimit = 4096
	urlInput.Width = 60

	return &scrapeMonitorModel{
		client:  c,
		opts:    opts,
		log:     opts.Logger.Sub("scrape_monitor").With("agent_id", agentID.String()),
		screen:  int(screenSeq.Add(1)),
		machine: monitor.NewMachine(agentID),
		table: newTable([]table.Column{
			{Title: "URL", Width: 48},
			{Title: "Status", Width: 12},
			{Title: "Created", Width: 16},
			{Title: "Updated", Width: 16},
		}, 10),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		step:     scrapemon.StepList,
		urlInput: urlInput,
		notes:    newNotifier(opts.NotifyDuration),
		schedule: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		now: time.Now,
	}
}

func (m *scrapeMonitorModel) Init() tea.Cmd {
	return m.fetchPages()
}

// CapturingInput reports whether a text field has keyboard focus
func (m *scrapeMonitorModel) CapturingInput() bool {
	return m.step != scrapemon.StepList
}

// Close tears the screen down. Pending ticks and results become no-ops.
func (m *scrapeMonitorModel) Close() {
	m.log.Debug().Msg("closing scrape monitor")
	m.machine.Close()
}

func (m *scrapeMonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.log.Debug().Str("msg_type", msgType(msg)).Int("step", m.step).Bool("polling", m.machine.IsPolling()).Msg("Update() called")

	if m.notes.update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case scrapemon.PagesLoadedMsg:
		if msg.Screen != m.screen || m.machine.Closed() {
			m.log.Debug().Int("screen", msg.Screen).Msg("dropping stale webpage result")
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			// Records and progress stay as they were; the timer keeps running.
			m.log.Warn().Err(msg.Err).Msg("failed to load webpages")
			return m, m.notes.failure(msg.Err)
		}
		m.setPages(msg.Pages)
		if m.machine.Observe(msg.Pages) == monitor.EventCompleted {
			m.log.Info().Msg("scrape completed")
			return m, m.notes.push(ToastSuccess, scrapemon.CompletedTitle, scrapemon.CompletedBody)
		}
		return m, nil

	case scrapemon.ScrapeStartedMsg:
		if msg.Screen != m.screen || m.machine.Closed() {
			return m, nil
		}
		m.submitting = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("failed to start scraping")
			return m, m.notes.failure(msg.Err)
		}
		m.closeDialog()
		m.urlInput.Reset()
		return m, tea.Batch(m.notes.success("Scraping started."), m.startPolling())

	case scrapemon.PollTickMsg:
		if msg.Screen != m.screen || !m.machine.Owns(msg.Timer) {
			return m, nil
		}
		return m, tea.Batch(m.fetchPages(), m.schedule(m.opts.PollInterval, msg))

	case tea.KeyMsg:
		switch m.step {
		case scrapemon.StepList:
			return m.handleListKeys(msg)
		case scrapemon.StepScrapeDialog:
			return m.handleDialogKeys(msg)
		}
	}

	return m, nil
}

// startPolling enters Polling and arms the timer. It reads once right away.
func (m *scrapeMonitorModel) startPolling() tea.Cmd {
	id, started := m.machine.StartPolling()
	if !started {
		return nil
	}
	m.log.Debug().Uint64("timer", uint64(id)).Dur("interval", m.opts.PollInterval).Msg("polling started")
	return tea.Batch(
		m.fetchPages(),
		m.schedule(m.opts.PollInterval, scrapemon.PollTickMsg{Screen: m.screen, Timer: id}),
	)
}

func (m *scrapeMonitorModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if handleQuitKeys(key) {
		return m, tea.Quit
	}

	switch key {
	case "esc", "b":
		return m, func() tea.Msg { return scrapemon.BackMsg{} }

	case "s":
		if !m.machine.CanStartScrape() {
			return m, nil
		}
		if m.machine.AgentID() == "" {
			return m, m.notes.failure(client.MissingAgentError(client.OpStartScrape))
		}
		m.step = scrapemon.StepScrapeDialog
		m.table.Blur()
		m.urlInput.Focus()
		return m, textinput.Blink

	case "r":
		return m, m.fetchPages()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *scrapeMonitorModel) handleDialogKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeDialog()
		return m, nil
	case "enter":
		if m.submitting {
			return m, nil
		}
		websites, err := utils.ParseWebsites(m.urlInput.Value())
		if err != nil {
			return m, m.notes.reject("Please enter at least one website URL")
		}
		m.submitting = true
		return m, m.startScrape(websites)
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *scrapeMonitorModel) closeDialog() {
	m.step = scrapemon.StepList
	m.urlInput.Blur()
	m.table.Focus()
}

func (m *scrapeMonitorModel) setPages(pages []models.Webpage) {
	m.pages = pages

	now := m.now()
	rows := make([]table.Row, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, table.Row{
			format.TruncateURL(p.URL, 48),
			string(p.Status),
			format.FormatTimestamp(p.CreatedAt, now),
			format.FormatTimestamp(p.UpdatedAt, now),
		})
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) || c < 0 {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// fetchPages reads the webpage list. Without an agent ID no request is sent.
func (m *scrapeMonitorModel) fetchPages() tea.Cmd {
	screen, agentID := m.screen, m.machine.AgentID()
	if agentID == "" {
		return func() tea.Msg {
			return scrapemon.PagesLoadedMsg{Screen: screen, Err: client.MissingAgentError(client.OpListWebpages)}
		}
	}

	m.loading = true
	c, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		pages, err := c.ListWebpages(ctx, agentID)
		return scrapemon.PagesLoadedMsg{Screen: screen, Pages: pages, Err: err}
	}
}

func (m *scrapeMonitorModel) startScrape(websites []string) tea.Cmd {
	screen, agentID := m.screen, m.machine.AgentID()
	c, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return scrapemon.ScrapeStartedMsg{Screen: screen, Err: c.StartScrape(ctx, agentID, websites)}
	}
}

func (m *scrapeMonitorModel) View() string {
	var b strings.Builder

	b.WriteString(fieldLabelStyle.Render("Agent:"))
	b.WriteString(" " + agentIDStyle.Render(m.machine.AgentID().String()) + "\n\n")

	done, total := monitor.Counts(m.pages)
	percent := float64(m.machine.Progress()) / 100
	if m.machine.IsPolling() {
		b.WriteString(infoStyle.Render("Scraping in progress") + "\n")
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString(fmt.Sprintf("  %d/%d done\n", done, total))
		b.WriteString(mutedStyle.Render("Start scraping is disabled until the current job finishes.") + "\n\n")
	} else if total > 0 {
		b.WriteString(m.bar.ViewAs(percent))
		b.WriteString(fmt.Sprintf("  %d/%d done\n\n", done, total))
	}

	switch {
	case m.loading && len(m.pages) == 0:
		b.WriteString(renderLoadingState("Loading webpages..."))
	case len(m.pages) == 0:
		b.WriteString(renderEmptyState("No webpages yet. Press 's' to start scraping."))
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.step == scrapemon.StepScrapeDialog {
		var d strings.Builder
		d.WriteString(boldStyle.Render("Start Scraping") + "\n\n")
		d.WriteString(fieldLabelStyle.Render("Websites:"))
		d.WriteString(m.urlInput.View())
		d.WriteString("\n")
		d.WriteString(mutedStyle.Render("Separate multiple URLs with commas."))
		d.WriteString("\n\n")
		if m.submitting {
			d.WriteString(infoStyle.Render("Submitting..."))
		} else {
			d.WriteString(helpStyle.Render("(Press Enter to start, Esc to cancel)"))
		}
		b.WriteString("\n" + dialogStyle.Render(d.String()) + "\n")
	}

	if toasts := m.notes.View(); toasts != "" {
		b.WriteString("\n" + toasts + "\n")
	}

	return b.String()
}
