package tui

import (
	"fmt"
	"strings"

	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/cli/tui/agentdir"
	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/utils"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// agentDirectoryModel lists, creates and deletes agents. Enter opens the
// scrape monitor for the selected agent.
type agentDirectoryModel struct {
	client AgentClient
	opts   Options
	log    *logger.Logger

	agents  []models.Agent
	table   table.Model
	step    int
	loading bool
	busy    bool // create or delete request in flight

	titleInput textinput.Model
	confirm    textinput.Model
	deleting   models.Agent

	notes notifier
	width int
}

// NewAgentDirectory creates the agent directory screen.
func NewAgentDirectory(c AgentClient, opts Options) tea.Model {
	opts = opts.withDefaults()
	return NewFrame(newAgentDirectory(c, opts), FrameConfig{
		Title:       "Agents",
		HelpContent: AgentDirectoryHelpContent,
		FooterKeys:  []string{"enter open", "n new", "d delete", "r refresh"},
		MinWidth:    60,
		MinHeight:   10,
	}, opts.Logger)
}

func newAgentDirectory(c AgentClient, opts Options) *agentDirectoryModel {
	opts = opts.withDefaults()

	titleInput := textinput.New()
	titleInput.Placeholder = "Agent title"
	titleInput.CharLimit = 200
	titleInput.Width = 50

	return &agentDirectoryModel{
		client: c,
		opts:   opts,
		log:    opts.Logger.Sub("agent_directory"),
		table: newTable([]table.Column{
			{Title: "ID", Width: 38},
			{Title: "Title", Width: 40},
		}, 12),
		step:       agentdir.StepList,
		titleInput: titleInput,
		confirm:    newConfirmInput(),
		notes:      newNotifier(opts.NotifyDuration),
		width:      agentdir.DefaultWidth,
	}
}

func (m *agentDirectoryModel) Init() tea.Cmd {
	return m.refresh()
}

// CapturingInput reports whether a text field has keyboard focus
func (m *agentDirectoryModel) CapturingInput() bool {
	return m.step != agentdir.StepList
}

func (m *agentDirectoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.log.Debug().Str("msg_type", msgType(msg)).Int("step", m.step).Msg("Update() called")

	if m.notes.update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width == 0 {
			m.width = agentdir.DefaultWidth
		}
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case agentdir.AgentsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Keep showing the previous collection.
			m.log.Warn().Err(msg.Err).Msg("failed to load agents")
			return m, m.notes.failure(msg.Err)
		}
		m.setAgents(msg.Agents)
		return m, nil

	case agentdir.AgentCreatedMsg:
		m.busy = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("failed to create agent")
			return m, m.notes.failure(msg.Err)
		}
		m.closeDialog()
		m.titleInput.Reset()
		return m, tea.Batch(
			m.notes.success(fmt.Sprintf("Agent %q created successfully", msg.Title)),
			m.refresh(),
		)

	case agentdir.AgentDeletedMsg:
		m.busy = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("agent_id", msg.ID.String()).Msg("failed to delete agent")
			return m, m.notes.failure(msg.Err)
		}
		return m, tea.Batch(m.notes.success("Agent deleted successfully"), m.refresh())

	case tea.KeyMsg:
		switch m.step {
		case agentdir.StepList:
			return m.handleListKeys(msg)
		case agentdir.StepCreate:
			return m.handleCreateKeys(msg)
		case agentdir.StepDeleteConfirm:
			return m.handleDeleteConfirmKeys(msg)
		}
	}

	return m, nil
}

func (m *agentDirectoryModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if handleQuitKeys(key) {
		return m, tea.Quit
	}

	switch key {
	case "n", "c":
		m.step = agentdir.StepCreate
		m.table.Blur()
		m.titleInput.Focus()
		return m, textinput.Blink

	case "d", "x", "delete":
		agent, ok := m.selectedAgent()
		if !ok || m.busy {
			return m, nil
		}
		m.deleting = agent
		m.step = agentdir.StepDeleteConfirm
		m.table.Blur()
		m.confirm.Reset()
		m.confirm.Focus()
		return m, textinput.Blink

	case "r":
		return m, m.refresh()

	case "enter":
		agent, ok := m.selectedAgent()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return agentdir.OpenMonitorMsg{AgentID: agent.ID}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *agentDirectoryModel) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeDialog()
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		title, err := utils.ValidateTitle(m.titleInput.Value())
		if err != nil {
			// Nothing is sent for a blank title.
			return m, m.notes.reject("Please enter an agent title")
		}
		m.busy = true
		return m, m.createAgent(title)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *agentDirectoryModel) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeDialog()
		return m, nil
	case "enter":
		ok := confirmed(m.confirm)
		m.closeDialog()
		if !ok {
			// Cancelled
			return m, nil
		}
		m.busy = true
		return m, m.deleteAgent(m.deleting.ID)
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	return m, cmd
}

func (m *agentDirectoryModel) closeDialog() {
	m.step = agentdir.StepList
	m.titleInput.Blur()
	m.confirm.Blur()
	m.table.Focus()
}

func (m *agentDirectoryModel) selectedAgent() (models.Agent, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.agents) {
		return models.Agent{}, false
	}
	return m.agents[i], true
}

func (m *agentDirectoryModel) setAgents(agents []models.Agent) {
	m.agents = agents

	rows := make([]table.Row, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, table.Row{a.ID.String(), a.Title})
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) || c < 0 {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// refresh re-reads the agent list
func (m *agentDirectoryModel) refresh() tea.Cmd {
	m.loading = true
	c, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		agents, err := c.ListAgents(ctx)
		return agentdir.AgentsLoadedMsg{Agents: agents, Err: err}
	}
}

func (m *agentDirectoryModel) createAgent(title string) tea.Cmd {
	c, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return agentdir.AgentCreatedMsg{Title: title, Err: c.CreateAgent(ctx, title)}
	}
}

func (m *agentDirectoryModel) deleteAgent(id models.ID) tea.Cmd {
	c, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return agentdir.AgentDeletedMsg{ID: id, Err: c.DeleteAgent(ctx, id)}
	}
}

func (m *agentDirectoryModel) View() string {
	var b strings.Builder

	switch {
	case m.loading && len(m.agents) == 0:
		b.WriteString(renderLoadingState("Loading agents..."))
	case len(m.agents) == 0:
		b.WriteString(renderEmptyState("No agents yet. Press 'n' to create one."))
	default:
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d agent(s)", len(m.agents))))
		b.WriteString("\n")
	}

	switch m.step {
	case agentdir.StepCreate:
		var d strings.Builder
		d.WriteString(boldStyle.Render("Create Agent") + "\n\n")
		d.WriteString(fieldLabelStyle.Render("Title:"))
		d.WriteString(m.titleInput.View())
		d.WriteString("\n\n")
		if m.busy {
			d.WriteString(infoStyle.Render("Creating..."))
		} else {
			d.WriteString(helpStyle.Render("(Press Enter to create, Esc to cancel)"))
		}
		b.WriteString("\n" + dialogStyle.Render(d.String()) + "\n")

	case agentdir.StepDeleteConfirm:
		var d strings.Builder
		d.WriteString(renderWarning("Confirm Deletion") + "\n\n")
		d.WriteString(boldStyle.Render("Are you sure you want to delete:"))
		d.WriteString("\n")
		d.WriteString(fmt.Sprintf("  %s %s\n\n", m.deleting.Title, agentIDStyle.Render("("+m.deleting.ID.String()+")")))
		d.WriteString(boldStyle.Render("Confirm (y/N):"))
		d.WriteString(" ")
		d.WriteString(m.confirm.View())
		d.WriteString("\n\n")
		d.WriteString(helpStyle.Render("(Press Enter to confirm, Esc to cancel)"))
		b.WriteString("\n" + dialogStyle.Render(d.String()) + "\n")
	}

	if toasts := m.notes.View(); toasts != "" {
		b.WriteString("\n" + toasts + "\n")
	}

	return b.String()
}
