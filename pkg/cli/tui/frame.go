package tui

import (
	"strings"

	"agentscrape-go/pkg/cli/logger"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	frameHeaderHeight = 3 // title, hint, blank line
	frameFooterHeight = 1
	defaultFrameW     = 80
	defaultFrameH     = 24
)

// inputCapturer is implemented by screens that can hold keyboard focus in a
// text field. While capturing, the frame leaves every key to the screen.
type inputCapturer interface {
	CapturingInput() bool
}

// FrameConfig describes the chrome drawn around a screen.
type FrameConfig struct {
	Title       string
	HelpContent func() string // nil disables the '?' overlay
	FooterKeys  []string      // screen shortcuts shown in the footer
	MinWidth    int
	MinHeight   int
}

// Frame draws a title and a key footer around a screen and keeps the body
// in a scrollable viewport. Screens receive the body size, not the terminal
// size.
type Frame struct {
	screen tea.Model
	body   viewport.Model
	help   viewport.Model
	cfg    FrameConfig
	log    *logger.Logger

	width    int
	height   int
	helpOpen bool
}

// NewFrame wraps screen.
func NewFrame(screen tea.Model, cfg FrameConfig, log *logger.Logger) *Frame {
	if log == nil {
		log = logger.Nop()
	}
	f := &Frame{
		screen: screen,
		body:   viewport.New(defaultFrameW, defaultFrameH-frameHeaderHeight-frameFooterHeight),
		help:   viewport.New(defaultFrameW, defaultFrameH),
		cfg:    cfg,
		log:    log.Sub("frame"),
		width:  defaultFrameW,
		height: defaultFrameH,
	}
	return f
}

// Model returns the framed screen
func (f *Frame) Model() tea.Model {
	return f.screen
}

func (f *Frame) Init() tea.Cmd {
	return f.screen.Init()
}

func (f *Frame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.resize(msg.Width, msg.Height)
		var cmd tea.Cmd
		f.screen, cmd = f.screen.Update(tea.WindowSizeMsg{Width: f.body.Width, Height: f.body.Height})
		return f, cmd

	case tea.KeyMsg:
		if f.helpOpen {
			return f, f.updateHelp(msg)
		}
		if msg.String() == "?" && f.cfg.HelpContent != nil && !f.capturing() {
			f.openHelp()
			return f, nil
		}

	case tea.MouseMsg:
		if f.helpOpen {
			var cmd tea.Cmd
			f.help, cmd = f.help.Update(msg)
			return f, cmd
		}
		var cmd tea.Cmd
		f.body, cmd = f.body.Update(msg)
		return f, cmd
	}

	var cmd tea.Cmd
	f.screen, cmd = f.screen.Update(msg)
	return f, cmd
}

// updateHelp handles keys while the overlay is open. Only ctrl+c quits;
// q closes the overlay like esc.
func (f *Frame) updateHelp(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "?", "esc", "q":
		f.helpOpen = false
		return nil
	}
	var cmd tea.Cmd
	f.help, cmd = f.help.Update(msg)
	return cmd
}

func (f *Frame) openHelp() {
	f.helpOpen = true
	f.help.SetContent(f.cfg.HelpContent())
	f.help.GotoTop()
	f.log.Debug().Str("title", f.cfg.Title).Msg("help opened")
}

func (f *Frame) capturing() bool {
	c, ok := f.screen.(inputCapturer)
	return ok && c.CapturingInput()
}

func (f *Frame) resize(width, height int) {
	if width <= 0 {
		width = defaultFrameW
	}
	if height <= 0 {
		height = defaultFrameH
	}
	f.width = max(width, f.cfg.MinWidth)
	f.height = max(height, f.cfg.MinHeight)

	f.body.Width = f.width
	f.body.Height = max(f.height-frameHeaderHeight-frameFooterHeight, 1)

	// border and padding of the overlay box
	f.help.Width = max(f.width-6, 1)
	f.help.Height = max(f.height-8, 1)
}

func (f *Frame) View() string {
	if f.helpOpen {
		return f.renderHelp()
	}

	f.body.SetContent(f.screen.View())
	return lipgloss.JoinVertical(lipgloss.Left, f.renderHeader(), f.body.View(), f.renderFooter())
}

func (f *Frame) renderHeader() string {
	hint := ""
	if f.cfg.HelpContent != nil {
		hint = "Press '?' for help"
	}
	return renderTitle(f.cfg.Title) + helpStyle.Render(hint)
}

func (f *Frame) renderFooter() string {
	keys := append([]string{}, f.cfg.FooterKeys...)
	if f.cfg.HelpContent != nil {
		keys = append(keys, "? help")
	}
	keys = append(keys, "q quit")
	return helpStyle.Render(strings.Join(keys, " • "))
}

func (f *Frame) renderHelp() string {
	box := overlayStyle.Width(f.width - 2)
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		f.help.View(),
		"",
		helpStyle.Render("Press '?' or Esc to close"),
	))
}
