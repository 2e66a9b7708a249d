package tui

import (
	"fmt"
	"strings"

	"agentscrape-go/pkg/cli/client"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// renderEmptyState renders a standard empty state message
func renderEmptyState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + infoStyle.Render(message) + "\n"
}

// handleQuitKeys checks if a key should quit the application
func handleQuitKeys(key string) bool {
	switch key {
	case "ctrl+c", "q":
		return true
	}
	return false
}

// newConfirmInput returns the y/N prompt used before destructive actions
func newConfirmInput() textinput.Model {
	confirm := textinput.New()
	confirm.Placeholder = "y/N"
	confirm.CharLimit = 1
	confirm.Width = 10
	return confirm
}

func confirmed(input textinput.Model) bool {
	answer := strings.ToLower(strings.TrimSpace(input.Value()))
	return answer == "y" || answer == "yes"
}

// newTable builds a focused table with the shared styles
func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(colorPrimary)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(colorPrimary).
		Bold(false)
	t.SetStyles(s)
	return t
}

// userFacingError converts client errors into the generic notification text,
// while leaving other error types unchanged.
func userFacingError(err error) string {
	return client.UserMessage(err)
}

// msgType names a message for debug logging
func msgType(msg tea.Msg) string {
	return fmt.Sprintf("%T", msg)
}
