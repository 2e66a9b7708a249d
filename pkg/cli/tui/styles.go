package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. 256-color codes so the screens look the same in most terminals.
var (
	colorPrimary = lipgloss.Color("62")
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")
	colorWarning = lipgloss.Color("214")
	colorInfo    = lipgloss.Color("39")
	colorMuted   = lipgloss.Color("240")
	colorID      = lipgloss.Color("244")
	colorBorder  = lipgloss.Color("238")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1)
	boldStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	infoStyle  = lipgloss.NewStyle().Foreground(colorInfo)
	helpStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	// labels in front of agent IDs and dialog inputs
	fieldLabelStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).MarginRight(2)
	agentIDStyle    = lipgloss.NewStyle().Foreground(colorID).Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2).
			Foreground(lipgloss.Color("252"))

	// border color is chosen per toast kind
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func renderTitle(title string) string {
	return "\n" + titleStyle.Render(title) + "\n"
}

func renderSuccess(msg string) string {
	return lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓ " + msg)
}

func renderError(msg string) string {
	return lipgloss.NewStyle().Foreground(colorError).Bold(true).Render("❌ " + msg)
}

func renderWarning(msg string) string {
	return lipgloss.NewStyle().Foreground(colorWarning).Render("⚠️  " + msg)
}
