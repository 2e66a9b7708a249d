package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// AgentDirectoryHelpContent returns help for the agent directory
func AgentDirectoryHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate agents"},
		{"Enter", "Open scrape monitor"},
		{"n", "Create agent"},
		{"d", "Delete agent"},
		{"r", "Refresh"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// ScrapeMonitorHelpContent returns help for the scrape monitor
func ScrapeMonitorHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate webpages"},
		{"s", "Start scraping (disabled while a job is running)"},
		{"r", "Refresh"},
		{"Esc / b", "Back to agents"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	for _, item := range items {
		keyStyle := boldStyle.Foreground(colorPrimary)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
