// Package format renders agents and webpages for the headless CLI.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"agentscrape-go/pkg/models"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Format selects how list commands print their results.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// ParseFormat validates an -o flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Table, nil
	case Table, JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// TruncateURL truncates a URL to the specified max length
func TruncateURL(url string, maxLen int) string {
	if len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}

// ShortenID returns the first 8 characters of long identifiers
func ShortenID(id string) string {
	if len(id) <= 11 {
		return id
	}
	return id[:8] + "..."
}

// FormatTimestamp renders a backend timestamp relative to now. Unparsed
// values are shown verbatim.
func FormatTimestamp(ts models.Timestamp, now time.Time) string {
	switch {
	case ts.IsZero():
		return "-"
	case !ts.Parsed():
		return ts.Raw
	default:
		return humanize.RelTime(ts.Time, now, "ago", "from now")
	}
}

// WriteAgents prints agents in the requested format
func WriteAgents(w io.Writer, agents []models.Agent, f Format) error {
	switch f {
	case JSON:
		return writeJSON(w, agents)
	case YAML:
		rows := make([]agentRow, 0, len(agents))
		for _, a := range agents {
			rows = append(rows, agentRow{ID: a.ID.String(), Title: a.Title})
		}
		return writeYAML(w, rows)
	}

	if len(agents) == 0 {
		_, err := fmt.Fprintln(w, "No agents found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tTitle")
	fmt.Fprintln(tw, strings.Repeat("─", 36)+"\t"+strings.Repeat("─", 40))
	for _, a := range agents {
		fmt.Fprintf(tw, "%s\t%s\n", a.ID, a.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d agent(s)\n", len(agents))
	return err
}

// WriteWebpages prints webpages in the requested format. Table output
// closes with the derived progress.
func WriteWebpages(w io.Writer, pages []models.Webpage, progress int, f Format, now time.Time) error {
	switch f {
	case JSON:
		return writeJSON(w, pages)
	case YAML:
		rows := make([]webpageRow, 0, len(pages))
		for _, p := range pages {
			rows = append(rows, webpageRow{
				Identifier: p.Identifier,
				URL:        p.URL,
				Status:     string(p.Status),
				CreatedAt:  p.CreatedAt.Raw,
				UpdatedAt:  p.UpdatedAt.Raw,
			})
		}
		return writeYAML(w, rows)
	}

	if len(pages) == 0 {
		_, err := fmt.Fprintln(w, "No webpages found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tStatus\tCreated\tUpdated")
	fmt.Fprintln(tw, strings.Repeat("─", 11)+"\t"+strings.Repeat("─", 50)+"\t"+strings.Repeat("─", 11)+"\t"+strings.Repeat("─", 14)+"\t"+strings.Repeat("─", 14))
	for _, p := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			ShortenID(p.Identifier),
			TruncateURL(p.URL, 50),
			p.Status,
			FormatTimestamp(p.CreatedAt, now),
			FormatTimestamp(p.UpdatedAt, now),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal: %d webpage(s), %d%% done\n", len(pages), progress)
	return err
}

// FormatProgress renders one progress line for watch output
func FormatProgress(done, total, progress int) string {
	const width = 30
	filled := progress * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%% (%d/%d done)", bar, progress, done, total)
}

// FormatSuccessMessage formats a success message consistently
func FormatSuccessMessage(msg string) string {
	return fmt.Sprintf("✓ %s\n", msg)
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(msg string) string {
	return fmt.Sprintf("❌ Error: %s\n", msg)
}

type agentRow struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type webpageRow struct {
	Identifier string `yaml:"identifier"`
	URL        string `yaml:"url"`
	Status     string `yaml:"status"`
	CreatedAt  string `yaml:"created_at"`
	UpdatedAt  string `yaml:"updated_at"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
