package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// WebpageStatus is owned by the backend. The client only interprets StatusDone.
type WebpageStatus string

const (
	StatusDone WebpageStatus = "done"
)

// Statuses used by the development backend when simulating a scrape.
const (
	StatusPending    WebpageStatus = "pending"
	StatusInProgress WebpageStatus = "in-progress"
)

// Webpage is a tracked page belonging to an agent.
type Webpage struct {
	Identifier string        `json:"identifier"`
	URL        string        `json:"url"`
	Status     WebpageStatus `json:"status"`
	CreatedAt  Timestamp     `json:"created_at"`
	UpdatedAt  Timestamp     `json:"updated_at"`
}

// IsDone reports whether the backend finished scraping this page.
func (w Webpage) IsDone() bool {
	return w.Status == StatusDone
}

// ScrapeRequest is the body submitted to start scraping for an agent.
type ScrapeRequest struct {
	Websites        []string `json:"websites" binding:"required"`
	HasSpecificURLs bool     `json:"has_specific_urls"`
	Level           int      `json:"level"`
}

// NewScrapeRequest builds a single-level, explicit-URL scrape request.
func NewScrapeRequest(websites []string) ScrapeRequest {
	return ScrapeRequest{
		Websites:        websites,
		HasSpecificURLs: true,
		Level:           1,
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07:00",
	"2006-01-02 15:04:05",
}

// Timestamp keeps the backend's raw value alongside the parsed time, since
// the timestamp format is not part of the contract.
type Timestamp struct {
	Raw  string
	Time time.Time
}

// NewTimestamp returns a Timestamp for t in RFC 3339 form.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Raw: t.UTC().Format(time.RFC3339Nano), Time: t.UTC()}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a string; keep the literal so it can still be displayed.
		*t = Timestamp{Raw: string(data)}
		return nil
	}
	*t = Timestamp{Raw: raw}
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			break
		}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" && t.Time.IsZero() {
		return []byte("null"), nil
	}
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// IsZero reports whether the backend sent no value.
func (t Timestamp) IsZero() bool {
	return t.Raw == "" && t.Time.IsZero()
}

// Parsed reports whether Raw was understood as a time.
func (t Timestamp) Parsed() bool {
	return !t.Time.IsZero()
}
