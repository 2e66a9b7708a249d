package scrapemon

import (
	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/monitor"
)

// Every message addressed to a monitor screen carries the Screen tag of the
// instance that issued it. Messages for another instance are dropped.

// PagesLoadedMsg is emitted when the webpage list has been fetched
type PagesLoadedMsg struct {
	Screen int
	Pages  []models.Webpage
	Err    error
}

// ScrapeStartedMsg is emitted when the backend answered a scrape request
type ScrapeStartedMsg struct {
	Screen int
	Err    error
}

// PollTickMsg is one tick of the polling timer identified by Timer
type PollTickMsg struct {
	Screen int
	Timer  monitor.TimerID
}

// BackMsg asks the app shell to return to the agent directory
type BackMsg struct{}
