package scrapemon

// Step constants for the scrape monitor screen
const (
	StepList = iota
	StepScrapeDialog
)

// Notification text shown once per completed scrape job.
const (
	CompletedTitle = "Scraping completed"
	CompletedBody  = "Website scraping for the agent has finished."
)
