package agentdir

import "agentscrape-go/pkg/models"

// AgentsLoadedMsg is emitted when agents have been fetched
type AgentsLoadedMsg struct {
	Agents []models.Agent
	Err    error
}

// AgentCreatedMsg is emitted when a create request finishes
type AgentCreatedMsg struct {
	Title string
	Err   error
}

// AgentDeletedMsg is emitted when a delete request finishes
type AgentDeletedMsg struct {
	ID  models.ID
	Err error
}

// OpenMonitorMsg asks the app shell to open the scrape monitor for an agent.
// The agent ID is the only value passed between the two screens.
type OpenMonitorMsg struct {
	AgentID models.ID
}
