package agentdir

// Step constants for the agent directory screen
const (
	StepList = iota
	StepCreate
	StepDeleteConfirm
)

// DefaultWidth is the default terminal width fallback
const DefaultWidth = 80
