// Package monitor tracks the progress of a scrape job for one agent.
//
// Machine holds the Idle/Polling state and owns the polling timer handle.
// It performs no I/O; drivers (the TUI screen and Watcher) issue reads and
// feed the results back through Observe.
package monitor

import "agentscrape-go/pkg/models"

// TimerID identifies one polling timer. Ticks carrying any other ID are stale.
type TimerID uint64

// State is either Idle or Polling.
type State interface {
	isState()
}

// Idle means no scrape job is being tracked and no timer exists.
type Idle struct{}

// Polling means a scrape job is in flight and Timer is the live timer.
type Polling struct {
	Progress int
	Timer    TimerID
}

func (Idle) isState() {}
func (Polling) isState() {}

// Event is the outcome of observing a fresh webpage list.
type Event int

const (
	// EventNone means nothing beyond the records and progress changed.
	EventNone Event = iota
	// EventCompleted means polling reached 100% and the machine went Idle.
	EventCompleted
)

// Machine is the scrape progress state machine for a single agent.
// It is not safe for concurrent use; Watcher adds locking.
type Machine struct {
	agentID   models.ID
	state     State
	progress  int
	lastTimer TimerID
	closed    bool
}

// NewMachine returns an Idle machine for agentID.
func NewMachine(agentID models.ID) *Machine {
	return &Machine{agentID: agentID, state: Idle{}}
}

// AgentID returns the agent this machine tracks.
func (m *Machine) AgentID() models.ID {
	return m.agentID
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Progress returns the last derived progress, in both states.
func (m *Machine) Progress() int {
	return m.progress
}

// IsPolling reports whether a timer is live.
func (m *Machine) IsPolling() bool {
	_, ok := m.state.(Polling)
	return ok
}

// CanStartScrape reports whether a new scrape may be submitted.
func (m *Machine) CanStartScrape() bool {
	return !m.closed && !m.IsPolling()
}

// StartPolling enters Polling with a fresh timer and progress reset to 0.
// When already Polling it returns the live timer and started is false, so at
// most one timer ever exists. A closed machine never starts polling.
func (m *Machine) StartPolling() (id TimerID, started bool) {
	if m.closed {
		return 0, false
	}
	if p, ok := m.state.(Polling); ok {
		return p.Timer, false
	}

	m.lastTimer++
	m.progress = 0
	m.state = Polling{Progress: 0, Timer: m.lastTimer}
	return m.lastTimer, true
}

// Owns reports whether id is the live timer. Drivers check this before
// issuing a timer-driven read.
func (m *Machine) Owns(id TimerID) bool {
	if m.closed {
		return false
	}
	p, ok := m.state.(Polling)
	return ok && p.Timer == id
}

// Observe derives progress from pages. Reaching 100 while Polling releases
// the timer and returns EventCompleted; this happens once per polling run.
// After Close it does nothing.
func (m *Machine) Observe(pages []models.Webpage) Event {
	if m.closed {
		return EventNone
	}

	m.progress = Progress(pages)

	p, ok := m.state.(Polling)
	if !ok {
		return EventNone
	}
	if m.progress >= 100 {
		m.state = Idle{}
		return EventCompleted
	}
	p.Progress = m.progress
	m.state = p
	return EventNone
}

// Close tears the machine down. The timer is released and every later call
// to Observe or StartPolling is a no-op.
func (m *Machine) Close() {
	m.closed = true
	m.state = Idle{}
}

// Closed reports whether Close was called.
func (m *Machine) Closed() bool {
	return m.closed
}
