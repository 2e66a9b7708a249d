package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agentscrape-go/pkg/cli/tui/agentdir"
	"agentscrape-go/pkg/cli/tui/scrapemon"
	"agentscrape-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeAPI is an in-memory APIClient that counts every call.
type fakeAPI struct {
	mu sync.Mutex

	agents        []models.Agent
	listAgentsErr error
	createErr     error
	deleteErr     error

	// Successive ListWebpages results; the last one repeats.
	pages     [][]models.Webpage
	pagesErrs []error
	scrapeErr error

	listAgentsCalls int
	createCalls     int
	deleteCalls     int
	listPagesCalls  int
	scrapeCalls     int
	scraped         [][]string
}

func (f *fakeAPI) ListAgents(ctx context.Context) ([]models.Agent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listAgentsCalls++
	if f.listAgentsErr != nil {
		return nil, f.listAgentsErr
	}
	return append([]models.Agent{}, f.agents...), nil
}

func (f *fakeAPI) CreateAgent(ctx context.Context, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.agents = append(f.agents, models.Agent{ID: models.ID(fmt.Sprint(len(f.agents) + 1)), Title: title})
	return nil
}

func (f *fakeAPI) DeleteAgent(ctx context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, a := range f.agents {
		if a.ID == id {
			f.agents = append(f.agents[:i], f.agents[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeAPI) ListWebpages(ctx context.Context, agentID models.ID) ([]models.Webpage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.listPagesCalls
	f.listPagesCalls++
	if n < len(f.pagesErrs) && f.pagesErrs[n] != nil {
		return nil, f.pagesErrs[n]
	}
	if len(f.pages) == 0 {
		return []models.Webpage{}, nil
	}
	if n >= len(f.pages) {
		n = len(f.pages) - 1
	}
	return f.pages[n], nil
}

func (f *fakeAPI) StartScrape(ctx context.Context, agentID models.ID, websites []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrapeCalls++
	f.scraped = append(f.scraped, websites)
	return f.scrapeErr
}

func testOptions() Options {
	return Options{
		PollInterval:   time.Hour,
		NotifyDuration: time.Millisecond,
		RequestTimeout: time.Second,
	}
}

// runCmd executes cmd and flattens batches into the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive feeds msg to model and keeps feeding back the results of the
// requests it issues. Navigation, tick and toast messages are returned to
// the caller instead.
func drive(model tea.Model, msg tea.Msg) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		_, cmd := model.Update(next)
		for _, produced := range runCmd(cmd) {
			switch produced.(type) {
			case agentdir.AgentsLoadedMsg, agentdir.AgentCreatedMsg, agentdir.AgentDeletedMsg,
				scrapemon.PagesLoadedMsg, scrapemon.ScrapeStartedMsg:
				queue = append(queue, produced)
			default:
				out = append(out, produced)
			}
		}
	}
	return out
}

// initModel runs Init and feeds its results back.
func initModel(model tea.Model) []tea.Msg {
	var out []tea.Msg
	for _, msg := range runCmd(model.Init()) {
		out = append(out, drive(model, msg)...)
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func toastTitles(n notifier, kind ToastKind) []string {
	var out []string
	for _, t := range n.Toasts() {
		if t.Kind == kind {
			out = append(out, t.Title)
		}
	}
	return out
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func pageList(done, pending int) []models.Webpage {
	out := make([]models.Webpage, 0, done+pending)
	for i := 0; i < done; i++ {
		out = append(out, models.Webpage{Identifier: fmt.Sprintf("d%d", i), URL: "https://done.example", Status: models.StatusDone})
	}
	for i := 0; i < pending; i++ {
		out = append(out, models.Webpage{Identifier: fmt.Sprintf("p%d", i), URL: "https://pending.example", Status: models.StatusPending})
	}
	return out
}
