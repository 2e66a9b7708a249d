package tui

import (
	"errors"
	"testing"
	"time"

	"agentscrape-go/pkg/cli/client"
	"agentscrape-go/pkg/cli/tui/scrapemon"
	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/monitor"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickRecorder replaces the timer: armed ticks are recorded and delivered
// by the test.
type tickRecorder struct {
	ticks []scrapemon.PollTickMsg
}

func (r *tickRecorder) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	r.ticks = append(r.ticks, msg.(scrapemon.PollTickMsg))
	return nil
}

func (r *tickRecorder) last() scrapemon.PollTickMsg {
	return r.ticks[len(r.ticks)-1]
}

func newTestMonitor(t *testing.T, api *fakeAPI, agentID models.ID) (*scrapeMonitorModel, *tickRecorder) {
	t.Helper()
	m := newScrapeMonitor(api, agentID, testOptions())
	rec := &tickRecorder{}
	m.schedule = rec.schedule
	initModel(m)
	return m, rec
}

// submitScrape opens the dialog and submits raw as the website list.
func submitScrape(m *scrapeMonitorModel, raw string) []tea.Msg {
	drive(m, key("s"))
	m.urlInput.SetValue(raw)
	return drive(m, key("enter"))
}

func completionToasts(m *scrapeMonitorModel) int {
	n := 0
	for _, title := range toastTitles(m.notes, ToastSuccess) {
		if title == scrapemon.CompletedTitle {
			n++
		}
	}
	return n
}

func TestMonitorReadsOnceOnMount(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{pageList(1, 1)}}
	m, rec := newTestMonitor(t, api, "7")

	assert.Equal(t, 1, api.listPagesCalls)
	assert.Empty(t, rec.ticks, "no timer while idle")
	assert.Equal(t, monitor.Idle{}, m.machine.State())
	assert.Equal(t, 50, m.machine.Progress())
	assert.Len(t, m.table.Rows(), 2)
	assert.True(t, m.machine.CanStartScrape())
}

func TestMonitorCompletesAndReleasesTimer(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{
		{},             // mount
		pageList(0, 1), // immediate read after acceptance
		pageList(1, 0), // first tick
	}}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")
	require.Equal(t, 1, api.scrapeCalls)
	assert.Equal(t, [][]string{{"https://a.example"}}, api.scraped)
	assert.Equal(t, scrapemon.StepList, m.step, "dialog closes")
	assert.Empty(t, m.urlInput.Value())
	assert.Equal(t, 2, api.listPagesCalls, "one read right away")
	require.Len(t, rec.ticks, 1)
	assert.True(t, m.machine.IsPolling())
	assert.Equal(t, 0, m.machine.Progress())

	drive(m, rec.last())
	assert.Equal(t, 3, api.listPagesCalls)
	assert.Equal(t, 100, m.machine.Progress())
	assert.Equal(t, monitor.Idle{}, m.machine.State())
	assert.Equal(t, 1, completionToasts(m))

	// The tick armed alongside the last read is stale now.
	armed := len(rec.ticks)
	drive(m, rec.last())
	assert.Equal(t, 3, api.listPagesCalls, "no read for a released timer")
	assert.Len(t, rec.ticks, armed, "the chain ends")

	// A manual refresh that still shows 100% does not notify again.
	drive(m, key("r"))
	assert.Equal(t, 4, api.listPagesCalls)
	assert.Equal(t, 1, completionToasts(m))
}

func TestMonitorHalfDoneKeepsPolling(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{{}, pageList(0, 2), pageList(1, 1)}}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example, https://b.example")
	assert.Equal(t, [][]string{{"https://a.example", "https://b.example"}}, api.scraped)

	drive(m, rec.last())
	assert.Equal(t, 50, m.machine.Progress())
	assert.True(t, m.machine.IsPolling())
	assert.Len(t, rec.ticks, 2, "next tick armed")
	assert.Zero(t, completionToasts(m))

	drive(m, rec.last())
	assert.Equal(t, 4, api.listPagesCalls)
	assert.True(t, m.machine.IsPolling())
	assert.Contains(t, m.View(), "1/2 done")
}

func TestMonitorSingleTimerWhilePolling(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{{}, pageList(0, 1)}}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")
	require.Len(t, rec.ticks, 1)
	timer := rec.last().Timer

	// Start scraping is disabled while polling.
	drive(m, key("s"))
	assert.Equal(t, scrapemon.StepList, m.step)
	assert.False(t, m.machine.CanStartScrape())

	// A second acceptance does not arm another timer.
	drive(m, scrapemon.ScrapeStartedMsg{Screen: m.screen})
	assert.Len(t, rec.ticks, 1)
	assert.Equal(t, monitor.Polling{Progress: 0, Timer: timer}, m.machine.State())
}

func TestMonitorNoReadsAfterClose(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{{}, pageList(0, 1)}}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")
	calls := api.listPagesCalls

	m.Close()
	drive(m, rec.last())
	assert.Equal(t, calls, api.listPagesCalls)
	assert.Len(t, rec.ticks, 1)

	// A read that was in flight at teardown changes nothing.
	drive(m, scrapemon.PagesLoadedMsg{Screen: m.screen, Pages: pageList(1, 0)})
	assert.Zero(t, completionToasts(m))
	assert.Len(t, m.pages, 1)
	assert.Equal(t, models.StatusPending, m.pages[0].Status)
}

func TestMonitorDropsResultsForOtherScreens(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{pageList(0, 1)}}
	m, _ := newTestMonitor(t, api, "7")
	other := newScrapeMonitor(api, "8", testOptions())

	drive(m, scrapemon.PagesLoadedMsg{Screen: other.screen, Pages: pageList(3, 0)})
	assert.Len(t, m.pages, 1)
	assert.Equal(t, 0, m.machine.Progress())
}

func TestMonitorReadFailureKeepsRecordsAndTimer(t *testing.T) {
	api := &fakeAPI{
		pages: [][]models.Webpage{{}, pageList(1, 1), pageList(1, 1), pageList(2, 0)},
		pagesErrs: []error{nil, nil,
			&client.Error{Kind: client.KindTransport, Op: client.OpListWebpages, Cause: errors.New("refused")}},
	}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")
	assert.Equal(t, 50, m.machine.Progress())

	drive(m, rec.last())
	assert.Equal(t, 50, m.machine.Progress())
	assert.Len(t, m.pages, 2)
	assert.True(t, m.machine.IsPolling())
	assert.Equal(t, []string{"Failed to fetch records."}, toastTitles(m.notes, ToastError))

	drive(m, rec.last())
	assert.Equal(t, 100, m.machine.Progress())
	assert.Equal(t, 1, completionToasts(m))
}

func TestMonitorScrapeFailureKeepsDialogOpen(t *testing.T) {
	api := &fakeAPI{scrapeErr: &client.Error{Kind: client.KindBackend, Op: client.OpStartScrape}}
	m, rec := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")

	assert.Equal(t, 1, api.scrapeCalls)
	assert.Equal(t, scrapemon.StepScrapeDialog, m.step)
	assert.False(t, m.machine.IsPolling())
	assert.Empty(t, rec.ticks)
	assert.Equal(t, []string{"Failed to start scraping."}, toastTitles(m.notes, ToastError))
}

func TestMonitorEmptyURLListSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newTestMonitor(t, api, "7")

	submitScrape(m, " , \n ")

	assert.Zero(t, api.scrapeCalls)
	assert.Equal(t, scrapemon.StepScrapeDialog, m.step)
	assert.Equal(t, []string{"Please enter at least one website URL"}, toastTitles(m.notes, ToastError))
}

func TestMonitorMissingAgentSendsNoRequest(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newTestMonitor(t, api, "")

	assert.Zero(t, api.listPagesCalls)
	assert.Equal(t, []string{"No agent ID provided"}, toastTitles(m.notes, ToastError))

	drive(m, key("s"))
	assert.Equal(t, scrapemon.StepList, m.step)
	assert.Zero(t, api.scrapeCalls)
}

func TestMonitorEscGoesBack(t *testing.T) {
	m, _ := newTestMonitor(t, &fakeAPI{}, "7")

	out := drive(m, key("esc"))
	_, ok := findMsg[scrapemon.BackMsg](out)
	assert.True(t, ok)
}

func TestMonitorFirstReadAtHundredCompletes(t *testing.T) {
	api := &fakeAPI{pages: [][]models.Webpage{{}, pageList(2, 0)}}
	m, _ := newTestMonitor(t, api, "7")

	submitScrape(m, "https://a.example")

	assert.False(t, m.machine.IsPolling())
	assert.Equal(t, 1, completionToasts(m))
}
