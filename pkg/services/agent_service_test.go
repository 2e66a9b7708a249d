package services

import (
	"context"
	"testing"
	"time"

	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService(t *testing.T) (*AgentService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewAgentService(store.NewMemoryStore(), 10*time.Second).WithClock(clock.Now)
	return svc, clock
}

func TestCreateAgentTrimsAndRejectsBlank(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	agent, err := svc.CreateAgent(ctx, models.AgentCreate{Title: "  Crawler "})
	require.NoError(t, err)
	assert.Equal(t, "Crawler", agent.Title)
	assert.NotEmpty(t, agent.ID)

	_, err = svc.CreateAgent(ctx, models.AgentCreate{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	agents, err := svc.ListAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, agents, 1)
}

func TestDeleteUnknownAgent(t *testing.T) {
	svc, _ := newTestService(t)
	assert.ErrorIs(t, svc.DeleteAgent(context.Background(), "nope"), ErrAgentNotFound)
}

func TestScrapeProgressesOverTime(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestService(t)

	agent, err := svc.CreateAgent(ctx, models.AgentCreate{Title: "A"})
	require.NoError(t, err)

	req := models.NewScrapeRequest([]string{"https://a.example", "https://b.example"})
	require.NoError(t, svc.StartScrape(ctx, agent.ID, req))

	pages, err := svc.ListWebpages(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, models.StatusPending, pages[0].Status)

	clock.Advance(5 * time.Second)
	pages, err = svc.ListWebpages(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, pages[0].Status)

	clock.Advance(5 * time.Second)
	pages, err = svc.ListWebpages(ctx, agent.ID)
	require.NoError(t, err)
	for _, p := range pages {
		assert.True(t, p.IsDone())
	}
	assert.True(t, pages[0].UpdatedAt.Time.After(pages[0].CreatedAt.Time))
}

func TestStartScrapeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	agent, err := svc.CreateAgent(ctx, models.AgentCreate{Title: "A"})
	require.NoError(t, err)

	err = svc.StartScrape(ctx, agent.ID, models.NewScrapeRequest(nil))
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.StartScrape(ctx, agent.ID, models.NewScrapeRequest([]string{"  "}))
	assert.ErrorIs(t, err, ErrInvalidInput)

	deep := models.NewScrapeRequest([]string{"https://a.example"})
	deep.Level = 2
	assert.ErrorIs(t, svc.StartScrape(ctx, agent.ID, deep), ErrInvalidInput)

	err = svc.StartScrape(ctx, "unknown", models.NewScrapeRequest([]string{"https://a.example"}))
	assert.ErrorIs(t, err, ErrAgentNotFound)
}
