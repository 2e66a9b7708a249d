package store

import (
	"context"
	"testing"
	"time"

	"agentscrape-go/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateAgent(ctx, models.Agent{ID: "1", Title: "A"}))
	require.NoError(t, s.CreateAgent(ctx, models.Agent{ID: "2", Title: "B"}))

	agents, err := s.ListAgents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Agent{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}, agents)

	require.NoError(t, s.DeleteAgent(ctx, "1"))
	assert.ErrorIs(t, s.DeleteAgent(ctx, "1"), ErrNotFound)
	assert.False(t, s.HasAgent(ctx, "1"))
	assert.True(t, s.HasAgent(ctx, "2"))
}

func TestUpsertWebpagesReplacesByURL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateAgent(ctx, models.Agent{ID: "a", Title: "A"}))

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	require.NoError(t, s.UpsertWebpages(ctx, "a", []WebpageRecord{
		{Identifier: "w1", URL: "https://x.example", CreatedAt: t0, StartedAt: t0},
	}))
	require.NoError(t, s.UpsertWebpages(ctx, "a", []WebpageRecord{
		{Identifier: "w2", URL: "https://x.example", CreatedAt: t1, StartedAt: t1},
		{Identifier: "w3", URL: "https://y.example", CreatedAt: t1, StartedAt: t1},
	}))

	pages, err := s.ListWebpages(ctx, "a")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "w1", pages[0].Identifier)
	assert.Equal(t, t0, pages[0].CreatedAt)
	assert.Equal(t, t1, pages[0].StartedAt)
	assert.Equal(t, "w3", pages[1].Identifier)
}

func TestWebpagesUnknownAgent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.ListWebpages(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.UpsertWebpages(ctx, "missing", nil), ErrNotFound)
}

func TestDeleteAgentDropsWebpages(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateAgent(ctx, models.Agent{ID: "a", Title: "A"}))
	require.NoError(t, s.UpsertWebpages(ctx, "a", []WebpageRecord{{Identifier: "w", URL: "u"}}))
	require.NoError(t, s.DeleteAgent(ctx, "a"))
	require.NoError(t, s.CreateAgent(ctx, models.Agent{ID: "a", Title: "A again"}))

	pages, err := s.ListWebpages(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, pages)
}
