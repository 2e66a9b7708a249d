package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"agentscrape-go/pkg/models"
)

// ErrNotFound is returned when an agent does not exist.
var ErrNotFound = errors.New("not found")

// WebpageRecord is a submitted page. Its status is derived by the service
// from StartedAt, so the store never mutates records on read.
type WebpageRecord struct {
	Identifier string
	URL        string
	CreatedAt  time.Time
	StartedAt  time.Time
}

// MemoryStore keeps agents and their webpages in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	agents []models.Agent
	pages  map[models.ID][]WebpageRecord
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[models.ID][]WebpageRecord),
	}
}

// ListAgents returns agents in creation order.
func (s *MemoryStore) ListAgents(ctx context.Context) ([]models.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Agent, len(s.agents))
	copy(out, s.agents)
	return out, nil
}

// CreateAgent stores a new agent.
func (s *MemoryStore) CreateAgent(ctx context.Context, agent models.Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agents = append(s.agents, agent)
	return nil
}

// DeleteAgent removes an agent and its webpages.
func (s *MemoryStore) DeleteAgent(ctx context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.agents {
		if a.ID == id {
			s.agents = append(s.agents[:i], s.agents[i+1:]...)
			delete(s.pages, id)
			return nil
		}
	}
	return ErrNotFound
}

// HasAgent reports whether the agent exists.
func (s *MemoryStore) HasAgent(ctx context.Context, id models.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasAgentLocked(id)
}

func (s *MemoryStore) hasAgentLocked(id models.ID) bool {
	for _, a := range s.agents {
		if a.ID == id {
			return true
		}
	}
	return false
}

// UpsertWebpages adds records for an agent. A record whose URL is already
// tracked replaces the existing one but keeps its identifier and creation time.
func (s *MemoryStore) UpsertWebpages(ctx context.Context, agentID models.ID, records []WebpageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasAgentLocked(agentID) {
		return ErrNotFound
	}

	existing := s.pages[agentID]
	for _, rec := range records {
		replaced := false
		for i := range existing {
			if existing[i].URL == rec.URL {
				existing[i].StartedAt = rec.StartedAt
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rec)
		}
	}
	s.pages[agentID] = existing
	return nil
}

// ListWebpages returns an agent's records in submission order.
func (s *MemoryStore) ListWebpages(ctx context.Context, agentID models.ID) ([]WebpageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasAgentLocked(agentID) {
		return nil, ErrNotFound
	}

	out := make([]WebpageRecord, len(s.pages[agentID]))
	copy(out, s.pages[agentID])
	return out, nil
}
