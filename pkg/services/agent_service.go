package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/store"
	"agentscrape-go/pkg/utils"

	"github.com/google/uuid"
)

var (
	// ErrInvalidInput marks request validation failures.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAgentNotFound is returned for unknown agent IDs.
	ErrAgentNotFound = errors.New("agent not found")
)

// Store is the persistence the service depends on.
type Store interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	CreateAgent(ctx context.Context, agent models.Agent) error
	DeleteAgent(ctx context.Context, id models.ID) error
	UpsertWebpages(ctx context.Context, agentID models.ID, records []store.WebpageRecord) error
	ListWebpages(ctx context.Context, agentID models.ID) ([]store.WebpageRecord, error)
}

// AgentService handles business logic for agents and their scrape jobs.
// Scrape progress is simulated: a page is pending, then in progress once half
// of ScrapeDuration has elapsed, then done.
type AgentService struct {
	store          Store
	scrapeDuration time.Duration
	now            func() time.Time
}

// NewAgentService creates a new agent service
func NewAgentService(s Store, scrapeDuration time.Duration) *AgentService {
	return &AgentService{
		store:          s,
		scrapeDuration: scrapeDuration,
		now:            time.Now,
	}
}

// WithClock replaces the time source, for deterministic progress in tests.
func (s *AgentService) WithClock(now func() time.Time) *AgentService {
	s.now = now
	return s
}

// ListAgents retrieves all agents
func (s *AgentService) ListAgents(ctx context.Context) ([]models.Agent, error) {
	return s.store.ListAgents(ctx)
}

// CreateAgent validates the title and stores a new agent
func (s *AgentService) CreateAgent(ctx context.Context, create models.AgentCreate) (*models.Agent, error) {
	title, err := utils.ValidateTitle(create.Title)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	agent := models.Agent{ID: models.ID(uuid.NewString()), Title: title}
	if err := s.store.CreateAgent(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return &agent, nil
}

// DeleteAgent deletes an agent and its webpages
func (s *AgentService) DeleteAgent(ctx context.Context, id models.ID) error {
	if err := s.store.DeleteAgent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAgentNotFound
		}
		return fmt.Errorf("failed to delete agent: %w", err)
	}
	return nil
}

// StartScrape records one page per submitted website. Only single-level,
// explicit-URL scrapes are supported.
func (s *AgentService) StartScrape(ctx context.Context, agentID models.ID, req models.ScrapeRequest) error {
	if !req.HasSpecificURLs || req.Level != 1 {
		return fmt.Errorf("%w: only level 1 scrapes of specific URLs are supported", ErrInvalidInput)
	}

	now := s.now().UTC()
	records := make([]store.WebpageRecord, 0, len(req.Websites))
	for _, w := range req.Websites {
		u, err := utils.ValidateURL(w)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		records = append(records, store.WebpageRecord{
			Identifier: uuid.NewString(),
			URL:        u,
			CreatedAt:  now,
			StartedAt:  now,
		})
	}
	if len(records) == 0 {
		return fmt.Errorf("%w: at least one website is required", ErrInvalidInput)
	}

	if err := s.store.UpsertWebpages(ctx, agentID, records); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAgentNotFound
		}
		return fmt.Errorf("failed to start scrape: %w", err)
	}
	return nil
}

// ListWebpages returns an agent's pages with their simulated status
func (s *AgentService) ListWebpages(ctx context.Context, agentID models.ID) ([]models.Webpage, error) {
	records, err := s.store.ListWebpages(ctx, agentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("failed to list webpages: %w", err)
	}

	now := s.now().UTC()
	pages := make([]models.Webpage, 0, len(records))
	for _, rec := range records {
		status, updated := s.statusAt(rec, now)
		pages = append(pages, models.Webpage{
			Identifier: rec.Identifier,
			URL:        rec.URL,
			Status:     status,
			CreatedAt:  models.NewTimestamp(rec.CreatedAt),
			UpdatedAt:  models.NewTimestamp(updated),
		})
	}
	return pages, nil
}

func (s *AgentService) statusAt(rec store.WebpageRecord, now time.Time) (models.WebpageStatus, time.Time) {
	elapsed := now.Sub(rec.StartedAt)
	switch {
	case elapsed >= s.scrapeDuration:
		return models.StatusDone, rec.StartedAt.Add(s.scrapeDuration)
	case elapsed >= s.scrapeDuration/2:
		return models.StatusInProgress, rec.StartedAt.Add(s.scrapeDuration / 2)
	default:
		return models.StatusPending, rec.StartedAt
	}
}
