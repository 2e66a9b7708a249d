package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/utils"
)

// ListAgents retrieves all agents
func (c *Client) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := c.doEnvelope(ctx, OpListAgents, http.MethodGet, "/api/agents", nil, &agents); err != nil {
		return nil, err
	}
	if agents == nil {
		agents = []models.Agent{}
	}
	return agents, nil
}

// CreateAgent creates a new agent. Blank titles are rejected before any
// request is sent.
func (c *Client) CreateAgent(ctx context.Context, title string) error {
	title, err := utils.ValidateTitle(title)
	if err != nil {
		return newValidationError(OpCreateAgent, err)
	}

	return c.doEnvelope(ctx, OpCreateAgent, http.MethodPost, "/api/agents", models.AgentCreate{Title: title}, nil)
}

// DeleteAgent deletes an agent by ID
func (c *Client) DeleteAgent(ctx context.Context, id models.ID) error {
	if id == "" {
		return newValidationError(OpDeleteAgent, ErrMissingAgentID)
	}

	path := fmt.Sprintf("/api/agents/%s", url.PathEscape(id.String()))
	return c.doEnvelope(ctx, OpDeleteAgent, http.MethodDelete, path, nil, nil)
}
