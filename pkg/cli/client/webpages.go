package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"agentscrape-go/pkg/models"
)

func websitesPath(agentID models.ID) string {
	return fmt.Sprintf("/api/scraper/websites/%s/", url.PathEscape(agentID.String()))
}

// ListWebpages retrieves the tracked webpages of an agent
func (c *Client) ListWebpages(ctx context.Context, agentID models.ID) ([]models.Webpage, error) {
	if agentID == "" {
		return nil, newValidationError(OpListWebpages, ErrMissingAgentID)
	}

	var pages []models.Webpage
	if err := c.doEnvelope(ctx, OpListWebpages, http.MethodGet, websitesPath(agentID), nil, &pages); err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []models.Webpage{}
	}
	return pages, nil
}

// StartScrape submits websites for a single-level, explicit-URL scrape.
// The response body is not inspected beyond HTTP-level success.
func (c *Client) StartScrape(ctx context.Context, agentID models.ID, websites []string) error {
	if agentID == "" {
		return newValidationError(OpStartScrape, ErrMissingAgentID)
	}

	cleaned := make([]string, 0, len(websites))
	for _, w := range websites {
		if s := strings.TrimSpace(w); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return newValidationError(OpStartScrape, fmt.Errorf("please enter at least one website URL"))
	}

	return c.doAccepted(ctx, OpStartScrape, http.MethodPost, websitesPath(agentID), models.NewScrapeRequest(cleaned))
}
