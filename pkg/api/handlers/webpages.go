package handlers

import (
	"net/http"

	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// ListWebpages lists the tracked webpages of an agent
func ListWebpages(service *services.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID := models.ID(c.Param("agentId"))

		pages, err := service.ListWebpages(c.Request.Context(), agentID)
		if err != nil {
			fail(c, statusFor(err), err)
			return
		}

		c.JSON(http.StatusOK, models.Envelope[[]models.Webpage]{Success: true, Data: pages})
	}
}

// StartScrape accepts websites to scrape for an agent
func StartScrape(service *services.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID := models.ID(c.Param("agentId"))

		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		if err := service.StartScrape(c.Request.Context(), agentID, req); err != nil {
			fail(c, statusFor(err), err)
			return
		}

		c.JSON(http.StatusAccepted, models.Status{Success: true})
	}
}
