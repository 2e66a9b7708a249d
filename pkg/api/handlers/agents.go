package handlers

import (
	"errors"
	"net/http"

	"agentscrape-go/pkg/models"
	"agentscrape-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports that the server is up
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListAgents lists all agents
func ListAgents(service *services.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		agents, err := service.ListAgents(c.Request.Context())
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, models.Envelope[[]models.Agent]{Success: true, Data: agents})
	}
}

// CreateAgent creates a new agent
func CreateAgent(service *services.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var create models.AgentCreate
		if err := c.ShouldBindJSON(&create); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		agent, err := service.CreateAgent(c.Request.Context(), create)
		if err != nil {
			fail(c, statusFor(err), err)
			return
		}

		c.JSON(http.StatusCreated, models.Envelope[*models.Agent]{Success: true, Data: agent})
	}
}

// DeleteAgent deletes an agent by ID
func DeleteAgent(service *services.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := models.ID(c.Param("id"))

		if err := service.DeleteAgent(c.Request.Context(), id); err != nil {
			fail(c, statusFor(err), err)
			return
		}

		c.JSON(http.StatusOK, models.Status{Success: true})
	}
}

// fail writes the backend's failure envelope
func fail(c *gin.Context, status int, err error) {
	c.JSON(status, models.Status{Success: false, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrAgentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
