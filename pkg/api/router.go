package api

import (
	"agentscrape-go/pkg/api/handlers"
	"agentscrape-go/pkg/api/middleware"
	"agentscrape-go/pkg/cli/logger"
	"agentscrape-go/pkg/services"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the development backend. It serves the same contract as
// the production agent API so the CLI and TUI can be run end to end.
func NewRouter(service *services.AgentService, log *logger.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestLogger(log.Sub("http")))
	router.Use(middleware.ErrorHandler())

	// Health check
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		agents := api.Group("/agents")
		{
			agents.GET("", handlers.ListAgents(service))
			agents.POST("", handlers.CreateAgent(service))
			agents.DELETE("/:id", handlers.DeleteAgent(service))
		}

		websites := api.Group("/scraper/websites")
		{
			websites.GET("/:agentId/", handlers.ListWebpages(service))
			websites.POST("/:agentId/", handlers.StartScrape(service))
		}
	}

	return router
}
