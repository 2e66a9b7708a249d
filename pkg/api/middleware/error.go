package middleware

import (
	"net/http"

	"agentscrape-go/pkg/models"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.JSON(http.StatusInternalServerError, models.Status{
			Success: false,
			Error:   "internal server error",
		})
		c.Abort()
	})
}
