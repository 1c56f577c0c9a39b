package health

import (
	"net/http"
	"time"

	"github.com/bracken1022/prompt-museum/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status      string `json:"status" example:"ok"`
	Message     string `json:"message" example:"Prompt Museum Backend is running!"`
	Timestamp   string `json:"timestamp" example:"2024-01-01T00:00:00.000Z"`
	Environment string `json:"environment" example:"development"`
}

// Check godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} Response
// @Router /health [get]
func Check(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:      "ok",
			Message:     "Prompt Museum Backend is running!",
			Timestamp:   time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Environment: environment,
		})
	}
}

func RegisterRoutes(router *gin.RouterGroup, policy middleware.Policy, environment string) {
	policy.Handle(router, middleware.Public, http.MethodGet, "/health", Check(environment))
}
