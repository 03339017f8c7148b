package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rawuh-in/console/pkg/response"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health reports process liveness
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}
