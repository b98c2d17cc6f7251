// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worldbooks/backend/internal/application/adapter"
)

// DatabaseHealthChecker reports whether the backing store is reachable.
type DatabaseHealthChecker interface {
	HealthCheck() bool
}

// HealthController handles health check endpoints.
type HealthController struct {
	database DatabaseHealthChecker
	revision adapter.RevisionReader
}

// HealthResponse represents the health check response. Revision mirrors
// GET /api/v1/ledger/revision.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Revision  uint64 `json:"revision"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(database DatabaseHealthChecker, revision adapter.RevisionReader) *HealthController {
	return &HealthController{
		database: database,
		revision: revision,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.database != nil && h.database.HealthCheck() {
		dbStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		Database:  dbStatus,
		Revision:  h.revision.Revision(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
