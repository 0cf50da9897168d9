package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/duckwolf_api/internal/utils"
)

var startTime = time.Now()

// Pinger is implemented by store backends that hold a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	storeDriver string
	store       Pinger // nil for backends without a connection
	aiEnabled   bool
}

func NewHealthHandler(storeDriver string, store Pinger, aiEnabled bool) *HealthHandler {
	return &HealthHandler{storeDriver: storeDriver, store: store, aiEnabled: aiEnabled}
}

// GetHealth responds with service and store status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	storeStatus := "connected"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Ping(ctx); err != nil {
			storeStatus = "disconnected"
		}
	}

	aiStatus := "offline"
	if h.aiEnabled {
		aiStatus = "configured"
	}

	utils.Success(c, http.StatusOK, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"store": gin.H{
			"driver": h.storeDriver,
			"status": storeStatus,
		},
		"ai": aiStatus,
	})
}
