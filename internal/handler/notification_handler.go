package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/duckwolf_api/internal/notify"
	"github.com/GTDGit/duckwolf_api/internal/sse"
	"github.com/GTDGit/duckwolf_api/internal/utils"
)

const ssePingInterval = 30 * time.Second

// NotificationHandler serves the session notification log and its live stream.
type NotificationHandler struct {
	log *notify.Log
	hub *sse.Hub
}

func NewNotificationHandler(l *notify.Log, hub *sse.Hub) *NotificationHandler {
	return &NotificationHandler{log: l, hub: hub}
}

func (h *NotificationHandler) List(c *gin.Context) {
	utils.Success(c, http.StatusOK, "Notifications retrieved", gin.H{
		"notifications": h.log.List(),
		"unread":        h.log.Unread(),
	})
}

// MarkRead is idempotent; unknown ids report found=false.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	found := h.log.MarkRead(c.Param("id"))
	utils.Success(c, http.StatusOK, "Notification marked as read", gin.H{"found": found})
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.log.ClearAll()
	utils.Success(c, http.StatusOK, "Notifications cleared", nil)
}

// Stream handles GET /v1/notifications/stream.
func (h *NotificationHandler) Stream(c *gin.Context) {
	clientID := "dashboard-" + uuid.NewString()[:8]
	if uid := c.GetString("user_id"); uid != "" {
		clientID = uid + "-" + clientID
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	sub := h.hub.Subscribe(clientID)
	defer h.hub.Unsubscribe(sub)

	c.SSEvent("connected", gin.H{
		"clientId":  clientID,
		"unread":    h.log.Unread(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	c.Writer.Flush()

	log.Info().Str("client_id", clientID).Msg("Notification stream started")

	ping := time.NewTicker(ssePingInterval)
	defer ping.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-sub.Events:
			if !ok {
				return false
			}
			c.SSEvent(sse.EventNotificationCreated, string(data))
			return true
		case <-ping.C:
			c.SSEvent("ping", gin.H{"timestamp": time.Now().UTC().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
