// internal/handler/notifications.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

// Send accepts a notification request and acknowledges it. Delivery is not
// implemented yet; the endpoint exists so clients can already integrate.
// TODO: wire an actual delivery channel (email or push) behind this.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	slog.Info("Notification queued", "user_id", userID, "channel", req.Channel)
	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "channel": req.Channel})
}

// === DTO ===

type SendNotificationRequest struct {
	Channel string `json:"channel" validate:"required,oneof=email push"`
	Message string `json:"message" validate:"required,notblank"`
}
