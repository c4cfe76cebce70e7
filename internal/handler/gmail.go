// internal/handler/gmail.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"assessor-financeiro/internal/gmail"

	"github.com/gin-gonic/gin"
)

type GmailHandler struct {
	svc *gmail.Service
}

func NewGmailHandler(svc *gmail.Service) *GmailHandler {
	return &GmailHandler{svc: svc}
}

// InitAuth starts the OAuth flow and hands the consent URL to the client.
func (h *GmailHandler) InitAuth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	url, _, err := h.svc.AuthURL(context.Background(), userID)
	if err != nil {
		slog.Error("Failed to build auth URL", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auth_url": url})
}

// Callback is hit by Google's redirect; it is unauthenticated, the state nonce
// identifies the user.
func (h *GmailHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state and code query params required"})
		return
	}

	userID, err := h.svc.Exchange(context.Background(), state, code)
	if err != nil {
		slog.Error("OAuth exchange failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "OAuth exchange failed"})
		return
	}

	slog.Info("Gmail connected", "user_id", userID)
	c.JSON(http.StatusOK, gin.H{"status": "connected"})
}

func (h *GmailHandler) Sync(c *gin.Context) {
	var req GmailSyncRequest
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

	result, err := h.svc.Sync(context.Background(), userID, req.AccountID, gmail.SyncConfig{
		Query:      req.Query,
		MaxResults: req.MaxResults,
	})
	if err != nil {
		slog.Error("Gmail sync failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gmail sync failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GmailHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	token, err := h.svc.Tokens().Token(context.Background(), userID)
	if err != nil {
		slog.Error("Failed to read gmail credentials", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": token != nil})
}

func (h *GmailHandler) Disconnect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.svc.Tokens().DeleteToken(context.Background(), userID); err != nil {
		slog.Error("Failed to delete gmail credentials", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type GmailSyncRequest struct {
	AccountID  int64  `json:"account_id" validate:"required,gt=0"`
	Query      string `json:"query"`
	MaxResults int64  `json:"max_results" validate:"omitempty,gte=1,lte=500"`
}
