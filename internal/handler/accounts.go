// internal/handler/accounts.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	store storage.AccountStorage
}

func NewAccountHandler(store storage.AccountStorage) *AccountHandler {
	return &AccountHandler{store: store}
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
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

	account := domain.Account{
		UserID:      userID,
		BankName:    req.BankName,
		AccountType: domain.AccountType(req.AccountType),
		Nickname:    req.Nickname,
		LastBalance: req.LastBalance,
	}
	if err := h.store.CreateAccount(context.Background(), &account); err != nil {
		slog.Error("Failed to create account", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *AccountHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	accounts, total, err := h.store.ListAccounts(context.Background(), userID, skip, limit)
	if err != nil {
		slog.Error("Failed to list accounts", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: accounts, Total: total, Skip: skip, Limit: limit})
}

func (h *AccountHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	account, err := h.store.GetAccount(context.Background(), userID, accountID)
	if err != nil {
		slog.Error("Failed to get account", "error", err, "user_id", userID, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, account)
}

// Update applies only the fields present in the request body.
func (h *AccountHandler) Update(c *gin.Context) {
	var req UpdateAccountRequest
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
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	account, err := h.store.GetAccount(context.Background(), userID, accountID)
	if err != nil {
		slog.Error("Failed to get account", "error", err, "user_id", userID, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountType != nil {
		account.AccountType = domain.AccountType(*req.AccountType)
	}
	if req.Nickname != nil {
		account.Nickname = req.Nickname
	}
	if req.LastBalance != nil {
		account.LastBalance = req.LastBalance
	}

	if err := h.store.UpdateAccount(context.Background(), account); err != nil {
		slog.Error("Failed to update account", "error", err, "user_id", userID, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	accountID, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteAccount(context.Background(), userID, accountID)
	if err != nil {
		slog.Error("Failed to delete account", "error", err, "user_id", userID, "account_id", accountID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type CreateAccountRequest struct {
	BankName    string           `json:"bank_name" validate:"required,notblank"`
	AccountType string           `json:"account_type" validate:"required,accounttype"`
	Nickname    *string          `json:"nickname"`
	LastBalance *decimal.Decimal `json:"last_balance"`
}

type UpdateAccountRequest struct {
	BankName    *string          `json:"bank_name" validate:"omitempty,notblank"`
	AccountType *string          `json:"account_type" validate:"omitempty,accounttype"`
	Nickname    *string          `json:"nickname"`
	LastBalance *decimal.Decimal `json:"last_balance"`
}
