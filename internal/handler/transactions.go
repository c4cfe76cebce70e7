// internal/handler/transactions.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"assessor-financeiro/internal/categorizer"
	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionStorage interface {
	storage.TransactionStorage
	storage.AccountStorage
	storage.CategoryStorage
}

type TransactionHandler struct {
	store TransactionStorage
}

func NewTransactionHandler(store TransactionStorage) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// Create inserts a manual transaction. When no category is given, the rule
// categorizer picks one.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
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

	account, err := h.store.GetAccount(context.Background(), userID, req.AccountID)
	if err != nil {
		slog.Error("Failed to check account", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	transactionDate, ok := parseDateParam(c, req.TransactionDate, "transaction_date")
	if !ok {
		return
	}
	if transactionDate == nil {
		now := time.Now().UTC()
		transactionDate = &now
	}

	categoryID := req.CategoryID
	if categoryID == nil {
		result, err := categorizer.CategorizeWithStore(context.Background(), h.store, userID, req.Merchant, req.Description)
		if err != nil {
			slog.Error("Auto-categorization failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		categoryID = result.CategoryID
	} else {
		category, err := h.store.GetCategory(context.Background(), userID, *categoryID)
		if err != nil {
			slog.Error("Failed to check category", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if category == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
	}

	tx := domain.Transaction{
		AccountID:           req.AccountID,
		Amount:              req.Amount,
		Merchant:            req.Merchant,
		Description:         req.Description,
		TransactionDate:     *transactionDate,
		TransactionType:     req.TransactionType,
		PaymentMethod:       req.PaymentMethod,
		CardLast4:           req.CardLast4,
		InstallmentsTotal:   req.InstallmentsTotal,
		InstallmentsCurrent: req.InstallmentsCurrent,
		CategoryID:          categoryID,
		IsManual:            true,
	}
	if err := h.store.CreateTransaction(context.Background(), &tx); err != nil {
		slog.Error("Failed to create transaction", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	var filter storage.TransactionFilter
	if raw := c.Query("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account_id"})
			return
		}
		filter.AccountID = &id
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = &id
	}
	var okDate bool
	if filter.StartDate, okDate = parseDateQuery(c, "start_date"); !okDate {
		return
	}
	if filter.EndDate, okDate = parseDateQuery(c, "end_date"); !okDate {
		return
	}

	transactions, total, err := h.store.ListTransactions(context.Background(), userID, filter, skip, limit)
	if err != nil {
		slog.Error("Failed to list transactions", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: transactions, Total: total, Skip: skip, Limit: limit})
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.store.GetTransaction(context.Background(), userID, transactionID)
	if err != nil {
		slog.Error("Failed to get transaction", "error", err, "user_id", userID, "transaction_id", transactionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req UpdateTransactionRequest
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
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.store.GetTransaction(context.Background(), userID, transactionID)
	if err != nil {
		slog.Error("Failed to get transaction", "error", err, "user_id", userID, "transaction_id", transactionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if tx == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	if req.AccountID != nil {
		account, err := h.store.GetAccount(context.Background(), userID, *req.AccountID)
		if err != nil {
			slog.Error("Failed to check account", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if account == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		tx.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		tx.Amount = *req.Amount
	}
	if req.Merchant != nil {
		tx.Merchant = req.Merchant
	}
	if req.Description != nil {
		tx.Description = req.Description
	}
	if req.TransactionDate != nil {
		parsed, ok := parseDateParam(c, req.TransactionDate, "transaction_date")
		if !ok {
			return
		}
		tx.TransactionDate = *parsed
	}
	if req.TransactionType != nil {
		tx.TransactionType = req.TransactionType
	}
	if req.PaymentMethod != nil {
		tx.PaymentMethod = req.PaymentMethod
	}
	if req.CardLast4 != nil {
		tx.CardLast4 = req.CardLast4
	}
	if req.InstallmentsTotal != nil {
		tx.InstallmentsTotal = req.InstallmentsTotal
	}
	if req.InstallmentsCurrent != nil {
		tx.InstallmentsCurrent = req.InstallmentsCurrent
	}
	if req.CategoryID != nil {
		category, err := h.store.GetCategory(context.Background(), userID, *req.CategoryID)
		if err != nil {
			slog.Error("Failed to check category", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if category == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
		tx.CategoryID = req.CategoryID
	}

	if err := h.store.UpdateTransaction(context.Background(), tx); err != nil {
		slog.Error("Failed to update transaction", "error", err, "user_id", userID, "transaction_id", transactionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteTransaction(context.Background(), userID, transactionID)
	if err != nil {
		slog.Error("Failed to delete transaction", "error", err, "user_id", userID, "transaction_id", transactionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseDateParam parses an optional YYYY-MM-DD body field.
func parseDateParam(c *gin.Context, raw *string, name string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a date in YYYY-MM-DD format"})
		return nil, false
	}
	return &parsed, true
}

func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a date in YYYY-MM-DD format"})
		return nil, false
	}
	return &parsed, true
}

// === DTO ===

type CreateTransactionRequest struct {
	AccountID           int64           `json:"account_id" validate:"required,gt=0"`
	Amount              decimal.Decimal `json:"amount" validate:"required"`
	Merchant            *string         `json:"merchant"`
	Description         *string         `json:"description"`
	TransactionDate     *string         `json:"transaction_date"`
	TransactionType     *string         `json:"transaction_type"`
	PaymentMethod       *string         `json:"payment_method"`
	CardLast4           *string         `json:"card_last4" validate:"omitempty,len=4,numeric"`
	InstallmentsTotal   *int            `json:"installments_total" validate:"omitempty,gt=0"`
	InstallmentsCurrent *int            `json:"installments_current" validate:"omitempty,gt=0"`
	CategoryID          *int64          `json:"category_id" validate:"omitempty,gt=0"`
}

type UpdateTransactionRequest struct {
	AccountID           *int64           `json:"account_id" validate:"omitempty,gt=0"`
	Amount              *decimal.Decimal `json:"amount"`
	Merchant            *string          `json:"merchant"`
	Description         *string          `json:"description"`
	TransactionDate     *string          `json:"transaction_date"`
	TransactionType     *string          `json:"transaction_type"`
	PaymentMethod       *string          `json:"payment_method"`
	CardLast4           *string          `json:"card_last4" validate:"omitempty,len=4,numeric"`
	InstallmentsTotal   *int             `json:"installments_total" validate:"omitempty,gt=0"`
	InstallmentsCurrent *int             `json:"installments_current" validate:"omitempty,gt=0"`
	CategoryID          *int64           `json:"category_id" validate:"omitempty,gt=0"`
}
