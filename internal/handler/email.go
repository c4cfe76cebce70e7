// internal/handler/email.go
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"assessor-financeiro/internal/categorizer"
	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/parser"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type EmailStorage interface {
	storage.RawEmailStorage
	storage.AccountStorage
	storage.TransactionStorage
	storage.CategoryStorage
}

type EmailHandler struct {
	store EmailStorage
}

func NewEmailHandler(store EmailStorage) *EmailHandler {
	return &EmailHandler{store: store}
}

// Ingest persists a raw email without parsing it. message_id is the dedup key.
func (h *EmailHandler) Ingest(c *gin.Context) {
	var req IngestEmailRequest
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

	existing, err := h.store.FindRawEmailByMessageID(context.Background(), req.MessageID)
	if err != nil {
		slog.Error("Failed to check raw email", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already ingested"})
		return
	}

	raw := domain.RawEmail{
		UserID:      userID,
		MessageID:   req.MessageID,
		FromAddress: req.FromAddress,
		Subject:     req.Subject,
		Body:        req.Body,
		BankSource:  req.BankSource,
	}
	if err := h.store.CreateRawEmail(context.Background(), &raw); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already ingested"})
			return
		}
		slog.Error("Failed to ingest email", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest email"})
		return
	}
	c.JSON(http.StatusCreated, raw)
}

// Parse runs the bank parsers over the email without touching storage.
func (h *EmailHandler) Parse(c *gin.Context) {
	var req IngestEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := parser.Parse(req.toInput())
	if err != nil {
		slog.Error("Email parsing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// ParseToTransaction parses and returns a draft transaction for the given
// account. Nothing is written; an unparseable email yields a null draft.
func (h *EmailHandler) ParseToTransaction(c *gin.Context) {
	var req ParseToTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, err := parser.Parse(req.Email.toInput())
	if err != nil {
		slog.Error("Email parsing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, ParseToTransactionResponse{
		Parsed:      parsed,
		Transaction: buildTransactionDraft(parsed, req.AccountID, req.CategoryID),
	})
}

// ParseAndCreate parses the email, ingests it and creates the transaction on
// the given account. Without an explicit category the rule categorizer picks
// one. An unparseable email is reported with a null transaction, not an error.
func (h *EmailHandler) ParseAndCreate(c *gin.Context) {
	var req ParseToTransactionRequest
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

	parsed, err := parser.Parse(req.Email.toInput())
	if err != nil {
		slog.Error("Email parsing failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !parsed.Success || parsed.Amount == nil {
		c.JSON(http.StatusOK, ParseAndCreateResponse{Parsed: parsed})
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

	existing, err := h.store.FindRawEmailByMessageID(context.Background(), req.Email.MessageID)
	if err != nil {
		slog.Error("Failed to check raw email", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already ingested"})
		return
	}

	raw := domain.RawEmail{
		UserID:      userID,
		MessageID:   req.Email.MessageID,
		FromAddress: req.Email.FromAddress,
		Subject:     req.Email.Subject,
		Body:        req.Email.Body,
		BankSource:  parsed.BankSource,
	}
	if err := h.store.CreateRawEmail(context.Background(), &raw); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already ingested"})
			return
		}
		slog.Error("Failed to ingest email", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest email"})
		return
	}

	categoryID := req.CategoryID
	if categoryID == nil {
		categorization, err := categorizer.CategorizeWithStore(context.Background(), h.store, userID, parsed.Merchant, parsed.Description)
		if err != nil {
			slog.Error("Auto-categorization failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		categoryID = categorization.CategoryID
	}

	transactionDate := time.Now().UTC()
	if parsed.TransactionDate != nil {
		transactionDate = *parsed.TransactionDate
	}
	tx := domain.Transaction{
		AccountID:           req.AccountID,
		Amount:              *parsed.Amount,
		Merchant:            parsed.Merchant,
		Description:         parsed.Description,
		TransactionDate:     transactionDate,
		TransactionType:     parsed.TransactionType,
		PaymentMethod:       parsed.PaymentMethod,
		CardLast4:           parsed.CardLast4,
		InstallmentsTotal:   parsed.InstallmentsTotal,
		InstallmentsCurrent: parsed.InstallmentsCurrent,
		CategoryID:          categoryID,
		RawEmailID:          &raw.ID,
	}
	if err := h.store.CreateTransaction(context.Background(), &tx); err != nil {
		slog.Error("Failed to create transaction", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	slog.Info("Email parsed into transaction", "user_id", userID, "transaction_id", tx.ID)
	c.JSON(http.StatusCreated, ParseAndCreateResponse{Parsed: parsed, Transaction: &tx})
}

// buildTransactionDraft maps a successful parse onto a transaction shape for
// the given account. Nil when the parse failed or captured no amount.
func buildTransactionDraft(parsed parser.ParsedTransaction, accountID int64, categoryID *int64) *TransactionDraft {
	if !parsed.Success || parsed.Amount == nil {
		return nil
	}
	return &TransactionDraft{
		AccountID:           accountID,
		Amount:              *parsed.Amount,
		Merchant:            parsed.Merchant,
		Description:         parsed.Description,
		TransactionDate:     parsed.TransactionDate,
		TransactionType:     parsed.TransactionType,
		PaymentMethod:       parsed.PaymentMethod,
		CardLast4:           parsed.CardLast4,
		InstallmentsTotal:   parsed.InstallmentsTotal,
		InstallmentsCurrent: parsed.InstallmentsCurrent,
		CategoryID:          categoryID,
	}
}

// === DTO ===

type IngestEmailRequest struct {
	MessageID   string  `json:"message_id" validate:"required,notblank"`
	FromAddress string  `json:"from_address" validate:"required,notblank"`
	Subject     *string `json:"subject"`
	Body        string  `json:"body" validate:"required"`
	BankSource  *string `json:"bank_source"`
}

func (r IngestEmailRequest) toInput() parser.EmailInput {
	return parser.EmailInput{
		MessageID:   r.MessageID,
		FromAddress: r.FromAddress,
		Subject:     r.Subject,
		Body:        r.Body,
		BankSource:  r.BankSource,
	}
}

type ParseToTransactionRequest struct {
	AccountID  int64              `json:"account_id" validate:"required,gt=0"`
	CategoryID *int64             `json:"category_id" validate:"omitempty,gt=0"`
	Email      IngestEmailRequest `json:"email" validate:"required"`
}

// TransactionDraft is a not-yet-persisted transaction: no id, and the date may
// be absent when the email carried none.
type TransactionDraft struct {
	AccountID           int64           `json:"account_id"`
	Amount              decimal.Decimal `json:"amount"`
	Merchant            *string         `json:"merchant"`
	Description         *string         `json:"description"`
	TransactionDate     *time.Time      `json:"transaction_date"`
	TransactionType     *string         `json:"transaction_type"`
	PaymentMethod       *string         `json:"payment_method"`
	CardLast4           *string         `json:"card_last4"`
	InstallmentsTotal   *int            `json:"installments_total"`
	InstallmentsCurrent *int            `json:"installments_current"`
	CategoryID          *int64          `json:"category_id"`
}

type ParseToTransactionResponse struct {
	Parsed      parser.ParsedTransaction `json:"parsed"`
	Transaction *TransactionDraft        `json:"transaction"`
}

type ParseAndCreateResponse struct {
	Parsed      parser.ParsedTransaction `json:"parsed"`
	Transaction *domain.Transaction      `json:"transaction"`
}
