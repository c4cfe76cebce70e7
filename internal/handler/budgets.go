// internal/handler/budgets.go
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"assessor-financeiro/internal/budget"
	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BudgetStorage interface {
	storage.BudgetStorage
	storage.CategoryStorage
	storage.TransactionStorage
}

type BudgetHandler struct {
	store BudgetStorage
	now   func() time.Time
}

func NewBudgetHandler(store BudgetStorage) *BudgetHandler {
	return &BudgetHandler{store: store, now: time.Now}
}

func (h *BudgetHandler) Create(c *gin.Context) {
	var req CreateBudgetRequest
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

	category, err := h.store.GetCategory(context.Background(), userID, req.CategoryID)
	if err != nil {
		slog.Error("Failed to check category", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if category == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}

	startDate, ok := parseDateParam(c, req.StartDate, "start_date")
	if !ok {
		return
	}
	if startDate == nil {
		today := h.now().UTC().Truncate(24 * time.Hour)
		startDate = &today
	}

	b := domain.Budget{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		AmountLimit: req.AmountLimit,
		Period:      domain.BudgetPeriod(req.Period),
		StartDate:   *startDate,
	}
	if err := h.store.CreateBudget(context.Background(), &b); err != nil {
		slog.Error("Failed to create budget", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BudgetHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	budgets, total, err := h.store.ListBudgets(context.Background(), userID, skip, limit)
	if err != nil {
		slog.Error("Failed to list budgets", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: budgets, Total: total, Skip: skip, Limit: limit})
}

func (h *BudgetHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	budgetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.store.GetBudget(context.Background(), userID, budgetID)
	if err != nil {
		slog.Error("Failed to get budget", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// Summary reports spending inside the current period window of the budget.
// Transactions in the budget's category and its direct children count.
func (h *BudgetHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	budgetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.store.GetBudget(context.Background(), userID, budgetID)
	if err != nil {
		slog.Error("Failed to get budget", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	windowStart, windowEnd := budget.ResolveWindow(b.StartDate, b.Period, h.now().UTC())

	categoryIDs := []int64{b.CategoryID}
	children, err := h.store.ListChildCategoryIDs(context.Background(), b.CategoryID)
	if err != nil {
		slog.Error("Failed to list child categories", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	categoryIDs = append(categoryIDs, children...)

	spent, err := h.store.SumTransactions(context.Background(), categoryIDs, windowStart, windowEnd)
	if err != nil {
		slog.Error("Failed to sum transactions", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	percentUsed := decimal.Zero
	if b.AmountLimit.IsPositive() {
		percentUsed = spent.Div(b.AmountLimit).Mul(decimal.NewFromInt(100)).Round(2)
	}

	c.JSON(http.StatusOK, BudgetSummaryResponse{
		Budget:      *b,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Spent:       spent,
		Remaining:   b.AmountLimit.Sub(spent),
		PercentUsed: percentUsed,
	})
}

// Update distinguishes absent fields from explicit nulls; none of the budget
// fields are nullable, so an explicit null is rejected.
func (h *BudgetHandler) Update(c *gin.Context) {
	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	budgetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	b, err := h.store.GetBudget(context.Background(), userID, budgetID)
	if err != nil {
		slog.Error("Failed to get budget", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	if req.AmountLimit.Set {
		if !req.AmountLimit.Valid || !req.AmountLimit.Value.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount_limit must be a positive number"})
			return
		}
		b.AmountLimit = req.AmountLimit.Value
	}
	if req.Period.Set {
		if !req.Period.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "period may not be null"})
			return
		}
		switch domain.BudgetPeriod(req.Period.Value) {
		case domain.PeriodWeekly, domain.PeriodMonthly, domain.PeriodYearly:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "period must be one of weekly, monthly, yearly"})
			return
		}
		b.Period = domain.BudgetPeriod(req.Period.Value)
	}
	if req.StartDate.Set {
		if !req.StartDate.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date may not be null"})
			return
		}
		parsed, ok := parseDateParam(c, &req.StartDate.Value, "start_date")
		if !ok {
			return
		}
		b.StartDate = *parsed
	}
	if req.CategoryID.Set {
		if !req.CategoryID.Valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_id may not be null"})
			return
		}
		category, err := h.store.GetCategory(context.Background(), userID, req.CategoryID.Value)
		if err != nil {
			slog.Error("Failed to check category", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if category == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
			return
		}
		b.CategoryID = req.CategoryID.Value
	}

	if err := h.store.UpdateBudget(context.Background(), b); err != nil {
		slog.Error("Failed to update budget", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	budgetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.DeleteBudget(context.Background(), userID, budgetID)
	if err != nil {
		slog.Error("Failed to delete budget", "error", err, "user_id", userID, "budget_id", budgetID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type CreateBudgetRequest struct {
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	AmountLimit decimal.Decimal `json:"amount_limit" validate:"required"`
	Period      string          `json:"period" validate:"required,budgetperiod"`
	StartDate   *string         `json:"start_date"`
}

type UpdateBudgetRequest struct {
	CategoryID  domain.Optional[int64]           `json:"category_id"`
	AmountLimit domain.Optional[decimal.Decimal] `json:"amount_limit"`
	Period      domain.Optional[string]          `json:"period"`
	StartDate   domain.Optional[string]          `json:"start_date"`
}

type BudgetSummaryResponse struct {
	Budget      domain.Budget   `json:"budget"`
	WindowStart time.Time       `json:"window_start"`
	WindowEnd   time.Time       `json:"window_end"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percent_used"`
}
