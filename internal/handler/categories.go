// internal/handler/categories.go
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"assessor-financeiro/internal/categorizer"
	"assessor-financeiro/internal/storage"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	store storage.CategoryStorage
}

func NewCategoryHandler(store storage.CategoryStorage) *CategoryHandler {
	return &CategoryHandler{store: store}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
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

	if req.ParentID != nil {
		parent, err := h.store.GetCategory(context.Background(), userID, *req.ParentID)
		if err != nil {
			slog.Error("Failed to check parent category", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if parent == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent category not found"})
			return
		}
	}

	category, err := h.store.CreateCategory(context.Background(), userID, req.Name, req.ParentID, req.Icon, req.Color)
	if err != nil {
		slog.Error("Failed to create category", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit, ok := pagination(c)
	if !ok {
		return
	}

	categories, total, err := h.store.ListCategories(context.Background(), userID, skip, limit)
	if err != nil {
		slog.Error("Failed to list categories", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, listResponse{Items: categories, Total: total, Skip: skip, Limit: limit})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.store.GetCategory(context.Background(), userID, categoryID)
	if err != nil {
		slog.Error("Failed to get category", "error", err, "user_id", userID, "category_id", categoryID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// Seed re-applies the default category tree. No-op when the user already has
// categories.
func (h *CategoryHandler) Seed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	created, err := categorizer.SeedDefaults(context.Background(), h.store, userID)
	if err != nil {
		slog.Error("Failed to seed categories", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": len(created)})
}

// === DTO ===

type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,notblank"`
	ParentID *int64  `json:"parent_id"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
}
