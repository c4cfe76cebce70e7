// internal/handler/categorize.go
package handler

import (
	"net/http"

	"assessor-financeiro/internal/categorizer"

	"github.com/gin-gonic/gin"
)

type CategorizeHandler struct{}

func NewCategorizeHandler() *CategorizeHandler {
	return &CategorizeHandler{}
}

// Categorize runs the keyword rules over merchant+description. Pure lookup, no
// storage involved.
func (h *CategorizeHandler) Categorize(c *gin.Context) {
	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if req.Merchant == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchant or description is required"})
		return
	}

	c.JSON(http.StatusOK, categorizer.Categorize(req.Merchant, req.Description))
}

// === DTO ===

type CategorizeRequest struct {
	Merchant    *string `json:"merchant"`
	Description *string `json:"description"`
}
