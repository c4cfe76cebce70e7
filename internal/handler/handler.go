// internal/handler/handler.go
package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	val "assessor-financeiro/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// listResponse is the envelope for every paginated list endpoint.
type listResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// Aborts with 500 when missing: that means a route was wired without the
// middleware.
func currentUserID(c *gin.Context) (int64, bool) {
	userIDVal, ok := c.Get("user_id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return userID, true
}

// pagination parses skip/limit query params. Out-of-range values are rejected
// rather than clamped.
func pagination(c *gin.Context) (skip, limit int, ok bool) {
	skip, limit = 0, defaultLimit
	if raw := c.Query("skip"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
			return 0, 0, false
		}
		skip = parsed
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must be between 1 and %d", maxLimit)})
			return 0, 0, false
		}
		limit = parsed
	}
	return skip, limit, true
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "accounttype":
		return fmt.Sprintf("%s must be one of checking, savings, credit_card, investment", e.Field())
	case "budgetperiod":
		return fmt.Sprintf("%s must be one of weekly, monthly, yearly", e.Field())
	case "min":
		return fmt.Sprintf("%s is too short", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be positive", e.Field())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
