// internal/validator/validator.go
package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	// Non-empty after trimming whitespace.
	_ = Validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	_ = Validate.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "checking", "savings", "credit_card", "investment":
			return true
		}
		return false
	})

	_ = Validate.RegisterValidation("budgetperiod", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "weekly", "monthly", "yearly":
			return true
		}
		return false
	})
}
