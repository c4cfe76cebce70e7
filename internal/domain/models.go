// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCreditCard AccountType = "credit_card"
	AccountInvestment AccountType = "investment"
)

type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Account struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"-"`
	BankName    string           `json:"bank_name"`
	AccountType AccountType      `json:"account_type"`
	Nickname    *string          `json:"nickname"`
	LastBalance *decimal.Decimal `json:"last_balance"`
}

// Category rows are owned per user; a nil ParentID marks a top-level category.
type Category struct {
	ID       int64   `json:"id"`
	UserID   *int64  `json:"-"`
	Name     string  `json:"name"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
	ParentID *int64  `json:"parent_id"`
}

type RawEmail struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	MessageID   string    `json:"message_id"`
	FromAddress string    `json:"from_address"`
	Subject     *string   `json:"subject"`
	Body        string    `json:"body"`
	ReceivedAt  time.Time `json:"received_at"`
	Processed   bool      `json:"processed"`
	BankSource  *string   `json:"bank_source"`
}

type Transaction struct {
	ID                  int64           `json:"id"`
	AccountID           int64           `json:"account_id"`
	Amount              decimal.Decimal `json:"amount"`
	Merchant            *string         `json:"merchant"`
	Description         *string         `json:"description"`
	TransactionDate     time.Time       `json:"transaction_date"`
	TransactionType     *string         `json:"transaction_type"`
	PaymentMethod       *string         `json:"payment_method"`
	CardLast4           *string         `json:"card_last4"`
	InstallmentsTotal   *int            `json:"installments_total"`
	InstallmentsCurrent *int            `json:"installments_current"`
	CategoryID          *int64          `json:"category_id"`
	RawEmailID          *int64          `json:"raw_email_id"`
	IsManual            bool            `json:"is_manual"`
}

type Budget struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	CategoryID  int64           `json:"category_id"`
	AmountLimit decimal.Decimal `json:"amount_limit"`
	Period      BudgetPeriod    `json:"period"`
	StartDate   time.Time       `json:"start_date"`
}
