// internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"time"

	"assessor-financeiro/internal/domain"

	"github.com/shopspring/decimal"
)

// ErrDuplicate marks an insert rejected by a unique constraint, so handlers
// can answer 409 instead of a generic failure.
var ErrDuplicate = errors.New("duplicate record")

// TransactionFilter narrows ListTransactions; nil fields are not applied.
type TransactionFilter struct {
	AccountID  *int64
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int64
}

type UserStorage interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
}

type AccountStorage interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	ListAccounts(ctx context.Context, userID int64, skip, limit int) ([]domain.Account, int64, error)
	GetAccount(ctx context.Context, userID, accountID int64) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error
	DeleteAccount(ctx context.Context, userID, accountID int64) (bool, error)
}

type CategoryStorage interface {
	CreateCategory(ctx context.Context, userID int64, name string, parentID *int64, icon, color *string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID int64, skip, limit int) ([]domain.Category, int64, error)
	ListAllCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error)
	ListChildCategoryIDs(ctx context.Context, parentID int64) ([]int64, error)
}

type TransactionStorage interface {
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter, skip, limit int) ([]domain.Transaction, int64, error)
	GetTransaction(ctx context.Context, userID, transactionID int64) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID int64) (bool, error)
	SumTransactions(ctx context.Context, categoryIDs []int64, start, end time.Time) (decimal.Decimal, error)
}

type BudgetStorage interface {
	CreateBudget(ctx context.Context, budget *domain.Budget) error
	ListBudgets(ctx context.Context, userID int64, skip, limit int) ([]domain.Budget, int64, error)
	GetBudget(ctx context.Context, userID, budgetID int64) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, budget *domain.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID int64) (bool, error)
}

type RawEmailStorage interface {
	CreateRawEmail(ctx context.Context, email *domain.RawEmail) error
	FindRawEmailByMessageID(ctx context.Context, messageID string) (*domain.RawEmail, error)
}
