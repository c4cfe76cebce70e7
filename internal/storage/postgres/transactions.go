// internal/storage/postgres/transactions.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `t.id, t.account_id, t.amount, t.merchant, t.description,
	t.transaction_date, t.transaction_type, t.payment_method, t.card_last4,
	t.installments_total, t.installments_current, t.category_id, t.raw_email_id, t.is_manual`

func scanTransaction(row pgx.Row, t *domain.Transaction) error {
	return row.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Merchant, &t.Description,
		&t.TransactionDate, &t.TransactionType, &t.PaymentMethod, &t.CardLast4,
		&t.InstallmentsTotal, &t.InstallmentsCurrent, &t.CategoryID, &t.RawEmailID, &t.IsManual)
}

func (s *Storage) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO transactions (account_id, amount, merchant, description,
			transaction_date, transaction_type, payment_method, card_last4,
			installments_total, installments_current, category_id, raw_email_id, is_manual)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, t.AccountID, t.Amount, t.Merchant, t.Description,
		t.TransactionDate, t.TransactionType, t.PaymentMethod, t.CardLast4,
		t.InstallmentsTotal, t.InstallmentsCurrent, t.CategoryID, t.RawEmailID, t.IsManual).
		Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListTransactions is ownership-scoped through the accounts join; filter
// fields are appended as extra WHERE clauses.
func (s *Storage) ListTransactions(ctx context.Context, userID int64, filter storage.TransactionFilter, skip, limit int) ([]domain.Transaction, int64, error) {
	where := []string{"a.user_id = $1"}
	args := []any{userID}

	addClause := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.AccountID != nil {
		addClause("t.account_id = $%d", *filter.AccountID)
	}
	if filter.StartDate != nil {
		addClause("t.transaction_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addClause("t.transaction_date <= $%d", *filter.EndDate)
	}
	if filter.CategoryID != nil {
		addClause("t.category_id = $%d", *filter.CategoryID)
	}
	whereSQL := strings.Join(where, " AND ")

	var total int64
	countSQL := `
		SELECT count(*)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE ` + whereSQL
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE %s
		ORDER BY t.transaction_date DESC, t.id DESC
		OFFSET $%d LIMIT $%d
	`, transactionColumns, whereSQL, len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		var t domain.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, total, rows.Err()
}

func (s *Storage) GetTransaction(ctx context.Context, userID, transactionID int64) (*domain.Transaction, error) {
	var t domain.Transaction
	row := s.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.user_id = $2
	`, transactionColumns), transactionID, userID)
	if err := scanTransaction(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

func (s *Storage) UpdateTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := s.db.Exec(ctx, `
		UPDATE transactions
		SET account_id = $1, amount = $2, merchant = $3, description = $4,
			transaction_date = $5, transaction_type = $6, payment_method = $7,
			card_last4 = $8, installments_total = $9, installments_current = $10,
			category_id = $11
		WHERE id = $12
	`, t.AccountID, t.Amount, t.Merchant, t.Description,
		t.TransactionDate, t.TransactionType, t.PaymentMethod,
		t.CardLast4, t.InstallmentsTotal, t.InstallmentsCurrent,
		t.CategoryID, t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, userID, transactionID int64) (bool, error) {
	result, err := s.db.Exec(ctx, `
		DELETE FROM transactions t
		USING accounts a
		WHERE t.account_id = a.id AND t.id = $1 AND a.user_id = $2
	`, transactionID, userID)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// SumTransactions totals amounts inside a half-open [start, end) window for
// the given categories. Used by budget summaries.
func (s *Storage) SumTransactions(ctx context.Context, categoryIDs []int64, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRow(ctx, `
		SELECT coalesce(sum(amount), 0)
		FROM transactions
		WHERE category_id = ANY($1)
		AND transaction_date >= $2
		AND transaction_date < $3
	`, categoryIDs, start, end).Scan(&total)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}
