// internal/storage/postgres/budgets.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"assessor-financeiro/internal/domain"

	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateBudget(ctx context.Context, b *domain.Budget) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO budgets (user_id, category_id, amount_limit, period, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, b.UserID, b.CategoryID, b.AmountLimit, b.Period, b.StartDate).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (s *Storage) ListBudgets(ctx context.Context, userID int64, skip, limit int) ([]domain.Budget, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `
		SELECT count(*) FROM budgets WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count budgets: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, category_id, amount_limit, period, start_date
		FROM budgets
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, userID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		var b domain.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.AmountLimit, &b.Period, &b.StartDate); err != nil {
			return nil, 0, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, total, rows.Err()
}

func (s *Storage) GetBudget(ctx context.Context, userID, budgetID int64) (*domain.Budget, error) {
	var b domain.Budget
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, category_id, amount_limit, period, start_date
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`, budgetID, userID).Scan(&b.ID, &b.UserID, &b.CategoryID, &b.AmountLimit, &b.Period, &b.StartDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}

func (s *Storage) UpdateBudget(ctx context.Context, b *domain.Budget) error {
	_, err := s.db.Exec(ctx, `
		UPDATE budgets
		SET category_id = $1, amount_limit = $2, period = $3, start_date = $4
		WHERE id = $5 AND user_id = $6
	`, b.CategoryID, b.AmountLimit, b.Period, b.StartDate, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (s *Storage) DeleteBudget(ctx context.Context, userID, budgetID int64) (bool, error) {
	result, err := s.db.Exec(ctx, `
		DELETE FROM budgets WHERE id = $1 AND user_id = $2
	`, budgetID, userID)
	if err != nil {
		return false, fmt.Errorf("delete budget: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
