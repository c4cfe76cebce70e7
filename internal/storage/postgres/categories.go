// internal/storage/postgres/categories.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"assessor-financeiro/internal/domain"

	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateCategory(ctx context.Context, userID int64, name string, parentID *int64, icon, color *string) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, parent_id, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, icon, color, parent_id
	`, userID, name, parentID, icon, color).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.ParentID)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context, userID int64, skip, limit int) ([]domain.Category, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `
		SELECT count(*) FROM categories WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, icon, color, parent_id
		FROM categories
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, userID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.ParentID); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}

func (s *Storage) ListAllCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, icon, color, parent_id
		FROM categories
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.ParentID); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategory(ctx context.Context, userID, categoryID int64) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, icon, color, parent_id
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, categoryID, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (s *Storage) ListChildCategoryIDs(ctx context.Context, parentID int64) ([]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id FROM categories WHERE parent_id = $1 ORDER BY id
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
