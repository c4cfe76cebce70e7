// internal/storage/postgres/accounts.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"assessor-financeiro/internal/domain"

	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateAccount(ctx context.Context, account *domain.Account) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO accounts (user_id, bank_name, account_type, nickname, last_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, account.UserID, account.BankName, account.AccountType, account.Nickname, account.LastBalance).
		Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *Storage) ListAccounts(ctx context.Context, userID int64, skip, limit int) ([]domain.Account, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `
		SELECT count(*) FROM accounts WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, bank_name, account_type, nickname, last_balance
		FROM accounts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`, userID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.BankName, &a.AccountType, &a.Nickname, &a.LastBalance); err != nil {
			return nil, 0, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (s *Storage) GetAccount(ctx context.Context, userID, accountID int64) (*domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, bank_name, account_type, nickname, last_balance
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`, accountID, userID).Scan(&a.ID, &a.UserID, &a.BankName, &a.AccountType, &a.Nickname, &a.LastBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, account *domain.Account) error {
	_, err := s.db.Exec(ctx, `
		UPDATE accounts
		SET bank_name = $1, account_type = $2, nickname = $3, last_balance = $4
		WHERE id = $5 AND user_id = $6
	`, account.BankName, account.AccountType, account.Nickname, account.LastBalance,
		account.ID, account.UserID)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

func (s *Storage) DeleteAccount(ctx context.Context, userID, accountID int64) (bool, error) {
	result, err := s.db.Exec(ctx, `
		DELETE FROM accounts WHERE id = $1 AND user_id = $2
	`, accountID, userID)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
