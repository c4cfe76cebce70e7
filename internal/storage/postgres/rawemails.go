// internal/storage/postgres/rawemails.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"assessor-financeiro/internal/domain"
	"assessor-financeiro/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *Storage) CreateRawEmail(ctx context.Context, email *domain.RawEmail) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO raw_emails (user_id, message_id, from_address, subject, body, bank_source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, received_at, processed
	`, email.UserID, email.MessageID, email.FromAddress, email.Subject, email.Body, email.BankSource).
		Scan(&email.ID, &email.ReceivedAt, &email.Processed)
	if err != nil {
		// Concurrent ingest of the same message_id loses to the unique index.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("create raw email: %w", storage.ErrDuplicate)
		}
		return fmt.Errorf("create raw email: %w", err)
	}
	return nil
}

func (s *Storage) FindRawEmailByMessageID(ctx context.Context, messageID string) (*domain.RawEmail, error) {
	var e domain.RawEmail
	err := s.db.QueryRow(ctx, `
		SELECT id, user_id, message_id, from_address, subject, body, received_at, processed, bank_source
		FROM raw_emails
		WHERE message_id = $1
	`, messageID).Scan(&e.ID, &e.UserID, &e.MessageID, &e.FromAddress, &e.Subject,
		&e.Body, &e.ReceivedAt, &e.Processed, &e.BankSource)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find raw email: %w", err)
	}
	return &e, nil
}
