package sqlite

import (
	"context"
	"fmt"

	"github.com/ebuckley/tagmail/internal/domain"
)

// UpsertContact inserts or updates a contact.
func (s *DB) UpsertContact(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (account_id, email, name)
		VALUES (?, ?, ?)
		ON CONFLICT(account_id, email) DO UPDATE SET
			name = excluded.name`,
		c.AccountID, c.Email, c.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert contact: %w", err)
	}
	return nil
}

// ListContacts returns all contacts for an account, ordered by email.
func (s *DB) ListContacts(ctx context.Context, accountID string) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, email, name FROM contacts WHERE account_id = ? ORDER BY email`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.AccountID, &c.Email, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}
