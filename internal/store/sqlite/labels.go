package sqlite

import (
	"context"
	"fmt"

	"github.com/ebuckley/tagmail/internal/domain"
)

// UpsertLabel inserts or updates a label.
func (s *DB) UpsertLabel(ctx context.Context, l domain.Label) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO labels (id, account_id, name, type, exclusive, color, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, id) DO UPDATE SET
			name       = excluded.name,
			type       = excluded.type,
			exclusive  = excluded.exclusive,
			color      = excluded.color,
			sort_order = excluded.sort_order`,
		l.ID, l.AccountID, l.Name, l.Type, l.Exclusive, l.Color, l.Order,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert label: %w", err)
	}
	return nil
}

// ListLabels returns all labels for an account, ordered by sort order then name.
func (s *DB) ListLabels(ctx context.Context, accountID string) ([]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, name, type, exclusive, color, sort_order
		FROM labels WHERE account_id = ? ORDER BY sort_order, name`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.ID, &l.AccountID, &l.Name, &l.Type, &l.Exclusive, &l.Color, &l.Order); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate labels: %w", err)
	}

	return labels, nil
}

// GetLabels returns the account's labels keyed by label ID.
func (s *DB) GetLabels(ctx context.Context, accountID string) (map[string]domain.Label, error) {
	labels, err := s.ListLabels(ctx, accountID)
	if err != nil {
		return nil, err
	}
	directory := make(map[string]domain.Label, len(labels))
	for _, l := range labels {
		directory[l.ID] = l
	}
	return directory, nil
}

// DeleteLabel removes a label and its message associations.
func (s *DB) DeleteLabel(ctx context.Context, accountID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM labels WHERE account_id = ? AND id = ?`, accountID, id); err != nil {
		return fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM message_labels WHERE label_id = ?
		AND message_id IN (SELECT id FROM messages WHERE account_id = ?)`, id, accountID); err != nil {
		return fmt.Errorf("failed to delete label associations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit label delete: %w", err)
	}
	return nil
}
