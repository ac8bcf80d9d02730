package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/store"
)

// UpsertMessage inserts or updates a message and its label associations.
func (s *DB) UpsertMessage(ctx context.Context, accountID string, m domain.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (id, account_id, thread_id, from_addr, from_name, subject, date,
			is_read, is_starred, is_replied, is_forwarded, size, attachment_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			account_id       = excluded.account_id,
			thread_id        = excluded.thread_id,
			from_addr        = excluded.from_addr,
			from_name        = excluded.from_name,
			subject          = excluded.subject,
			date             = excluded.date,
			is_read          = excluded.is_read,
			is_starred       = excluded.is_starred,
			is_replied       = excluded.is_replied,
			is_forwarded     = excluded.is_forwarded,
			size             = excluded.size,
			attachment_count = excluded.attachment_count`,
		m.ID, accountID, m.ThreadID,
		m.From.Email, m.From.Name,
		m.Subject, m.Date.Format(time.RFC3339),
		m.IsRead, m.IsStarred, m.IsReplied, m.IsForwarded,
		m.Size, m.AttachmentCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert message: %w", err)
	}

	// Delete existing labels, then reinsert.
	if _, err := tx.ExecContext(ctx, `DELETE FROM message_labels WHERE message_id = ?`, m.ID); err != nil {
		return fmt.Errorf("failed to delete message labels: %w", err)
	}

	for _, labelID := range m.LabelIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO message_labels (message_id, label_id) VALUES (?, ?)`,
			m.ID, labelID); err != nil {
			return fmt.Errorf("failed to insert message label: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message upsert: %w", err)
	}
	return nil
}

// GetMessage retrieves a single message by ID, including its labels.
func (s *DB) GetMessage(ctx context.Context, accountID, id string) (domain.Message, error) {
	var m domain.Message
	var fromAddr, fromName string
	var dateStr string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, thread_id, from_addr, from_name, subject, date,
			is_read, is_starred, is_replied, is_forwarded, size, attachment_count
		FROM messages WHERE account_id = ? AND id = ?`, accountID, id,
	).Scan(
		&m.ID, &m.ThreadID, &fromAddr, &fromName, &m.Subject, &dateStr,
		&m.IsRead, &m.IsStarred, &m.IsReplied, &m.IsForwarded, &m.Size, &m.AttachmentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to get message %s: %w", id, err)
	}

	m.From = domain.Address{Name: fromName, Email: fromAddr}

	parsedDate, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to parse message date: %w", err)
	}
	m.Date = parsedDate

	rows, err := s.db.QueryContext(ctx, `SELECT label_id FROM message_labels WHERE message_id = ?`, id)
	if err != nil {
		return domain.Message{}, fmt.Errorf("failed to query message labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var labelID string
		if err := rows.Scan(&labelID); err != nil {
			return domain.Message{}, fmt.Errorf("failed to scan message label: %w", err)
		}
		m.LabelIDs = append(m.LabelIDs, labelID)
	}
	if err := rows.Err(); err != nil {
		return domain.Message{}, fmt.Errorf("failed to iterate message labels: %w", err)
	}

	return m, nil
}

// ListMessages returns messages for an account, newest first, optionally
// filtered by label. Labels are loaded for each returned message.
func (s *DB) ListMessages(ctx context.Context, opts store.ListMessageOptions) ([]domain.Message, error) {
	var query string
	var args []any

	if opts.LabelID != "" {
		query = `
			SELECT m.id, m.thread_id, m.from_addr, m.from_name, m.subject, m.date,
				m.is_read, m.is_starred, m.is_replied, m.is_forwarded, m.size, m.attachment_count
			FROM messages m
			JOIN message_labels ml ON ml.message_id = m.id
			WHERE m.account_id = ? AND ml.label_id = ?
			ORDER BY m.date DESC`
		args = append(args, opts.AccountID, opts.LabelID)
	} else {
		query = `
			SELECT m.id, m.thread_id, m.from_addr, m.from_name, m.subject, m.date,
				m.is_read, m.is_starred, m.is_replied, m.is_forwarded, m.size, m.attachment_count
			FROM messages m
			WHERE m.account_id = ?
			ORDER BY m.date DESC`
		args = append(args, opts.AccountID)
	}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var fromAddr, fromName string
		var dateStr string

		if err := rows.Scan(
			&m.ID, &m.ThreadID, &fromAddr, &fromName, &m.Subject, &dateStr,
			&m.IsRead, &m.IsStarred, &m.IsReplied, &m.IsForwarded, &m.Size, &m.AttachmentCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}

		m.From = domain.Address{Name: fromName, Email: fromAddr}

		parsedDate, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message date: %w", err)
		}
		m.Date = parsedDate
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	if err := s.attachLabels(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *DB) attachLabels(ctx context.Context, messages []domain.Message) error {
	for i := range messages {
		rows, err := s.db.QueryContext(ctx,
			`SELECT label_id FROM message_labels WHERE message_id = ?`, messages[i].ID)
		if err != nil {
			return fmt.Errorf("failed to query message labels: %w", err)
		}
		for rows.Next() {
			var labelID string
			if err := rows.Scan(&labelID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan message label: %w", err)
			}
			messages[i].LabelIDs = append(messages[i].LabelIDs, labelID)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return fmt.Errorf("failed to iterate message labels: %w", err)
		}
		rows.Close()
	}
	return nil
}

// DeleteMessage removes a message by ID.
func (s *DB) DeleteMessage(ctx context.Context, accountID, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM messages WHERE account_id = ? AND id = ?`, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	return nil
}

// SetMessageRead updates the is_read flag for a single message.
func (s *DB) SetMessageRead(ctx context.Context, accountID, id string, read bool) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET is_read = ? WHERE account_id = ? AND id = ?`, read, accountID, id)
	if err != nil {
		return fmt.Errorf("failed to set message %s read=%v: %w", id, read, err)
	}
	return nil
}

// SetMessageLabels replaces the label set for a message.
func (s *DB) SetMessageLabels(ctx context.Context, accountID, id string, labelIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM messages WHERE account_id = ? AND id = ?`, accountID, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up message %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM message_labels WHERE message_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete message labels: %w", err)
	}

	for _, labelID := range labelIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO message_labels (message_id, label_id) VALUES (?, ?)`,
			id, labelID); err != nil {
			return fmt.Errorf("failed to insert message label: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit label update: %w", err)
	}
	return nil
}
