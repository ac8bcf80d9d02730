package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/store"
)

func (s *DB) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, provider, display_name, plan, max_labels, used_bytes, total_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Provider, a.DisplayName, a.Plan, a.MaxLabels, a.UsedBytes, a.TotalBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (s *DB) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, provider, display_name, plan, max_labels, used_bytes, total_bytes, created_at
		FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Email, &a.Provider, &a.DisplayName, &a.Plan, &a.MaxLabels, &a.UsedBytes, &a.TotalBytes, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return a, nil
}

func (s *DB) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, provider, display_name, plan, max_labels, used_bytes, total_bytes, created_at
		FROM accounts ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.Provider, &a.DisplayName, &a.Plan, &a.MaxLabels,
			&a.UsedBytes, &a.TotalBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *DB) DeleteAccount(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}

// SetAccountQuota updates the storage usage figures reported by the provider.
func (s *DB) SetAccountQuota(ctx context.Context, id string, usedBytes, totalBytes int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET used_bytes = ?, total_bytes = ? WHERE id = ?`,
		usedBytes, totalBytes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set quota for account %s: %w", id, err)
	}
	return nil
}

// SetAccountPlan updates the plan name and its per-message label ceiling.
func (s *DB) SetAccountPlan(ctx context.Context, id, plan string, maxLabels int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET plan = ?, max_labels = ? WHERE id = ?`,
		plan, maxLabels, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set plan for account %s: %w", id, err)
	}
	return nil
}
