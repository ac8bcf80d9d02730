// Package store defines the local persistence interface for accounts,
// messages, labels, and contacts.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// ListMessageOptions filters and pages message listings.
type ListMessageOptions struct {
	AccountID string
	// LabelID restricts the listing to messages carrying the label.
	// Empty means all mail.
	LabelID string
	Limit   int
	Offset  int
}

// SyncState records the progress of the last synchronization for an account.
type SyncState struct {
	AccountID    string
	HistoryID    uint64
	LastSyncedAt time.Time
}

// Store is the local persistence layer.
type Store interface {
	// Accounts.
	CreateAccount(ctx context.Context, a domain.Account) error
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	SetAccountQuota(ctx context.Context, id string, usedBytes, totalBytes int64) error
	SetAccountPlan(ctx context.Context, id, plan string, maxLabels int) error

	// Messages.
	UpsertMessage(ctx context.Context, accountID string, m domain.Message) error
	GetMessage(ctx context.Context, accountID, id string) (domain.Message, error)
	ListMessages(ctx context.Context, opts ListMessageOptions) ([]domain.Message, error)
	DeleteMessage(ctx context.Context, accountID, id string) error
	SetMessageRead(ctx context.Context, accountID, id string, read bool) error
	SetMessageLabels(ctx context.Context, accountID, id string, labelIDs []string) error

	// Labels.
	UpsertLabel(ctx context.Context, l domain.Label) error
	ListLabels(ctx context.Context, accountID string) ([]domain.Label, error)
	GetLabels(ctx context.Context, accountID string) (map[string]domain.Label, error)
	DeleteLabel(ctx context.Context, accountID, id string) error

	// Contacts.
	UpsertContact(ctx context.Context, c domain.Contact) error
	ListContacts(ctx context.Context, accountID string) ([]domain.Contact, error)

	// Sync state.
	GetSyncState(ctx context.Context, accountID string) (SyncState, error)
	SetSyncState(ctx context.Context, s SyncState) error

	Close() error
}
