// Package provider abstracts the remote mail service behind an interface the
// sync and relabel layers depend on.
package provider

import (
	"context"

	"github.com/ebuckley/tagmail/internal/domain"
)

// ListOptions controls paging and filtering of remote message listings.
type ListOptions struct {
	PageToken  string
	MaxResults int
	LabelIDs   []string
}

// Profile describes the authenticated mailbox, including the storage figures
// the quota policy classifies. HistoryID is the mailbox's current history
// position; a sync persists it so the next sync can fetch only the changes
// recorded after it.
type Profile struct {
	Email      string
	UsedBytes  int64
	TotalBytes int64
	HistoryID  uint64
}

// MailProvider is the remote mail service.
type MailProvider interface {
	Authenticate(ctx context.Context) error
	IsAuthenticated() bool

	Profile(ctx context.Context) (Profile, error)

	ListMessages(ctx context.Context, opts ListOptions) ([]domain.Message, string, error)
	GetMessage(ctx context.Context, id string) (domain.Message, error)

	ListLabels(ctx context.Context) ([]domain.Label, error)

	// ApplyLabel and RemoveLabel modify one label across a batch of messages.
	ApplyLabel(ctx context.Context, labelID string, messageIDs []string) error
	RemoveLabel(ctx context.Context, labelID string, messageIDs []string) error

	History(ctx context.Context, startHistoryID uint64) ([]HistoryEvent, uint64, error)
}

// HistoryEventType enumerates the kinds of mailbox changes History reports.
type HistoryEventType int

const (
	HistoryMessageAdded HistoryEventType = iota
	HistoryMessageDeleted
	HistoryLabelsAdded
	HistoryLabelsRemoved
)

// HistoryEvent is one mailbox change since a prior history ID.
type HistoryEvent struct {
	Type      HistoryEventType
	MessageID string
	LabelIDs  []string
}
