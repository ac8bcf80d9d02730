package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/provider"
	"github.com/ebuckley/tagmail/internal/store"
)

// syncStore is the subset of store.Store a sync writes into.
type syncStore interface {
	UpsertLabel(ctx context.Context, l domain.Label) error
	UpsertMessage(ctx context.Context, accountID string, m domain.Message) error
	UpsertContact(ctx context.Context, c domain.Contact) error
	DeleteMessage(ctx context.Context, accountID, id string) error
	SetMessageLabels(ctx context.Context, accountID, id string, labelIDs []string) error
	SetAccountQuota(ctx context.Context, id string, usedBytes, totalBytes int64) error
	GetSyncState(ctx context.Context, accountID string) (store.SyncState, error)
	SetSyncState(ctx context.Context, s store.SyncState) error
}

// SyncService orchestrates synchronization between a mail provider and the
// local store for a single account.
type SyncService struct {
	store     syncStore
	provider  provider.MailProvider
	accountID string
}

// NewSyncService creates a SyncService that syncs the given account between
// the provider and the local store.
func NewSyncService(s syncStore, p provider.MailProvider, accountID string) *SyncService {
	return &SyncService{store: s, provider: p, accountID: accountID}
}

// InitialSync performs a full initial sync, fetching up to count messages from
// the provider and persisting them locally along with all labels, the
// account's current storage usage, and the mailbox history position.
func (s *SyncService) InitialSync(ctx context.Context, count int) error {
	// Sync labels first so the directory is complete before any message
	// references them.
	labels, err := s.provider.ListLabels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}
	for i := range labels {
		labels[i].AccountID = s.accountID
		if err := s.store.UpsertLabel(ctx, labels[i]); err != nil {
			return fmt.Errorf("failed to upsert label %s: %w", labels[i].ID, err)
		}
	}
	log.Printf("[sync] synced %d labels for account %s", len(labels), s.accountID)

	// Fetch messages in pages.
	const batchSize = 100
	var (
		pageToken string
		fetched   int
	)
	for fetched < count {
		remaining := count - fetched
		limit := min(batchSize, remaining)

		msgs, nextToken, err := s.provider.ListMessages(ctx, provider.ListOptions{
			PageToken:  pageToken,
			MaxResults: limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list messages (fetched %d so far): %w", fetched, err)
		}

		for i := range msgs {
			if err := s.store.UpsertMessage(ctx, s.accountID, msgs[i]); err != nil {
				return fmt.Errorf("failed to upsert message %s: %w", msgs[i].ID, err)
			}
			if err := s.harvestContact(ctx, msgs[i].From.Email, msgs[i].From.Name); err != nil {
				return err
			}
		}

		fetched += len(msgs)
		log.Printf("[sync] fetched %d/%d messages for account %s", fetched, count, s.accountID)

		if nextToken == "" || len(msgs) == 0 {
			break
		}
		pageToken = nextToken
	}

	prof, err := s.RefreshQuota(ctx)
	if err != nil {
		return err
	}

	// The profile's history ID marks the mailbox position this sync saw;
	// the next IncrementalSync fetches only changes recorded after it.
	if err := s.store.SetSyncState(ctx, store.SyncState{
		AccountID:    s.accountID,
		HistoryID:    prof.HistoryID,
		LastSyncedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to save sync state: %w", err)
	}

	log.Printf("[sync] initial sync complete: %d messages for account %s", fetched, s.accountID)
	return nil
}

// IncrementalSync performs a delta sync using the provider's history API.
// If no prior sync state exists (historyID == 0), it falls back to an
// InitialSync of 500 messages.
func (s *SyncService) IncrementalSync(ctx context.Context) error {
	state, err := s.store.GetSyncState(ctx, s.accountID)
	if err != nil {
		return fmt.Errorf("failed to get sync state: %w", err)
	}

	if state.HistoryID == 0 {
		log.Printf("[sync] no history ID found, falling back to initial sync for account %s", s.accountID)
		return s.InitialSync(ctx, 500)
	}

	events, newHistoryID, err := s.provider.History(ctx, state.HistoryID)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	var added, deleted, modified int

	for _, event := range events {
		switch event.Type {
		case provider.HistoryMessageAdded:
			msg, err := s.provider.GetMessage(ctx, event.MessageID)
			if err != nil {
				return fmt.Errorf("failed to get added message %s: %w", event.MessageID, err)
			}
			if err := s.store.UpsertMessage(ctx, s.accountID, msg); err != nil {
				return fmt.Errorf("failed to upsert added message %s: %w", event.MessageID, err)
			}
			added++

		case provider.HistoryMessageDeleted:
			if err := s.store.DeleteMessage(ctx, s.accountID, event.MessageID); err != nil {
				return fmt.Errorf("failed to delete message %s: %w", event.MessageID, err)
			}
			deleted++

		case provider.HistoryLabelsAdded, provider.HistoryLabelsRemoved:
			msg, err := s.provider.GetMessage(ctx, event.MessageID)
			if err != nil {
				return fmt.Errorf("failed to get message %s for label update: %w", event.MessageID, err)
			}
			if err := s.store.SetMessageLabels(ctx, s.accountID, msg.ID, msg.LabelIDs); err != nil {
				return fmt.Errorf("failed to set labels for message %s: %w", event.MessageID, err)
			}
			modified++
		}
	}

	if _, err := s.RefreshQuota(ctx); err != nil {
		return err
	}

	if err := s.store.SetSyncState(ctx, store.SyncState{
		AccountID:    s.accountID,
		HistoryID:    newHistoryID,
		LastSyncedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("failed to update sync state: %w", err)
	}

	log.Printf("[sync] incremental sync complete for account %s: %d added, %d deleted, %d modified",
		s.accountID, added, deleted, modified)
	return nil
}

// RefreshQuota fetches the provider profile and records the storage figures
// on the account. The profile is returned so sync paths can persist its
// history position.
func (s *SyncService) RefreshQuota(ctx context.Context) (provider.Profile, error) {
	prof, err := s.provider.Profile(ctx)
	if err != nil {
		return provider.Profile{}, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if err := s.store.SetAccountQuota(ctx, s.accountID, prof.UsedBytes, prof.TotalBytes); err != nil {
		return provider.Profile{}, fmt.Errorf("failed to record quota: %w", err)
	}
	log.Printf("[sync] quota for account %s: %d/%d bytes", s.accountID, prof.UsedBytes, prof.TotalBytes)
	return prof, nil
}

// harvestContact records the sender of a synced message in the contact
// directory so mailbox rows can prefer the contact's display name.
func (s *SyncService) harvestContact(ctx context.Context, email, name string) error {
	if email == "" {
		return nil
	}
	c := domain.Contact{AccountID: s.accountID, Email: email, Name: name}
	if err := s.store.UpsertContact(ctx, c); err != nil {
		return fmt.Errorf("failed to upsert contact %s: %w", email, err)
	}
	return nil
}
