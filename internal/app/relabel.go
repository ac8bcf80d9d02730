// Package app orchestrates the store, the mail provider, and the label
// reconciliation engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/label"
	"github.com/ebuckley/tagmail/internal/store"
)

// relabelStore is the subset of store.Store the relabel service reads and
// mirrors into.
type relabelStore interface {
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	GetMessage(ctx context.Context, accountID, id string) (domain.Message, error)
	GetLabels(ctx context.Context, accountID string) (map[string]domain.Label, error)
	SetMessageLabels(ctx context.Context, accountID, id string, labelIDs []string) error
}

// Dispatcher sends computed label changes to the remote provider.
type Dispatcher interface {
	ApplyLabel(ctx context.Context, labelID string, messageIDs []string) error
	RemoveLabel(ctx context.Context, labelID string, messageIDs []string) error
}

// RelabelService turns a label-dialog confirmation into provider calls and
// local store updates.
type RelabelService struct {
	store      relabelStore
	dispatcher Dispatcher
	accountID  string
}

// NewRelabelService creates a RelabelService for the given account.
func NewRelabelService(s relabelStore, d Dispatcher, accountID string) *RelabelService {
	return &RelabelService{store: s, dispatcher: d, accountID: accountID}
}

// RelabelOutcome reports what a Relabel call changed and what it refused.
type RelabelOutcome struct {
	Delta      label.Delta
	Rejections []label.Rejection
	// Skipped lists selected message IDs that no longer exist locally.
	Skipped []string
}

// Relabel reconciles the checked and unchanged label sets against each
// selected message, pushes the per-label batches to the provider, and mirrors
// the resulting label sets into the local store. Messages missing from the
// store are skipped; messages whose final label count would exceed the
// account ceiling are rejected but do not abort the batch.
func (s *RelabelService) Relabel(ctx context.Context, messageIDs, checked, unchanged []string) (RelabelOutcome, error) {
	account, err := s.store.GetAccount(ctx, s.accountID)
	if err != nil {
		return RelabelOutcome{}, fmt.Errorf("failed to get account: %w", err)
	}

	directory, err := s.store.GetLabels(ctx, s.accountID)
	if err != nil {
		return RelabelOutcome{}, fmt.Errorf("failed to load label directory: %w", err)
	}

	var skipped []string
	messages := make(map[string]domain.Message, len(messageIDs))
	for _, id := range messageIDs {
		msg, err := s.store.GetMessage(ctx, s.accountID, id)
		if errors.Is(err, store.ErrNotFound) {
			skipped = append(skipped, id)
			continue
		}
		if err != nil {
			return RelabelOutcome{}, fmt.Errorf("failed to get message %s: %w", id, err)
		}
		messages[id] = msg
	}

	lookup := func(id string) (*domain.Message, bool) {
		m, ok := messages[id]
		if !ok {
			return nil, false
		}
		return &m, true
	}

	delta, rejections := label.Aggregate(messageIDs, checked, unchanged, lookup, directory, account.MaxLabels)

	if err := s.dispatch(ctx, delta); err != nil {
		return RelabelOutcome{}, err
	}

	if err := s.mirror(ctx, messageIDs, checked, unchanged, messages, directory, account.MaxLabels); err != nil {
		return RelabelOutcome{}, err
	}

	log.Printf("[relabel] account %s: %d labels applied, %d removed, %d rejected, %d skipped",
		s.accountID, len(delta.Apply), len(delta.Remove), len(rejections), len(skipped))

	return RelabelOutcome{Delta: delta, Rejections: rejections, Skipped: skipped}, nil
}

// dispatch pushes each label batch to the provider, removals first so a move
// between labels never leaves a message over its ceiling remotely.
func (s *RelabelService) dispatch(ctx context.Context, delta label.Delta) error {
	for _, labelID := range sortedKeys(delta.Remove) {
		if err := s.dispatcher.RemoveLabel(ctx, labelID, delta.Remove[labelID]); err != nil {
			return fmt.Errorf("failed to remove label %s: %w", labelID, err)
		}
	}
	for _, labelID := range sortedKeys(delta.Apply) {
		if err := s.dispatcher.ApplyLabel(ctx, labelID, delta.Apply[labelID]); err != nil {
			return fmt.Errorf("failed to apply label %s: %w", labelID, err)
		}
	}
	return nil
}

// mirror recomputes each accepted message's final label set and writes it to
// the local store so the mailbox view reflects the change without a resync.
func (s *RelabelService) mirror(ctx context.Context, messageIDs, checked, unchanged []string,
	messages map[string]domain.Message, directory map[string]domain.Label, maxLabels int) error {

	for _, id := range messageIDs {
		msg, ok := messages[id]
		if !ok {
			continue
		}
		result, err := label.Resolve(msg.LabelIDs, checked, unchanged, directory, maxLabels, msg.Subject)
		if err != nil {
			continue
		}
		final := finalLabels(msg.LabelIDs, result)
		if err := s.store.SetMessageLabels(ctx, s.accountID, id, final); err != nil {
			return fmt.Errorf("failed to mirror labels for message %s: %w", id, err)
		}
	}
	return nil
}

func finalLabels(current []string, result label.Result) []string {
	removed := make(map[string]bool, len(result.Remove))
	for _, id := range result.Remove {
		removed[id] = true
	}
	final := make([]string, 0, len(current)+len(result.Apply))
	for _, id := range current {
		if !removed[id] {
			final = append(final, id)
		}
	}
	final = append(final, result.Apply...)
	return final
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
