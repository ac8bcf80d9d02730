package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/store"
)

func testMessage(id string) domain.Message {
	return domain.Message{
		ID:       id,
		ThreadID: "t-" + id,
		From:     domain.Address{Name: "Alice", Email: "alice@example.com"},
		Subject:  "Hello",
		Date:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		LabelIDs: []string{"INBOX"},
		Size:     1024,
	}
}

func TestUpsertAndGetMessage(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	msg := testMessage("m1")
	msg.LabelIDs = []string{"INBOX", "lbl-work"}
	msg.AttachmentCount = 2

	if err := db.UpsertMessage(ctx, "acc-1", msg); err != nil {
		t.Fatalf("UpsertMessage() error: %v", err)
	}

	got, err := db.GetMessage(ctx, "acc-1", "m1")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if got.Subject != "Hello" {
		t.Errorf("Subject = %q, want %q", got.Subject, "Hello")
	}
	if got.From.Email != "alice@example.com" || got.From.Name != "Alice" {
		t.Errorf("From = %+v, want Alice <alice@example.com>", got.From)
	}
	if len(got.LabelIDs) != 2 {
		t.Errorf("LabelIDs = %v, want 2 labels", got.LabelIDs)
	}
	if got.AttachmentCount != 2 {
		t.Errorf("AttachmentCount = %d, want 2", got.AttachmentCount)
	}
	if !got.Date.Equal(msg.Date) {
		t.Errorf("Date = %v, want %v", got.Date, msg.Date)
	}
}

func TestGetMessage_NotFound(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)

	_, err := db.GetMessage(context.Background(), "acc-1", "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetMessage(missing) error = %v, want store.ErrNotFound", err)
	}
}

func TestUpsertMessage_ReplacesLabels(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	msg := testMessage("m1")
	if err := db.UpsertMessage(ctx, "acc-1", msg); err != nil {
		t.Fatalf("UpsertMessage() error: %v", err)
	}

	msg.LabelIDs = []string{"INBOX", "STARRED"}
	msg.IsStarred = true
	if err := db.UpsertMessage(ctx, "acc-1", msg); err != nil {
		t.Fatalf("UpsertMessage(update) error: %v", err)
	}

	got, err := db.GetMessage(ctx, "acc-1", "m1")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if len(got.LabelIDs) != 2 {
		t.Errorf("LabelIDs = %v, want [INBOX STARRED]", got.LabelIDs)
	}
	if !got.IsStarred {
		t.Error("IsStarred = false, want true")
	}
}

func TestListMessages_FilterByLabel(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	m1 := testMessage("m1")
	m1.Date = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m2 := testMessage("m2")
	m2.Date = time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	m2.LabelIDs = []string{"INBOX", "lbl-work"}
	m3 := testMessage("m3")
	m3.Date = time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)
	m3.LabelIDs = []string{"SENT"}

	for _, m := range []domain.Message{m1, m2, m3} {
		if err := db.UpsertMessage(ctx, "acc-1", m); err != nil {
			t.Fatalf("UpsertMessage(%s) error: %v", m.ID, err)
		}
	}

	inbox, err := db.ListMessages(ctx, store.ListMessageOptions{AccountID: "acc-1", LabelID: "INBOX"})
	if err != nil {
		t.Fatalf("ListMessages(INBOX) error: %v", err)
	}
	if len(inbox) != 2 {
		t.Fatalf("ListMessages(INBOX) count = %d, want 2", len(inbox))
	}
	// Newest first.
	if inbox[0].ID != "m2" || inbox[1].ID != "m1" {
		t.Errorf("order = [%s %s], want [m2 m1]", inbox[0].ID, inbox[1].ID)
	}
	if len(inbox[0].LabelIDs) != 2 {
		t.Errorf("inbox[0].LabelIDs = %v, want 2 labels", inbox[0].LabelIDs)
	}

	all, err := db.ListMessages(ctx, store.ListMessageOptions{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("ListMessages(all) error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListMessages(all) count = %d, want 3", len(all))
	}

	limited, err := db.ListMessages(ctx, store.ListMessageOptions{AccountID: "acc-1", Limit: 1})
	if err != nil {
		t.Fatalf("ListMessages(limit) error: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "m3" {
		t.Errorf("ListMessages(limit=1) = %v, want [m3]", limited)
	}
}

func TestSetMessageLabels(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	if err := db.UpsertMessage(ctx, "acc-1", testMessage("m1")); err != nil {
		t.Fatalf("UpsertMessage() error: %v", err)
	}

	if err := db.SetMessageLabels(ctx, "acc-1", "m1", []string{"INBOX", "lbl-work", "STARRED"}); err != nil {
		t.Fatalf("SetMessageLabels() error: %v", err)
	}

	got, err := db.GetMessage(ctx, "acc-1", "m1")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if len(got.LabelIDs) != 3 {
		t.Errorf("LabelIDs = %v, want 3 labels", got.LabelIDs)
	}

	if err := db.SetMessageLabels(ctx, "acc-1", "missing", []string{"INBOX"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetMessageLabels(missing) error = %v, want store.ErrNotFound", err)
	}
}

func TestSetMessageRead(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	if err := db.UpsertMessage(ctx, "acc-1", testMessage("m1")); err != nil {
		t.Fatalf("UpsertMessage() error: %v", err)
	}
	if err := db.SetMessageRead(ctx, "acc-1", "m1", true); err != nil {
		t.Fatalf("SetMessageRead() error: %v", err)
	}
	got, err := db.GetMessage(ctx, "acc-1", "m1")
	if err != nil {
		t.Fatalf("GetMessage() error: %v", err)
	}
	if !got.IsRead {
		t.Error("IsRead = false, want true")
	}
}

func TestDeleteMessage(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	if err := db.UpsertMessage(ctx, "acc-1", testMessage("m1")); err != nil {
		t.Fatalf("UpsertMessage() error: %v", err)
	}
	if err := db.DeleteMessage(ctx, "acc-1", "m1"); err != nil {
		t.Fatalf("DeleteMessage() error: %v", err)
	}
	if _, err := db.GetMessage(ctx, "acc-1", "m1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetMessage(deleted) error = %v, want store.ErrNotFound", err)
	}
}
