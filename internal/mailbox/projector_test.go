package mailbox

import (
	"testing"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
)

func TestProject_SenderPrecedence(t *testing.T) {
	msg := domain.Message{
		ID:      "m1",
		From:    domain.Address{Name: "", Email: "a@x.com"},
		Subject: "hello",
	}

	t.Run("contact name wins", func(t *testing.T) {
		contacts := []domain.Contact{{Email: "a@x.com", Name: "Alice"}}
		items := Project([]domain.Message{msg}, contacts)
		if items[0].SenderName != "Alice" {
			t.Errorf("SenderName = %q, want %q", items[0].SenderName, "Alice")
		}
	})

	t.Run("falls back to message sender name", func(t *testing.T) {
		withName := msg
		withName.From.Name = "A. Person"
		items := Project([]domain.Message{withName}, nil)
		if items[0].SenderName != "A. Person" {
			t.Errorf("SenderName = %q, want %q", items[0].SenderName, "A. Person")
		}
	})

	t.Run("falls back to raw address", func(t *testing.T) {
		items := Project([]domain.Message{msg}, nil)
		if items[0].SenderName != "a@x.com" {
			t.Errorf("SenderName = %q, want %q", items[0].SenderName, "a@x.com")
		}
	})

	t.Run("contact beats message sender name", func(t *testing.T) {
		withName := msg
		withName.From.Name = "A. Person"
		contacts := []domain.Contact{{Email: "a@x.com", Name: "Alice"}}
		items := Project([]domain.Message{withName}, contacts)
		if items[0].SenderName != "Alice" {
			t.Errorf("SenderName = %q, want %q", items[0].SenderName, "Alice")
		}
	})

	t.Run("contact with empty name is skipped", func(t *testing.T) {
		contacts := []domain.Contact{{Email: "a@x.com", Name: ""}}
		items := Project([]domain.Message{msg}, contacts)
		if items[0].SenderName != "a@x.com" {
			t.Errorf("SenderName = %q, want %q", items[0].SenderName, "a@x.com")
		}
	})
}

func TestProject_PreservesOrderAndCount(t *testing.T) {
	now := time.Now()
	msgs := []domain.Message{
		{ID: "m3", Date: now, From: domain.Address{Email: "c@x.com"}},
		{ID: "m1", Date: now.Add(-time.Hour), From: domain.Address{Email: "a@x.com"}},
		{ID: "m2", Date: now.Add(-2 * time.Hour), From: domain.Address{Email: "b@x.com"}},
	}

	items := Project(msgs, nil)
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	for i, want := range []string{"m3", "m1", "m2"} {
		if items[i].MessageID != want {
			t.Errorf("items[%d].MessageID = %q, want %q", i, items[i].MessageID, want)
		}
	}
}

func TestProject_Flags(t *testing.T) {
	msgs := []domain.Message{{
		ID:              "m1",
		From:            domain.Address{Email: "a@x.com"},
		IsRead:          true,
		IsStarred:       true,
		IsReplied:       true,
		IsForwarded:     false,
		AttachmentCount: 2,
		Size:            4096,
		LabelIDs:        []string{"INBOX", "L1"},
	}}

	item := Project(msgs, nil)[0]
	if !item.IsRead || !item.IsStarred || !item.IsReplied || item.IsForwarded {
		t.Errorf("flags = %+v, want read/starred/replied set and forwarded clear", item)
	}
	if !item.HasAttachments {
		t.Error("expected HasAttachments = true")
	}
	if item.Size != 4096 {
		t.Errorf("Size = %d, want 4096", item.Size)
	}
}
