package sqlite

import (
	"context"
	"testing"

	"github.com/ebuckley/tagmail/internal/domain"
)

func TestUpsertAndListContacts(t *testing.T) {
	db := newTestDB(t)
	seedAccount(t, db)
	ctx := context.Background()

	contacts := []domain.Contact{
		{AccountID: "acc-1", Email: "bob@example.com", Name: "Bob"},
		{AccountID: "acc-1", Email: "alice@example.com", Name: "Alice"},
	}
	for _, c := range contacts {
		if err := db.UpsertContact(ctx, c); err != nil {
			t.Fatalf("UpsertContact(%s) error: %v", c.Email, err)
		}
	}

	got, err := db.ListContacts(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ListContacts() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListContacts() count = %d, want 2", len(got))
	}
	// Ordered by email.
	if got[0].Email != "alice@example.com" || got[1].Email != "bob@example.com" {
		t.Errorf("order = [%s %s], want alice then bob", got[0].Email, got[1].Email)
	}

	// Upsert updates the display name.
	if err := db.UpsertContact(ctx, domain.Contact{AccountID: "acc-1", Email: "alice@example.com", Name: "Alice Smith"}); err != nil {
		t.Fatalf("UpsertContact(update) error: %v", err)
	}
	got, err = db.ListContacts(ctx, "acc-1")
	if err != nil {
		t.Fatalf("ListContacts() after update error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListContacts() after update count = %d, want 2", len(got))
	}
	if got[0].Name != "Alice Smith" {
		t.Errorf("updated name = %q, want %q", got[0].Name, "Alice Smith")
	}
}
