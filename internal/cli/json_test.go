package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/ebuckley/tagmail/internal/app"
	"github.com/ebuckley/tagmail/internal/domain"
	"github.com/ebuckley/tagmail/internal/label"
	"github.com/ebuckley/tagmail/internal/mailbox"
	"github.com/ebuckley/tagmail/internal/quota"
)

func TestToJSONAccounts(t *testing.T) {
	accounts := []domain.Account{
		{
			ID:        "acc-1",
			Email:     "user@example.com",
			Provider:  "gmail",
			Plan:      "gmail",
			MaxLabels: 100,
			CreatedAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	got := toJSONAccounts(accounts)

	if len(got) != 1 {
		t.Fatalf("got %d accounts, want 1", len(got))
	}
	if got[0].Email != "user@example.com" {
		t.Errorf("got email %q, want %q", got[0].Email, "user@example.com")
	}
	if got[0].MaxLabels != 100 {
		t.Errorf("got max_labels %d, want 100", got[0].MaxLabels)
	}
	if got[0].CreatedAt != "2026-01-15" {
		t.Errorf("got created_at %q, want %q", got[0].CreatedAt, "2026-01-15")
	}

	// Verify JSON round-trip.
	var buf bytes.Buffer
	if err := fprintJSON(&buf, got); err != nil {
		t.Fatalf("fprintJSON() error = %v", err)
	}
	var parsed []jsonAccount
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if parsed[0].ID != "acc-1" {
		t.Errorf("round-trip: got ID %q, want %q", parsed[0].ID, "acc-1")
	}
}

func TestToJSONItems(t *testing.T) {
	items := []mailbox.Item{
		{
			MessageID:      "m1",
			Subject:        "Hello",
			SenderName:     "Alice",
			SenderEmail:    "alice@example.com",
			Date:           time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			IsRead:         true,
			HasAttachments: true,
			Size:           2048,
			LabelIDs:       []string{"INBOX"},
		},
	}

	got := toJSONItems(items)
	if len(got) != 1 {
		t.Fatalf("got %d items, want 1", len(got))
	}
	if got[0].SenderName != "Alice" {
		t.Errorf("sender_name = %q, want %q", got[0].SenderName, "Alice")
	}
	if !got[0].HasAttachments {
		t.Error("has_attachments = false, want true")
	}
	if got[0].Date != "2026-08-01T12:00:00Z" {
		t.Errorf("date = %q, want RFC3339", got[0].Date)
	}
}

func TestToJSONLabels(t *testing.T) {
	labels := []domain.Label{
		{ID: "INBOX", Name: "INBOX", Type: domain.LabelTypeSystem, Exclusive: true},
		{ID: "Label_1", Name: "Work", Type: domain.LabelTypeUser, Color: "#ff0000"},
	}

	got := toJSONLabels(labels)
	if len(got) != 2 {
		t.Fatalf("got %d labels, want 2", len(got))
	}
	if !got[0].Exclusive {
		t.Error("INBOX exclusive = false, want true")
	}
	if got[1].Type != "user" {
		t.Errorf("type = %q, want %q", got[1].Type, "user")
	}
	if got[1].Color != "#ff0000" {
		t.Errorf("color = %q, want %q", got[1].Color, "#ff0000")
	}
}

func TestToJSONRelabelOutcome(t *testing.T) {
	out := app.RelabelOutcome{
		Delta: label.Delta{
			Apply:  map[string][]string{"L1": {"m1", "m2"}},
			Remove: map[string][]string{"L2": {"m1"}},
		},
		Rejections: []label.Rejection{{MessageID: "m3", Subject: "Big", Limit: 3}},
		Skipped:    []string{"m4"},
	}

	got := toJSONRelabelOutcome(out)
	if len(got.Applied["L1"]) != 2 {
		t.Errorf("applied[L1] = %v, want 2 messages", got.Applied["L1"])
	}
	if len(got.Rejections) != 1 || got.Rejections[0].Limit != 3 {
		t.Errorf("rejections = %v, want one with limit 3", got.Rejections)
	}
	if len(got.Skipped) != 1 || got.Skipped[0] != "m4" {
		t.Errorf("skipped = %v, want [m4]", got.Skipped)
	}
}

func TestToJSONQuota(t *testing.T) {
	account := domain.Account{Email: "user@example.com", UsedBytes: 950, TotalBytes: 1000}
	usage := quota.Classify(account.UsedBytes, account.TotalBytes, 90)

	got := toJSONQuota(account, usage, quota.TriggerStartup)
	if got.PercentUsed != 95 {
		t.Errorf("percent_used = %d, want 95", got.PercentUsed)
	}
	if got.State != "approaching" {
		t.Errorf("state = %q, want %q", got.State, "approaching")
	}
	if got.Notice == "" {
		t.Error("notice should not be empty when approaching")
	}
}
