package gmail

import (
	"testing"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
	gmailapi "google.golang.org/api/gmail/v1"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantName  string
		wantEmail string
	}{
		{
			name:      "name and email",
			input:     "John Doe <john@example.com>",
			wantName:  "John Doe",
			wantEmail: "john@example.com",
		},
		{
			name:      "email in angle brackets",
			input:     "<john@example.com>",
			wantName:  "",
			wantEmail: "john@example.com",
		},
		{
			name:      "bare email",
			input:     "john@example.com",
			wantName:  "",
			wantEmail: "john@example.com",
		},
		{
			name:      "quoted name",
			input:     `"Jane Doe" <jane@example.com>`,
			wantName:  "Jane Doe",
			wantEmail: "jane@example.com",
		},
		{
			name:      "empty string",
			input:     "",
			wantName:  "",
			wantEmail: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAddress(tt.input)
			if got.Name != tt.wantName {
				t.Errorf("parseAddress(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if got.Email != tt.wantEmail {
				t.Errorf("parseAddress(%q).Email = %q, want %q", tt.input, got.Email, tt.wantEmail)
			}
		})
	}
}

func TestFindHeader(t *testing.T) {
	headers := []*gmailapi.MessagePartHeader{
		{Name: "From", Value: "john@example.com"},
		{Name: "Subject", Value: "Hello"},
		{Name: "Date", Value: "Mon, 1 Jan 2024 00:00:00 +0000"},
	}

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"existing header", "From", "john@example.com"},
		{"case insensitive", "from", "john@example.com"},
		{"subject header", "Subject", "Hello"},
		{"missing header", "Bcc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findHeader(headers, tt.key)
			if got != tt.want {
				t.Errorf("findHeader(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "RFC1123Z format",
			input:   "Mon, 01 Jan 2024 12:00:00 -0500",
			wantErr: false,
		},
		{
			name:    "RFC1123 format",
			input:   "Mon, 01 Jan 2024 12:00:00 UTC",
			wantErr: false,
		},
		{
			name:    "custom format with day name",
			input:   "Mon, 1 Jan 2024 12:00:00 -0500",
			wantErr: false,
		},
		{
			name:    "empty string returns zero time",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage returns zero time",
			input:   "not a date",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.input)
			if tt.wantErr {
				if !got.IsZero() {
					t.Errorf("parseDate(%q) = %v, want zero time", tt.input, got)
				}
			} else {
				if got.IsZero() {
					t.Errorf("parseDate(%q) returned zero time", tt.input)
				}
				if got.Year() != 2024 {
					t.Errorf("parseDate(%q).Year() = %d, want 2024", tt.input, got.Year())
				}
			}
		})
	}
}

func TestParseDate_Precision(t *testing.T) {
	got := parseDate("Mon, 01 Jan 2024 15:30:45 -0500")
	expected := time.Date(2024, 1, 1, 15, 30, 45, 0, time.FixedZone("", -5*60*60))
	if !got.Equal(expected) {
		t.Errorf("parseDate() = %v, want %v", got, expected)
	}
}

func TestMapMessage(t *testing.T) {
	msg := &gmailapi.Message{
		Id:           "msg123",
		ThreadId:     "thread456",
		LabelIds:     []string{"INBOX", "STARRED"},
		SizeEstimate: 2048,
		Payload: &gmailapi.MessagePart{
			MimeType: "multipart/mixed",
			Headers: []*gmailapi.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "Subject", Value: "Test Subject"},
				{Name: "Date", Value: "Mon, 01 Jan 2024 12:00:00 +0000"},
			},
			Parts: []*gmailapi.MessagePart{
				{
					MimeType: "text/plain",
					Body:     &gmailapi.MessagePartBody{Data: "SGVsbG8"},
				},
				{
					MimeType: "application/pdf",
					Filename: "doc.pdf",
					Body: &gmailapi.MessagePartBody{
						AttachmentId: "att123",
						Size:         1024,
					},
				},
			},
		},
	}

	m := mapMessage(msg)
	if m.ID != "msg123" {
		t.Errorf("ID = %q, want %q", m.ID, "msg123")
	}
	if m.ThreadID != "thread456" {
		t.Errorf("ThreadID = %q, want %q", m.ThreadID, "thread456")
	}
	if m.Subject != "Test Subject" {
		t.Errorf("Subject = %q, want %q", m.Subject, "Test Subject")
	}
	if m.From.Name != "Alice" {
		t.Errorf("From.Name = %q, want %q", m.From.Name, "Alice")
	}
	if m.From.Email != "alice@example.com" {
		t.Errorf("From.Email = %q, want %q", m.From.Email, "alice@example.com")
	}
	if !m.IsRead {
		t.Error("expected IsRead = true (UNREAD label absent)")
	}
	if !m.IsStarred {
		t.Error("expected IsStarred = true")
	}
	if m.Size != 2048 {
		t.Errorf("Size = %d, want 2048", m.Size)
	}
	if m.AttachmentCount != 1 {
		t.Errorf("AttachmentCount = %d, want 1", m.AttachmentCount)
	}
	if m.Date.Year() != 2024 {
		t.Errorf("Date.Year() = %d, want 2024", m.Date.Year())
	}
	// The Gmail API carries no answered/forwarded state.
	if m.IsReplied || m.IsForwarded {
		t.Errorf("IsReplied = %v, IsForwarded = %v, want both false for gmail", m.IsReplied, m.IsForwarded)
	}
}

func TestMapMessage_IsRead(t *testing.T) {
	// UNREAD label present means IsRead = false
	msg := &gmailapi.Message{
		Id:       "msg1",
		LabelIds: []string{"INBOX", "UNREAD"},
		Payload: &gmailapi.MessagePart{
			MimeType: "text/plain",
			Headers:  []*gmailapi.MessagePartHeader{},
			Body:     &gmailapi.MessagePartBody{},
		},
	}
	m := mapMessage(msg)
	if m.IsRead {
		t.Error("expected IsRead = false when UNREAD label present")
	}

	// No UNREAD label means IsRead = true
	msg.LabelIds = []string{"INBOX"}
	m = mapMessage(msg)
	if !m.IsRead {
		t.Error("expected IsRead = true when UNREAD label absent")
	}
}

func TestMapLabel(t *testing.T) {
	tests := []struct {
		name          string
		label         *gmailapi.Label
		wantType      domain.LabelType
		wantExclusive bool
	}{
		{
			name:          "system folder label",
			label:         &gmailapi.Label{Id: "INBOX", Name: "INBOX", Type: "system"},
			wantType:      domain.LabelTypeSystem,
			wantExclusive: true,
		},
		{
			name:          "system marker label",
			label:         &gmailapi.Label{Id: "STARRED", Name: "STARRED", Type: "system"},
			wantType:      domain.LabelTypeSystem,
			wantExclusive: false,
		},
		{
			name:          "user label",
			label:         &gmailapi.Label{Id: "Label_1", Name: "Work", Type: "user"},
			wantType:      domain.LabelTypeUser,
			wantExclusive: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapLabel(tt.label, 3)
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Exclusive != tt.wantExclusive {
				t.Errorf("Exclusive = %v, want %v", got.Exclusive, tt.wantExclusive)
			}
			if got.Order != 3 {
				t.Errorf("Order = %d, want 3", got.Order)
			}
		})
	}
}

func TestMapLabel_Color(t *testing.T) {
	l := &gmailapi.Label{
		Id:    "Label_2",
		Name:  "Urgent",
		Type:  "user",
		Color: &gmailapi.LabelColor{BackgroundColor: "#ff0000"},
	}
	got := mapLabel(l, 0)
	if got.Color != "#ff0000" {
		t.Errorf("Color = %q, want %q", got.Color, "#ff0000")
	}
}
