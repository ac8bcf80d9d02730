// Package mailbox derives read-only view state from stored messages: the
// display-ready list projection, the closed set of system locations, and
// unread counters.
package mailbox

import (
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
)

// Item is a display-ready projection of a message. It has no lifecycle of
// its own; the list is regenerated on every message-list emission.
type Item struct {
	MessageID       string
	Subject         string
	SenderName      string
	SenderEmail     string
	Date            time.Time
	IsRead          bool
	IsStarred       bool
	IsReplied       bool
	IsForwarded     bool
	HasAttachments  bool
	Size            int64
	LabelIDs        []string
}

// Project maps messages onto display items, resolving each sender name
// against the contact directory snapshot. Every input message yields exactly
// one item and order is preserved.
//
// Sender name precedence: a contact whose email matches the sender wins,
// then the name recorded on the message itself, then the bare address.
func Project(messages []domain.Message, contacts []domain.Contact) []Item {
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		if c.Name != "" {
			names[c.Email] = c.Name
		}
	}

	items := make([]Item, 0, len(messages))
	for _, m := range messages {
		items = append(items, Item{
			MessageID:      m.ID,
			Subject:        m.Subject,
			SenderName:     senderName(m.From, names),
			SenderEmail:    m.From.Email,
			Date:           m.Date,
			IsRead:         m.IsRead,
			IsStarred:      m.IsStarred,
			IsReplied:      m.IsReplied,
			IsForwarded:    m.IsForwarded,
			HasAttachments: m.HasAttachments(),
			Size:           m.Size,
			LabelIDs:       m.LabelIDs,
		})
	}
	return items
}

func senderName(from domain.Address, contactNames map[string]string) string {
	if name, ok := contactNames[from.Email]; ok {
		return name
	}
	if from.Name != "" {
		return from.Name
	}
	return from.Email
}
