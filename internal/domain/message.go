package domain

import "time"

type Address struct {
	Name  string
	Email string
}

func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Message is the locally stored projection of a mail message: envelope
// metadata, flags, and its current label set. Bodies are not stored.
type Message struct {
	ID              string
	ThreadID        string
	From            Address
	Subject         string
	Date            time.Time
	LabelIDs        []string
	IsRead          bool
	IsStarred       bool
	IsReplied       bool
	IsForwarded     bool
	Size            int64
	AttachmentCount int
}

func (m *Message) HasLabel(labelID string) bool {
	for _, l := range m.LabelIDs {
		if l == labelID {
			return true
		}
	}
	return false
}

// HasAttachments reports whether the message carries at least one attachment.
func (m *Message) HasAttachments() bool {
	return m.AttachmentCount > 0
}
