package gmail

import (
	"net/mail"
	"strings"
	"time"

	"github.com/ebuckley/tagmail/internal/domain"
	gmailapi "google.golang.org/api/gmail/v1"
)

// mapMessage converts a Gmail API Message to a domain Message.
//
// IsReplied and IsForwarded stay false: the Gmail API does not expose whether
// a received message was answered or forwarded, so those indicators only
// light up for providers that report them.
func mapMessage(msg *gmailapi.Message) domain.Message {
	var headers []*gmailapi.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	return domain.Message{
		ID:              msg.Id,
		ThreadID:        msg.ThreadId,
		From:            parseAddress(findHeader(headers, "From")),
		Subject:         findHeader(headers, "Subject"),
		Date:            parseDate(findHeader(headers, "Date")),
		LabelIDs:        msg.LabelIds,
		IsRead:          !containsLabel(msg.LabelIds, domain.LabelUnread),
		IsStarred:       containsLabel(msg.LabelIds, domain.LabelStarred),
		Size:            msg.SizeEstimate,
		AttachmentCount: countAttachments(msg.Payload),
	}
}

// mapLabel converts a Gmail API Label to a domain Label. The list index is
// used as the sort order since Gmail reports labels in display order.
func mapLabel(l *gmailapi.Label, order int) domain.Label {
	labelType := domain.LabelTypeUser
	exclusive := false
	if l.Type == "system" {
		labelType = domain.LabelTypeSystem
		exclusive = domain.IsExclusiveSystemLabel(l.Id)
	}

	color := ""
	if l.Color != nil {
		color = l.Color.BackgroundColor
	}

	return domain.Label{
		ID:        l.Id,
		Name:      l.Name,
		Type:      labelType,
		Exclusive: exclusive,
		Color:     color,
		Order:     order,
	}
}

// findHeader performs a case-insensitive lookup for a header value.
func findHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	lower := strings.ToLower(name)
	for _, h := range headers {
		if strings.ToLower(h.Name) == lower {
			return h.Value
		}
	}
	return ""
}

// parseAddress parses an RFC 5322 address string into a domain Address.
// Falls back to treating the entire string as a bare email if parsing fails.
func parseAddress(s string) domain.Address {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Address{}
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return domain.Address{Email: s}
	}
	return domain.Address{
		Name:  addr.Name,
		Email: addr.Address,
	}
}

// parseDate tries multiple date formats commonly used in email headers.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		time.RFC822Z,
		time.RFC822,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"2006-01-02T15:04:05Z07:00",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// containsLabel checks if a label is present in the list.
func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}

// countAttachments counts message parts carrying a filename.
func countAttachments(part *gmailapi.MessagePart) int {
	if part == nil {
		return 0
	}
	count := 0
	if part.Filename != "" && part.Body != nil {
		count++
	}
	for _, p := range part.Parts {
		count += countAttachments(p)
	}
	return count
}
