package mailbox

import "github.com/ebuckley/tagmail/internal/domain"

// CountUnread returns the number of unread messages in the list.
func CountUnread(messages []domain.Message) int {
	n := 0
	for i := range messages {
		if !messages[i].IsRead {
			n++
		}
	}
	return n
}

// UnreadByLabel counts unread messages per label id across the list.
func UnreadByLabel(messages []domain.Message) map[string]int {
	counts := make(map[string]int)
	for i := range messages {
		if messages[i].IsRead {
			continue
		}
		for _, labelID := range messages[i].LabelIDs {
			counts[labelID]++
		}
	}
	return counts
}
