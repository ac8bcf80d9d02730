package domain

// LabelType distinguishes provider-defined system labels from user-created ones.
type LabelType string

const (
	LabelTypeSystem LabelType = "system"
	LabelTypeUser   LabelType = "user"
)

// Label is one entry in an account's label directory. Exclusive marks
// folder-like labels: a message lives in at most one of them, and label
// reconciliation never strips an exclusive label implicitly. Only explicit
// move operations change folder placement.
type Label struct {
	ID        string
	AccountID string
	Name      string
	Type      LabelType
	Exclusive bool
	Color     string
	Order     int
}

const (
	LabelInbox   = "INBOX"
	LabelStarred = "STARRED"
	LabelUnread  = "UNREAD"
	LabelSent    = "SENT"
	LabelDraft   = "DRAFT"
	LabelTrash   = "TRASH"
	LabelSpam    = "SPAM"
)

// exclusiveSystemLabels are the system labels that behave as folders.
var exclusiveSystemLabels = map[string]bool{
	LabelInbox: true,
	LabelSent:  true,
	LabelDraft: true,
	LabelTrash: true,
	LabelSpam:  true,
}

// IsExclusiveSystemLabel reports whether a system label id denotes a
// folder-like location rather than a free marker such as STARRED.
func IsExclusiveSystemLabel(id string) bool {
	return exclusiveSystemLabels[id]
}
