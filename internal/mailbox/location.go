package mailbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ebuckley/tagmail/internal/domain"
)

// Location identifies one of the fixed system mailboxes.
type Location int

const (
	LocationInbox Location = iota
	LocationStarred
	LocationSent
	LocationDrafts
	LocationTrash
	LocationSpam
	LocationAllMail
)

// ErrInvalidLocation reports a location value outside the supported set. It
// indicates a caller bug rather than a runtime condition, so callers are not
// expected to recover from it.
var ErrInvalidLocation = errors.New("invalid mailbox location")

func (l Location) String() string {
	switch l {
	case LocationInbox:
		return "inbox"
	case LocationStarred:
		return "starred"
	case LocationSent:
		return "sent"
	case LocationDrafts:
		return "drafts"
	case LocationTrash:
		return "trash"
	case LocationSpam:
		return "spam"
	case LocationAllMail:
		return "all"
	}
	return fmt.Sprintf("location(%d)", int(l))
}

// LabelID returns the system label backing the location. LocationAllMail has
// no backing label and maps to the empty string (no filter).
func (l Location) LabelID() (string, error) {
	switch l {
	case LocationInbox:
		return domain.LabelInbox, nil
	case LocationStarred:
		return domain.LabelStarred, nil
	case LocationSent:
		return domain.LabelSent, nil
	case LocationDrafts:
		return domain.LabelDraft, nil
	case LocationTrash:
		return domain.LabelTrash, nil
	case LocationSpam:
		return domain.LabelSpam, nil
	case LocationAllMail:
		return "", nil
	}
	return "", fmt.Errorf("%w: %d", ErrInvalidLocation, int(l))
}

// ParseLocation maps a user-facing mailbox name to a Location.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbox":
		return LocationInbox, nil
	case "starred":
		return LocationStarred, nil
	case "sent":
		return LocationSent, nil
	case "drafts", "draft":
		return LocationDrafts, nil
	case "trash":
		return LocationTrash, nil
	case "spam":
		return LocationSpam, nil
	case "all", "all-mail":
		return LocationAllMail, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

// Locations lists every supported location in display order.
func Locations() []Location {
	return []Location{
		LocationInbox,
		LocationStarred,
		LocationSent,
		LocationDrafts,
		LocationTrash,
		LocationSpam,
		LocationAllMail,
	}
}
