package domain

import "time"

// Account holds one configured mailbox along with the plan-derived values the
// rest of the application reads as snapshots: the per-message label ceiling
// and the storage quota.
type Account struct {
	ID          string
	Email       string
	Provider    string
	DisplayName string
	Plan        string
	MaxLabels   int
	UsedBytes   int64
	TotalBytes  int64
	CreatedAt   time.Time
}
