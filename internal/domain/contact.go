package domain

// Contact is one entry in an account's local contact directory, used to
// resolve sender display names in the mailbox list.
type Contact struct {
	AccountID string
	Email     string
	Name      string
}
