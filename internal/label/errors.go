package label

import "fmt"

// LimitExceededError reports that applying the requested labels would push a
// message past its plan's label ceiling. It carries the message subject so
// the UI can name the offending message in a transient notice. The error is
// per-message: the rest of a batch proceeds.
type LimitExceededError struct {
	Subject string
	Limit   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("message %q would exceed the maximum of %d labels", e.Subject, e.Limit)
}
