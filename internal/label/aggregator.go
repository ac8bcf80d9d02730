package label

import (
	"errors"

	"github.com/ebuckley/tagmail/internal/domain"
)

// Delta aggregates per-message reconciliation results across a selection.
// Each map goes from label id to the messages that gain or lose it; message
// ids within a label keep processing order so dispatch batches are
// reproducible.
type Delta struct {
	Apply  map[string][]string
	Remove map[string][]string
}

func NewDelta() Delta {
	return Delta{
		Apply:  make(map[string][]string),
		Remove: make(map[string][]string),
	}
}

// Empty reports whether the delta contains no work.
func (d Delta) Empty() bool {
	return len(d.Apply) == 0 && len(d.Remove) == 0
}

// Rejection records a message skipped because its final label set would
// exceed the plan limit. It is surfaced to the user once; it never aborts
// the rest of the batch.
type Rejection struct {
	MessageID string
	Subject   string
	Limit     int
}

// MessageLookup resolves a message id to its current snapshot. A false
// return means the message is gone from local storage, which is not an
// error: the selection may be stale relative to a concurrent sync.
type MessageLookup func(id string) (*domain.Message, bool)

// Aggregate folds per-message resolutions over a selection into one Delta.
// Messages missing from the lookup are skipped silently; messages rejected
// by the limit guard contribute nothing but are reported so the caller can
// notify the user.
func Aggregate(messageIDs, checked, unchanged []string, lookup MessageLookup, directory map[string]domain.Label, maxAllowed int) (Delta, []Rejection) {
	delta := NewDelta()
	var rejections []Rejection

	for _, id := range messageIDs {
		msg, ok := lookup(id)
		if !ok {
			continue
		}

		res, err := Resolve(msg.LabelIDs, checked, unchanged, directory, maxAllowed, msg.Subject)
		if err != nil {
			var limitErr *LimitExceededError
			if errors.As(err, &limitErr) {
				rejections = append(rejections, Rejection{
					MessageID: id,
					Subject:   limitErr.Subject,
					Limit:     limitErr.Limit,
				})
			}
			continue
		}

		for _, labelID := range res.Apply {
			delta.Apply[labelID] = append(delta.Apply[labelID], id)
		}
		for _, labelID := range res.Remove {
			delta.Remove[labelID] = append(delta.Remove[labelID], id)
		}
	}

	return delta, rejections
}
