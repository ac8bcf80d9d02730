// Package label implements label-set reconciliation: given a message's
// current labels and the checked/unchanged lists coming out of a label
// dialog, it computes which labels to apply and which to remove, preserving
// exclusive (folder-like) labels and enforcing the per-plan label ceiling.
package label

import "github.com/ebuckley/tagmail/internal/domain"

// Result holds the per-message outcome of a reconciliation pass. Apply keeps
// the order labels were checked in; Remove keeps the message's own label
// order. The two are always disjoint.
type Result struct {
	Apply  []string
	Remove []string
}

// Resolve computes the label delta for a single message.
//
// current is the message's label snapshot. checked is the full list of label
// ids the user wants applied; duplicates are tolerated and collapse on first
// occurrence. unchanged lists labels outside the dialog's scope that must
// survive untouched even though they are absent from checked. directory is
// the account's label directory; ids missing from it are treated as
// non-exclusive. maxAllowed is the plan's label ceiling (non-positive means
// unlimited); subject rides along into the error so the UI can name the
// offending message.
func Resolve(current, checked, unchanged []string, directory map[string]domain.Label, maxAllowed int, subject string) (Result, error) {
	checkedSet := toSet(checked)
	unchangedSet := toSet(unchanged)

	// Working copy of the checked list, first occurrence wins.
	remaining := dedupe(checked)

	var remove []string
	for _, id := range current {
		_, isChecked := checkedSet[id]
		_, isUnchanged := unchangedSet[id]

		if !isChecked && !isUnchanged {
			// Dropped from the dialog. Exclusive labels model folder
			// placement and are never stripped here.
			if l, ok := directory[id]; !ok || !l.Exclusive {
				remove = append(remove, id)
			}
			continue
		}
		if isChecked {
			// Already applied; consume it so it is not re-applied.
			remaining = drop(remaining, id)
		}
	}

	// Whatever the user checked that the message does not already carry.
	apply := remaining

	// apply is disjoint from current and remove is a subset of current, so
	// the final set size is a plain sum.
	finalCount := len(current) + len(apply) - len(remove)
	if ExceedsLimit(finalCount, maxAllowed) {
		return Result{}, &LimitExceededError{Subject: subject, Limit: maxAllowed}
	}

	return Result{Apply: apply, Remove: remove}, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// dedupe returns a copy of ids with later duplicates removed, keeping order.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// drop removes the first occurrence of id, preserving order.
func drop(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
