package label

// ExceedsLimit reports whether a candidate label-set size is over the
// per-plan maximum. The limit is plan-derived and must be checked the same
// way everywhere label sets are mutated, hence the named predicate. A
// non-positive maximum means the plan carries no limit.
func ExceedsLimit(candidateCount, maxAllowed int) bool {
	return maxAllowed > 0 && candidateCount > maxAllowed
}
