package kourasync

// Diff returns the candidate activities that are not already recorded in the
// ledger, preserving candidate order.
//
// A candidate is a duplicate when its own comment carries a transactionId
// marker already present among the existing activities, or, failing that,
// when its canonical form equals the canonical form of some existing
// activity. The identifier fast path is immune to formatting and precision
// differences; the field comparison is kept as a fallback because records
// synced before identifier tagging carry no marker.
//
// Diff is a pure function over its two inputs and is idempotent: once its
// result has been imported, running it again against the same candidates
// yields nothing.
func Diff(existing, candidates []Activity) []Activity {
	synced := SyncedIDs(existing)

	diff := make([]Activity, 0)
	for _, candidate := range candidates {
		if !isPresent(candidate, existing, synced) {
			diff = append(diff, candidate)
		}
	}
	return diff
}

// isPresent reports whether the candidate is already recorded in the ledger.
func isPresent(candidate Activity, existing []Activity, synced map[string]bool) bool {
	// Precise comparison using the embedded transaction identifier.
	if id, ok := TransactionID(candidate.Comment); ok && synced[id] {
		return true
	}

	// Legacy comparison. O(existing) per candidate, which is fine at the
	// tens to low hundreds of records a sync deals with.
	want := NormalizeCandidate(candidate)
	for _, act := range existing {
		if NormalizeExisting(act).Equal(want) {
			return true
		}
	}
	return false
}
