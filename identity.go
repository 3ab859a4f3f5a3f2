package kourasync

import "regexp"

// Synced activities carry their upstream provenance inside the free-text
// comment as "transactionId=<id>", terminated by a pipe or the end of the
// comment. The marker survives round trips through the ledger even when the
// rest of the comment is edited, which plain field equality does not.
var transactionIDPattern = regexp.MustCompile(`transactionId=([^|]+)`)

// TransactionID extracts the upstream transaction identifier embedded in an
// activity comment. ok is false when the comment carries no marker; a
// malformed marker is treated as absent, never as an error.
func TransactionID(comment string) (id string, ok bool) {
	m := transactionIDPattern.FindStringSubmatch(comment)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SyncedIDs collects the transaction identifiers of every activity already
// recorded in the ledger, scanning each comment once. Activities without a
// marker are simply left out of the set.
func SyncedIDs(existing []Activity) map[string]bool {
	ids := make(map[string]bool)
	for _, act := range existing {
		if id, ok := TransactionID(act.Comment); ok {
			ids[id] = true
		}
	}
	return ids
}
