// Package ledger holds the pure rules of the tally: the 24-hour edit
// window and the balance arithmetic. It does no I/O; callers pass in an
// already fetched snapshot of transactions and an explicit "now".
package ledger

import "time"

// EditWindow is how long after creation a transaction stays editable.
const EditWindow = 24 * time.Hour

// IsLocked reports whether a transaction created at createdAt may no
// longer be modified or deleted as of now.
//
// A zero createdAt means the record has no trustworthy creation time;
// such records are treated as locked. A createdAt in the future (clock
// skew between writers) leaves the window open, since none of it has
// elapsed yet.
func IsLocked(createdAt, now time.Time) bool {
	if createdAt.IsZero() {
		return true
	}
	return now.Sub(createdAt) >= EditWindow
}

// LockRemaining returns how long until the transaction locks, or zero if
// it is already locked. Useful for rendering a countdown.
func LockRemaining(createdAt, now time.Time) time.Duration {
	if IsLocked(createdAt, now) {
		return 0
	}
	remaining := EditWindow - now.Sub(createdAt)
	if remaining > EditWindow {
		// future createdAt: cap at a full window
		return EditWindow
	}
	return remaining
}
