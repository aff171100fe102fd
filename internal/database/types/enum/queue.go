package enum

// QueueStatus tracks a review queue item through its lifecycle.
//
//go:generate go tool enumer -type=QueueStatus -trimprefix=QueueStatus -transform=snake -text
type QueueStatus int

const (
	// QueueStatusPending awaits a human decision.
	QueueStatusPending QueueStatus = iota
	// QueueStatusApproved means the reviewer agreed with the match and the
	// filter's action was (or is being) executed.
	QueueStatusApproved
	// QueueStatusDismissed means the reviewer rejected the match.
	QueueStatusDismissed
	// QueueStatusDeleted means the platform action completed.
	QueueStatusDeleted
	// QueueStatusFailed means the platform action was attempted and failed.
	QueueStatusFailed
)
