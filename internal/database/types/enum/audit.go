package enum

// LogAction is the action recorded in the audit log for one comment.
//
//go:generate go tool enumer -type=LogAction -trimprefix=LogAction -transform=snake -text
type LogAction int

const (
	LogActionDeleted LogAction = iota
	LogActionHidden
	LogActionFlagged
	LogActionReported
	// LogActionFailed records an attempt whose action value was not
	// recognized or whose execution failed outright.
	LogActionFailed
)

// ActionSource records which path executed a moderation action.
//
//go:generate go tool enumer -type=ActionSource -trimprefix=ActionSource -transform=snake -text
type ActionSource int

const (
	// ActionSourceBackground is the scan worker acting autonomously.
	ActionSourceBackground ActionSource = iota
	// ActionSourceAgent is the browser agent reporting a result.
	ActionSourceAgent
	// ActionSourceManual is a reviewer approving a queue item.
	ActionSourceManual
)
