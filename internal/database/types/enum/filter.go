package enum

// FilterType determines which predicate a filter applies to comment text.
//
//go:generate go tool enumer -type=FilterType -trimprefix=FilterType -transform=snake -text
type FilterType int

const (
	// FilterTypeKeyword matches a single word or token in the comment text.
	FilterTypeKeyword FilterType = iota
	// FilterTypePhrase matches a longer literal passage.
	FilterTypePhrase
	// FilterTypeRegex always compiles the pattern as a regular expression.
	FilterTypeRegex
	// FilterTypeUsername matches against the comment author's name.
	FilterTypeUsername
	// FilterTypeURL matches link text inside comments.
	FilterTypeURL
	// FilterTypeEmojiSpam fires when the emoji count reaches a numeric
	// threshold stored in the pattern field.
	FilterTypeEmojiSpam
	// FilterTypeRepeatChar fires when any character repeats consecutively at
	// least the threshold stored in the pattern field.
	FilterTypeRepeatChar
)

// MatchType selects how literal patterns are compared against text.
//
//go:generate go tool enumer -type=MatchType -trimprefix=MatchType -transform=snake -text
type MatchType int

const (
	MatchTypeContains MatchType = iota
	MatchTypeExact
	MatchTypeStartsWith
	MatchTypeEndsWith
	MatchTypeRegex
)

// FilterAction is what the owner wants done with a matching comment.
//
//go:generate go tool enumer -type=FilterAction -trimprefix=FilterAction -transform=snake -text
type FilterAction int

const (
	FilterActionDelete FilterAction = iota
	FilterActionHide
	FilterActionFlag
	FilterActionReport
)

// Outcome returns the audit log action this filter action produces and
// whether executing it needs a platform call. Report actions are record-only;
// unrecognized values map to a recorded failure.
func (a FilterAction) Outcome() (LogAction, bool) {
	switch a {
	case FilterActionDelete:
		return LogActionDeleted, true
	case FilterActionHide:
		return LogActionHidden, true
	case FilterActionFlag:
		return LogActionFlagged, true
	case FilterActionReport:
		return LogActionReported, false
	}

	return LogActionFailed, false
}
