// internal/poller/types.go
package poller

import "time"

// Outcome classifies one poll cycle.
type Outcome uint8

const (
	// OutcomeUpdated means new content replaced the displayed one.
	OutcomeUpdated Outcome = iota + 1
	// OutcomeUnchanged means the fetched content equals the displayed one.
	OutcomeUnchanged
	// OutcomeEmpty means the server had no content; nothing was touched.
	OutcomeEmpty
	// OutcomeFailed means the fetch returned an error.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	FollowID int
	At       time.Time
	Duration time.Duration // request time only

	Outcome Outcome

	// Content is what the server returned; nil when absent or on error.
	Content  *string
	UpdateAt *int64 // unix seconds, server reported

	// Message is the human-readable status after this cycle.
	Message string

	Err error // non-nil means the poll cycle failed
}

// Status texts.
const (
	MsgIdle          = "waiting to sync"
	MsgConnecting    = "connecting..."
	MsgCheckingUser  = "checking user..."
	MsgTargetMissing = "error: followed user does not exist"
)
