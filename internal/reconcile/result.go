package reconcile

import "fmt"

// Result is the outcome of a reconciliation.
type Result int

const (
	// AlreadyPerfect means the ignore file needed no change.
	AlreadyPerfect Result = iota + 1
	// Saved means the merged document was written.
	Saved
	// Canceled means a change was needed but the user declined it.
	Canceled
)

// Tag returns the bare outcome name ("already-perfect", "saved", "canceled").
func (r Result) Tag() string {
	switch r {
	case AlreadyPerfect:
		return "already-perfect"
	case Saved:
		return "saved"
	case Canceled:
		return "canceled"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// String returns the status line reported to callers, e.g. "OK: saved".
func (r Result) String() string {
	return "OK: " + r.Tag()
}
