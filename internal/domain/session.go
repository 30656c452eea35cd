package domain

// SubmissionStatus is the active member of the submission state.
// Exactly one is active at a time.
type SubmissionStatus int

const (
	// StatusIdle is the initial state: nothing submitted yet.
	StatusIdle SubmissionStatus = iota
	// StatusLoading means one request is in flight.
	StatusLoading
	// StatusError carries a user-facing message.
	StatusError
	// StatusResult carries the generated recipe.
	StatusResult
)

// String returns a human-readable submission status.
func (s SubmissionStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusResult:
		return "result"
	default:
		return "unknown"
	}
}
