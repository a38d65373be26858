package session

import "context"

// ExitInfo describes why a linking session terminated without producing a
// public token: user cancellation, an SDK error, or completion ambiguity.
type ExitInfo struct {
	ErrorCode    string
	ErrorMessage string
	Institution  string
}

// LinkResult is the single terminal notification of a linking session.
// Exactly one variant is set: PublicToken on success, Exit otherwise.
// Modeling the outcome as one two-variant result (rather than independent
// success and exit callbacks) rules out the ambiguous double-fire some
// linking SDKs exhibit.
type LinkResult struct {
	PublicToken string
	Exit        *ExitInfo
}

// LinkHandler is the external bank-linking capability. Any SDK that can
// open a linking session for a link token and report a single terminal
// result satisfies it; the application never implements bank OAuth itself.
type LinkHandler interface {
	// Open runs the linking session to its terminal result. It blocks
	// until the user finishes, cancels, or ctx is done.
	Open(ctx context.Context, linkToken string) (LinkResult, error)
	// Destroy tears down the session and any registered callbacks.
	// Safe to call on a handler that was never opened.
	Destroy()
}
