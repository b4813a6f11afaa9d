package ledger

import "errors"

// Sentinel errors returned by ledger operations. Callers distinguish them
// with errors.Is; none of them leaves the in-memory model partially mutated.
var (
	// ErrAlreadyRunning is returned by Start while a session is in progress.
	ErrAlreadyRunning = errors.New("a session is already running")
	// ErrNotRunning is returned by Stop when no session is in progress.
	ErrNotRunning = errors.New("no session is running")
	// ErrNotFound is returned when no entity matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidSelection rejects an empty section or subdivision name.
	ErrInvalidSelection = errors.New("section and subdivision must not be empty")
	// ErrInvalidInterval rejects an interval whose end is not after its start.
	ErrInvalidInterval = errors.New("end must be after start")
	// ErrExists rejects registering a category that is already present.
	ErrExists = errors.New("already exists")
)
