package console

import "github.com/pkg/errors"

// Sentinel errors for package console.
var (
	// Color errors
	ErrUnknownColor = errors.New("unknown color name")

	// Output coordination errors
	ErrOutputBusy    = errors.New("console output is owned by another writer")
	ErrLeaseReleased = errors.New("console lease was already released")

	// Progress bar errors
	ErrInvalidIncrements = errors.New("progress bar needs at least one increment")
	ErrNilCallback       = errors.New("callback must not be nil")

	// Input errors
	ErrInterrupted = errors.New("interrupted")
	ErrEmptyCause  = errors.New("error cause must not be empty")
)
