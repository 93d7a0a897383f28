package clone

import (
	"errors"
	"fmt"
)

// Operator-facing errors. Clone operations normalize every failure into
// these; lower-level detail goes to the logger instead of the error chain.
var (
	// ErrModelMismatch means the radio answered the handshake but
	// identifies as a different model.
	ErrModelMismatch = errors.New("radio model mismatch")

	// ErrPasswordProtected means the radio is locked and refuses
	// programming mode.
	ErrPasswordProtected = errors.New("radio is password protected")

	// ErrCommunication is the generic failure for garbled transfers,
	// transport errors, and anything else unclassified.
	ErrCommunication = errors.New("unknown error communicating with radio")
)

// errRadioFailure is the per-exchange failure underlying a RegionError:
// the response failed validation or echoed the wrong region.
var errRadioFailure = errors.New("radio reported failure")

// RegionError reports a failed exchange for one memory region. It counts
// as a communication failure for errors.Is purposes.
type RegionError struct {
	// Region is the catalogue name of the failed region
	Region string

	// Err is the underlying failure
	Err error
}

func (e *RegionError) Error() string {
	return fmt.Sprintf("region %s: %v", e.Region, e.Err)
}

func (e *RegionError) Unwrap() error { return ErrCommunication }

// ExitModeError reports that the best-effort exit-programming-mode packet
// could not be sent. It is returned only when it is the sole failure of an
// otherwise successful clone; after an earlier error it is logged instead.
type ExitModeError struct {
	Err error
}

func (e *ExitModeError) Error() string {
	return fmt.Sprintf("radio refused to exit programming mode: %v", e.Err)
}

func (e *ExitModeError) Unwrap() error { return e.Err }
