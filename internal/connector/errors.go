package connector

import (
	"errors"
	"fmt"
)

// Sentinel errors for the resolution pipeline. Callers match with errors.Is.
var (
	// ErrInvalidArgument marks an unsupported lookup mode or a malformed
	// send target. Always a programming or config error, never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a resolution target the directory does not know.
	ErrNotFound = errors.New("not found")

	// ErrRemoteCall marks a directory API failure envelope or transport
	// error. Retry/backoff is the API client's concern, not this package's.
	ErrRemoteCall = errors.New("remote call failed")
)

// SessionInitError reports a failed session bring-up (the initial whoami
// lookup). Fatal: the session must not proceed with an unknown identity.
type SessionInitError struct {
	Err error
}

func (e *SessionInitError) Error() string {
	return fmt.Sprintf("session initialization failed: %v", e.Err)
}

func (e *SessionInitError) Unwrap() error {
	return e.Err
}
