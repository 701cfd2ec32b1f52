package model

import (
	"errors"
	"fmt"
)

// ExitError carries the process exit code a failure should end with, so the
// command layer can return errors normally and leave exiting to main.
type ExitError struct {
	Code ExitCode
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %v", e.Code.String(), e.Err)
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewExitError constructs an ExitError with the provided code and cause.
func NewExitError(code ExitCode, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewStorageFault marks err as an unrecoverable persistence failure.
func NewStorageFault(err error) *ExitError {
	return NewExitError(StorageFault, err)
}

// ExitCodeFromError extracts the exit code for err. A nil error is NoError,
// anything that is not an ExitError is UnknownError. The cause is returned for
// logging.
func ExitCodeFromError(err error) (ExitCode, error) {
	if err == nil {
		return NoError, nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Err
	}
	return UnknownError, err
}

// IsStorageFault reports whether err is, or wraps, a storage fault.
func IsStorageFault(err error) bool {
	code, _ := ExitCodeFromError(err)
	return code == StorageFault
}
