package model

import "fmt"

type ExitCode int

func (e ExitCode) String() string {
	return fmt.Sprintf("Exit code %d", e)
}

func (e ExitCode) Error() string {
	return e.String()
}

const (
	Unset ExitCode = -1
)
const (
	NoError ExitCode = iota
	UnknownError
	// UsageError is a bad invocation: missing payload, unknown flag value.
	UsageError
	// StorageFault is an unrecoverable persistence failure. The host should
	// treat the latest changes as lost.
	StorageFault
)
