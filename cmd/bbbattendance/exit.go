package main

import (
	"errors"

	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance"
)

// Process exit codes.
const (
	ExitOK                = 0
	ExitPrerequisite      = 1 // bad flags, config file or criteria
	ExitSourceNotFound    = 2
	ExitNoRawEvents       = 3
	ExitNoMatchingRecords = 4
	ExitOutputWrite       = 5
	ExitParseError        = 6 // malformed line with --strict
)

// exitCode maps an error returned by the root command to an exit code.
func exitCode(err error) int {
	var pe *bbbattendance.ParseError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, bbbattendance.ErrSourceNotFound):
		return ExitSourceNotFound
	case errors.Is(err, bbbattendance.ErrNoRawEvents):
		return ExitNoRawEvents
	case errors.Is(err, bbbattendance.ErrNoMatchingRecords):
		return ExitNoMatchingRecords
	case errors.Is(err, bbbattendance.ErrOutputWrite):
		return ExitOutputWrite
	case errors.As(err, &pe):
		return ExitParseError
	default:
		return ExitPrerequisite
	}
}
