package bbbattendance

import (
	"errors"

	"github.com/bbbattendance/bbbattendance-go/internal/logfinder"
	"github.com/bbbattendance/bbbattendance-go/internal/parser"
	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance/event"
)

// Sentinel errors.
var (
	// ErrSourceNotFound is returned when the log file does not exist or
	// cannot be opened for reading.
	ErrSourceNotFound = logfinder.ErrLogFileNotFound

	// ErrNoRawEvents is returned when no line of the log carries an
	// attendance marker.
	ErrNoRawEvents = errors.New("no attendance events in log")

	// ErrNoMatchingRecords is returned when the criteria match no record.
	ErrNoMatchingRecords = errors.New("no records match the criteria")

	// ErrOutputWrite is returned when the report cannot be written.
	ErrOutputWrite = errors.New("cannot write report")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoPayload is wrapped by a ParseError for lines without "data=".
	ErrNoPayload = parser.ErrNoPayload

	// ErrMissingField is wrapped by a ParseError when a required payload
	// field is empty.
	ErrMissingField = parser.ErrMissingField

	// ErrUnknownLogCode is wrapped by a ParseError for a logCode outside
	// the four attendance events.
	ErrUnknownLogCode = event.ErrUnknownLogCode
)
