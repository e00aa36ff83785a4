// Package parser extracts attendance records from bbb-web.log lines.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance/event"
)

// Parse operations reported in ParseError.Op.
const (
	OpTimestamp   = "timestamp"
	OpPayload     = "payload"
	OpDecode      = "decode"
	OpClassify    = "classify"
	OpRoom        = "room"
	OpUser        = "user"
	OpDescription = "description"
)

// Sentinel errors.
var (
	ErrNoPayload    = errors.New("no data= payload")
	ErrMissingField = errors.New("missing field")
)

// ParseError describes why a single log line could not be turned into a record.
type ParseError struct {
	Line int    // 1-based line number, 0 if unknown
	Op   string // failing step, one of the Op* constants
	Text string // the offending line
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// payload is the subset of the JSON tail that attendance records need.
type payload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogCode     string `json:"logCode"`
	Username    string `json:"username"`
}

// Parser turns attendance lines into records.
// The zero value uses ISO8601 timestamps.
type Parser struct {
	Timestamps TimestampParser
}

// Parse parses one attendance line using the default Parser.
func Parse(line string) (*event.Record, error) {
	return Parser{}.Parse(line)
}

// Parse parses one attendance line.
//
// Returns:
//   - (*Record, nil): Successfully parsed
//   - (nil, *ParseError): Malformed line
func (p Parser) Parse(line string) (*event.Record, error) {
	// Trim trailing CR for Windows CRLF compatibility
	line = strings.TrimRight(line, "\r")

	tp := p.Timestamps
	if tp == nil {
		tp = ISO8601{}
	}
	ts, err := tp.ParseTimestamp(timestampPrefix(line))
	if err != nil {
		return nil, &ParseError{Op: OpTimestamp, Text: line, Err: err}
	}

	i := strings.Index(line, payloadMarker)
	if i < 0 {
		return nil, &ParseError{Op: OpPayload, Text: line, Err: ErrNoPayload}
	}
	raw := strings.TrimSpace(line[i+len(payloadMarker):])

	var pl payload
	if err := json.Unmarshal([]byte(raw), &pl); err != nil {
		return nil, &ParseError{Op: OpDecode, Text: line, Err: err}
	}

	kind, err := event.ParseKind(pl.LogCode)
	if err != nil {
		return nil, &ParseError{Op: OpClassify, Text: line, Err: err}
	}

	if pl.Name == "" {
		return nil, &ParseError{Op: OpRoom, Text: line, Err: fmt.Errorf("%w: name", ErrMissingField)}
	}
	if pl.Description == "" {
		return nil, &ParseError{Op: OpDescription, Text: line, Err: fmt.Errorf("%w: description", ErrMissingField)}
	}

	rec := &event.Record{
		Date:      ts.Format("2006-01-02"),
		Time:      ts.Format("15:04"),
		Room:      pl.Name,
		Kind:      kind,
		Event:     pl.Description,
		Timestamp: ts,
	}

	if kind.HasUser() {
		if pl.Username == "" {
			return nil, &ParseError{Op: OpUser, Text: line, Err: fmt.Errorf("%w: username", ErrMissingField)}
		}
		rec.User = pl.Username
	}

	return rec, nil
}
