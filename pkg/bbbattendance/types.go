package bbbattendance

import (
	"github.com/bbbattendance/bbbattendance-go/internal/parser"
	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance/event"
)

// Record is a single attendance event. See [event.Record].
type Record = event.Record

// Kind identifies an attendance event. See [event.Kind].
type Kind = event.Kind

// Event kinds.
const (
	MeetingStarted = event.MeetingStarted
	MeetingEnded   = event.MeetingEnded
	UserJoined     = event.UserJoined
	UserLeft       = event.UserLeft
)

// TimestampParser converts the timestamp prefix of a log line into a time.
// The default implementation accepts ISO 8601 with optional fractional
// seconds and offset.
type TimestampParser = parser.TimestampParser

// TimestampParserFunc is an adapter to allow ordinary functions to be used
// as TimestampParsers.
type TimestampParserFunc = parser.TimestampParserFunc

// ParseError describes a log line that carries an attendance marker but
// could not be turned into a Record.
type ParseError = parser.ParseError

// Parse operations reported in ParseError.Op.
const (
	OpTimestamp   = parser.OpTimestamp
	OpPayload     = parser.OpPayload
	OpDecode      = parser.OpDecode
	OpClassify    = parser.OpClassify
	OpRoom        = parser.OpRoom
	OpUser        = parser.OpUser
	OpDescription = parser.OpDescription
)
