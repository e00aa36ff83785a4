package parser

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoTimestamp is returned when a line has no timestamp prefix.
var ErrNoTimestamp = errors.New("no timestamp")

// TimestampParser converts the timestamp prefix of a log line into a time.
type TimestampParser interface {
	ParseTimestamp(s string) (time.Time, error)
}

// TimestampParserFunc is an adapter to allow ordinary functions to be used
// as TimestampParsers.
type TimestampParserFunc func(s string) (time.Time, error)

// ParseTimestamp implements TimestampParser.
func (f TimestampParserFunc) ParseTimestamp(s string) (time.Time, error) {
	return f(s)
}

// iso8601Layouts are tried in order. time.Parse accepts a fractional second
// after the seconds field even when the layout has none.
var iso8601Layouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05",
}

// ISO8601 parses logback-style ISO 8601 timestamps such as
// "2021-03-04T09:00:00.000+01:00" or "2021-03-04T09:00:00.000-0500".
// The offset is kept as written; nothing is converted to local time.
type ISO8601 struct{}

// ParseTimestamp implements TimestampParser.
func (ISO8601) ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrNoTimestamp
	}
	var firstErr error
	for _, layout := range iso8601Layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, firstErr)
}

// timestampPrefix returns the timestamp field of line: at most
// timestampWidth bytes, cut at the first blank.
func timestampPrefix(line string) string {
	prefix := line
	if len(prefix) > timestampWidth {
		prefix = prefix[:timestampWidth]
	}
	if i := strings.IndexAny(prefix, " \t"); i >= 0 {
		prefix = prefix[:i]
	}
	return prefix
}
