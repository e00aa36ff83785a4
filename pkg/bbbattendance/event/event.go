// Package event defines the attendance event types shared by the parser and
// the public bbbattendance API.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Kind identifies one of the four attendance events written to bbb-web.log.
type Kind int

// Event kinds. The zero value is not a valid kind.
const (
	MeetingStarted Kind = iota + 1
	MeetingEnded
	UserJoined
	UserLeft
)

// Log codes as they appear in the "logCode" field of the payload.
const (
	CodeMeetingStarted = "meeting_started"
	CodeMeetingEnded   = "meeting_ended"
	CodeUserJoined     = "user_joined_message"
	CodeUserLeft       = "user_left_message"
)

// Human-readable labels for each kind.
const (
	LabelMeetingStarted = "Meeting has started."
	LabelMeetingEnded   = "Meeting has ended."
	LabelUserJoined     = "User joined the meeting."
	LabelUserLeft       = "User left the meeting."
)

// ErrUnknownLogCode is returned by ParseKind for a log code outside the four
// attendance events.
var ErrUnknownLogCode = errors.New("unknown log code")

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{MeetingStarted, MeetingEnded, UserJoined, UserLeft}

var codes = map[string]Kind{
	CodeMeetingStarted: MeetingStarted,
	CodeMeetingEnded:   MeetingEnded,
	CodeUserJoined:     UserJoined,
	CodeUserLeft:       UserLeft,
}

// ParseKind maps a payload log code to its Kind.
func ParseKind(code string) (Kind, error) {
	if k, ok := codes[code]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLogCode, code)
}

// Valid reports whether k is one of the four attendance kinds.
func (k Kind) Valid() bool {
	return k >= MeetingStarted && k <= UserLeft
}

// String returns the log code for k.
func (k Kind) String() string {
	switch k {
	case MeetingStarted:
		return CodeMeetingStarted
	case MeetingEnded:
		return CodeMeetingEnded
	case UserJoined:
		return CodeUserJoined
	case UserLeft:
		return CodeUserLeft
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Label returns the fixed human-readable label for k.
func (k Kind) Label() string {
	switch k {
	case MeetingStarted:
		return LabelMeetingStarted
	case MeetingEnded:
		return LabelMeetingEnded
	case UserJoined:
		return LabelUserJoined
	case UserLeft:
		return LabelUserLeft
	default:
		return ""
	}
}

// HasUser reports whether events of kind k carry a participant.
func (k Kind) HasUser() bool {
	return k == UserJoined || k == UserLeft
}

// MarshalJSON encodes k as its log code.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("marshal %v: %w", k, ErrUnknownLogCode)
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a log code into k.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseKind(code)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Record is a single attendance event extracted from one log line.
//
// User is empty exactly when Kind is MeetingStarted or MeetingEnded.
type Record struct {
	// Date is the calendar date of the log timestamp (YYYY-MM-DD).
	Date string `json:"date"`

	// Time is the time of day of the log timestamp (HH:MM).
	Time string `json:"time"`

	// Room is the meeting name.
	Room string `json:"room"`

	// User is the participant name for join/leave events.
	User string `json:"user,omitempty"`

	// Kind classifies the event.
	Kind Kind `json:"kind"`

	// Event is the description written by the log producer.
	Event string `json:"event"`

	// Timestamp is the full parsed log timestamp, in the offset it was written with.
	Timestamp time.Time `json:"timestamp"`

	// Line is the 1-based line number in the source, or 0 if unknown.
	Line int `json:"line,omitempty"`

	// RawLine is the original log line (only set if requested).
	RawLine string `json:"raw_line,omitempty"`
}
