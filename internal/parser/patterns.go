package parser

import (
	"strings"

	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance/event"
)

// timestampWidth is the width of the timestamp field at the start of a
// bbb-web.log line: "2021-03-04T09:00:00.000+01:00".
const timestampWidth = 29

// payloadMarker introduces the JSON payload of an attendance line.
const payloadMarker = "data="

// markers are the log codes that identify attendance lines.
var markers = []string{
	event.CodeUserJoined,
	event.CodeUserLeft,
	event.CodeMeetingStarted,
	event.CodeMeetingEnded,
}

// HasMarker reports whether line contains any attendance marker.
func HasMarker(line string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Markers returns a copy of the attendance markers.
func Markers() []string {
	return append([]string(nil), markers...)
}
