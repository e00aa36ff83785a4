package bbbattendance

import "github.com/bbbattendance/bbbattendance-go/internal/parser"

// ParseLine parses a single bbb-web.log attendance line into a Record.
//
// The line must start with an ISO 8601 timestamp and carry a
// data={...} JSON payload with logCode, name, description and, for
// join/leave events, username. Malformed lines return a *ParseError.
//
// Example:
//
//	line := `2021-03-04T09:05:00.000-0500 ... data={"logCode":"user_joined_message","name":"Room1","username":"alice","description":"User joined the meeting."}`
//	rec, err := bbbattendance.ParseLine(line)
//	if err != nil {
//	    log.Printf("parse error: %v", err)
//	} else {
//	    fmt.Printf("%s joined %s\n", rec.User, rec.Room)
//	}
func ParseLine(line string) (*Record, error) {
	return parser.Parse(line)
}
