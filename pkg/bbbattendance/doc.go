// Package bbbattendance extracts meeting attendance from BigBlueButton's
// bbb-web.log and writes it as a report.
//
// Every attendance line in bbb-web.log starts with an ISO 8601 timestamp and
// ends with a JSON payload:
//
//	2021-03-04T09:05:00.000+01:00 [...] INFO ... data={"logCode":"user_joined_message","name":"Room1","username":"alice","description":"User joined the meeting."}
//
// Reading happens in three steps:
//   - [SelectLines] keeps lines carrying one of the markers
//     meeting_started, meeting_ended, user_joined_message or user_left_message
//   - [ParseLine] turns a line into a [Record]
//   - [Filter] keeps the records that match a [Criteria]
//
// # Basic Usage
//
//	records, _, err := bbbattendance.ReadFileAll(ctx, "/var/log/bigbluebutton/bbb-web.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range bbbattendance.Filter(records, bbbattendance.Criteria{Room: "Room1"}) {
//	    fmt.Println(r.Date, r.Time, r.User, r.Event)
//	}
//
// To produce a report file in one call:
//
//	cfg := bbbattendance.DefaultConfig()
//	cfg.Criteria.Date = "2021-03-04"
//	res, err := bbbattendance.Generate(ctx, cfg, bbbattendance.WithLogger(logger))
//
// # Malformed Lines
//
// A line that carries a marker but cannot be parsed is logged and skipped.
// Use [WithStrict] to stop at the first such line instead; the error is a
// [*ParseError] naming the line number and the failing step.
package bbbattendance
