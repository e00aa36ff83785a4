package bbbattendance

import (
	"fmt"
	"time"
)

// DateLayout is the layout of Record.Date and Criteria.Date.
const DateLayout = "2006-01-02"

// Criteria selects records by date, room and user.
// An empty field leaves that dimension unconstrained.
type Criteria struct {
	Date string `yaml:"date" toml:"date" json:"date,omitempty"`
	Room string `yaml:"room" toml:"room" json:"room,omitempty"`
	User string `yaml:"user" toml:"user" json:"user,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Date == "" && c.Room == "" && c.User == ""
}

// Validate checks that Date, if set, is a calendar date in YYYY-MM-DD form.
func (c Criteria) Validate() error {
	if c.Date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, c.Date); err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD: %w", c.Date, err)
	}
	return nil
}

// Match reports whether r satisfies every set criterion.
//
// Meeting start/end records carry no user, so the user criterion does not
// apply to them. Records of an unknown kind never match.
func (c Criteria) Match(r Record) bool {
	if !r.Kind.Valid() {
		return false
	}
	if c.Date != "" && c.Date != r.Date {
		return false
	}
	if c.Room != "" && c.Room != r.Room {
		return false
	}
	if c.User != "" && r.Kind.HasUser() && c.User != r.User {
		return false
	}
	return true
}

// Filter returns the records that match c, preserving their order.
// The input slice is not modified.
func Filter(records []Record, c Criteria) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
