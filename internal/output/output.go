// Package output writes attendance reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance/event"
)

// Report formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	FormatCSV:   true,
	FormatJSONL: true,
}

// Header is the CSV header row.
var Header = []string{"Date", "Time", "Room", "User", "Event"}

// FormatNames returns the valid format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for name := range ValidFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension, including the dot, for format.
func Extension(format string) string {
	switch format {
	case FormatJSONL:
		return ".jsonl"
	default:
		return ".csv"
	}
}

// Write writes records in the specified format to the writer.
func Write(format string, out io.Writer, records []event.Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(out, records)
	case FormatJSONL:
		return WriteJSONL(out, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteCSV writes the header row followed by one row per record.
// Field values are written as they appear in the record.
func WriteCSV(out io.Writer, records []event.Record) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write([]string{r.Date, r.Time, r.Room, r.User, r.Event}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSONL writes one JSON object per record.
func WriteJSONL(out io.Writer, records []event.Record) error {
	enc := json.NewEncoder(out)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

// DefaultName derives a report file name from the base name and the
// non-empty criteria, in date, room, user order, joined with hyphens.
//
//	DefaultName("bbb-report", ".csv", "2021-03-04", "", "alice") == "bbb-report-2021-03-04-alice.csv"
func DefaultName(base, ext string, criteria ...string) string {
	parts := []string{base}
	for _, c := range criteria {
		if c != "" {
			parts = append(parts, nameReplacer.Replace(c))
		}
	}
	return strings.Join(parts, "-") + ext
}

// nameReplacer keeps criteria from introducing path separators.
var nameReplacer = strings.NewReplacer("/", "_", "\\", "_")
