package bbbattendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/bbbattendance/bbbattendance-go/internal/logfinder"
	"github.com/bbbattendance/bbbattendance-go/internal/parser"
	"github.com/bbbattendance/bbbattendance-go/internal/safefile"
)

// ReadAll returns an iterator over the attendance records in r, in log order.
//
// Malformed attendance lines are logged and skipped unless WithStrict(true)
// is given, in which case the first *ParseError ends the sequence.
func ReadAll(ctx context.Context, r io.Reader, opts ...ParseOption) iter.Seq2[Record, error] {
	return readAll(ctx, r, applyParseOptions(opts))
}

func readAll(ctx context.Context, r io.Reader, cfg *parseConfig) iter.Seq2[Record, error] {
	stats := cfg.stats
	if stats == nil {
		stats = &Stats{}
	}
	return func(yield func(Record, error) bool) {
		p := parser.Parser{Timestamps: cfg.timestamps}

		for line, err := range selectLines(ctx, r, cfg, stats) {
			if err != nil {
				yield(Record{}, err)
				return
			}

			rec, err := p.Parse(line.Text)
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line = line.Number
				}
				if cfg.strict {
					yield(Record{}, err)
					return
				}
				stats.Skipped++
				cfg.logger.Warn("skipping malformed line", "line", line.Number, "error", err)
				continue
			}

			rec.Line = line.Number
			if cfg.includeRawLine {
				rec.RawLine = line.Text
			}
			stats.Parsed++
			if !yield(*rec, nil) {
				return
			}
		}
	}
}

// ReadFile returns an iterator over the attendance records of a log file.
// An empty path selects the log file from BBBATTENDANCE_LOGFILE or the
// default BigBlueButton location.
//
// The file is opened when iteration starts and closed when it ends.
// A missing or unreadable file is yielded as an error wrapping ErrSourceNotFound.
//
// Example:
//
//	for rec, err := range bbbattendance.ReadFile(ctx, "/var/log/bigbluebutton/bbb-web.log") {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(rec.Date, rec.Time, rec.Room, rec.User, rec.Event)
//	}
func ReadFile(ctx context.Context, path string, opts ...ParseOption) iter.Seq2[Record, error] {
	cfg := applyParseOptions(opts)
	return func(yield func(Record, error) bool) {
		f, err := openLog(path)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer f.Close()
		cfg.logger.Debug("reading log file", "path", f.Name())

		for rec, err := range readAll(ctx, f, cfg) {
			if !yield(rec, err) {
				return
			}
		}
	}
}

// ReadFileAll reads every attendance record of a log file into a slice.
//
// Returns ErrNoRawEvents if no line of the file carries an attendance marker.
// Records dropped as malformed are counted in Stats.Skipped.
func ReadFileAll(ctx context.Context, path string, opts ...ParseOption) ([]Record, Stats, error) {
	var stats Stats
	opts = append(opts[:len(opts):len(opts)], WithStats(&stats))

	var records []Record
	for rec, err := range ReadFile(ctx, path, opts...) {
		if err != nil {
			return nil, stats, err
		}
		records = append(records, rec)
	}

	if stats.Selected == 0 {
		return nil, stats, ErrNoRawEvents
	}
	return records, stats, nil
}

// ResolveLogFile returns the log file ReadFile would open for path.
func ResolveLogFile(path string) (string, error) {
	return logfinder.FindLogFile(path)
}

func openLog(path string) (*os.File, error) {
	resolved, err := logfinder.FindLogFile(path)
	if err != nil {
		return nil, err
	}
	f, _, err := safefile.OpenRegular(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceNotFound, resolved, err)
	}
	return f, nil
}
