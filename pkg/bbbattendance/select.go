package bbbattendance

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/bbbattendance/bbbattendance-go/internal/parser"
)

// Line is a log line that carries an attendance marker.
type Line struct {
	Number int    // 1-based line number in the source
	Text   string // line text without the trailing newline
}

// Stats counts what a read saw.
type Stats struct {
	Lines    int // lines scanned
	Selected int // lines carrying an attendance marker
	Parsed   int // selected lines turned into records
	Skipped  int // selected lines dropped as malformed
}

// HasMarker reports whether line contains one of the attendance markers
// user_joined_message, user_left_message, meeting_started or meeting_ended.
func HasMarker(line string) bool {
	return parser.HasMarker(line)
}

// SelectLines returns an iterator over the lines of r that carry an
// attendance marker, in source order. Other lines are dropped.
//
// A read failure, a line longer than the configured maximum, or context
// cancellation is yielded as a final error.
func SelectLines(ctx context.Context, r io.Reader, opts ...ParseOption) iter.Seq2[Line, error] {
	cfg := applyParseOptions(opts)
	return selectLines(ctx, r, cfg, cfg.stats)
}

// selectLines does the work of SelectLines; stats may be nil.
func selectLines(ctx context.Context, r io.Reader, cfg *parseConfig, stats *Stats) iter.Seq2[Line, error] {
	if stats == nil {
		stats = &Stats{}
	}
	return func(yield func(Line, error) bool) {
		initial := 64 * 1024
		if cfg.maxLineBytes < initial {
			initial = cfg.maxLineBytes
		}
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, initial), cfg.maxLineBytes)

		n := 0
		for sc.Scan() {
			if err := ctx.Err(); err != nil {
				yield(Line{}, err)
				return
			}
			n++
			stats.Lines++

			text := strings.TrimRight(sc.Text(), "\r")
			if !parser.HasMarker(text) {
				continue
			}
			stats.Selected++
			if !yield(Line{Number: n, Text: text}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Line{}, fmt.Errorf("reading line %d: %w", n+1, err))
		}
	}
}
