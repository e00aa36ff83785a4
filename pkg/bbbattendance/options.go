package bbbattendance

import (
	"io"
	"log/slog"

	"github.com/bbbattendance/bbbattendance-go/internal/parser"
)

// DefaultMaxLineBytes is the default limit on a single log line.
const DefaultMaxLineBytes = 1024 * 1024

// ParseOption configures SelectLines, ReadAll, ReadFile and Generate.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for parsing.
type parseConfig struct {
	logger         *slog.Logger
	strict         bool
	includeRawLine bool
	timestamps     parser.TimestampParser
	maxLineBytes   int
	stats          *Stats
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultParseConfig returns a parseConfig with sensible defaults.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		logger:       discardLogger,
		timestamps:   parser.ISO8601{},
		maxLineBytes: DefaultMaxLineBytes,
	}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithLogger sets a logger for skipped lines and progress output.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	}
}

// WithStrict stops reading at the first malformed attendance line and
// returns its ParseError.
// Default: false (log a warning, skip the line and continue).
func WithStrict(strict bool) ParseOption {
	return func(c *parseConfig) {
		c.strict = strict
	}
}

// WithIncludeRawLine includes the original log line in Record.RawLine.
func WithIncludeRawLine(include bool) ParseOption {
	return func(c *parseConfig) {
		c.includeRawLine = include
	}
}

// WithTimestampParser replaces the timestamp parser.
// If p is nil, this option has no effect.
func WithTimestampParser(p TimestampParser) ParseOption {
	return func(c *parseConfig) {
		if p != nil {
			c.timestamps = p
		}
	}
}

// WithMaxLineBytes sets the maximum length of a single log line.
// Values <= 0 keep the default (1 MiB). A longer line ends reading with an error.
func WithMaxLineBytes(n int) ParseOption {
	return func(c *parseConfig) {
		if n > 0 {
			c.maxLineBytes = n
		}
	}
}

// WithStats makes reading update the counters in s.
func WithStats(s *Stats) ParseOption {
	return func(c *parseConfig) {
		c.stats = s
	}
}
