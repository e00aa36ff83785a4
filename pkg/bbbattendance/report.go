package bbbattendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bbbattendance/bbbattendance-go/internal/output"
	"github.com/bbbattendance/bbbattendance-go/internal/safefile"
)

// Report formats.
const (
	FormatCSV   = output.FormatCSV
	FormatJSONL = output.FormatJSONL
)

// DefaultBaseName is the base of derived report file names.
const DefaultBaseName = "bbb-report"

// StdoutPath as Config.Output writes the report to Config.Stdout.
const StdoutPath = "-"

// Config describes one report run. Build it once and pass it to Generate.
type Config struct {
	// LogFile is the bbb-web log to read. Empty selects it from
	// BBBATTENDANCE_LOGFILE or the default BigBlueButton location.
	LogFile string

	// Output is the report path. Empty derives a name from BaseName and
	// Criteria inside OutputDir. StdoutPath writes to Stdout.
	Output string

	// OutputDir is the directory for derived report names.
	OutputDir string

	// BaseName is the base of derived report names.
	BaseName string

	// Format is the report format (FormatCSV or FormatJSONL).
	Format string

	// Criteria selects the records written to the report.
	Criteria Criteria

	// Strict stops at the first malformed attendance line.
	Strict bool

	// Stdout receives the report when Output is StdoutPath.
	Stdout io.Writer
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaseName: DefaultBaseName,
		Format:   FormatCSV,
		Stdout:   os.Stdout,
	}
}

// Validate checks for invalid field values.
func (c Config) Validate() error {
	if !output.ValidFormats[c.Format] {
		return fmt.Errorf("%w: unknown format %q (valid: %v)", ErrInvalidConfig, c.Format, output.FormatNames())
	}
	if c.Output == "" && c.BaseName == "" {
		return fmt.Errorf("%w: base name is required when no output path is given", ErrInvalidConfig)
	}
	if err := c.Criteria.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// OutputPath returns the report destination: Output if set, otherwise
// BaseName followed by the set criteria (date, room, user) and the format
// extension, inside OutputDir.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	name := output.DefaultName(c.BaseName, output.Extension(c.Format), c.Criteria.Date, c.Criteria.Room, c.Criteria.User)
	if c.OutputDir != "" {
		return filepath.Join(c.OutputDir, name)
	}
	return name
}

// Result summarises a Generate run.
type Result struct {
	Source  string // log file that was read
	Output  string // report destination
	Records int    // records written
	Stats   Stats
}

// Generate reads the log, filters it with cfg.Criteria and writes the report.
//
// Errors:
//   - ErrInvalidConfig: cfg failed validation
//   - ErrSourceNotFound: the log file is missing or unreadable
//   - ErrNoRawEvents: the log has no attendance lines
//   - *ParseError: a malformed line in strict mode
//   - ErrNoMatchingRecords: nothing matched; no report is written
//   - ErrOutputWrite: the report could not be written; no partial file is left
func Generate(ctx context.Context, cfg Config, opts ...ParseOption) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	log := applyParseOptions(opts).logger

	source, err := ResolveLogFile(cfg.LogFile)
	if err != nil {
		return Result{}, err
	}
	res := Result{Source: source, Output: cfg.OutputPath()}
	log.Debug("resolved log file", "path", source)

	readOpts := append(opts[:len(opts):len(opts)], WithStrict(cfg.Strict))
	records, stats, err := ReadFileAll(ctx, source, readOpts...)
	res.Stats = stats
	if err != nil {
		return res, err
	}
	log.Debug("read log file", "lines", stats.Lines, "selected", stats.Selected, "parsed", stats.Parsed, "skipped", stats.Skipped)
	if stats.Skipped > 0 {
		log.Warn("malformed attendance lines skipped", "count", stats.Skipped)
	}

	matched := Filter(records, cfg.Criteria)
	if len(matched) == 0 {
		return res, fmt.Errorf("%w (date=%q room=%q user=%q)", ErrNoMatchingRecords, cfg.Criteria.Date, cfg.Criteria.Room, cfg.Criteria.User)
	}

	if err := writeReport(cfg, res.Output, matched); err != nil {
		return res, fmt.Errorf("%w: %s: %w", ErrOutputWrite, res.Output, err)
	}
	res.Records = len(matched)
	log.Info("report written", "path", res.Output, "records", res.Records)

	return res, nil
}

func writeReport(cfg Config, path string, records []Record) error {
	if path == StdoutPath {
		if cfg.Stdout == nil {
			return errors.New("no stdout writer configured")
		}
		return output.Write(cfg.Format, cfg.Stdout, records)
	}
	return safefile.WriteFileAtomic(path, 0644, func(w io.Writer) error {
		return output.Write(cfg.Format, w, records)
	})
}
