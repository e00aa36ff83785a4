package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bbbattendance/bbbattendance-go/internal/config"
	"github.com/bbbattendance/bbbattendance-go/internal/logfinder"
	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance"
)

// rootOptions holds the root command flags.
type rootOptions struct {
	date       string
	today      bool
	room       string
	user       string
	logFile    string
	output     string
	outputDir  string
	baseName   string
	format     string
	strict     bool
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bbbattendance [date [room [user]]]",
		Short: "Write a meeting attendance report from bbb-web.log",
		Long: `Extract meeting start/end and user join/leave events from a BigBlueButton
bbb-web.log and write them as a CSV report with the columns
Date,Time,Room,User,Event.

Criteria may be given as flags or as positional arguments in the order
date, room, user. An empty criterion matches everything. Meeting start and
end events are kept whatever the user criterion is.

When --output is not given the report is named after the base name and the
criteria, e.g. bbb-report-2021-03-04-Room1-alice.csv.

Exit codes:
  0  report written
  1  invalid flags, config file or criteria
  2  log file not found
  3  no attendance events in the log
  4  no events match the criteria
  5  report could not be written
  6  malformed attendance line (with --strict)

Examples:
  # Everything in the default log
  bbbattendance

  # Today's events for one room
  bbbattendance --today --room "Weekly standup"

  # One user on one day, from a copied log
  bbbattendance -d 2021-03-04 -u alice -l ./bbb-web.log

  # Print JSON Lines to stdout
  bbbattendance -f jsonl -o -`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          o.run,
	}

	f := cmd.Flags()
	f.StringVarP(&o.date, "date", "d", "", "only events on this date (YYYY-MM-DD)")
	f.BoolVar(&o.today, "today", false, "only events on today's date")
	f.StringVarP(&o.room, "room", "r", "", "only events in this room")
	f.StringVarP(&o.user, "user", "u", "", "only join/leave events of this user")
	f.StringVarP(&o.logFile, "log-file", "l", "",
		fmt.Sprintf("bbb-web log file (default $%s or %s)", logfinder.EnvLogFile, logfinder.DefaultLogFile))
	f.StringVarP(&o.output, "output", "o", "", `report path, "-" for stdout (default derived from criteria)`)
	f.StringVar(&o.outputDir, "output-dir", "", "directory for derived report names")
	f.StringVarP(&o.baseName, "basename", "b", bbbattendance.DefaultBaseName, "base of derived report names")
	f.StringVarP(&o.format, "format", "f", bbbattendance.FormatCSV, "report format: csv, jsonl")
	f.BoolVar(&o.strict, "strict", false, "fail on the first malformed attendance line instead of skipping it")
	f.StringVarP(&o.configFile, "config", "c", "",
		fmt.Sprintf("YAML or TOML config file (default $%s)", config.EnvConfig))
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.MarkFlagsMutuallyExclusive("date", "today")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("config", completeConfigFile)

	cmd.AddCommand(newCompletionCmd())
	return cmd
}

func (o *rootOptions) run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), o.verbose)

	cfg, err := o.buildConfig(cmd, args, time.Now())
	if err != nil {
		return err
	}

	res, err := bbbattendance.Generate(cmd.Context(), cfg, bbbattendance.WithLogger(logger))
	if err != nil {
		return err
	}

	if res.Output != bbbattendance.StdoutPath {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", res.Records, res.Output)
	}
	return nil
}

// buildConfig layers defaults, the config file, positional arguments and
// flags, in increasing priority.
func (o *rootOptions) buildConfig(cmd *cobra.Command, args []string, now time.Time) (bbbattendance.Config, error) {
	cfg := bbbattendance.DefaultConfig()
	cfg.Stdout = cmd.OutOrStdout()

	if path := config.Find(o.configFile); path != "" {
		cf, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		cfg = cf.Apply(cfg)
	}

	positional := []*string{&cfg.Criteria.Date, &cfg.Criteria.Room, &cfg.Criteria.User}
	for i, arg := range args {
		if arg != "" {
			*positional[i] = arg
		}
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, val string) error {
		if !flags.Changed(name) {
			return nil
		}
		if len(args) > 0 && (name == "date" || name == "room" || name == "user") {
			return fmt.Errorf("--%s cannot be combined with positional criteria", name)
		}
		*dst = val
		return nil
	}
	for _, s := range []struct {
		name string
		dst  *string
		val  string
	}{
		{"date", &cfg.Criteria.Date, o.date},
		{"room", &cfg.Criteria.Room, o.room},
		{"user", &cfg.Criteria.User, o.user},
		{"log-file", &cfg.LogFile, o.logFile},
		{"output", &cfg.Output, o.output},
		{"output-dir", &cfg.OutputDir, o.outputDir},
		{"basename", &cfg.BaseName, o.baseName},
		{"format", &cfg.Format, o.format},
	} {
		if err := set(s.name, s.dst, s.val); err != nil {
			return cfg, err
		}
	}

	if o.today {
		if len(args) > 0 {
			return cfg, fmt.Errorf("--today cannot be combined with positional criteria")
		}
		cfg.Criteria.Date = now.Format(bbbattendance.DateLayout)
	}
	if flags.Changed("strict") {
		cfg.Strict = o.strict
	}

	return cfg, cfg.Validate()
}

// newLogger returns a text logger on w: warnings by default, debug output
// with verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
