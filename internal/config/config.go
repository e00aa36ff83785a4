// Package config loads bbbattendance settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bbbattendance/bbbattendance-go/internal/output"
	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance"
)

// EnvConfig is the environment variable naming a config file.
const EnvConfig = "BBBATTENDANCE_CONFIG"

const (
	// MaxFileSize is the maximum allowed size for a config file (64KB).
	MaxFileSize = 64 * 1024

	// SupportedVersion is the currently supported config file version.
	SupportedVersion = 1
)

// Config file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// File is the content of a config file. Every field is optional; set
// fields replace the defaults and are in turn replaced by command-line flags.
//
// Example YAML file:
//
//	version: 1
//	log_file: /var/log/bigbluebutton/bbb-web.log
//	output_dir: /srv/reports
//	base_name: attendance
//	format: csv
//	strict: false
//	criteria:
//	  room: Weekly standup
type File struct {
	Version   int                    `yaml:"version" toml:"version"`
	LogFile   string                 `yaml:"log_file" toml:"log_file"`
	Output    string                 `yaml:"output" toml:"output"`
	OutputDir string                 `yaml:"output_dir" toml:"output_dir"`
	BaseName  string                 `yaml:"base_name" toml:"base_name"`
	Format    string                 `yaml:"format" toml:"format"`
	Strict    bool                   `yaml:"strict" toml:"strict"`
	Criteria  bbbattendance.Criteria `yaml:"criteria" toml:"criteria"`
}

// sanitizePathError removes the path from os.PathError so error messages
// do not repeat file system paths.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Find returns the config file to load: explicit if non-empty, otherwise
// the BBBATTENDANCE_CONFIG environment variable. An empty result means no
// config file.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvConfig)
}

// FormatOf returns the config format implied by the file extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Load reads and parses a config file. The format is chosen from the
// file extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", sanitizePathError(err))
	}
	defer f.Close()

	// Stat the file descriptor (not the path) to avoid TOCTOU
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", sanitizePathError(err))
	}
	if !info.Mode().IsRegular() {
		return nil, errors.New("config file must be a regular file")
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", sanitizePathError(err))
	}

	return LoadBytes(data, format)
}

// LoadBytes parses config data in the given format.
// Unknown keys are rejected.
func LoadBytes(data []byte, format string) (*File, error) {
	if len(data) == 0 {
		return nil, errors.New("config file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var cf File
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cf); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}

	if err := cf.Validate(); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Validate performs schema-level validation.
func (f *File) Validate() error {
	if f.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", f.Version, SupportedVersion),
		}
	}
	if f.Format != "" && !output.ValidFormats[f.Format] {
		return &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (valid: %s)", f.Format, strings.Join(output.FormatNames(), ", ")),
		}
	}
	if f.Criteria.Date != "" {
		if _, err := time.Parse(bbbattendance.DateLayout, f.Criteria.Date); err != nil {
			return &ValidationError{
				Field:   "criteria.date",
				Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", f.Criteria.Date),
			}
		}
	}
	return nil
}

// Apply returns cfg with the fields set in f copied over it.
func (f *File) Apply(cfg bbbattendance.Config) bbbattendance.Config {
	if f.LogFile != "" {
		cfg.LogFile = f.LogFile
	}
	if f.Output != "" {
		cfg.Output = f.Output
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.BaseName != "" {
		cfg.BaseName = f.BaseName
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}
	if f.Strict {
		cfg.Strict = true
	}
	if f.Criteria.Date != "" {
		cfg.Criteria.Date = f.Criteria.Date
	}
	if f.Criteria.Room != "" {
		cfg.Criteria.Room = f.Criteria.Room
	}
	if f.Criteria.User != "" {
		cfg.Criteria.User = f.Criteria.User
	}
	return cfg
}
