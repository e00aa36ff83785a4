// Package logfinder locates the bbb-web log file.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EnvLogFile is the environment variable name for specifying the log file.
const EnvLogFile = "BBBATTENDANCE_LOGFILE"

// DefaultLogFile is where BigBlueButton writes bbb-web.log.
const DefaultLogFile = "/var/log/bigbluebutton/bbb-web.log"

// ErrLogFileNotFound is returned when no readable log file can be located.
var ErrLogFileNotFound = errors.New("log file not found")

// DefaultLogFiles returns candidate log files in priority order.
func DefaultLogFiles() []string {
	return []string{DefaultLogFile}
}

// FindLogFile returns the log file to read.
//
// Priority:
//  1. explicit (if non-empty)
//  2. BBBATTENDANCE_LOGFILE environment variable
//  3. DefaultLogFiles()
//
// Returns ErrLogFileNotFound if no valid file is found.
// The returned path has symlinks resolved.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		resolved, err := resolveLogFile(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrLogFileNotFound, explicit, err)
		}
		return resolved, nil
	}

	if envFile := os.Getenv(EnvLogFile); envFile != "" {
		resolved, err := resolveLogFile(envFile)
		if err != nil {
			return "", fmt.Errorf("%w: %s environment variable points to %s: %v", ErrLogFileNotFound, EnvLogFile, envFile, err)
		}
		return resolved, nil
	}

	for _, path := range DefaultLogFiles() {
		if resolved, err := resolveLogFile(path); err == nil {
			return resolved, nil
		}
	}

	return "", fmt.Errorf("%w: tried %v", ErrLogFileNotFound, DefaultLogFiles())
}

// resolveLogFile resolves symlinks and checks that the target is a regular file.
func resolveLogFile(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.New("not a regular file")
	}

	return resolved, nil
}
