package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbbattendance/bbbattendance-go/pkg/bbbattendance"
)

const scenarioLog = `2021-03-04T08:59:58.000-0500 [main] INFO  o.b.w.s.MeetingService - Processing create
2021-03-04T09:00:00.000-0500 ... data={"logCode":"meeting_started","name":"Room1","description":"Meeting has started."}
2021-03-04T09:05:00.000-0500 ... data={"logCode":"user_joined_message","name":"Room1","username":"alice","description":"User joined the meeting."}
2021-03-04T10:00:00.000-0500 ... data={"logCode":"meeting_ended","name":"Room1","description":"Meeting has ended."}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("BBBATTENDANCE_CONFIG", "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Scenario(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)

	code, stdout, stderr := runCLI(t, "-l", logFile, "--output-dir", dir)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "Wrote 3 records")

	got, err := os.ReadFile(filepath.Join(dir, "bbb-report.csv"))
	require.NoError(t, err)
	assert.Equal(t, `Date,Time,Room,User,Event
2021-03-04,09:00,Room1,,Meeting has started.
2021-03-04,09:05,Room1,alice,User joined the meeting.
2021-03-04,10:00,Room1,,Meeting has ended.
`, string(got))
}

func TestRun_PositionalCriteria(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)

	code, _, stderr := runCLI(t, "-l", logFile, "--output-dir", dir, "2021-03-04", "Room1", "bob")
	require.Equal(t, ExitOK, code, stderr)

	got, err := os.ReadFile(filepath.Join(dir, "bbb-report-2021-03-04-Room1-bob.csv"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(got), "\n"), "header plus start and end rows")
}

func TestRun_Stdout(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)

	code, stdout, stderr := runCLI(t, "-l", logFile, "-u", "alice", "-o", "-", "-f", "jsonl")
	require.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, 3, strings.Count(stdout, "\n"))
	assert.Contains(t, stdout, `"user":"alice"`)
	assert.NotContains(t, stdout, "Wrote")
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)
	emptyLog := writeFile(t, dir, "empty.log", "2021-03-04T09:00:00.000-0500 INFO nothing\n")
	badLog := writeFile(t, dir, "bad.log", "2021-03-04T09:00:00.000-0500 meeting_started no payload\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "source not found", args: []string{"-l", filepath.Join(dir, "missing.log")}, want: ExitSourceNotFound},
		{name: "no raw events", args: []string{"-l", emptyLog, "--output-dir", dir}, want: ExitNoRawEvents},
		{name: "no matching records", args: []string{"-l", logFile, "-r", "Room2", "--output-dir", dir}, want: ExitNoMatchingRecords},
		{name: "output write", args: []string{"-l", logFile, "-o", filepath.Join(dir, "nope", "r.csv")}, want: ExitOutputWrite},
		{name: "strict parse error", args: []string{"-l", badLog, "--strict", "--output-dir", dir}, want: ExitParseError},
		{name: "malformed skipped", args: []string{"-l", badLog, "--output-dir", dir}, want: ExitNoMatchingRecords},
		{name: "bad date", args: []string{"-l", logFile, "-d", "03/04/2021"}, want: ExitPrerequisite},
		{name: "bad format", args: []string{"-l", logFile, "-f", "xml"}, want: ExitPrerequisite},
		{name: "unknown flag", args: []string{"--nope"}, want: ExitPrerequisite},
		{name: "too many args", args: []string{"a", "b", "c", "d"}, want: ExitPrerequisite},
		{name: "date and today", args: []string{"-d", "2021-03-04", "--today"}, want: ExitPrerequisite},
		{name: "flag and positional", args: []string{"-l", logFile, "-u", "alice", "2021-03-04"}, want: ExitPrerequisite},
		{name: "missing config", args: []string{"-c", filepath.Join(dir, "missing.yaml")}, want: ExitPrerequisite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code, stderr)
			assert.Contains(t, stderr, "bbbattendance:")
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)
	cfgFile := writeFile(t, dir, "bbbattendance.toml", `version = 1
log_file = "`+logFile+`"
output_dir = "`+dir+`"
base_name = "attendance"

[criteria]
user = "alice"
`)

	code, _, stderr := runCLI(t, "-c", cfgFile, "-r", "Room1")
	require.Equal(t, ExitOK, code, stderr)

	_, err := os.Stat(filepath.Join(dir, "attendance-Room1-alice.csv"))
	assert.NoError(t, err)
}

func TestRun_ConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)
	cfgFile := writeFile(t, dir, "bbbattendance.yaml", "version: 1\nlog_file: "+logFile+"\noutput: \"-\"\n")

	var stdout, stderr bytes.Buffer
	t.Setenv("BBBATTENDANCE_CONFIG", cfgFile)
	code := run([]string{}, &stdout, &stderr)
	require.Equal(t, ExitOK, code, stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "Date,Time,Room,User,Event\n"))
}

func TestRun_Verbose(t *testing.T) {
	dir := t.TempDir()
	logFile := writeFile(t, dir, "bbb-web.log", scenarioLog)

	code, _, stderr := runCLI(t, "-v", "-l", logFile, "--output-dir", dir)
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "report written")
}

func TestRun_Completion(t *testing.T) {
	code, stdout, stderr := runCLI(t, "completion", "bash")
	require.Equal(t, ExitOK, code, stderr)
	assert.Contains(t, stdout, "bbbattendance")
}

func TestBuildConfig_Today(t *testing.T) {
	t.Setenv("BBBATTENDANCE_CONFIG", "")
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--today", "-r", "Room1"}))

	o := &rootOptions{today: true, room: "Room1", format: bbbattendance.FormatCSV, baseName: bbbattendance.DefaultBaseName}
	now := time.Date(2021, 3, 4, 12, 0, 0, 0, time.UTC)

	cfg, err := o.buildConfig(cmd, nil, now)
	require.NoError(t, err)
	assert.Equal(t, bbbattendance.Criteria{Date: "2021-03-04", Room: "Room1"}, cfg.Criteria)
	assert.Equal(t, "bbb-report-2021-03-04-Room1.csv", cfg.OutputPath())
}

func TestExitCode_Nil(t *testing.T) {
	assert.Equal(t, ExitOK, exitCode(nil))
}

func TestCompleteFormats(t *testing.T) {
	names, _ := completeFormats(nil, nil, "")
	assert.Equal(t, []string{"csv", "jsonl"}, names)
}
