package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crusherrl/icslinks"
	"github.com/crusherrl/icslinks/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	t.Log(stderr.String())
	return stdout.String(), err
}

var meetingArgs = []string{
	"generate",
	"--start", "2023-08-15 15:00:00",
	"--end", "2023-08-15 16:30:00",
	"--summary", "Meeting",
	"--location", "Office",
	"--description", "Discuss project",
}

func TestGenerate(t *testing.T) {
	out, err := run(t, meetingArgs...)
	require.NoError(t, err)

	var links map[string]icslinks.Link
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	assert.Len(t, links, len(icslinks.Providers()))
	assert.Equal(t, "Yahoo", links["yahoo"].Label)
	assert.Contains(t, links["outlook"].URL, "startdt=2023-08-15T15%3A00%3A00")
	assert.Contains(t, links["yahoo"].URL, "st=20230815T150000Z")
	assert.Less(t, strings.Index(out, `"outlook"`), strings.Index(out, `"yahoo"`))
}

func TestGenerateSubsetAndLabels(t *testing.T) {
	args := append([]string{}, meetingArgs...)
	args = append(args, "--provider", "yahoo,google", "--label", "google=My Google", "--label", "hotmail=Nope")
	out, err := run(t, args...)
	require.NoError(t, err)

	var links map[string]icslinks.Link
	require.NoError(t, json.Unmarshal([]byte(out), &links))
	require.Len(t, links, 2)
	assert.Equal(t, "My Google", links["google"].Label)
	assert.Equal(t, "Yahoo", links["yahoo"].Label)
}

func TestGenerateURLsOnlyToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.json")
	args := append([]string{}, meetingArgs...)
	args = append(args, "--all-day", "--urls-only", "-p", "google", "-o", path)
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var urls map[string]string
	require.NoError(t, json.Unmarshal(data, &urls))
	assert.Equal(t, map[string]string{
		"google": "https://calendar.google.com/calendar/render?action=TEMPLATE&dates=20230815/20230815&details=Meeting&location=Office&text=Discuss+project",
	}, urls)
}

func TestGenerateWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "icslinks.yaml")
	outPath := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte("labels:\n  aol: America Online\nproviders: [aol, outlook]\noutput: "+outPath+"\n"), 0o600))

	args := append([]string{"--config", cfgPath}, meetingArgs...)
	_, err := run(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var links map[string]icslinks.Link
	require.NoError(t, json.Unmarshal(data, &links))
	require.Len(t, links, 2)
	assert.Equal(t, "America Online", links["aol"].Label)
	assert.Equal(t, "Outlook", links["outlook"].Label)
}

func TestGenerateErrors(t *testing.T) {
	_, err := run(t, "generate", "--start", "2023-08-15 15:00:00")
	require.Error(t, err)

	_, err = run(t, "generate", "--start", "soon", "--end", "later")
	require.ErrorIs(t, err, icslinks.ErrInvalidDate)

	args := append([]string{}, meetingArgs...)
	_, err = run(t, append(args, "--provider", "icloud")...)
	require.ErrorIs(t, err, icslinks.ErrUnknownProvider)

	_, err = run(t, append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, meetingArgs...)...)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse(t *testing.T) {
	google, err := icslinks.New("2023-08-15 15:00:00", "2023-08-15 16:30:00", icslinks.WithSummary("Meeting")).URL(icslinks.ProviderGoogle)
	require.NoError(t, err)

	out, err := run(t, "parse", google, "--urls-only", "-p", "yahoo")
	require.NoError(t, err)

	var urls map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &urls))
	assert.Equal(t, "https://calendar.yahoo.com/?desc=Meeting&dur=false&et=20230815T163000Z&in_loc=&st=20230815T150000Z&title=&v=60", urls["yahoo"])

	_, err = run(t, "parse", "https://example.com/", "--base64")
	require.ErrorIs(t, err, icslinks.ErrInvalidURL)
}

func TestICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.ics")
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//icslinks//test//EN",
		"BEGIN:VEVENT",
		"UID:standup@example.com",
		"DTSTAMP:20230801T120000Z",
		"DTSTART:20230815T090000Z",
		"DTEND:20230815T091500Z",
		"SUMMARY:Standup",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	require.NoError(t, os.WriteFile(path, []byte(ics), 0o600))

	out, err := run(t, "ics", path, "--uid", "standup@example.com", "--urls-only", "-p", "google")
	require.NoError(t, err)
	var urls map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &urls))
	assert.Contains(t, urls["google"], "dates=20230815T090000Z/20230815T091500Z&details=Standup")

	_, err = run(t, "ics", path, "--uid", "other@example.com")
	require.ErrorIs(t, err, icslinks.ErrEventNotFound)

	_, err = run(t, "ics", filepath.Join(t.TempDir(), "missing.ics"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
