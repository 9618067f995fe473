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

	"github.com/planbiir/kmlday/internal/stats"
)

const trackKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
<Placemark>
	<name>20241017090000-20241017100000</name>
	<TimeSpan><begin>2024-10-17T09:00:00Z</begin><end>2024-10-17T10:00:00Z</end></TimeSpan>
	<LineString><coordinates>35.9,31.9 35.91,31.91</coordinates></LineString>
</Placemark>
<Placemark>
	<name>20241017110000-20241017120000</name>
	<description>Projecting ahead</description>
	<LineString><coordinates>35.9,31.9 35.8,31.8</coordinates></LineString>
</Placemark>
<Placemark>
	<name>20241018080000-20241018093000</name>
	<LineString><coordinates>35.9,31.9 35.91,31.95 35.99,31.97</coordinates></LineString>
</Placemark>
</Document>
</kml>`

func writeTrack(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.kml")
	require.NoError(t, os.WriteFile(path, []byte(trackKML), 0644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_WritesDefaultOutputs(t *testing.T) {
	input := writeTrack(t)

	_, _, err := execute(t, "-i", input, "--log-pretty=false")
	require.NoError(t, err)

	dir := filepath.Dir(input)
	assert.FileExists(t, filepath.Join(dir, "track_by_date.kml"))
	assert.FileExists(t, filepath.Join(dir, "track_report.csv"))
}

func TestRoot_StatsJSON(t *testing.T) {
	input := writeTrack(t)

	stdout, _, err := execute(t, "-i", input, "--dry-run", "--stats-json", "--log-level", "error")
	require.NoError(t, err)

	var rows []stats.Row
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "20241017", rows[0].Date)
	assert.Equal(t, 1, rows[0].PlacemarkCount)
	assert.Equal(t, "20241018", rows[1].Date)
	assert.InDelta(t, 1.5, rows[1].TotalTime, 1e-9)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(input), "track_report.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRoot_DryRunPrintsStats(t *testing.T) {
	input := writeTrack(t)

	stdout, _, err := execute(t, "-i", input, "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Date Statistics")
	assert.Contains(t, stdout, "2 kept, 1 filtered")
	assert.Contains(t, stdout, "20241018: 1 placemarks")
	assert.Contains(t, stdout, "Segments: 1.46 to 1.46 km")
	assert.NotContains(t, stdout, "\u2013")
}

func TestRoot_CustomOutputs(t *testing.T) {
	input := writeTrack(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "days.kml")
	report := filepath.Join(dir, "days.csv")

	_, _, err := execute(t, "-i", input, "-o", out, "-r", report, "--exclude", "", "--log-level", "error")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Projecting ahead")
	assert.FileExists(t, report)
}

func TestRoot_MissingInput(t *testing.T) {
	_, _, err := execute(t, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input file configured")
}

func TestRoot_ConfigFile(t *testing.T) {
	input := writeTrack(t)
	cfgPath := filepath.Join(t.TempDir(), "kmlday.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("input: "+input+"\ndryRun: true\nlogLevel: error\n"), 0644))

	stdout, _, err := execute(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Date Statistics")
}

func TestInspect(t *testing.T) {
	input := writeTrack(t)

	stdout, _, err := execute(t, "inspect", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "placemarks: 3 (1 filtered)")
	assert.Contains(t, stdout, "dates: 2 [20241017 20241018]")
	assert.Contains(t, stdout, "Placemark #2: 20241018080000-20241018093000")
	assert.Contains(t, stdout, "duration: 1.50 h")
	assert.Contains(t, stdout, "points: 3")
	assert.NotContains(t, stdout, "Placemark #3")
	assert.Contains(t, stdout, "time span: 2024-10-17 09:00:00 +0000 UTC to 2024-10-18 09:30:00 +0000 UTC")
	assert.NotContains(t, stdout, "\u2013")
}

func TestInspect_TimeSpan(t *testing.T) {
	input := writeTrack(t)

	stdout, _, err := execute(t, "inspect", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "timespan: 2024-10-17T09:00:00Z to 2024-10-17T10:00:00Z")
	assert.Equal(t, 1, strings.Count(stdout, "timespan:"))
}

func TestInspect_All(t *testing.T) {
	input := writeTrack(t)

	stdout, _, err := execute(t, "inspect", "--all", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "placemarks: 3 (0 filtered)")
	assert.Contains(t, stdout, "Placemark #3")
}

func TestInspect_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.kml")
	doc := `<kml xmlns="http://www.opengis.net/kml/2.2"><Placemark>
<name>20241017090000-20241017100000</name>
<LineString><coordinates>35.9,31.9 x,31.91</coordinates></LineString>
</Placemark></kml>`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	stdout, _, err := execute(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `malformed coordinate "x,31.91"`)
}

func TestConfigCmd(t *testing.T) {
	t.Setenv("KMLDAY_FILTER_EXCLUDE", "Draft")
	t.Setenv("KMLDAY_INPUT", "day.kml")

	stdout, _, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "input: day.kml")
	assert.Contains(t, stdout, "exclude: Draft")
	assert.Contains(t, stdout, "output: day_by_date.kml")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version)
}
