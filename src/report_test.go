package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReportFixture(t *testing.T) (*ResourceCollection, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.png"), []byte("x"), 0644))

	c := NewResourceCollection()
	c.SetFileName(filepath.Join(dir, "app.qrc"))
	ref, err := c.AddGroup("/icons", "")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "ok.png", "ok")
	require.NoError(t, err)
	_, err = c.AddResource(ref, "gone.png", "gone")
	require.NoError(t, err)
	return c, dir
}

func TestBuildReport(t *testing.T) {
	c, dir := buildReportFixture(t)

	report := BuildReport(c, dir)
	assert.Equal(t, c.FileName(), report.Manifest)
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "gone.png", report.Issues[0].Path)
	assert.Equal(t, SeverityError, report.Issues[0].Severity)
	assert.True(t, report.HasErrors())
}

func TestReportNoErrorsForWarnings(t *testing.T) {
	report := ValidationReport{Issues: []IssueReport{
		{Path: "a.png", Severity: SeverityWarning, Reason: "duplicate"},
	}}
	assert.False(t, report.HasErrors())
}

func TestReportText(t *testing.T) {
	c, dir := buildReportFixture(t)
	report := BuildReport(c, dir)

	text := report.Text()
	assert.Contains(t, text, "2 resources checked")
	assert.Contains(t, text, "error: gone.png (prefix /icons): file does not exist")

	report.Issues = nil
	assert.Contains(t, report.Text(), "no issues found")
}

func TestReportTextEmptyPrefix(t *testing.T) {
	report := ValidationReport{Issues: []IssueReport{
		{Path: "a.png", Severity: SeverityError, Reason: "file does not exist"},
	}}
	assert.Contains(t, report.Text(), "(prefix /)")
}

func TestReportYAML(t *testing.T) {
	c, dir := buildReportFixture(t)
	report := BuildReport(c, dir)

	out, err := report.YAML()
	require.NoError(t, err)
	assert.Contains(t, out, "checked: 2")
	assert.Contains(t, out, "path: gone.png")
	assert.Contains(t, out, "severity: error")
}
