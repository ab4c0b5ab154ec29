package main

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationReport is the printable form of Collection.Validate, used by
// the check subcommand and the GUI before a compile.
type ValidationReport struct {
	Manifest string        `yaml:"manifest"`
	Checked  int           `yaml:"checked"`
	Issues   []IssueReport `yaml:"issues,omitempty"`
}

type IssueReport struct {
	Prefix   string `yaml:"prefix,omitempty"`
	Path     string `yaml:"path"`
	Severity string `yaml:"severity"`
	Reason   string `yaml:"reason"`
}

// BuildReport validates the collection against rootDir (empty means the
// manifest's own directory) and wraps the findings for output.
func BuildReport(c *ResourceCollection, rootDir string) ValidationReport {
	report := ValidationReport{
		Manifest: c.FileName(),
		Checked:  c.ResourceCount(),
	}
	for _, issue := range c.Validate(rootDir) {
		report.Issues = append(report.Issues, IssueReport{
			Prefix:   issue.Prefix,
			Path:     issue.Path,
			Severity: issue.Severity,
			Reason:   issue.Reason,
		})
	}
	return report
}

// HasErrors reports whether any finding is a hard error (missing or
// unreadable file) as opposed to a warning.
func (r ValidationReport) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// YAML renders the report for machine consumption.
func (r ValidationReport) YAML() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return string(data), nil
}

// Text renders the report for the terminal.
func (r ValidationReport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d resources checked\n", r.Manifest, r.Checked)
	if len(r.Issues) == 0 {
		b.WriteString("no issues found\n")
		return b.String()
	}
	for _, issue := range r.Issues {
		prefix := issue.Prefix
		if prefix == "" {
			prefix = "/"
		}
		fmt.Fprintf(&b, "%s: %s (prefix %s): %s\n", issue.Severity, issue.Path, prefix, issue.Reason)
	}
	return b.String()
}
