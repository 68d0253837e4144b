package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
)

//go:embed templates/report.md.tmpl
var markdownSource string

var markdownTemplate = template.Must(template.New("report.md").
	Funcs(template.FuncMap{"codeLines": codeLines}).
	Parse(markdownSource))

// PandocBinary is the converter invoked by WritePDF
var PandocBinary = "pandoc"

type findingGroup struct {
	Level    string
	Findings []Finding
}

type markdownView struct {
	Extra         *Extra
	GeneratedAt   time.Time
	PythonVersion string
	SummaryTable  string
	Results       []Finding
	Groups        []findingGroup
}

// ToMarkdown renders the report as pandoc-flavoured markdown
func (r *Report) ToMarkdown() (string, error) {
	results := r.Sorted()
	view := markdownView{
		Extra:         r.Extra,
		GeneratedAt:   r.GeneratedAt,
		PythonVersion: r.PythonVersion,
		SummaryTable:  markdownSummary(results),
		Results:       results,
		Groups:        groupBySeverity(results),
	}

	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

func markdownSummary(results []Finding) string {
	return summaryTable(results, newTextStyles(false)).
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderRow(false).
		Render()
}

// groupBySeverity splits sorted findings into consecutive runs of equal severity
func groupBySeverity(sorted []Finding) []findingGroup {
	var groups []findingGroup
	for _, f := range sorted {
		level := f.IssueSeverity
		if n := len(groups); n == 0 || groups[n-1].Level != level {
			groups = append(groups, findingGroup{Level: level})
		}
		groups[len(groups)-1].Findings = append(groups[len(groups)-1].Findings, f)
	}
	return groups
}

// WritePDF converts the markdown rendering to a PDF at path using pandoc
func (r *Report) WritePDF(ctx context.Context, path string) error {
	md, err := r.ToMarkdown()
	if err != nil {
		return err
	}

	bin, err := exec.LookPath(PandocBinary)
	if err != nil {
		return fmt.Errorf("pdf output requires pandoc: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--from", "markdown", "--output", path)
	cmd.Stdin = strings.NewReader(md)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("pandoc: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
